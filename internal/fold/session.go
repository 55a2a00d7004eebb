package fold

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"jfold/internal/trace"
)

// Session drives the passes of one document. It owns the installed model and
// a cached scanner; passes that start while another one is running use a
// scanner of their own.
type Session struct {
	prefs   Preferences
	model   *Model
	scanner *Scanner
	depth   int
	tracer  trace.Tracer
}

// NewSession returns a session over model. A nil model starts empty.
func NewSession(prefs Preferences, model *Model) *Session {
	if model == nil {
		model = NewModel()
	}
	return &Session{prefs: prefs, model: model, tracer: trace.Nop}
}

// SetTracer sets the tracer used when the context carries none.
func (s *Session) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	s.tracer = t
}

// Model returns the installed model. Callers must not mutate it while a pass
// is running.
func (s *Session) Model() *Model {
	return s.model
}

func (s *Session) Preferences() Preferences {
	return s.prefs
}

// SetPreferences replaces the preferences used by later passes.
func (s *Session) SetPreferences(p Preferences) {
	s.prefs = p
}

// InProgress reports whether a pass is running on this session.
func (s *Session) InProgress() bool {
	return s.depth > 0
}

// Initialize runs the pass for a freshly opened document. New entries take
// their collapse-by-default flags and matched entries follow them.
func (s *Session) Initialize(ctx context.Context, in Input) (Changeset, error) {
	return s.run(ctx, "fold.initialize", in, true)
}

// OnChange runs the pass after the document changed. Collapse state of
// existing entries is left alone and new entries start expanded.
func (s *Session) OnChange(ctx context.Context, in Input) (Changeset, error) {
	return s.run(ctx, "fold.change", in, false)
}

func (s *Session) run(ctx context.Context, name string, in Input, allowCollapse bool) (Changeset, error) {
	if in.File == nil || in.Tree == nil {
		return Changeset{}, ErrSourceUnavailable
	}

	tracer := s.tracerFor(ctx)
	span := trace.Begin(tracer, trace.ScopePass, name, trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("file", in.File.Path)

	scan := s.acquireScanner(in)
	s.depth++
	defer func() { s.depth-- }()

	cands, skipped := Extract(in, scan, s.prefs, tracer, span.ID())
	cs := reconcile(s.model, cands, allowCollapse)

	span.WithExtra("candidates", strconv.Itoa(len(cands))).
		WithExtra("skipped", strconv.Itoa(skipped)).
		WithExtra("entries", strconv.Itoa(s.model.Len()))
	span.End(changesetDetail(cs))
	return cs, nil
}

// acquireScanner returns the cached scanner, or a private one when a pass is
// already using it.
func (s *Session) acquireScanner(in Input) *Scanner {
	if s.InProgress() {
		return NewScanner(in.File)
	}
	if s.scanner == nil {
		s.scanner = NewScanner(in.File)
	} else if s.scanner.File() != in.File {
		s.scanner.Bind(in.File)
	}
	return s.scanner
}

func (s *Session) tracerFor(ctx context.Context) trace.Tracer {
	if t := trace.FromContext(ctx); t != trace.Nop {
		return t
	}
	return s.tracer
}

// CollapseMembers collapses every member and inner type region.
func (s *Session) CollapseMembers() Changeset {
	return s.setWhere("fold.collapse-members", true, func(e Entry) bool {
		return !e.IsComment && (e.Owner.Kind == OwnerMember || e.Owner.Kind == OwnerType)
	})
}

// CollapseComments collapses every comment region, custom regions included.
func (s *Session) CollapseComments() Changeset {
	return s.setWhere("fold.collapse-comments", true, func(e Entry) bool {
		return e.IsComment
	})
}

// CollapseElements collapses the code regions owned by the given keys.
func (s *Session) CollapseElements(keys ...string) Changeset {
	return s.setWhere("fold.collapse-elements", true, ownedBy(keys))
}

// ExpandElements expands the code regions owned by the given keys.
func (s *Session) ExpandElements(keys ...string) Changeset {
	return s.setWhere("fold.expand-elements", false, ownedBy(keys))
}

func ownedBy(keys []string) func(Entry) bool {
	return func(e Entry) bool {
		return !e.IsComment && !e.Owner.IsZero() && slices.Contains(keys, e.Owner.Key)
	}
}

// setWhere sets the collapse state of the matching entries without
// recomputing regions. Changed entries are reported as updates.
func (s *Session) setWhere(name string, collapsed bool, match func(Entry) bool) Changeset {
	span := trace.Begin(s.tracer, trace.ScopePass, name, 0)
	var cs Changeset
	for _, e := range s.model.Entries() {
		if e.Position.Deleted || !match(e) {
			continue
		}
		if s.model.SetCollapsed(e.ID, collapsed) {
			e.Collapsed = collapsed
			cs.Updated = append(cs.Updated, e)
		}
	}
	span.End(changesetDetail(cs))
	return cs
}

func changesetDetail(cs Changeset) string {
	return fmt.Sprintf("+%d ~%d -%d", len(cs.Added), len(cs.Updated), len(cs.Deleted))
}
