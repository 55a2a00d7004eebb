package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jfold/internal/fold"
	"jfold/internal/source"
	"jfold/internal/testkit"
)

const srcBefore = `class A {
    void f() {
        x();
    }
}
`

const srcAfter = `class A {
    void g() {
        y();
    }

    void f() {
        x();
    }
}
`

func virtual(fs *source.FileSet, name, content string) *source.File {
	return fs.Get(fs.AddVirtual(name, []byte(content)))
}

func defaultOptions() Options {
	return Options{Prefs: fold.DefaultPreferences()}
}

func TestEditsReplayToNewText(t *testing.T) {
	cases := [][2]string{
		{srcBefore, srcAfter},
		{srcAfter, srcBefore},
		{"a\nb\nc", "a\nc\nd\n"},
		{"", "x\n"},
		{"x\n", ""},
	}
	for _, tc := range cases {
		edits, err := Edits([]byte(tc[0]), []byte(tc[1]))
		require.NoError(t, err)
		got := []byte(tc[0])
		for _, e := range edits {
			got, err = e.Apply(got)
			require.NoError(t, err)
		}
		assert.Equal(t, tc[1], string(got))
	}
}

func TestFoldFindsRegions(t *testing.T) {
	fs := source.NewFileSet()
	res, err := Fold(context.Background(), virtual(fs, "A.java", srcBefore), defaultOptions(), nil)
	require.NoError(t, err)
	assert.False(t, res.Bag.HasErrors())
	require.Equal(t, 1, res.Model.Len())
	assert.Equal(t, "A#f()", res.Model.Entries()[0].Owner.Key)
	assert.Len(t, res.Changes.Added, 1)

	require.Len(t, res.Timings.Phases, 2)
	assert.Equal(t, "parse", res.Timings.Phases[0].Name)
	assert.Equal(t, "+1 ~0 -0", res.Timings.Phases[1].Note)
}

func TestDiffCarriesCollapseState(t *testing.T) {
	ctx := context.Background()
	fs := source.NewFileSet()
	oldFile := virtual(fs, "A.java", srcBefore)
	newFile := virtual(fs, "A.java", srcAfter)

	first, err := Fold(ctx, oldFile, defaultOptions(), nil)
	require.NoError(t, err)
	f := first.Model.Entries()[0]
	require.True(t, first.Model.SetCollapsed(f.ID, true))

	res, err := Diff(ctx, oldFile, newFile, defaultOptions(), first.Model)
	require.NoError(t, err)
	require.Len(t, res.Changes.Added, 1)
	assert.Equal(t, "A#g()", res.Changes.Added[0].Owner.Key)
	assert.False(t, res.Changes.Added[0].Collapsed)

	got, ok := res.Model.Get(f.ID)
	require.True(t, ok)
	assert.True(t, got.Collapsed)
	firstLine, _ := got.Position.Lines(newFile)
	assert.Equal(t, uint32(5), firstLine)
}

func TestSnapshotRoundTrip(t *testing.T) {
	fs := source.NewFileSet()
	file := virtual(fs, "A.java", srcBefore)
	res, err := Fold(context.Background(), file, defaultOptions(), nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snap", "A.jfold")
	require.NoError(t, SaveSnapshot(path, NewSnapshot(file, res.Model)))

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.True(t, snap.Matches(file))
	restored := snap.Model()
	assert.Equal(t, res.Model.Entries(), restored.Entries())
	assert.Equal(t, res.Model.NextIdentity(), restored.NextIdentity())
}

func TestSnapshotSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A.jfold")
	require.NoError(t, SaveSnapshot(path, &Snapshot{Schema: snapshotSchemaVersion + 1}))
	_, err := LoadSnapshot(path)
	assert.ErrorIs(t, err, ErrSnapshotSchema)
}

func TestFoldDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.java"), []byte(srcBefore), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "B.java"), []byte(srcAfter), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("class X {\n}\n"), 0o600))

	_, results, err := FoldDir(context.Background(), dir, defaultOptions(), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "A.java")), results[0].Path)
	assert.Equal(t, 1, results[0].Model.Len())
	assert.Equal(t, 2, results[1].Model.Len())
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
}

func TestPatch(t *testing.T) {
	patch, err := Patch("a/A.java", "b/A.java", []byte(srcBefore), []byte(srcAfter))
	require.NoError(t, err)
	assert.Contains(t, patch, "--- a/A.java")
	assert.Contains(t, patch, "+    void g() {")
}

func TestFoldDirReportsProgress(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.java"), []byte(srcBefore), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B.java"), []byte(srcAfter), 0o600))

	events := make(chan Event, 64)
	opts := defaultOptions()
	opts.Progress = ChannelSink{Ch: events}
	_, _, err := FoldDir(context.Background(), dir, opts, 2)
	require.NoError(t, err)
	close(events)

	counts := map[Status]int{}
	entries := map[string]int{}
	for ev := range events {
		counts[ev.Status]++
		if ev.Status == StatusDone {
			assert.Equal(t, StageFold, ev.Stage)
			entries[filepath.Base(ev.File)] = ev.Entries
		}
	}
	assert.Equal(t, 2, counts[StatusQueued])
	assert.Equal(t, 4, counts[StatusWorking])
	assert.Equal(t, 2, counts[StatusDone])
	assert.Zero(t, counts[StatusError])
	assert.Equal(t, map[string]int{"A.java": 1, "B.java": 2}, entries)
}

func TestSnapshotForOtherContent(t *testing.T) {
	fs := source.NewFileSet()
	before := virtual(fs, "A.java", srcBefore)
	res, err := Fold(context.Background(), before, defaultOptions(), nil)
	require.NoError(t, err)
	entry := res.Model.Entries()[0]
	res.Model.Toggle(entry.ID)
	snap := NewSnapshot(before, res.Model)

	model, err := snap.ModelFor(before)
	require.NoError(t, err)
	assert.Equal(t, 1, model.Len())

	after := virtual(fs, "A.java", srcAfter)
	model, err = snap.ModelFor(after)
	require.ErrorIs(t, err, ErrSnapshotMismatch)
	require.NotNil(t, model)

	res, err = Fold(context.Background(), after, defaultOptions(), model)
	require.NoError(t, err)
	got, ok := res.Model.Get(entry.ID)
	require.True(t, ok)
	assert.True(t, got.Collapsed)
	assert.Equal(t, "A#f()", got.Owner.Key)
}

func TestFoldPathSample(t *testing.T) {
	fs := source.NewFileSet()
	res, err := FoldPath(context.Background(), fs, filepath.Join("..", "..", "testdata", "Shapes.java"), defaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Bag.HasErrors())

	entries := res.Model.Entries()
	require.NoError(t, testkit.CheckModel(res.File, entries))

	kinds := map[fold.RegionKind]int{}
	var owners []string
	for _, e := range entries {
		kinds[e.Kind]++
		if !e.IsComment && !e.Owner.IsZero() {
			owners = append(owners, e.Owner.Key)
		}
	}
	for _, k := range []fold.RegionKind{
		fold.RegionHeader, fold.RegionImports, fold.RegionDoc, fold.RegionCustom,
		fold.RegionMember, fold.RegionType, fold.RegionStatement,
	} {
		assert.Positive(t, kinds[k], k.String())
	}
	assert.Subset(t, owners, []string{"<imports>", "Shapes#size()", "Shapes#get(int)", "Shapes#area()", "Shapes.Shape", "Shapes.Kind"})
}
