package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(key string) Owner {
	return Owner{Key: key, Kind: OwnerMember}
}

func TestDirectMatchKeepsIdentity(t *testing.T) {
	m := NewModel()
	old := m.insert(Entry{Position: Position{Offset: 10, Length: 20}, Owner: member("A#f()"), Kind: RegionMember})

	cs := reconcile(m, []Candidate{
		{Position: Position{Offset: 40, Length: 20}, Owner: member("A#f()"), Kind: RegionMember},
	}, false)

	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Deleted)
	require.Len(t, cs.Updated, 1)
	assert.Equal(t, old.ID, cs.Updated[0].ID)
	assert.Equal(t, uint32(40), cs.Updated[0].Position.Offset)
}

func TestCollapseFollowsCandidateOnlyWhenAllowed(t *testing.T) {
	pos := Position{Offset: 10, Length: 20}
	cand := []Candidate{{Position: pos, Owner: member("A#f()"), Kind: RegionMember, Collapse: true}}

	m := NewModel()
	e := m.insert(Entry{Position: pos, Owner: member("A#f()"), Kind: RegionMember})
	assert.True(t, reconcile(m, cand, false).Empty())
	got, _ := m.Get(e.ID)
	assert.False(t, got.Collapsed)

	cs := reconcile(m, cand, true)
	require.Len(t, cs.Updated, 1)
	assert.True(t, cs.Updated[0].Collapsed)
}

func TestCommentFlagSeparatesSlots(t *testing.T) {
	m := NewModel()
	code := m.insert(Entry{Position: Position{Offset: 30, Length: 20}, Owner: member("A#f()")})
	doc := m.insert(Entry{Position: Position{Offset: 10, Length: 20}, Owner: member("A#f()"), IsComment: true})

	cs := reconcile(m, []Candidate{
		{Position: Position{Offset: 10, Length: 20}, Owner: member("A#f()"), IsComment: true},
		{Position: Position{Offset: 30, Length: 20}, Owner: member("A#f()")},
	}, false)
	assert.True(t, cs.Empty())
	assert.Equal(t, 2, m.Len())
	_, ok := m.Get(code.ID)
	assert.True(t, ok)
	_, ok = m.Get(doc.ID)
	assert.True(t, ok)
}

func TestMalformedCandidateIsNeverInstalled(t *testing.T) {
	m := NewModel()
	cs := reconcile(m, []Candidate{
		{Position: Position{Offset: 0, Length: 20}, Owner: member("A#f()")},
		{Position: Position{Offset: 0, Length: 20}, Owner: Owner{Key: "<imports>", Kind: OwnerImports}},
	}, true)
	require.Len(t, cs.Added, 1)
	assert.Equal(t, OwnerImports, cs.Added[0].Owner.Kind)
	assert.Equal(t, 1, m.Len())
}

func TestMalformedCandidateKeepsOldEntry(t *testing.T) {
	m := NewModel()
	old := m.insert(Entry{Position: Position{Offset: 25, Length: 20}, Owner: member("A#f()")})

	cs := reconcile(m, []Candidate{
		{Position: Position{Offset: 0, Length: 30}, Owner: member("A#f()")},
	}, false)
	assert.True(t, cs.Empty())
	got, ok := m.Get(old.ID)
	require.True(t, ok)
	assert.Equal(t, Position{Offset: 25, Length: 20}, got.Position)
}

func TestMalformedSuppressionBeatsRescue(t *testing.T) {
	m := NewModel()
	// the doc comment slot has no candidate, the code slot only a malformed one
	doc := m.insert(Entry{Position: Position{Offset: 0, Length: 20}, Owner: member("A#g()"), IsComment: true})

	cs := reconcile(m, []Candidate{
		{Position: Position{Offset: 0, Length: 40}, Owner: member("A#g()")},
	}, false)
	assert.True(t, cs.Empty())
	_, ok := m.Get(doc.ID)
	assert.True(t, ok)
}

func TestRescueByPositionKeepsIdentityAndCollapse(t *testing.T) {
	m := NewModel()
	old := m.insert(Entry{Position: Position{Offset: 50, Length: 20}, IsComment: true, Collapsed: true, Kind: RegionComment})

	cs := reconcile(m, []Candidate{
		{Position: Position{Offset: 50, Length: 30}, IsComment: true, Kind: RegionComment},
	}, false)
	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Deleted)
	require.Len(t, cs.Updated, 1)
	got := cs.Updated[0]
	assert.Equal(t, old.ID, got.ID)
	assert.True(t, got.Collapsed)
	assert.Equal(t, uint32(30), got.Position.Length)
}

func TestRescueAdoptsOwnerOfAddition(t *testing.T) {
	m := NewModel()
	old := m.insert(Entry{Position: Position{Offset: 50, Length: 20}, Owner: member("A#f()"), Collapsed: true})

	// f was renamed to g
	cs := reconcile(m, []Candidate{
		{Position: Position{Offset: 50, Length: 20}, Owner: member("A#g()")},
	}, false)
	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Deleted)
	require.Len(t, cs.Updated, 1)
	assert.Equal(t, old.ID, cs.Updated[0].ID)
	assert.Equal(t, "A#g()", cs.Updated[0].Owner.Key)
	assert.True(t, cs.Updated[0].Collapsed)
}

func TestDirectMatchIsNotTakenOverByRescue(t *testing.T) {
	m := NewModel()
	loose := m.insert(Entry{Position: Position{Offset: 30, Length: 20}, IsComment: true, Collapsed: true})
	owned := m.insert(Entry{Position: Position{Offset: 60, Length: 20}, IsComment: true, Owner: member("A#f()")})

	cs := reconcile(m, []Candidate{
		{Position: Position{Offset: 30, Length: 25}, IsComment: true, Owner: member("A#f()"), Kind: RegionDoc},
	}, false)

	assert.Empty(t, cs.Added)
	require.Len(t, cs.Deleted, 1)
	assert.Equal(t, loose.ID, cs.Deleted[0].ID)
	require.Len(t, cs.Updated, 1)
	got := cs.Updated[0]
	assert.Equal(t, owned.ID, got.ID)
	assert.Equal(t, member("A#f()"), got.Owner)
	assert.Equal(t, Position{Offset: 30, Length: 25}, got.Position)
	assert.False(t, got.Collapsed)
	assert.Equal(t, 1, m.Len())
}

func TestDeletedPositionsAreDropped(t *testing.T) {
	m := NewModel()
	e := m.insert(Entry{Position: Position{Offset: 10, Length: 20, Deleted: true}, Owner: member("A#f()")})

	cs := reconcile(m, []Candidate{
		{Position: Position{Offset: 10, Length: 20}, Owner: member("A#f()")},
	}, false)
	require.Len(t, cs.Deleted, 1)
	assert.Equal(t, e.ID, cs.Deleted[0].ID)
	require.Len(t, cs.Added, 1)
	assert.NotEqual(t, e.ID, cs.Added[0].ID)
}

func TestNewEntriesCollapseOnlyWhenAllowed(t *testing.T) {
	cand := []Candidate{{Position: Position{Offset: 10, Length: 20}, Owner: member("A#f()"), Collapse: true}}

	cs := reconcile(NewModel(), cand, false)
	require.Len(t, cs.Added, 1)
	assert.False(t, cs.Added[0].Collapsed)

	cs = reconcile(NewModel(), cand, true)
	require.Len(t, cs.Added, 1)
	assert.True(t, cs.Added[0].Collapsed)
}
