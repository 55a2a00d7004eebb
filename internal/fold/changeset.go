package fold

// Changeset is the outcome of one pass or bulk operation: what a renderer
// must add, refresh and drop. Entries are copies taken after the change.
type Changeset struct {
	Added   []Entry
	Updated []Entry
	Deleted []Entry
}

// Empty reports whether nothing changed.
func (c Changeset) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Deleted) == 0
}

// Len is the total number of instructions.
func (c Changeset) Len() int {
	return len(c.Added) + len(c.Updated) + len(c.Deleted)
}

func (c *Changeset) sort() {
	sortEntries(c.Added)
	sortEntries(c.Updated)
	sortEntries(c.Deleted)
}
