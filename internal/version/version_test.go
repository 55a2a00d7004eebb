package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringPlain(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version, GitCommit, BuildDate = "1.2.3-rc.1", "", ""
	assert.Equal(t, "jfold 1.2.3-rc.1", String(false))

	GitCommit, BuildDate = "abc123", "2024-01-15"
	assert.Equal(t, "jfold 1.2.3-rc.1 (abc123) built 2024-01-15", String(false))
}

func TestStringKeepsUnusualVersions(t *testing.T) {
	origVersion := Version
	t.Cleanup(func() { Version = origVersion })

	Version = "dev"
	assert.Equal(t, "jfold dev", String(false))
}

func TestStringColored(t *testing.T) {
	origVersion := Version
	t.Cleanup(func() { Version = origVersion })

	Version = "0.1.0"
	assert.Contains(t, String(true), "\x1b[")
}
