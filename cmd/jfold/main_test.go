package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jfold/internal/foldfmt"
)

const cliBefore = `class A {
    void f() {
        x();
    }
}
`

const cliAfter = `class A {
    void g() {
        y();
    }

    void f() {
        x();
    }
}
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root, finish := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--color", "off"}, args...))
	err := root.Execute()
	require.NoError(t, finish(err))
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFoldPretty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "A.java", cliBefore)
	out, _, err := execute(t, "fold", "--preview", path)
	require.NoError(t, err)
	assert.Contains(t, out, "member")
	assert.Contains(t, out, "A#f()")
	assert.Contains(t, out, "void f() {")
}

func TestFoldSnapshotKeepsCollapseState(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "A.java", cliBefore)
	snap := filepath.Join(dir, "A.jfold")

	_, _, err := execute(t, "fold", "--collapse", "A#f()", "--save", snap, path)
	require.NoError(t, err)

	out, _, err := execute(t, "fold", "--format", "json", "--load", snap, path)
	require.NoError(t, err)
	var model foldfmt.ModelOutput
	require.NoError(t, json.Unmarshal([]byte(out), &model))
	require.Equal(t, 1, model.Count)
	assert.True(t, model.Regions[0].Collapsed)
	assert.Equal(t, "A#f()", model.Regions[0].Owner)
}

func TestFoldSnapshotOfOtherRevisionWarns(t *testing.T) {
	dir := t.TempDir()
	before := writeFile(t, dir, "old/A.java", cliBefore)
	after := writeFile(t, dir, "new/A.java", cliAfter)
	snap := filepath.Join(dir, "A.jfold")

	_, _, err := execute(t, "fold", "--collapse-members", "--save", snap, before)
	require.NoError(t, err)

	out, errOut, err := execute(t, "fold", "--format", "json", "--load", snap, after)
	require.NoError(t, err)
	assert.Contains(t, errOut, "warning:")
	var model foldfmt.ModelOutput
	require.NoError(t, json.Unmarshal([]byte(out), &model))
	require.Equal(t, 2, model.Count)
	for _, r := range model.Regions {
		assert.Equal(t, r.Owner == "A#f()", r.Collapsed, r.Owner)
	}
}

func TestFoldDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.java", cliBefore)
	writeFile(t, dir, "pkg/B.java", cliAfter)

	out, _, err := execute(t, "fold", "--ui", "off", "--format", "json", dir)
	require.NoError(t, err)
	var models []foldfmt.ModelOutput
	require.NoError(t, json.Unmarshal([]byte(out), &models))
	require.Len(t, models, 2)
	assert.Equal(t, 1, models[0].Count)
	assert.Equal(t, 2, models[1].Count)

	_, _, err = execute(t, "fold", "--save", filepath.Join(dir, "x.jfold"), dir)
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	before := writeFile(t, dir, "old/A.java", cliBefore)
	after := writeFile(t, dir, "new/A.java", cliAfter)

	out, _, err := execute(t, "diff", "--patch", before, after)
	require.NoError(t, err)
	assert.Contains(t, out, "+    void g() {")
	assert.Contains(t, out, "A#g()")

	out, _, err = execute(t, "diff", "--format", "json", before, after)
	require.NoError(t, err)
	var cs foldfmt.ChangesetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &cs))
	require.Len(t, cs.Added, 1)
	assert.Equal(t, "A#g()", cs.Added[0].Owner)
	assert.Empty(t, cs.Deleted)
}

func TestTokenizeJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "A.java", "int a; // c\n")
	out, _, err := execute(t, "tokenize", "--format", "json", path)
	require.NoError(t, err)
	var tokens []foldfmt.TokenOutput
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	require.NotEmpty(t, tokens)
	assert.Equal(t, "EOF", tokens[len(tokens)-1].Kind)

	out, _, err = execute(t, "tokenize", "--comments=false", "--format", "json", path)
	require.NoError(t, err)
	var bare []foldfmt.TokenOutput
	require.NoError(t, json.Unmarshal([]byte(out), &bare))
	assert.Len(t, bare, len(tokens)-1)
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "prefs.toml", "[folding]\ncustom_region_begin_marker = \"<editor-fold\"\n")

	out, _, err := execute(t, "--config", cfg, "config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "# from "+cfg)
	assert.Contains(t, out, `custom_region_begin_marker = "<editor-fold"`)

	bad := writeFile(t, dir, "bad.toml", "[folding]\nnope = true\n")
	_, _, err = execute(t, "--config", bad, "config", dir)
	assert.Error(t, err)
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "jfold", payload.Tool)
	assert.NotEmpty(t, payload.Version)
}

func TestRejectsUnknownFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "A.java", cliBefore)
	_, _, err := execute(t, "fold", "--format", "xml", path)
	assert.ErrorContains(t, err, "unsupported format")
}

func TestProgressUI(t *testing.T) {
	on, err := progressUI(" ON ", "pretty")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = progressUI("on", "json")
	require.NoError(t, err)
	assert.False(t, on, "json output never runs the progress view")

	on, err = progressUI("off", "pretty")
	require.NoError(t, err)
	assert.False(t, on)

	_, err = progressUI("sometimes", "pretty")
	assert.Error(t, err)
}

func TestTimingsAndProfiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "A.java", cliBefore)
	cpu := filepath.Join(dir, "cpu.pprof")

	_, errOut, err := execute(t, "--timings", "--cpu-profile", cpu, "fold", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "timings ")
	assert.Contains(t, errOut, "parse")
	assert.FileExists(t, cpu)
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "A.java", cliBefore)
	out := filepath.Join(dir, "trace.ndjson")

	_, _, err := execute(t, "--trace", out, "--trace-level", "detail", "fold", path)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fold.initialize")
}

func TestTraceRingModeKeepsTail(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "A.java", cliBefore)
	out := filepath.Join(dir, "trace.log")

	_, _, err := execute(t, "--trace", out, "--trace-level", "detail", "--trace-mode", "ring",
		"--trace-ring-size", "1", "fold", path)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "driver.fold")
}

func TestTraceBothModeDumpsRingOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "A.java", cliBefore)
	out := filepath.Join(dir, "trace.log")
	snap := filepath.Join(path, "A.snap")

	_, errOut, err := execute(t, "--trace", out, "--trace-level", "phase", "--trace-mode", "both",
		"fold", "--save", snap, path)
	require.Error(t, err)
	assert.Contains(t, errOut, "last events before the failure")
	assert.Contains(t, errOut, "driver.fold")

	_, errOut, err = execute(t, "--trace", out, "--trace-level", "phase", "--trace-mode", "both", "fold", path)
	require.NoError(t, err)
	assert.NotContains(t, errOut, "last events before the failure")
}
