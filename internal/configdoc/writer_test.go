// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/constructdoc/internal/errors"
	"grimm.is/constructdoc/internal/testutil"
)

func repoOutputs(root string) []string {
	return []string{
		filepath.Join(root, "CONSTRUCT.md"),
		filepath.Join(root, testutil.DocsSubdir, "construct-yaml.md"),
	}
}

func TestWriter_WritesIdenticalContent(t *testing.T) {
	root := testutil.TempRepo(t)
	paths := repoOutputs(root)

	doc, err := newTestRenderer(t).Render(exampleMetadata())
	require.NoError(t, err)

	w := NewWriter(nil, paths...)
	require.NoError(t, w.Write(doc))

	first := testutil.ReadFile(t, paths[0])
	second := testutil.ReadFile(t, paths[1])
	assert.Equal(t, doc, first)
	assert.Equal(t, first, second)

	info, err := os.Stat(paths[0])
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriter_Overwrites(t *testing.T) {
	root := testutil.TempRepo(t)
	paths := repoOutputs(root)
	testutil.WriteFile(t, paths[0], "stale content that is much longer than the new document")

	w := NewWriter(nil, paths...)
	require.NoError(t, w.Write("fresh\n"))

	assert.Equal(t, "fresh\n", testutil.ReadFile(t, paths[0]))
	assert.Equal(t, "fresh\n", testutil.ReadFile(t, paths[1]))

	// No temp files left behind.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestWriter_MissingParentDirectory(t *testing.T) {
	root := t.TempDir() // no docs/source tree
	paths := repoOutputs(root)

	err := NewWriter(nil, paths...).Write("doc\n")
	require.Error(t, err)
	assert.Equal(t, errors.KindIO, errors.GetKind(err))
	assert.Equal(t, paths[1], errors.GetAttributes(err)["path"])

	// The writes are sequential and not transactional: the first landed.
	assert.Equal(t, "doc\n", testutil.ReadFile(t, paths[0]))
}

func TestWriter_StopsAtFirstFailure(t *testing.T) {
	root := testutil.TempRepo(t)
	bad := filepath.Join(root, "missing", "CONSTRUCT.md")
	good := filepath.Join(root, "after.md")

	err := NewWriter(nil, bad, good).Write("doc\n")
	require.Error(t, err)

	_, statErr := os.Stat(good)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriter_NoDestinations(t *testing.T) {
	err := NewWriter(nil).Write("doc")
	require.Error(t, err)
	assert.Equal(t, errors.KindConfig, errors.GetKind(err))
}

func TestWriter_Paths(t *testing.T) {
	w := NewWriter(nil, "a.md", "b.md")
	p := w.Paths()
	p[0] = "changed"
	assert.Equal(t, []string{"a.md", "b.md"}, w.Paths())
}

func TestWriter_Check(t *testing.T) {
	root := testutil.TempRepo(t)
	paths := repoOutputs(root)
	w := NewWriter(nil, paths...)

	drifts, err := w.Check("line one\nline two\n")
	require.NoError(t, err)
	require.Len(t, drifts, 2)
	assert.True(t, drifts[0].Missing)
	assert.True(t, drifts[1].Missing)

	require.NoError(t, w.Write("line one\nline two\n"))
	drifts, err = w.Check("line one\nline two\n")
	require.NoError(t, err)
	assert.Empty(t, drifts)

	testutil.WriteFile(t, paths[1], "line one\nline 2\n")
	drifts, err = w.Check("line one\nline two\n")
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, paths[1], drifts[0].Path)
	assert.False(t, drifts[0].Missing)
	assert.Contains(t, drifts[0].Diff, "--- "+paths[1])
	assert.Contains(t, drifts[0].Diff, "-line 2")
	assert.Contains(t, drifts[0].Diff, "+line two")
}
