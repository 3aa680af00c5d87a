package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootFromURIPrefersRootURI(t *testing.T) {
	root := "file:///workspace/root"
	got := RootFromURI(&root, []string{"file:///other"})
	require.Equal(t, "/workspace/root", got)
}

func TestRootFromURIFallsBackToWorkspaceFolders(t *testing.T) {
	got := RootFromURI(nil, []string{"file:///folder/one"})
	require.Equal(t, "/folder/one", got)
}

func TestRootFromURIFallsBackToDot(t *testing.T) {
	require.Equal(t, ".", RootFromURI(nil, nil))
}

func TestLoadBuildFileMissingIsNotAnError(t *testing.T) {
	w := NewWorkspace(t.TempDir())
	w.LoadBuildFile()
	require.Nil(t, w.BuildFile)
	require.Nil(t, w.SourcePaths())
}

func TestLoadBuildFileParsesSources(t *testing.T) {
	dir := t.TempDir()
	content := `{"version": "2.0", "sources": ["model"], "imports": ["shared"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smithy-build.json"), []byte(content), 0644))

	w := NewWorkspace(dir)
	w.LoadBuildFile()

	require.NotNil(t, w.BuildFile)
	require.Equal(t, "2.0", w.BuildFile.Version)
	require.Equal(t, []string{filepath.Join(dir, "model")}, w.SourcePaths())
}

func TestLoadBuildFileMalformedIsIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smithy-build.json"), []byte("not json"), 0644))

	w := NewWorkspace(dir)
	w.LoadBuildFile()
	require.Nil(t, w.BuildFile)
}

func TestWalkSmithyFilesVisitsOnlySmithyFiles(t *testing.T) {
	dir := t.TempDir()
	modelDir := filepath.Join(dir, "model")
	require.NoError(t, os.MkdirAll(modelDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "a.smithy"), []byte("namespace a\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "notes.txt"), []byte("ignore me\n"), 0644))

	content := `{"version": "2.0", "sources": ["model"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smithy-build.json"), []byte(content), 0644))

	w := NewWorkspace(dir)
	w.LoadBuildFile()

	var visited []string
	w.WalkSmithyFiles(func(path string) { visited = append(visited, path) })

	require.Equal(t, []string{filepath.Join(modelDir, "a.smithy")}, visited)
}

func TestFileURIConvertsPathToFileScheme(t *testing.T) {
	require.Equal(t, "file:///a/b.smithy", FileURI("/a/b.smithy"))
}
