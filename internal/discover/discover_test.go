package discover

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func relPaths(files []File) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, filepath.ToSlash(f.RelativePath))
	}
	return paths
}

func TestDiscover_Directory_FindsMarkdownRecursively(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.md":          "# Index",
		"guides/intro.md":   "# Intro",
		"guides/deep.mkd":   "# Deep",
		"notes.markdown":    "# Notes",
		"assets/logo.png":   "png",
		"scripts/build.sh":  "#!/bin/sh",
		"guides/extra.txt":  "text",
		"archive/old.mdown": "# Old",
	})

	files, err := Discover(root, testLogger())
	require.NoError(t, err)
	require.ElementsMatch(t,
		[]string{"index.md", "guides/intro.md", "guides/deep.mkd", "notes.markdown", "archive/old.mdown"},
		relPaths(files))
}

func TestDiscover_SkipsHiddenFilesAndDirectories(t *testing.T) {
	root := writeTree(t, map[string]string{
		"visible.md":          "# Visible",
		".hidden.md":          "# Hidden",
		".git/objects/readme": "x",
		".obsidian/plugin.md": "# Plugin",
	})

	files, err := Discover(root, testLogger())
	require.NoError(t, err)
	require.Equal(t, []string{"visible.md"}, relPaths(files))
}

func TestDiscover_SingleFile(t *testing.T) {
	root := writeTree(t, map[string]string{"guide.md": "# Guide"})

	files, err := Discover(filepath.Join(root, "guide.md"), testLogger())
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "guide.md", files[0].RelativePath)
	require.Equal(t, filepath.Join(root, "guide.md"), files[0].Path)
	require.Equal(t, "", files[0].Section)
}

func TestDiscover_SingleNonMarkdownFile_Error(t *testing.T) {
	root := writeTree(t, map[string]string{"data.csv": "a,b"})

	_, err := Discover(filepath.Join(root, "data.csv"), testLogger())
	require.ErrorContains(t, err, "not a markdown file")
}

func TestDiscover_MissingPath_Error(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), testLogger())
	require.Error(t, err)
}

func TestDiscover_SectionReflectsSubdirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"top.md":            "# Top",
		"api/ref/types.md":  "# Types",
		"guides/install.md": "# Install",
	})

	files, err := Discover(root, testLogger())
	require.NoError(t, err)

	sections := map[string]string{}
	for _, f := range files {
		sections[filepath.ToSlash(f.RelativePath)] = filepath.ToSlash(f.Section)
	}
	require.Equal(t, "", sections["top.md"])
	require.Equal(t, "api/ref", sections["api/ref/types.md"])
	require.Equal(t, "guides", sections["guides/install.md"])
}
