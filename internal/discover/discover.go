// Package discover finds markdown files eligible for conversion.
package discover

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mddocx/internal/logfields"
)

// File represents a discovered markdown file.
type File struct {
	Path         string // Absolute path to the file
	RelativePath string // Path relative to the discovery root
	Section      string // Subdirectory within the root, "" at root level
}

// Discover returns the markdown files under root, which may be a single file
// or a directory walked recursively. Hidden files and directories are skipped.
// Results are ordered by the walk, which is lexical within each directory.
func Discover(root string, logger *slog.Logger) ([]File, error) {
	if logger == nil {
		logger = slog.Default()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if !isMarkdownFile(absRoot) {
			return nil, fmt.Errorf("not a markdown file: %s", root)
		}
		return []File{{
			Path:         absRoot,
			RelativePath: info.Name(),
		}}, nil
	}

	var files []File
	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		hidden := strings.HasPrefix(info.Name(), ".") && path != absRoot
		if info.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || !isMarkdownFile(path) {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}

		section := filepath.Dir(relPath)
		if section == "." {
			section = "" // Root level
		}

		files = append(files, File{
			Path:         path,
			RelativePath: relPath,
			Section:      section,
		})

		logger.Debug("discovered file", logfields.File(relPath), slog.String("section", section))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	logger.Info("markdown files discovered", logfields.Dir(root), logfields.Count(len(files)))
	return files, nil
}

// isMarkdownFile checks if a file is a markdown file.
func isMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".markdown" || ext == ".mdown" || ext == ".mkd"
}
