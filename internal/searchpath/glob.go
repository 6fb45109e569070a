// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package searchpath

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Split returns the static base directory of a glob and the pattern relative to it.
func Split(glob string) (base, pattern string) {
	return doublestar.SplitPattern(filepath.ToSlash(glob))
}

// BaseExists reports whether the static base directory of glob exists on fsys.
// It never walks the tree.
func BaseExists(fsys afero.Fs, glob string) bool {
	base, _ := Split(glob)

	ok, err := afero.DirExists(fsys, filepath.FromSlash(base))

	return err == nil && ok
}

// Glob expands a doublestar pattern on fsys. A missing base directory yields no matches.
// Results are forward-slash paths in the order doublestar produces them.
func Glob(fsys afero.Fs, glob string) ([]string, error) {
	base, pattern := Split(glob)

	if !BaseExists(fsys, glob) {
		return nil, nil
	}

	iofs := afero.NewIOFS(afero.NewBasePathFs(fsys, filepath.FromSlash(base)))

	matches, err := doublestar.Glob(iofs, pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, path.Join(base, m))
	}

	return out, nil
}
