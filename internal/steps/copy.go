// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package steps

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/spf13/afero"
)

// ErrCopy is returned when a file or directory cannot be copied.
var ErrCopy = errors.New("copy failed")

// CopyTree copies src on srcFS to dst on dstFS. Directories are copied recursively
// and existing files are overwritten.
func CopyTree(srcFS afero.Fs, src string, dstFS afero.Fs, dst string) error {
	info, err := srcFS.Stat(src)
	if err != nil {
		return errors.Join(ErrCopy, err)
	}

	if !info.IsDir() {
		return copyFile(srcFS, src, dstFS, dst, info.Mode())
	}

	err = afero.Walk(srcFS, src, func(p string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)

		if fi.IsDir() {
			return dstFS.MkdirAll(target, fi.Mode().Perm()|0o700)
		}

		return copyFile(srcFS, p, dstFS, target, fi.Mode())
	})
	if err != nil {
		return errors.Join(ErrCopy, err)
	}

	return nil
}

func copyFile(srcFS afero.Fs, src string, dstFS afero.Fs, dst string, mode os.FileMode) error {
	in, err := srcFS.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck

	if err := dstFS.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := dstFS.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

// FS returns the filesystem of the invocation, or the OS filesystem when opts carries no props.
func FS(opts *actionseq.Options) afero.Fs {
	if opts.Props == nil || opts.Props.FS == nil {
		return afero.NewOsFs()
	}

	return opts.Props.FS
}
