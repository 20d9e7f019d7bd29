// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package fsutil has file helpers for commands that read and rewrite changelog files.
package fsutil

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadFile reads the named file, or stdin if filename is "-".
func ReadFile(filename string) ([]byte, error) {
	if filename == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, &fs.PathError{
				Op:   "read",
				Path: "/dev/stdin",
				Err:  err,
			}
		}
		return data, nil
	}
	return os.ReadFile(filename)
}

// WriteFileAtomic replaces the named file's contents by writing a temporary file in the
// same directory and renaming it into place, so that a crash mid-write can't leave a
// truncated changelog behind.  The replacement keeps the original file's permission
// bits; a file that doesn't exist yet is created with mode 0666 (before umask).
func WriteFileAtomic(filename string, data []byte) (err error) {
	mode := fs.FileMode(0o666)
	if info, statErr := os.Stat(filename); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filename)
}
