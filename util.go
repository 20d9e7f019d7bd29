// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/datawire/dlib/dlog"

	"github.com/datawire/chlog/pkg/changelog"
	"github.com/datawire/chlog/pkg/fsutil"
)

// configFilename is looked for next to the changelog when no --config flag is given.
const configFilename = ".chlog.yml"

// OpenChangelog reads and parses a changelog file ("-" for stdin), returning both the
// parsed document and the raw bytes for the commands that diff or lint the original
// text.
func OpenChangelog(filename string) (*changelog.Changelog, []byte, error) {
	data, err := fsutil.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	cl, err := changelog.Parse(data)
	if err != nil {
		return nil, nil, &fs.PathError{
			Op:   "parse changelogfile",
			Path: filename,
			Err:  err,
		}
	}
	return cl, data, nil
}

// WriteChangelog writes the changelog back in canonical form, to stdout if filename is
// "-", atomically otherwise.
func WriteChangelog(cl *changelog.Changelog, filename string, width int) error {
	data := cl.Format(width)
	if filename == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return fsutil.WriteFileAtomic(filename, data)
}

// usedLinks filters links down to the targets that some entry in releases references.
func usedLinks(links []changelog.Link, releases []changelog.Release) []changelog.Link {
	var ret []changelog.Link
nextLink:
	for _, link := range links {
		for _, rel := range releases {
			for _, entry := range rel.Entries {
				for _, ref := range entry.Refs {
					if strings.EqualFold(ref, link.Name) {
						ret = append(ret, link)
						continue nextLink
					}
				}
			}
		}
	}
	return ret
}
// OpenConfig returns the lint/format configuration: the --config argument if given,
// otherwise a ".chlog.yml" next to the changelog file, otherwise built-in defaults.
func OpenConfig(ctx context.Context, configFlag, changelogFile string) (*changelog.Config, error) {
	if configFlag != "" {
		return changelog.LoadConfig(configFlag)
	}
	dir := "."
	if changelogFile != "-" {
		dir = filepath.Dir(changelogFile)
	}
	implied := filepath.Join(dir, configFilename)
	cfg, err := changelog.LoadConfig(implied)
	switch {
	case err == nil:
		dlog.Debugf(ctx, "using config file %q", implied)
		return cfg, nil
	case os.IsNotExist(err):
		return changelog.DefaultConfig(), nil
	default:
		return nil, err
	}
}
