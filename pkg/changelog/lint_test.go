// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package changelog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/chlog/pkg/changelog"
)

func TestLintClean(t *testing.T) {
	t.Parallel()
	assert.NoError(t, changelog.Lint([]byte(sampleChangelog), nil))
}

func TestLint(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input         string
		InputCfg      *changelog.Config
		OutputErrStrs []string
	}
	testcases := map[string]testcase{
		"underline": {
			Input: "CHANGES\n*******\n\n0.1 (2014-04-08)\n====\n\n- Entry.\n",
			OutputErrStrs: []string{
				"line 4: underline: underline is 4 characters for a 16-character title",
			},
		},
		"tabs-and-trailing-space": {
			Input: "CHANGES\n*******\n\n0.1 (2014-04-08)\n================\n\n- An\tentry. \n",
			OutputErrStrs: []string{
				"line 7: tabs: tab character",
				"line 7: trailing-space: trailing whitespace",
			},
		},
		"order": {
			Input: "CHANGES\n*******\n\n" +
				"0.1 (2014-04-08)\n================\n\n- Old.\n\n" +
				"0.2 (2014-04-24)\n================\n\n- New.\n",
			OutputErrStrs: []string{
				"line 9: order: version 0.2 sorts above the preceding section's 0.1",
				"line 9: dates: date 2014-04-24 is newer than the preceding section's 2014-04-08",
			},
		},
		"duplicate-version": {
			Input: "CHANGES\n*******\n\n" +
				"0.1 (2014-04-24)\n================\n\n- Twice.\n\n" +
				"0.1 (2014-04-08)\n================\n\n- Once.\n",
			OutputErrStrs: []string{
				"line 9: duplicate-version: version 0.1 already has a section on line 4",
			},
		},
		"missing-date": {
			Input: "CHANGES\n*******\n\n0.1\n===\n\n- Entry.\n",
			OutputErrStrs: []string{
				"line 4: dates: section header has no date",
			},
		},
		"bad-date": {
			Input: "CHANGES\n*******\n\n0.1 (April 8th 2014)\n====================\n\n- Entry.\n",
			OutputErrStrs: []string{
				`line 4: dates: date "April 8th 2014" is not YYYY-MM-DD`,
			},
		},
		"unreleased-date": {
			Input: "CHANGES\n*******\n\n" +
				"0.3 (unreleased 2014-01-01)\n===========================\n\n- Pending.\n",
			OutputErrStrs: []string{
				"line 4: unreleased-date: unreleased section carries a date",
			},
		},
		"unreleased-position": {
			Input: "CHANGES\n*******\n\n" +
				"0.2 (2014-04-24)\n================\n\n- New.\n\n" +
				"0.1 (unreleased)\n================\n\n- Pending.\n",
			OutputErrStrs: []string{
				"line 9: unreleased-position: unreleased section is not the newest section",
			},
		},
		"scheme": {
			Input: "CHANGES\n*******\n\nnot.a.version (2014-04-08)\n==========================\n\n- Entry.\n",
			OutputErrStrs: []string{
				`line 4: scheme: version.Parse: invalid version: "not.a.version"`,
			},
		},
		"scheme-semver": {
			Input:    "CHANGES\n*******\n\n0.1 (2014-04-08)\n================\n\n- Entry.\n",
			InputCfg: &changelog.Config{Scheme: changelog.SchemeSemver, Width: 79},
			// Masterminds coerces partial versions, so "0.1" passes
			OutputErrStrs: nil,
		},
		"dangling-ref": {
			Input: "CHANGES\n*******\n\n0.1 (2014-04-08)\n================\n\n" +
				"- See the `docs`_ for details.\n",
			OutputErrStrs: []string{
				`line 7: dangling-ref: no link target for reference "docs"`,
			},
		},
		"unused-link": {
			Input: "CHANGES\n*******\n\n0.1 (2014-04-08)\n================\n\n- Entry.\n\n" +
				".. _docs: http://example.org\n",
			OutputErrStrs: []string{
				`line 9: unused-link: link target "docs" is never referenced`,
			},
		},
		"disable": {
			Input:         "CHANGES\n*******\n\n0.1 (2014-04-08)\n====\n\n- Entry.\n",
			InputCfg:      &changelog.Config{Width: 79, Disable: []string{"underline"}},
			OutputErrStrs: nil,
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			err := changelog.Lint([]byte(tcData.Input), tcData.InputCfg)
			if len(tcData.OutputErrStrs) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var strs []string
			for _, problem := range flatten(err) {
				strs = append(strs, problem.Error())
			}
			assert.Equal(t, tcData.OutputErrStrs, strs)
		})
	}
}

// flatten unpacks the aggregate error into its individual problems.
func flatten(err error) []error {
	type aggregate interface {
		Errors() []error
	}
	if agg, ok := err.(aggregate); ok {
		return agg.Errors()
	}
	return []error{err}
}

func TestLintSemverScheme(t *testing.T) {
	t.Parallel()
	cfg := &changelog.Config{Scheme: changelog.SchemeSemver, Width: 79}
	err := changelog.Lint([]byte(
		"CHANGES\n*******\n\n0.1.0-alpha (2014-04-08)\n========================\n\n- Entry.\n"), cfg)
	assert.NoError(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		filename := filepath.Join(t.TempDir(), ".chlog.yml")
		require.NoError(t, os.WriteFile(filename,
			[]byte("scheme: semver\nwidth: 72\ndisable:\n- unused-link\n"), 0o644))
		cfg, err := changelog.LoadConfig(filename)
		require.NoError(t, err)
		assert.Equal(t, changelog.SchemeSemver, cfg.Scheme)
		assert.Equal(t, 72, cfg.Width)
		assert.Equal(t, []string{"unused-link"}, cfg.Disable)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		filename := filepath.Join(t.TempDir(), ".chlog.yml")
		require.NoError(t, os.WriteFile(filename, []byte("{}\n"), 0o644))
		cfg, err := changelog.LoadConfig(filename)
		require.NoError(t, err)
		assert.Equal(t, changelog.SchemeDefault, cfg.Scheme)
		assert.Equal(t, changelog.DefaultWidth, cfg.Width)
	})

	t.Run("unknown-key", func(t *testing.T) {
		t.Parallel()
		filename := filepath.Join(t.TempDir(), ".chlog.yml")
		require.NoError(t, os.WriteFile(filename, []byte("shceme: semver\n"), 0o644))
		_, err := changelog.LoadConfig(filename)
		assert.Error(t, err)
	})

	t.Run("unknown-rule", func(t *testing.T) {
		t.Parallel()
		filename := filepath.Join(t.TempDir(), ".chlog.yml")
		require.NoError(t, os.WriteFile(filename, []byte("disable:\n- no-such-rule\n"), 0o644))
		_, err := changelog.LoadConfig(filename)
		assert.EqualError(t, err, filename+`: unknown lint rule: "no-such-rule"`)
	})
}
