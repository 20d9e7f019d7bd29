// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package changelog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/chlog/pkg/changelog"
	"github.com/datawire/chlog/pkg/version"
)

func mustVersion(t *testing.T, str string) version.Version {
	t.Helper()
	ver, err := version.Parse(str)
	require.NoError(t, err)
	return *ver
}

func TestAdd(t *testing.T) {
	t.Parallel()
	cl := parseSample(t)
	cl.Add("Added a settings directive.")

	unreleased := cl.Unreleased()
	require.NotNil(t, unreleased)
	require.Len(t, unreleased.Entries, 2)
	assert.Equal(t, "Added a settings directive.", unreleased.Entries[1].Text)
}

func TestAddCreatesSection(t *testing.T) {
	t.Parallel()
	cl, err := changelog.Parse([]byte(
		"CHANGES\n*******\n\n0.2 (2014-04-24)\n================\n\n- Something.\n"))
	require.NoError(t, err)
	require.Nil(t, cl.Unreleased())

	cl.Add("New work. Thanks to Remco for the patch.")

	unreleased := cl.Unreleased()
	require.NotNil(t, unreleased)
	assert.Equal(t, "0.3 (unreleased)", unreleased.Header())
	require.Len(t, unreleased.Entries, 1)
	assert.Equal(t, []string{"Remco"}, unreleased.Entries[0].Credits)
	// the new section must be the newest one
	assert.True(t, cl.Releases[0].Unreleased)
}

func TestAddToEmptyChangelog(t *testing.T) {
	t.Parallel()
	cl, err := changelog.Parse([]byte("CHANGES\n*******\n"))
	require.NoError(t, err)

	cl.Add("Initial work.")

	unreleased := cl.Unreleased()
	require.NotNil(t, unreleased)
	assert.Equal(t, "0.1 (unreleased)", unreleased.Header())
}

func TestCut(t *testing.T) {
	t.Parallel()
	cl := parseSample(t)

	err := cl.Cut(mustVersion(t, "0.3"), "2014-06-20")
	require.NoError(t, err)

	assert.Nil(t, cl.Unreleased())
	latest := cl.Latest()
	require.NotNil(t, latest)
	assert.Equal(t, "0.3 (2014-06-20)", latest.Header())
}

func TestCutErrors(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input        string
		InputVer     string
		OutputErrStr string
	}
	testcases := map[string]testcase{
		"no-unreleased": {
			Input:        "CHANGES\n*******\n\n0.2 (2014-04-24)\n================\n\n- Something.\n",
			InputVer:     "0.3",
			OutputErrStr: "changelog: no unreleased section to cut",
		},
		"empty-section": {
			Input:        "CHANGES\n*******\n\n0.3 (unreleased)\n================\n",
			InputVer:     "0.3",
			OutputErrStr: "changelog: refusing to cut a release with no entries",
		},
		"not-newest": {
			Input: "CHANGES\n*******\n\n0.3 (unreleased)\n================\n\n- Work.\n\n" +
				"0.2 (2014-04-24)\n================\n\n- Something.\n",
			InputVer:     "0.2",
			OutputErrStr: "changelog: version 0.2 does not sort above newest release 0.2",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			cl, err := changelog.Parse([]byte(tcData.Input))
			require.NoError(t, err)
			err = cl.Cut(mustVersion(t, tcData.InputVer), "2014-06-20")
			assert.EqualError(t, err, tcData.OutputErrStr)
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()
	cl := parseSample(t)
	other, err := changelog.Parse([]byte(
		"CHANGES\n*******\n\n0.1.1 (2014-04-10)\n==================\n\n- Brown bag fix.\n"))
	require.NoError(t, err)

	require.NoError(t, cl.Merge(other))

	require.Len(t, cl.Releases, 4)
	assert.Equal(t, "0.3", cl.Releases[0].RawVersion)
	assert.Equal(t, "0.2", cl.Releases[1].RawVersion)
	assert.Equal(t, "0.1.1", cl.Releases[2].RawVersion)
	assert.Equal(t, "0.1", cl.Releases[3].RawVersion)
}

func TestMergeIdentical(t *testing.T) {
	t.Parallel()
	cl := parseSample(t)
	other := parseSample(t)
	require.NoError(t, cl.Merge(other))
	assert.Len(t, cl.Releases, 3)
	assert.Len(t, cl.Links, 1)
}

func TestMergeConflicts(t *testing.T) {
	t.Parallel()
	cl := parseSample(t)

	conflicting, err := changelog.Parse([]byte(
		"CHANGES\n*******\n\n0.1 (2014-04-08)\n================\n\n- A different history.\n"))
	require.NoError(t, err)
	assert.EqualError(t, cl.Merge(conflicting),
		"changelog: conflicting entries for version 0.1")

	badLink, err := changelog.Parse([]byte("CHANGES\n*******\n\n" +
		"0.1 (2014-04-08)\n================\n\n- Initial public release.\n\n" +
		".. _`Security`: http://other.example.org\n"))
	require.NoError(t, err)
	assert.EqualError(t, cl.Merge(badLink),
		`changelog: conflicting link target "Security": "http://blog.example.org/security" vs "http://other.example.org"`)
}
