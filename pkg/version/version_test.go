// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version_test

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/chlog/pkg/testutil"
	"github.com/datawire/chlog/pkg/version"
)

func intPtr(x int) *int {
	return &x
}

func mustParse(t *testing.T, str string) version.Version {
	t.Helper()
	ver, err := version.Parse(str)
	require.NoError(t, err)
	require.NotNil(t, ver)
	return *ver
}

func TestParse(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input        string
		OutputVer    *version.Version
		OutputStr    string // canonical spelling; "" means same as Input
		OutputErrStr string
	}
	testcases := map[string]testcase{
		"simple": {
			Input:     "0.4.1",
			OutputVer: &version.Version{Release: []int{0, 4, 1}},
		},
		"two-component": {
			Input:     "0.9",
			OutputVer: &version.Version{Release: []int{0, 9}},
		},
		"pre": {
			Input:     "1.0rc2",
			OutputVer: &version.Version{Release: []int{1, 0}, Pre: &version.PreRelease{L: "rc", N: 2}},
		},
		"pre-normalize": {
			Input:     "1.0-preview.2",
			OutputVer: &version.Version{Release: []int{1, 0}, Pre: &version.PreRelease{L: "rc", N: 2}},
			OutputStr: "1.0rc2",
		},
		"alpha-normalize": {
			Input:     "1.0alpha1",
			OutputVer: &version.Version{Release: []int{1, 0}, Pre: &version.PreRelease{L: "a", N: 1}},
			OutputStr: "1.0a1",
		},
		"dev": {
			Input:     "0.1.dev0",
			OutputVer: &version.Version{Release: []int{0, 1}, Dev: intPtr(0)},
		},
		"dev-bare": {
			Input:     "0.1.dev",
			OutputVer: &version.Version{Release: []int{0, 1}, Dev: intPtr(0)},
			OutputStr: "0.1.dev0",
		},
		"post": {
			Input:     "2.0.post1",
			OutputVer: &version.Version{Release: []int{2, 0}, Post: intPtr(1)},
		},
		"post-rev": {
			Input:     "2.0rev1",
			OutputVer: &version.Version{Release: []int{2, 0}, Post: intPtr(1)},
			OutputStr: "2.0.post1",
		},
		"post-implicit": {
			Input:     "2.0-1",
			OutputVer: &version.Version{Release: []int{2, 0}, Post: intPtr(1)},
			OutputStr: "2.0.post1",
		},
		"epoch": {
			Input:     "1!2.0",
			OutputVer: &version.Version{Epoch: 1, Release: []int{2, 0}},
		},
		"v-prefix": {
			Input:     "v1.2.3",
			OutputVer: &version.Version{Release: []int{1, 2, 3}},
			OutputStr: "1.2.3",
		},
		"whitespace": {
			Input:     "  1.0 ",
			OutputVer: &version.Version{Release: []int{1, 0}},
			OutputStr: "1.0",
		},
		"err-empty": {
			Input:        "",
			OutputErrStr: `version.Parse: invalid version: ""`,
		},
		"err-words": {
			Input:        "unreleased",
			OutputErrStr: `version.Parse: invalid version: "unreleased"`,
		},
		"err-trailing": {
			Input:        "1.0.x",
			OutputErrStr: `version.Parse: invalid version: "1.0.x"`,
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ver, err := version.Parse(tcData.Input)
			if tcData.OutputErrStr != "" {
				assert.EqualError(t, err, tcData.OutputErrStr)
				assert.Nil(t, ver)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, ver)
			assert.Equal(t, tcData.OutputVer, ver)
			expStr := tcData.OutputStr
			if expStr == "" {
				expStr = tcData.Input
			}
			assert.Equal(t, expStr, ver.String())
		})
	}
}

func TestSort(t *testing.T) {
	t.Parallel()
	testcases := map[string][]string{
		"final-releases": {
			"0.9",
			"0.9.1",
			"0.9.2",
			"0.9.10",
			"1.0",
			"1.0.1",
			"1.1",
			"2.0",
		},
		"pre-releases": {
			"4.3a2",
			"4.3b2",
			"4.3rc2",
			"4.3",
		},
		"suffix-ordering": {
			"1.0.dev456",
			"1.0a1",
			"1.0a2.dev456",
			"1.0a12.dev456",
			"1.0a12",
			"1.0b1.dev456",
			"1.0b2",
			"1.0b2.post345.dev456",
			"1.0b2.post345",
			"1.0rc1.dev456",
			"1.0rc1",
			"1.0",
			"1.0+abc.5",
			"1.0+abc.7",
			"1.0+5",
			"1.0.post456.dev34",
			"1.0.post456",
			"1.1.dev1",
		},
		"epochs": {
			"2013.10",
			"2014.4",
			"1!1.0",
			"1!1.1",
			"1!2.0",
		},
	}
	for tcName, exp := range testcases {
		exp := exp
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			vers := make([]version.Version, len(exp))
			for i, str := range exp {
				vers[i] = mustParse(t, str)
			}
			rand.New(rand.NewSource(time.Now().UnixNano())).Shuffle(len(vers), func(i, j int) {
				vers[i], vers[j] = vers[j], vers[i]
			})
			version.Sort(vers)
			act := make([]string, len(vers))
			for i, ver := range vers {
				act[i] = ver.String()
			}
			assert.Equal(t, exp, act)
		})
	}
}

func TestCmpEqual(t *testing.T) {
	t.Parallel()
	pairs := [][2]string{
		{"1.0", "v1.0"},
		{"1.0", "1.0.0"},
		{"1.0rc1", "1.0c1"},
		{"1.0.post0", "1.0post"},
	}
	for _, pair := range pairs {
		a := mustParse(t, pair[0])
		b := mustParse(t, pair[1])
		assert.Zerof(t, a.Cmp(b), "Cmp(%q, %q)", pair[0], pair[1])
	}
}

func TestIsFinal(t *testing.T) {
	t.Parallel()
	assert.True(t, mustParse(t, "1.0").IsFinal())
	assert.False(t, mustParse(t, "1.0rc1").IsFinal())
	assert.False(t, mustParse(t, "1.0.dev1").IsFinal())
	assert.False(t, mustParse(t, "1.0.post1").IsFinal())
	assert.False(t, mustParse(t, "1.0+local").IsFinal())
}

func TestParseStringRoundTrip(t *testing.T) {
	t.Parallel()
	testutil.QuickCheck(t, func(major, minor, micro uint8) bool {
		in := version.Version{Release: []int{int(major), int(minor), int(micro)}}
		out, err := version.Parse(in.String())
		return err == nil && out.Cmp(in) == 0 && out.String() == in.String()
	}, testutil.QuickConfig{MaxCount: 200})
}

func TestSortStable(t *testing.T) {
	t.Parallel()
	vers := []version.Version{
		mustParse(t, "1.0.0"),
		mustParse(t, "1.0"),
	}
	version.Sort(vers)
	require.Len(t, vers, 2)
	assert.Equal(t, "1.0.0", vers[0].String())
	assert.Equal(t, "1.0", vers[1].String())
	assert.True(t, sort.SliceIsSorted(vers, func(i, j int) bool {
		return vers[i].Cmp(vers[j]) < 0
	}))
}
