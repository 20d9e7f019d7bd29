// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"sort"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// Cmp returns a number < 0 if version 'a' is less than version 'b', > 0 if 'a' is greater
// than 'b', or 0 if they are equal.  This is similar to the C-language strcmp.
func (a Version) Cmp(b Version) int {
	if d := a.Epoch - b.Epoch; d != 0 {
		return d
	}
	if d := cmpRelease(a, b); d != 0 {
		return d
	}
	// Within one release segment the order is
	//
	//     .devN < aN < bN < rcN < (final) < .postN
	//
	// with a .devN suffix sorting a version just below its suffix-less spelling.
	aRank, aN := a.preKey()
	bRank, bN := b.preKey()
	if d := aRank - bRank; d != 0 {
		return d
	}
	if d := aN - bN; d != 0 {
		return d
	}
	if d := cmpOptional(a.Post, b.Post, -1); d != 0 {
		return d
	}
	if d := cmpOptional(a.Dev, b.Dev, +1); d != 0 {
		return d
	}
	return cmpLocal(a, b)
}

func cmpRelease(a, b Version) int {
	for i := 0; i < len(a.Release) || i < len(b.Release); i++ {
		if d := a.releaseSegment(i) - b.releaseSegment(i); d != 0 {
			return d
		}
	}
	return 0
}

var preRanks = map[string]int{"a": 1, "b": 2, "rc": 3}

// preKey assigns the pre-release segment a sortable (rank, n) pair.  A bare ".devN"
// version (no pre or post segment) ranks below every pre-release; a version with no pre
// segment at all ranks above every pre-release.
func (ver Version) preKey() (rank, n int) {
	switch {
	case ver.Pre != nil:
		return preRanks[ver.Pre.L], ver.Pre.N
	case ver.Post == nil && ver.Dev != nil:
		return 0, 0
	default:
		return len(preRanks) + 1, 0
	}
}

// cmpOptional compares optional numeric segments, with a nil segment taking the value
// nilSign*infinity: nil post-releases sort low, nil dev-releases sort high.
func cmpOptional(a, b *int, nilSign int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return nilSign
	case b == nil:
		return -nilSign
	default:
		return *a - *b
	}
}

func cmpLocal(a, b Version) int {
	for i := 0; i < len(a.Local) || i < len(b.Local); i++ {
		var aSeg, bSeg *intstr.IntOrString
		if i < len(a.Local) {
			aSeg = &(a.Local[i])
		}
		if i < len(b.Local) {
			bSeg = &(b.Local[i])
		}
		if d := cmpLocalSegment(aSeg, bSeg); d != 0 {
			return d
		}
	}
	return 0
}

func cmpLocalSegment(a, b *intstr.IntOrString) int {
	switch {
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Type == intstr.Int && b.Type == intstr.Int:
		return int(a.IntVal - b.IntVal)
	case a.Type == intstr.String && b.Type == intstr.String:
		return cmpString(a.StrVal, b.StrVal)
	case a.Type == intstr.Int:
		// numeric segments sort above alphanumeric ones
		return 1
	default:
		return -1
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Sort sorts a list of versions in ascending order.
func Sort(vers []Version) {
	sort.SliceStable(vers, func(i, j int) bool {
		return vers[i].Cmp(vers[j]) < 0
	})
}
