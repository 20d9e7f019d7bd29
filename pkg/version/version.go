// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package version implements the public version scheme that changelog files in the
// CHANGES.txt convention use for their section headers:
//
//	[N!]N(.N)*[{a|b|rc}N][.postN][.devN][+local]
//
// Parsing is permissive and normalizing (accepts the usual spelling variants such as
// "alpha", "preview", "rev", a leading "v", and "-"/"_" separators); String always emits
// the canonical spelling.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// Version is a parsed public version identifier.
type Version struct {
	// Epoch segment: "N!"
	Epoch int
	// Release segment: "N(.N)*"
	Release []int
	// Pre-release segment: "{a|b|rc}N"
	Pre *PreRelease
	// Post-release segment: ".postN"
	Post *int
	// Development release segment: ".devN"
	Dev *int
	// Local segment: "+foo.N"; numeric parts compare numerically, and greater than
	// alphanumeric parts.
	Local []intstr.IntOrString
}

// PreRelease is the "{a|b|rc}N" segment of a Version.
type PreRelease struct {
	L string
	N int
}

//nolint:lll // regexps don't wrap well
var reVersion = regexp.MustCompile(`(?i)^v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?P<pre>[-_.]?(?P<pre_l>a|b|c|rc|alpha|beta|pre|preview)[-_.]?(?P<pre_n>[0-9]+)?)?` +
	`(?:-(?P<post_n1>[0-9]+)|(?P<post>[-_.]?(?P<post_l>post|rev|r)[-_.]?(?P<post_n2>[0-9]+)?))?` +
	`(?P<dev>[-_.]?dev[-_.]?(?P<dev_n>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?` +
	`$`)

var preSpellings = map[string]string{
	"a": "a", "alpha": "a",
	"b": "b", "beta": "b",
	"rc": "rc", "c": "rc", "pre": "rc", "preview": "rc",
}

// Parse parses a string to a Version, performing normalization.
func Parse(str string) (*Version, error) {
	match := reVersion.FindStringSubmatch(strings.TrimSpace(str))
	if match == nil {
		return nil, fmt.Errorf("version.Parse: invalid version: %q", str)
	}
	group := func(name string) string {
		return match[reVersion.SubexpIndex(name)]
	}

	var ver Version
	if epoch := group("epoch"); epoch != "" {
		n, err := strconv.Atoi(epoch)
		if err != nil {
			return nil, err
		}
		ver.Epoch = n
	}
	for _, segStr := range strings.Split(group("release"), ".") {
		seg, err := strconv.Atoi(segStr)
		if err != nil {
			return nil, err
		}
		ver.Release = append(ver.Release, seg)
	}
	if group("pre") != "" {
		ver.Pre = &PreRelease{
			L: preSpellings[strings.ToLower(group("pre_l"))],
			N: atoiOrZero(group("pre_n")),
		}
	}
	if group("post") != "" || group("post_n1") != "" {
		n := atoiOrZero(group("post_n1") + group("post_n2"))
		ver.Post = &n
	}
	if group("dev") != "" {
		n := atoiOrZero(group("dev_n"))
		ver.Dev = &n
	}
	if local := group("local"); local != "" {
		for _, part := range strings.FieldsFunc(local, isSep) {
			ver.Local = append(ver.Local, intstr.Parse(strings.ToLower(part)))
		}
	}
	return &ver, nil
}

func isSep(r rune) bool {
	return strings.ContainsRune("-_.", r)
}

func atoiOrZero(str string) int {
	if str == "" {
		return 0
	}
	n, _ := strconv.Atoi(str)
	return n
}

// String implements fmt.Stringer, emitting the canonical spelling.
func (ver Version) String() string {
	var ret strings.Builder
	if ver.Epoch > 0 {
		fmt.Fprintf(&ret, "%d!", ver.Epoch)
	}
	if len(ver.Release) == 0 {
		panic("invalid version: no release segments")
	}
	fmt.Fprintf(&ret, "%d", ver.Release[0])
	for _, seg := range ver.Release[1:] {
		fmt.Fprintf(&ret, ".%d", seg)
	}
	if ver.Pre != nil {
		fmt.Fprintf(&ret, "%s%d", ver.Pre.L, ver.Pre.N)
	}
	if ver.Post != nil {
		fmt.Fprintf(&ret, ".post%d", *ver.Post)
	}
	if ver.Dev != nil {
		fmt.Fprintf(&ret, ".dev%d", *ver.Dev)
	}
	sep := "+"
	for _, local := range ver.Local {
		ret.WriteString(sep)
		ret.WriteString(local.String())
		sep = "."
	}
	return ret.String()
}

// GoString implements fmt.GoStringer.
func (ver Version) GoString() string {
	pre := "nil"
	if ver.Pre != nil {
		pre = fmt.Sprintf("&%#v", *ver.Pre)
	}
	post := "nil"
	if ver.Post != nil {
		post = fmt.Sprintf("intPtr(%#v)", *ver.Post)
	}
	dev := "nil"
	if ver.Dev != nil {
		dev = fmt.Sprintf("intPtr(%#v)", *ver.Dev)
	}
	return fmt.Sprintf("version.Version{Epoch:%d, Release:%#v, Pre:%s, Post:%s, Dev:%s, Local:%#v}",
		ver.Epoch, ver.Release, pre, post, dev, ver.Local)
}

// IsFinal reports whether ver is a final release: no pre-release, post-release, dev, or
// local segments.
func (ver Version) IsFinal() bool {
	return ver.Pre == nil && ver.Post == nil && ver.Dev == nil && len(ver.Local) == 0
}

// IsPrerelease reports whether ver sorts before the final release with the same release
// segment.
func (ver Version) IsPrerelease() bool {
	return ver.Pre != nil || ver.Dev != nil
}

func (ver Version) releaseSegment(n int) int {
	if n < len(ver.Release) {
		return ver.Release[n]
	}
	return 0
}

func (ver Version) Major() int { return ver.releaseSegment(0) }
func (ver Version) Minor() int { return ver.releaseSegment(1) }
func (ver Version) Micro() int { return ver.releaseSegment(2) }
