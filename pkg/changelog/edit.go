// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package changelog

import (
	"fmt"

	"github.com/datawire/chlog/pkg/version"
)

// Add appends an entry to the unreleased section, creating that section (as the newest
// section, with a bumped placeholder version) if the changelog doesn't have one yet.
func (cl *Changelog) Add(text string) {
	rel := cl.Unreleased()
	if rel == nil {
		cl.Releases = append([]Release{{
			RawVersion: cl.nextVersion().String(),
			Unreleased: true,
		}}, cl.Releases...)
		rel = &cl.Releases[0]
		if ver, err := version.Parse(rel.RawVersion); err == nil {
			rel.Version = ver
		}
	}
	rel.Entries = append(rel.Entries, Entry{
		Text:    text,
		Refs:    scanRefs(text),
		Credits: scanCredits(text),
	})
}

// nextVersion guesses a placeholder version for a fresh unreleased section: the newest
// release's version with its last release segment bumped, or 0.1 for an empty
// changelog.
func (cl *Changelog) nextVersion() version.Version {
	latest := cl.Latest()
	if latest == nil || latest.Version == nil {
		return version.Version{Release: []int{0, 1}}
	}
	next := version.Version{
		Epoch:   latest.Version.Epoch,
		Release: append([]int(nil), latest.Version.Release...),
	}
	next.Release[len(next.Release)-1]++
	return next
}

// Cut promotes the unreleased section to a released one with the given version and
// date.  The section must exist and have entries, and ver must sort above every
// existing release.
func (cl *Changelog) Cut(ver version.Version, date string) error {
	rel := cl.Unreleased()
	if rel == nil {
		return fmt.Errorf("changelog: no unreleased section to cut")
	}
	if len(rel.Entries) == 0 {
		return fmt.Errorf("changelog: refusing to cut a release with no entries")
	}
	if latest := cl.Latest(); latest != nil && latest.Version != nil && ver.Cmp(*latest.Version) <= 0 {
		return fmt.Errorf("changelog: version %s does not sort above newest release %s",
			ver.String(), latest.Version.String())
	}
	verCopy := ver
	rel.Version = &verCopy
	rel.RawVersion = ver.String()
	rel.Unreleased = false
	rel.Date = date
	return nil
}

// Merge folds the releases and link targets of other into cl.  Releases present in both
// must have identical entries; link targets present in both must agree on the URL.
// Releases only present in other are inserted in version order.
func (cl *Changelog) Merge(other *Changelog) error {
	for _, rel := range other.Releases {
		if rel.Version == nil {
			return fmt.Errorf("changelog: cannot merge section %q: unparsable version", rel.Header())
		}
		switch existing := cl.Find(*rel.Version); {
		case existing == nil:
			cl.insert(rel)
		case !sameEntries(existing.Entries, rel.Entries):
			return fmt.Errorf("changelog: conflicting entries for version %s", rel.Version.String())
		case existing.Unreleased != rel.Unreleased || existing.Date != rel.Date:
			return fmt.Errorf("changelog: conflicting headers for version %s: %q vs %q",
				rel.Version.String(), existing.Header(), rel.Header())
		}
	}
	for _, link := range other.Links {
		switch existing := cl.FindLink(link.Name); {
		case existing == nil:
			cl.Links = append(cl.Links, link)
		case existing.URL != link.URL:
			return fmt.Errorf("changelog: conflicting link target %q: %q vs %q",
				link.Name, existing.URL, link.URL)
		}
	}
	return nil
}

// insert adds a release section, keeping the newest-first ordering.  Sections with
// unparsable versions are assumed to already be in order and are not crossed.
func (cl *Changelog) insert(rel Release) {
	at := len(cl.Releases)
	for i := range cl.Releases {
		if cl.Releases[i].Version != nil && cl.Releases[i].Version.Cmp(*rel.Version) < 0 {
			at = i
			break
		}
	}
	cl.Releases = append(cl.Releases, Release{})
	copy(cl.Releases[at+1:], cl.Releases[at:])
	cl.Releases[at] = rel
}

func sameEntries(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}
