// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package changelog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/datawire/chlog/pkg/version"
)

// Problem is a single lint finding.
type Problem struct {
	Line int
	Rule string
	Msg  string
}

func (p Problem) Error() string {
	return fmt.Sprintf("line %d: %s: %s", p.Line, p.Rule, p.Msg)
}

// Rules lists every lint rule, in reporting order.
var Rules = []string{
	"tabs",
	"trailing-space",
	"underline",
	"scheme",
	"unreleased-position",
	"unreleased-date",
	"duplicate-version",
	"order",
	"dates",
	"dangling-ref",
	"unused-link",
}

var reDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Lint checks a changelog document against every enabled rule and returns an aggregate
// of all findings (nil if the document is clean).  It takes the raw file contents
// rather than a parsed Changelog so that whitespace-level rules can see the original
// lines.
func Lint(data []byte, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var problems []error
	report := func(line int, rule, format string, args ...interface{}) {
		if cfg.enabled(rule) {
			problems = append(problems, Problem{Line: line, Rule: rule, Msg: fmt.Sprintf(format, args...)})
		}
	}

	for i, line := range strings.Split(string(data), "\n") {
		if strings.ContainsRune(line, '\t') {
			report(i+1, "tabs", "tab character")
		}
		if line != strings.TrimRight(line, " \t") {
			report(i+1, "trailing-space", "trailing whitespace")
		}
	}

	cl, err := Parse(data)
	if err != nil {
		problems = append(problems, err)
		return utilerrors.NewAggregate(problems)
	}

	for i := range cl.Releases {
		rel := &cl.Releases[i]
		if rel.AdornmentLen != rel.TitleLen {
			report(rel.Line, "underline", "underline is %d characters for a %d-character title",
				rel.AdornmentLen, rel.TitleLen)
		}
		if err := checkScheme(cfg.Scheme, rel.RawVersion); err != nil {
			report(rel.Line, "scheme", "%v", err)
		}
		if rel.Unreleased {
			if i != 0 {
				report(rel.Line, "unreleased-position", "unreleased section is not the newest section")
			}
		} else if rel.Date == "" {
			report(rel.Line, "dates", "section header has no date")
		} else if !reDate.MatchString(rel.Date) {
			report(rel.Line, "dates", "date %q is not YYYY-MM-DD", rel.Date)
		}
		if rel.Unreleased && rel.Date != "" {
			report(rel.Line, "unreleased-date", "unreleased section carries a date")
		}
	}

	lintOrdering(cl, report)
	lintRefs(cl, report)

	return utilerrors.NewAggregate(problems)
}

func checkScheme(scheme, raw string) error {
	switch scheme {
	case "", SchemeDefault:
		_, err := version.Parse(raw)
		return err
	case SchemeSemver:
		_, err := semver.NewVersion(raw)
		if err != nil {
			return fmt.Errorf("semver: invalid version %q: %w", raw, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown version scheme: %q", scheme)
	}
}

func lintOrdering(cl *Changelog, report func(line int, rule, format string, args ...interface{})) {
	var prev *Release
	for i := range cl.Releases {
		rel := &cl.Releases[i]
		if rel.Version != nil {
			for j := range cl.Releases[:i] {
				other := &cl.Releases[j]
				if other.Version != nil && other.Version.Cmp(*rel.Version) == 0 {
					report(rel.Line, "duplicate-version", "version %s already has a section on line %d",
						rel.Version.String(), other.Line)
				}
			}
		}
		if prev != nil {
			if prev.Version != nil && rel.Version != nil && prev.Version.Cmp(*rel.Version) < 0 {
				report(rel.Line, "order", "version %s sorts above the preceding section's %s",
					rel.RawVersion, prev.RawVersion)
			}
			if prev.Date != "" && rel.Date != "" && strings.Compare(prev.Date, rel.Date) < 0 {
				report(rel.Line, "dates", "date %s is newer than the preceding section's %s",
					rel.Date, prev.Date)
			}
		}
		prev = rel
	}
}

func lintRefs(cl *Changelog, report func(line int, rule, format string, args ...interface{})) {
	used := make(map[string]bool)
	for _, rel := range cl.Releases {
		for _, entry := range rel.Entries {
			for _, ref := range entry.Refs {
				used[strings.ToLower(ref)] = true
				if cl.FindLink(ref) == nil {
					report(entry.Line, "dangling-ref", "no link target for reference %q", ref)
				}
			}
		}
	}
	for _, link := range cl.Links {
		if !used[strings.ToLower(link.Name)] {
			report(link.Line, "unused-link", "link target %q is never referenced", link.Name)
		}
	}
}
