// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"strings"
)

// Specifier is a comma-separated list of version clauses, such as ">=0.4,<1.0".  A
// version matches the specifier if it matches every clause.
type Specifier []SpecifierClause

// SpecifierClause is a single comparison against a version.
type SpecifierClause struct {
	CmpOp   CmpOp
	Version Version
}

type CmpOp int

const (
	CmpOpLT CmpOp = iota
	CmpOpGT
	CmpOpLE
	CmpOpGE
	CmpOpEQ
	CmpOpNE
)

func (op CmpOp) String() string {
	str, ok := map[CmpOp]string{
		CmpOpLT: "<",
		CmpOpGT: ">",
		CmpOpLE: "<=",
		CmpOpGE: ">=",
		CmpOpEQ: "==",
		CmpOpNE: "!=",
	}[op]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", op))
	}
	return str
}

// ParseSpecifier parses a comma-separated list of clauses; a clause with no operator
// means "==".
func ParseSpecifier(str string) (Specifier, error) {
	clauseStrs := strings.FieldsFunc(str, func(r rune) bool { return r == ',' })
	ret := make(Specifier, 0, len(clauseStrs))
	for _, clauseStr := range clauseStrs {
		clause, err := parseSpecifierClause(clauseStr)
		if err != nil {
			return nil, fmt.Errorf("version.ParseSpecifier: %w", err)
		}
		ret = append(ret, clause)
	}
	return ret, nil
}

func parseSpecifierClause(str string) (SpecifierClause, error) {
	var ret SpecifierClause
	str = strings.TrimSpace(str)
	switch {
	case strings.HasPrefix(str, "<="):
		ret.CmpOp = CmpOpLE
		str = str[2:]
	case strings.HasPrefix(str, ">="):
		ret.CmpOp = CmpOpGE
		str = str[2:]
	case strings.HasPrefix(str, "=="):
		ret.CmpOp = CmpOpEQ
		str = str[2:]
	case strings.HasPrefix(str, "!="):
		ret.CmpOp = CmpOpNE
		str = str[2:]
	case strings.HasPrefix(str, "<"):
		ret.CmpOp = CmpOpLT
		str = str[1:]
	case strings.HasPrefix(str, ">"):
		ret.CmpOp = CmpOpGT
		str = str[1:]
	default:
		ret.CmpOp = CmpOpEQ
	}
	ver, err := Parse(str)
	if err != nil {
		return ret, err
	}
	ret.Version = *ver
	return ret, nil
}

// Match reports whether ver satisfies every clause of the specifier.
func (spec Specifier) Match(ver Version) bool {
	for _, clause := range spec {
		if !clause.Match(ver) {
			return false
		}
	}
	return true
}

func (spec SpecifierClause) Match(ver Version) bool {
	switch spec.CmpOp {
	case CmpOpLT:
		// "<V" does not match pre-releases of V itself.
		if ver.IsPrerelease() && sameRelease(ver, spec.Version) && spec.Version.IsFinal() {
			return false
		}
		return ver.Cmp(spec.Version) < 0
	case CmpOpGT:
		// ">V" does not match post-releases of V itself.
		if ver.Post != nil && sameRelease(ver, spec.Version) && spec.Version.IsFinal() {
			return false
		}
		return ver.Cmp(spec.Version) > 0
	case CmpOpLE:
		return ver.Cmp(spec.Version) <= 0
	case CmpOpGE:
		return ver.Cmp(spec.Version) >= 0
	case CmpOpEQ:
		return ver.Cmp(spec.Version) == 0
	case CmpOpNE:
		return ver.Cmp(spec.Version) != 0
	default:
		panic(fmt.Errorf("invalid CmpOp: %d", spec.CmpOp))
	}
}

func sameRelease(a, b Version) bool {
	return a.Epoch == b.Epoch && cmpRelease(a, b) == 0
}
