// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand

import (
	"net/url"
	"strings"
)

// QueryParam is the URL query key that carries the brand filter.
const QueryParam = "brand"

// UnassignedValue is the reserved filter value for templates without a brand.
const UnassignedValue = "unassigned"

// Kind discriminates the three filter states.
type Kind uint8

const (
	// KindAll applies no brand predicate.
	KindAll Kind = iota
	// KindUnassigned keeps only templates without a brand.
	KindUnassigned
	// KindSpecific keeps only templates of one brand, named by slug.
	KindSpecific
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case KindUnassigned:
		return "unassigned"
	case KindSpecific:
		return "specific"
	default:
		return "all"
	}
}

/*
Selection is the brand filter state.

The zero value is "all brands". Values are only built through [All],
[Unassigned], [Specific] or [Decode], all of which canonicalise, so two
selections that mean the same filter compare equal with ==.

Invariants:
  - A specific selection always carries a non-empty, trimmed, lowercase slug.
  - A specific selection never carries the reserved "unassigned" value.
*/
type Selection struct {
	kind Kind
	slug string
}

// All returns the selection that applies no brand predicate.
func All() Selection {
	return Selection{}
}

// Unassigned returns the selection for templates without a brand.
func Unassigned() Selection {
	return Selection{kind: KindUnassigned}
}

// Specific returns the selection for one brand slug.
//
// The slug is canonicalised first: a blank slug yields [All] and the
// reserved word yields [Unassigned].
func Specific(slug string) Selection {
	return parse(slug)
}

// Kind reports which filter state s is.
func (s Selection) Kind() Kind { return s.kind }

// Slug returns the brand slug of a specific selection, or "".
func (s Selection) Slug() string { return s.slug }

// IsAll reports whether s applies no brand predicate.
func (s Selection) IsAll() bool { return s.kind == KindAll }

// QueryValue is the value written to the URL, or "" when the key is omitted.
func (s Selection) QueryValue() string {
	switch s.kind {
	case KindUnassigned:
		return UnassignedValue
	case KindSpecific:
		return s.slug
	default:
		return ""
	}
}

// String implements [fmt.Stringer] for logs.
func (s Selection) String() string {
	if s.kind == KindAll {
		return "all"
	}
	return s.QueryValue()
}

// # Codec

/*
Encode writes s into values under [QueryParam].

All removes the key; every other state sets it. Keys other than
[QueryParam] are left untouched.
*/
func Encode(s Selection, values url.Values) {
	if s.kind == KindAll {
		values.Del(QueryParam)
		return
	}
	values.Set(QueryParam, s.QueryValue())
}

/*
Decode reads the brand filter from values.

A missing, empty or whitespace-only value decodes to [All]. Otherwise the
value is trimmed and lowercased; the reserved word decodes to [Unassigned]
and anything else to a specific slug. Decode never fails; an unknown slug is
resolved later and matches nothing.
*/
func Decode(values url.Values) Selection {
	return parse(values.Get(QueryParam))
}

// Canonicalize trims and lowercases a raw slug.
func Canonicalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func parse(raw string) Selection {
	value := Canonicalize(raw)
	switch value {
	case "":
		return All()
	case UnassignedValue:
		return Unassigned()
	default:
		return Selection{kind: KindSpecific, slug: value}
	}
}
