// Package query implements the boolean file-name queries used to put
// LIE tables into groups.
//
// A query has three clauses: required terms, which must all appear in a
// file name; alternative groups, each of which must have at least one of
// its terms in the name; and excluded terms, none of which may appear.
// Matching is case-insensitive and by substring, so a short term like
// "104" also matches "1104". Choosing terms that don't overlap is up to
// the user.
package query

import (
	"regexp"
	"strconv"
	"strings"
)

// Config is a named query.
type Config struct {
	Name         string     `yaml:"name"`
	Required     []string   `yaml:"and,omitempty"`
	Alternatives [][]string `yaml:"or_groups,omitempty"`
	Excluded     []string   `yaml:"not,omitempty"`
}

// Matches returns true if filename contains every required term, at least
// one term of each alternative group and none of the excluded terms. A
// group with no terms can never be satisfied.
func (C Config) Matches(filename string) bool {
	name := strings.ToLower(filename)
	has := func(t string) bool { return strings.Contains(name, strings.ToLower(t)) }
	for _, t := range C.Required {
		if !has(t) {
			return false
		}
	}
	for _, g := range C.Alternatives {
		ok := false
		for _, t := range g {
			if has(t) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, t := range C.Excluded {
		if has(t) {
			return false
		}
	}
	return true
}

// Matches is the function form of Config.Matches.
func Matches(filename string, C Config) bool {
	return C.Matches(filename)
}

// Filter returns, in their original order, the names for which
// C.Matches is true.
func Filter(names []string, C Config) []string {
	ret := make([]string, 0, len(names))
	for _, v := range names {
		if C.Matches(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// Terms from each long list that make it to a label.
const labelTerms = 2

// EmptyLabel is the label of a query with no terms at all.
const EmptyLabel = "Empty_Query"

var unsafe = regexp.MustCompile(`[^\w\-]`)

// short joins the first labelTerms elements of terms with '_', adding
// "_etc" if some were left out.
func short(terms []string) string {
	if len(terms) <= labelTerms {
		return strings.Join(terms, "_")
	}
	return strings.Join(terms[:labelTerms], "_") + "_etc"
}

// Label returns a name for the query that can be used as a file name. It
// depends only on the clauses of the query (not on its Name or on the files
// it matches): AND-<required>, then OR<n>-<terms> for each alternative
// group, then NOT-<excluded>, joined by '_'. Alternative groups and the
// excluded list are cut to their first two terms. Every character other
// than ASCII letters, digits, '_' and '-' is replaced by '_'.
func (C Config) Label() string {
	parts := make([]string, 0, 3)
	if len(C.Required) > 0 {
		parts = append(parts, "AND-"+strings.Join(C.Required, "_"))
	}
	if len(C.Alternatives) > 0 {
		ors := make([]string, 0, len(C.Alternatives))
		for i, g := range C.Alternatives {
			ors = append(ors, "OR"+strconv.Itoa(i+1)+"-"+short(g))
		}
		parts = append(parts, strings.Join(ors, "_"))
	}
	if len(C.Excluded) > 0 {
		parts = append(parts, "NOT-"+short(C.Excluded))
	}
	label := unsafe.ReplaceAllString(strings.Join(parts, "_"), "_")
	if label == "" {
		return EmptyLabel
	}
	return label
}

// Criteria returns a human-readable form of the clauses, as written in
// the header of aggregated tables:
//
//	AND: (HW) | OR GROUPS: (_FE_ OR _FEGA_) AND (104 OR 844) | NOT: ()
func (C Config) Criteria() string {
	ors := make([]string, 0, len(C.Alternatives))
	for _, g := range C.Alternatives {
		ors = append(ors, "("+strings.Join(g, " OR ")+")")
	}
	return "AND: (" + strings.Join(C.Required, ", ") + ") | OR GROUPS: " + strings.Join(ors, " AND ") + " | NOT: (" + strings.Join(C.Excluded, ", ") + ")"
}
