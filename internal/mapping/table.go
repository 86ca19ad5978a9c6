// Package mapping holds the ordered prefix→tag rule table used to classify
// transaction descriptions.
//
// Lookup is first-match-wins in insertion order, so operators express
// priority by ordering their rule file. The table is never re-sorted.
package mapping

import (
	"strings"
)

// DefaultSeparator splits a text rule line into prefix and tag.
const DefaultSeparator = "|||||"

// Rule maps a description prefix to a tag.
type Rule struct {
	Prefix string `yaml:"prefix" csv:"prefix"`
	Tag    string `yaml:"tag" csv:"tag"`
}

// Table is an immutable, ordered set of rules.
type Table struct {
	rules []Rule
	upper []string // upper-cased prefixes, same index as rules
}

// NewTable builds a table that keeps rules in the given order.
func NewTable(rules []Rule) *Table {
	t := &Table{
		rules: make([]Rule, len(rules)),
		upper: make([]string, len(rules)),
	}
	copy(t.rules, rules)
	for i, r := range rules {
		t.upper[i] = strings.ToUpper(r.Prefix)
	}
	return t
}

// FindTag returns the tag of the first rule whose prefix starts description,
// ignoring case. A nil table matches nothing.
func (t *Table) FindTag(description string) (string, bool) {
	if t == nil {
		return "", false
	}
	desc := strings.ToUpper(description)
	for i, prefix := range t.upper {
		if strings.HasPrefix(desc, prefix) {
			return t.rules[i].Tag, true
		}
	}
	return "", false
}

// Len is the number of rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Rules returns a copy of the rules in lookup order.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Shadow describes a rule that can never match because an earlier rule's
// prefix already covers it.
type Shadow struct {
	Index   int // position of the unreachable rule
	Rule    Rule
	ByIndex int // position of the earlier rule that wins
	ByRule  Rule
}

// Shadowed lists unreachable rules. The check is quadratic, which is fine
// for rule files in the hundreds.
func (t *Table) Shadowed() []Shadow {
	if t == nil {
		return nil
	}
	var out []Shadow
	for i := range t.upper {
		for j := 0; j < i; j++ {
			if strings.HasPrefix(t.upper[i], t.upper[j]) {
				out = append(out, Shadow{
					Index:   i,
					Rule:    t.rules[i],
					ByIndex: j,
					ByRule:  t.rules[j],
				})
				break
			}
		}
	}
	return out
}
