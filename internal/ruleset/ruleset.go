// Package ruleset models the externally supplied rule table: ordered
// condition rows grouped by rule number into a filter ("WHERE") plus
// conjunctive conditions ("AND"), with reporting metadata carried on each
// group's last row.
//
// Predicate keywords are validated against a closed vocabulary when the
// table is loaded, so an unknown predicate fails the load instead of
// surfacing mid-evaluation.
package ruleset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Predicate vocabulary
// ---------------------------------------------------------------------------

// Kind enumerates the closed predicate vocabulary a rule row may use.
type Kind int

const (
	KindExists Kind = iota
	KindEquals
	KindGreaterThan
	KindLessThan
	KindInRange
	KindInList
	KindIsTrue
	KindIsFalse
	KindIsLike
)

// kindNames maps rule-table keywords to kinds. "matches" and "equals" are
// synonyms.
var kindNames = map[string]Kind{
	"exists":       KindExists,
	"matches":      KindEquals,
	"equals":       KindEquals,
	"greater than": KindGreaterThan,
	"less than":    KindLessThan,
	"in range":     KindInRange,
	"in list":      KindInList,
	"true":         KindIsTrue,
	"false":        KindIsFalse,
	"is like":      KindIsLike,
}

// ParseKind maps a rule-table predicate keyword to its Kind.
// Keywords are matched case-insensitively after trimming.
func ParseKind(keyword string) (Kind, error) {
	k, ok := kindNames[strings.ToLower(strings.TrimSpace(keyword))]
	if !ok {
		return 0, fmt.Errorf("unknown predicate %q", keyword)
	}
	return k, nil
}

func (k Kind) String() string {
	switch k {
	case KindExists:
		return "exists"
	case KindEquals:
		return "equals"
	case KindGreaterThan:
		return "greater than"
	case KindLessThan:
		return "less than"
	case KindInRange:
		return "in range"
	case KindInList:
		return "in list"
	case KindIsTrue:
		return "true"
	case KindIsFalse:
		return "false"
	case KindIsLike:
		return "is like"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ---------------------------------------------------------------------------
// Severity
// ---------------------------------------------------------------------------

// Severity classifies a failing rule's report.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// ParseSeverity maps a "Report Severity" cell to a Severity. "warning" and
// "warn" match case-insensitively; anything else, including an empty cell,
// is the stricter error severity.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning", "warn":
		return SeverityWarning
	default:
		return SeverityError
	}
}

// ---------------------------------------------------------------------------
// Rows and rules
// ---------------------------------------------------------------------------

// Row is one condition row of the rule table.
type Row struct {
	RuleNumber string `yaml:"rule_number"`
	Logic      string `yaml:"logic,omitempty"` // "WHERE" | "AND", informational
	Property   string `yaml:"property"`
	Predicate  string `yaml:"predicate"`
	Value      string `yaml:"value,omitempty"`
	Message    string `yaml:"message,omitempty"`
	Severity   string `yaml:"severity,omitempty"`

	// Kind is the parsed predicate keyword, populated at load time.
	Kind Kind `yaml:"-"`
}

// Rule is one rule group: row 0 is the filter, the remainder are
// conjunctive conditions. Reporting metadata is read from the last row of
// the full group (which may be the filter row itself for one-row rules).
type Rule struct {
	ID   string
	Rows []Row
}

// Filter returns the group's "WHERE" row.
func (r Rule) Filter() Row {
	return r.Rows[0]
}

// Conditions returns the group's "AND" rows.
func (r Rule) Conditions() []Row {
	return r.Rows[1:]
}

// Message returns the rule's report message from the last row.
func (r Rule) Message() string {
	return r.Rows[len(r.Rows)-1].Message
}

// ReportSeverity returns the rule's failure severity from the last row.
func (r Rule) ReportSeverity() Severity {
	return ParseSeverity(r.Rows[len(r.Rows)-1].Severity)
}

// Set is a loaded rule table. HasMetadata records whether the source
// carried the Message / Report Severity columns at all; without them no
// rule in the set can be reported and evaluation skips the whole group.
type Set struct {
	Rules       []Row `yaml:"rules"`
	HasMetadata bool  `yaml:"-"`
}

// Grouped partitions the set's rows into Rules. Rows keep their original
// relative order within each group; groups are ordered by rule number,
// numerically where both numbers parse, lexically otherwise.
func (s *Set) Grouped() []Rule {
	byID := make(map[string][]Row)
	var ids []string
	for _, row := range s.Rules {
		id := strings.TrimSpace(row.RuleNumber)
		if id == "" {
			continue
		}
		if _, seen := byID[id]; !seen {
			ids = append(ids, id)
		}
		byID[id] = append(byID[id], row)
	}

	sort.Slice(ids, func(i, j int) bool {
		return lessRuleID(ids[i], ids[j])
	})

	rules := make([]Rule, 0, len(ids))
	for _, id := range ids {
		rules = append(rules, Rule{ID: id, Rows: byID[id]})
	}
	return rules
}

// lessRuleID orders rule numbers numerically when possible.
func lessRuleID(a, b string) bool {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		if na != nb {
			return na < nb
		}
		return a < b
	}
	if errA == nil || errB == nil {
		return errA == nil // numbers sort before words
	}
	return a < b
}

// validate parses every row's predicate keyword, failing the load on the
// first unknown keyword.
func (s *Set) validate() error {
	for i := range s.Rules {
		k, err := ParseKind(s.Rules[i].Predicate)
		if err != nil {
			return fmt.Errorf("rule %s row %d: %w", s.Rules[i].RuleNumber, i, err)
		}
		s.Rules[i].Kind = k
	}
	return nil
}
