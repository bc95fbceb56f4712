// Package check evaluates a rule set against a flat collection of model
// objects, partitioning the objects each rule filters into pass/fail sets.
//
// Per rule group: the first row is the filter ("WHERE") selecting candidate
// objects; the remaining rows are AND'd conditions a candidate must all
// satisfy to pass. Objects the filter does not select are not subject to
// the rule at all; they appear in neither partition.
package check

import (
	"fmt"

	"modelcheck/internal/node"
	"modelcheck/internal/rules"
	"modelcheck/internal/ruleset"
)

// Checker evaluates rule sets. The zero value is the defensive checker:
// evaluation errors from a single predicate (a non-numeric parameter under
// a numeric predicate, an unparsable threshold) are recorded as Issues and
// the condition treated as not met. Strict propagates the first such error
// instead.
type Checker struct {
	Strict bool

	// Fuzzy switches "is like" from anchored-regex to edit-distance
	// matching with FuzzyThreshold (DefaultFuzzyThreshold when zero).
	Fuzzy          bool
	FuzzyThreshold float64

	// Skip, when non-nil, suppresses whole rule groups (e.g. rules
	// disabled in settings). Skipped groups are recorded, not evaluated.
	Skip func(ruleID string) bool
}

func (c *Checker) threshold() float64 {
	if c.FuzzyThreshold > 0 {
		return c.FuzzyThreshold
	}
	return rules.DefaultFuzzyThreshold
}

// EvaluateCondition evaluates a single rule row against a single object.
func (c *Checker) EvaluateCondition(obj *node.Object, row ruleset.Row) (bool, error) {
	switch row.Kind {
	case ruleset.KindExists:
		return rules.Exists(obj, row.Property), nil
	case ruleset.KindEquals:
		return rules.Equals(obj, row.Property, row.Value), nil
	case ruleset.KindGreaterThan:
		return rules.GreaterThan(obj, row.Property, row.Value)
	case ruleset.KindLessThan:
		return rules.LessThan(obj, row.Property, row.Value)
	case ruleset.KindInRange:
		return rules.InRange(obj, row.Property, row.Value)
	case ruleset.KindInList:
		return rules.InList(obj, row.Property, row.Value), nil
	case ruleset.KindIsTrue:
		return rules.IsTrue(obj, row.Property), nil
	case ruleset.KindIsFalse:
		return rules.IsFalse(obj, row.Property), nil
	case ruleset.KindIsLike:
		return rules.IsLike(obj, row.Property, row.Value, c.Fuzzy, c.threshold())
	default:
		return false, fmt.Errorf("unhandled predicate kind %v", row.Kind)
	}
}

// Issue records one recovered evaluation error in defensive mode.
type Issue struct {
	RuleID   string
	ObjectID string
	Property string
	Err      error
}

// RuleResult is one rule's partition of the candidate objects.
type RuleResult struct {
	RuleID     string
	Message    string
	Severity   ruleset.Severity
	Candidates int
	Passed     []*node.Object
	Failed     []*node.Object
	Issues     []Issue
}

// SkippedRule records a rule group that was not evaluated and why.
type SkippedRule struct {
	RuleID string
	Reason string
}

// RunResult aggregates one evaluation pass over all rule groups.
type RunResult struct {
	Results []RuleResult
	Skipped []SkippedRule
}

// ErrorFailures counts rules that failed objects at error severity. A
// non-zero count is what callers typically treat as overall run failure.
func (r *RunResult) ErrorFailures() int {
	n := 0
	for _, res := range r.Results {
		if len(res.Failed) > 0 && res.Severity == ruleset.SeverityError {
			n++
		}
	}
	return n
}

// EvaluateRule applies one rule group to the object collection: filter,
// then conjunctive conditions over the candidates. In defensive mode the
// returned error is always nil.
func (c *Checker) EvaluateRule(objs []*node.Object, rule ruleset.Rule) (RuleResult, error) {
	res := RuleResult{
		RuleID:   rule.ID,
		Message:  rule.Message(),
		Severity: rule.ReportSeverity(),
	}

	filter := rule.Filter()
	var candidates []*node.Object
	for _, obj := range objs {
		ok, err := c.EvaluateCondition(obj, filter)
		if err != nil {
			if c.Strict {
				return res, fmt.Errorf("rule %s filter %q: %w", rule.ID, filter.Property, err)
			}
			res.Issues = append(res.Issues, Issue{
				RuleID: rule.ID, ObjectID: obj.ID, Property: filter.Property, Err: err,
			})
			continue
		}
		if ok {
			candidates = append(candidates, obj)
		}
	}
	res.Candidates = len(candidates)

	for _, obj := range candidates {
		passed := true
		for _, cond := range rule.Conditions() {
			ok, err := c.EvaluateCondition(obj, cond)
			if err != nil {
				if c.Strict {
					return res, fmt.Errorf("rule %s condition %q: %w", rule.ID, cond.Property, err)
				}
				res.Issues = append(res.Issues, Issue{
					RuleID: rule.ID, ObjectID: obj.ID, Property: cond.Property, Err: err,
				})
				ok = false
			}
			if !ok {
				passed = false
				break
			}
		}
		if passed {
			res.Passed = append(res.Passed, obj)
		} else {
			res.Failed = append(res.Failed, obj)
		}
	}
	return res, nil
}

// Run evaluates every rule group in the set, in group order. Groups whose
// source carried no reporting metadata are skipped and recorded rather
// than failing the run; in defensive mode individual evaluation errors
// never abort the batch.
func (c *Checker) Run(objs []*node.Object, set *ruleset.Set) (*RunResult, error) {
	run := &RunResult{}
	for _, rule := range set.Grouped() {
		if !set.HasMetadata {
			run.Skipped = append(run.Skipped, SkippedRule{
				RuleID: rule.ID,
				Reason: "rule source has no Message / Report Severity columns",
			})
			continue
		}
		if c.Skip != nil && c.Skip(rule.ID) {
			run.Skipped = append(run.Skipped, SkippedRule{
				RuleID: rule.ID,
				Reason: "disabled in settings",
			})
			continue
		}
		res, err := c.EvaluateRule(objs, rule)
		if err != nil {
			return nil, err
		}
		run.Results = append(run.Results, res)
	}
	return run, nil
}
