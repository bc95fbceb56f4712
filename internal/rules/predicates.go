package rules

// predicates.go — the boolean predicate catalog.
//
// Every predicate resolves its parameter through Value and applies the
// policy "not found means false"; Exists is the one exception, being the
// not-found check itself. Numeric predicates return *InvalidTypeError when
// the parameter resolves to a non-number, and never coerce.

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"modelcheck/internal/node"
)

// DefaultFuzzyThreshold is the similarity ratio IsLike requires in fuzzy
// mode unless the caller overrides it.
const DefaultFuzzyThreshold = 0.8

// Exists reports whether the parameter is present in any representation.
func Exists(obj *node.Object, name string) bool {
	return Has(obj, name)
}

// Equals reports whether the resolved value equals want. No coercion: a
// numeric 5 never equals the string "5".
func Equals(obj *node.Object, name string, want any) bool {
	v := Value(obj, name, nil)
	if v == nil {
		return false
	}
	return equal(v, want)
}

// IsLike matches the stringified resolved value against pattern. In exact
// mode the pattern is a regular expression anchored at the start of the
// value. In fuzzy mode the normalized edit-distance similarity between
// value and pattern must meet or exceed threshold.
func IsLike(obj *node.Object, name, pattern string, fuzzy bool, threshold float64) (bool, error) {
	v := Value(obj, name, nil)
	if v == nil {
		return false, nil
	}
	s := stringify(v)

	if fuzzy {
		return similarity(s, pattern) >= threshold, nil
	}

	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return false, fmt.Errorf("pattern %q: %w", pattern, err)
	}
	return re.MatchString(s), nil
}

// similarity is the normalized Levenshtein ratio in [0,1]: identical
// strings score 1, fully dissimilar strings score 0.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// GreaterThan reports whether the resolved numeric value exceeds the
// threshold, parsed per ParseNumber.
func GreaterThan(obj *node.Object, name, threshold string) (bool, error) {
	v := Value(obj, name, nil)
	if v == nil {
		return false, nil
	}
	f, ok := numeric(v)
	if !ok {
		return false, &InvalidTypeError{Property: name, Value: v}
	}
	t, err := ParseNumber(threshold)
	if err != nil {
		return false, err
	}
	return f > t, nil
}

// LessThan reports whether the resolved numeric value is below the
// threshold, parsed per ParseNumber.
func LessThan(obj *node.Object, name, threshold string) (bool, error) {
	v := Value(obj, name, nil)
	if v == nil {
		return false, nil
	}
	f, ok := numeric(v)
	if !ok {
		return false, &InvalidTypeError{Property: name, Value: v}
	}
	t, err := ParseNumber(threshold)
	if err != nil {
		return false, err
	}
	return f < t, nil
}

// InRange reports whether the resolved numeric value lies inside the
// inclusive range given as "min,max".
func InRange(obj *node.Object, name, rng string) (bool, error) {
	parts := strings.SplitN(rng, ",", 2)
	if len(parts) != 2 {
		return false, fmt.Errorf("range %q: want \"min,max\"", rng)
	}
	lo, err := ParseNumber(parts[0])
	if err != nil {
		return false, err
	}
	hi, err := ParseNumber(parts[1])
	if err != nil {
		return false, err
	}

	v := Value(obj, name, nil)
	if v == nil {
		return false, nil
	}
	f, ok := numeric(v)
	if !ok {
		return false, &InvalidTypeError{Property: name, Value: v}
	}
	return lo <= f && f <= hi, nil
}

// InList reports whether the resolved value is a member of list. The list
// may be a decoded sequence or a comma-separated string (split and
// trimmed). Membership checks both the raw value and its string form.
func InList(obj *node.Object, name string, list any) bool {
	v := Value(obj, name, nil)
	if v == nil {
		return false
	}

	var items []any
	switch t := list.(type) {
	case string:
		for _, part := range strings.Split(t, ",") {
			items = append(items, strings.TrimSpace(part))
		}
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	default:
		return false
	}

	s := stringify(v)
	for _, item := range items {
		if equal(item, v) || equal(item, s) {
			return true
		}
	}
	return false
}

// IsTrue reports whether the resolved value is exactly the boolean true.
func IsTrue(obj *node.Object, name string) bool {
	v := Value(obj, name, nil)
	b, ok := v.(bool)
	return ok && b
}

// IsFalse reports whether the resolved value is exactly the boolean false.
func IsFalse(obj *node.Object, name string) bool {
	v := Value(obj, name, nil)
	b, ok := v.(bool)
	return ok && !b
}

// ---------------------------------------------------------------------------
// Category helpers
// ---------------------------------------------------------------------------

// HasCategory reports whether the object carries a "category" parameter.
func HasCategory(obj *node.Object) bool {
	return Has(obj, "category")
}

// IsCategory reports whether the object's category equals want.
func IsCategory(obj *node.Object, want any) bool {
	return Equals(obj, "category", want)
}

// Category resolves the object's category value, nil when absent.
func Category(obj *node.Object) any {
	return Value(obj, "category", nil)
}

// stringify renders a resolved value the way string-oriented predicates
// compare it. Floats that carry an integral value print without a
// fractional part, matching the common "3" form in rule tables.
func stringify(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}
