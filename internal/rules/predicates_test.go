package rules

// predicates_test.go — Tests for the predicate catalog.

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Exists / Equals
// ---------------------------------------------------------------------------

func TestExists(t *testing.T) {
	o := obj("a", "Wall", "mark", "M1")
	assert.True(t, Exists(o, "mark"))
	assert.False(t, Exists(o, "height"))
}

func TestEquals(t *testing.T) {
	o := obj("a", "Wall", "mark", "M1", "height", 5.0)

	assert.True(t, Equals(o, "mark", "M1"))
	assert.False(t, Equals(o, "mark", "M2"))
	// Numeric equality ignores decoded width.
	assert.True(t, Equals(o, "height", 5))
	// No coercion between numbers and strings.
	assert.False(t, Equals(o, "height", "5"))
	// Missing parameter never equals anything.
	assert.False(t, Equals(o, "absent", "M1"))
}

// ---------------------------------------------------------------------------
// GreaterThan / LessThan
// ---------------------------------------------------------------------------

func TestGreaterThan(t *testing.T) {
	o := obj("a", "Wall", "height", 5.0)

	got, err := GreaterThan(o, "height", "3")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = GreaterThan(o, "height", "5")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = GreaterThan(o, "height", "7.5")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestGreaterThanNonNumericValue(t *testing.T) {
	o := obj("a", "Wall", "height", "5")

	_, err := GreaterThan(o, "height", "3")
	var typeErr *InvalidTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "height", typeErr.Property)
}

func TestGreaterThanMissingParameter(t *testing.T) {
	got, err := GreaterThan(obj("a", "Wall"), "height", "3")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestGreaterThanUnparsableThreshold(t *testing.T) {
	o := obj("a", "Wall", "height", 5.0)
	_, err := GreaterThan(o, "height", "tall")
	assert.ErrorIs(t, err, ErrUnparsableNumber)
}

func TestLessThan(t *testing.T) {
	o := obj("a", "Wall", "height", 5.0)

	got, err := LessThan(o, "height", "10")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = LessThan(o, "height", "5")
	require.NoError(t, err)
	assert.False(t, got)
}

// ---------------------------------------------------------------------------
// InRange
// ---------------------------------------------------------------------------

func TestInRangeInclusiveBounds(t *testing.T) {
	tests := []struct {
		value float64
		want  bool
	}{
		{1, true},
		{10, true},
		{5.5, true},
		{0.999, false},
		{10.001, false},
	}
	for _, tc := range tests {
		o := obj("a", "Wall", "height", tc.value)
		got, err := InRange(o, "height", "1,10")
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "value %v", tc.value)
	}
}

func TestInRangeMalformed(t *testing.T) {
	o := obj("a", "Wall", "height", 5.0)

	_, err := InRange(o, "height", "1")
	assert.Error(t, err)

	_, err = InRange(o, "height", "low,high")
	assert.ErrorIs(t, err, ErrUnparsableNumber)
}

func TestInRangeNonNumericValue(t *testing.T) {
	o := obj("a", "Wall", "height", "tall")
	_, err := InRange(o, "height", "1,10")
	var typeErr *InvalidTypeError
	assert.ErrorAs(t, err, &typeErr)
}

// ---------------------------------------------------------------------------
// InList
// ---------------------------------------------------------------------------

func TestInListCommaSeparatedString(t *testing.T) {
	o := obj("a", "Wall", "mark", "B")
	assert.True(t, InList(o, "mark", "A, B, C"))
	assert.False(t, InList(o, "mark", "A, C"))
}

func TestInListNumericValueAgainstStringList(t *testing.T) {
	o := obj("a", "Wall", "level", 3.0)
	// The integral float stringifies to "3" for membership.
	assert.True(t, InList(o, "level", "1, 2, 3"))
}

func TestInListDecodedSequence(t *testing.T) {
	o := obj("a", "Wall", "mark", "B")
	assert.True(t, InList(o, "mark", []any{"A", "B"}))
	assert.True(t, InList(o, "mark", []string{"A", "B"}))
	assert.False(t, InList(o, "mark", []any{"A"}))
}

func TestInListMissingParameter(t *testing.T) {
	assert.False(t, InList(obj("a", "Wall"), "mark", "A, B"))
}

// ---------------------------------------------------------------------------
// IsTrue / IsFalse
// ---------------------------------------------------------------------------

func TestIsTrueIsFalse(t *testing.T) {
	o := obj("a", "Wall", "fireRated", true, "loadBearing", false, "label", "true")

	assert.True(t, IsTrue(o, "fireRated"))
	assert.False(t, IsTrue(o, "loadBearing"))
	// Only the exact boolean counts.
	assert.False(t, IsTrue(o, "label"))

	assert.True(t, IsFalse(o, "loadBearing"))
	assert.False(t, IsFalse(o, "fireRated"))
	assert.False(t, IsFalse(o, "absent"))
}

// ---------------------------------------------------------------------------
// IsLike
// ---------------------------------------------------------------------------

func TestIsLikeExactAnchoredRegex(t *testing.T) {
	o := obj("a", "Wall", "mark", "WL-101")

	got, err := IsLike(o, "mark", "WL-", false, 0)
	require.NoError(t, err)
	assert.True(t, got)

	// Anchored at the start: a mid-string match does not count.
	got, err = IsLike(o, "mark", "101", false, 0)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsLikeBadPattern(t *testing.T) {
	o := obj("a", "Wall", "mark", "WL-101")
	_, err := IsLike(o, "mark", "(", false, 0)
	assert.Error(t, err)
}

func TestIsLikeFuzzy(t *testing.T) {
	o := obj("a", "Wall", "mark", "Basement")

	got, err := IsLike(o, "mark", "Basemen", true, DefaultFuzzyThreshold)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = IsLike(o, "mark", "Roof", true, DefaultFuzzyThreshold)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsLikeMissingParameter(t *testing.T) {
	got, err := IsLike(obj("a", "Wall"), "mark", "WL-", false, 0)
	require.NoError(t, err)
	assert.False(t, got)
}

// ---------------------------------------------------------------------------
// ParseNumber
// ---------------------------------------------------------------------------

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"3", 3, true},
		{"3.5", 3.5, true},
		{"-2", -2, true},
		{"", 0, false},
		{"tall", 0, false},
	}
	for _, tc := range tests {
		got, err := ParseNumber(tc.input)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.want, got)
		} else {
			assert.True(t, errors.Is(err, ErrUnparsableNumber), "input %q", tc.input)
		}
	}
}

// ---------------------------------------------------------------------------
// Category helpers
// ---------------------------------------------------------------------------

func TestCategoryHelpers(t *testing.T) {
	o := obj("a", "Wall",
		"parameters", obj("", "", "category", "Walls"),
	)
	assert.True(t, HasCategory(o))
	assert.True(t, IsCategory(o, "Walls"))
	assert.Equal(t, "Walls", Category(o))
	assert.False(t, IsCategory(obj("b", "Door"), "Walls"))
}
