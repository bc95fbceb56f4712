// Package rules resolves named parameters on model objects and evaluates a
// closed catalog of boolean predicates against them.
//
// Parameters have no single physical home. Depending on the exporter that
// produced the model, a parameter named "height" may be:
//
//  1. a property directly on the object,
//  2. a key inside the object's "parameters" record, or
//  3. a nested record inside "parameters" whose "name" property is
//     "height" and whose "value" property holds the actual value.
//
// Resolution checks these in that fixed order.
package rules

import (
	"reflect"

	"modelcheck/internal/node"
)

const (
	propParameters = "parameters"
	propName       = "name"
	propValue      = "value"
)

// Value resolves the named parameter on obj, returning nil when it cannot
// be found. A resolved value equal to def is treated as not found, so
// callers can mask exporter-written placeholder defaults; pass nil when no
// placeholder applies.
//
// Representations are tried in priority order: direct property, flat key in
// "parameters", then the first nested record in "parameters" whose "name"
// matches (its "value" is returned unconditionally). The record scan walks
// keys in insertion order, so repeated lookups are deterministic even with
// several candidates.
func Value(obj *node.Object, name string, def any) any {
	if v, ok := obj.Get(name); ok {
		if v != nil && !equal(v, def) {
			return v
		}
	}

	params := parameters(obj)
	if params == nil {
		return nil
	}

	if v, ok := params.Get(name); ok && v != nil {
		if rec, isRecord := v.(*node.Object); isRecord {
			if nested, _ := rec.Get(propValue); nested != nil && !equal(nested, def) {
				return nested
			}
		} else if !equal(v, def) {
			return v
		}
	}

	// Shared parameters are stored as records keyed by an internal GUID;
	// match on the record's "name" property instead. First match wins.
	for _, key := range params.Keys() {
		rec, ok := paramRecord(params, key)
		if !ok {
			continue
		}
		if n, _ := rec.Get(propName); equal(n, name) {
			nested, _ := rec.Get(propValue)
			return nested
		}
	}
	return nil
}

// Has reports whether obj carries the named parameter in any representation.
// Existence is looser than resolution: a present key counts regardless of
// its value.
func Has(obj *node.Object, name string) bool {
	if _, ok := obj.Get(name); ok {
		return true
	}
	params := parameters(obj)
	if params == nil {
		return false
	}
	if _, ok := params.Get(name); ok {
		return true
	}
	for _, key := range params.Keys() {
		rec, ok := paramRecord(params, key)
		if !ok {
			continue
		}
		if n, _ := rec.Get(propName); equal(n, name) {
			return true
		}
	}
	return false
}

// parameters returns the object's "parameters" sub-record, or nil.
func parameters(obj *node.Object) *node.Object {
	v, _ := obj.Get(propParameters)
	params, _ := v.(*node.Object)
	return params
}

// paramRecord returns the entry at key when it is a nested record.
func paramRecord(params *node.Object, key string) (*node.Object, bool) {
	v, _ := params.Get(key)
	rec, ok := v.(*node.Object)
	return rec, ok
}

// equal compares two resolved values. Numeric values compare by magnitude
// regardless of decoded width (JSON yields float64 where YAML yields int);
// everything else compares structurally.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, aNum := numeric(a)
	fb, bNum := numeric(b)
	if aNum && bNum {
		return fa == fb
	}
	if aNum != bNum {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// numeric widens a decoded value to float64 when it is a number.
// Booleans are not numbers.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
