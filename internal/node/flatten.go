package node

// flatten.go — tree flattening.
//
// Three traversals over the same tree, from cheapest to most involved:
//
//	Flatten         — every reachable object, child containers only
//	FlattenThorough — leaves only, parent-type stamping, legacy buckets
//	ExtractPlaced   — instance/definition substitution + transform chains
//
// Malformed legacy data never aborts a traversal; FlattenThorough records a
// warning and treats the offending object as a leaf.

import (
	"fmt"
	"strings"
)

// Flatten walks the tree from root and returns every reachable object
// exactly once. Children are visited before their parent; objects without
// a recognized child container are always included.
func Flatten(root *Object) []*Object {
	var out []*Object
	var walk func(obj *Object)
	walk = func(obj *Object) {
		for _, child := range obj.Children() {
			walk(child)
		}
		out = append(out, obj)
	}
	walk(root)
	return out
}

// FlattenThorough walks the tree from root and returns its leaf objects,
// stamping each visited object's "parent_type" property with the immediate
// parent's type tag before descending.
//
// Objects with no recognized child container but an "@Lines" marker are
// traversed per the old category-bucketed convention: each "@"-prefixed
// dynamic property is a category bucket, and the bucket's first entry is
// descended using that entry's own type tag. Buckets with unexpected shapes
// produce a warning and are otherwise ignored.
func FlattenThorough(root *Object) (leaves []*Object, warnings []string) {
	var walk func(obj *Object, parentType string)
	walk = func(obj *Object, parentType string) {
		obj.Set(propParentType, parentType)

		switch obj.Shape() {
		case ShapeModern:
			for _, child := range obj.Children() {
				walk(child, obj.Type)
			}

		case ShapeLegacyBucketed:
			for _, key := range obj.Keys() {
				if !strings.HasPrefix(key, "@") || key == propLinesMarker {
					continue
				}
				v, _ := obj.Get(key)
				entries := objectList(v)
				if len(entries) == 0 {
					warnings = append(warnings, fmt.Sprintf(
						"legacy bucket %q on %s: no object entries", key, describe(obj)))
					continue
				}
				first := entries[0]
				walk(first, first.Type)
			}

		default:
			leaves = append(leaves, obj)
		}
	}
	walk(root, "")
	return leaves, warnings
}

// describe renders an object reference for warnings.
func describe(obj *Object) string {
	switch {
	case obj.ID != "":
		return obj.ID
	case obj.Type != "":
		return obj.Type
	default:
		return "<anonymous>"
	}
}

// ---------------------------------------------------------------------------
// Placement extraction
// ---------------------------------------------------------------------------

// Placed is one flattened object together with its effective identifier and
// the transform chain accumulated from enclosing instances, outermost first.
type Placed struct {
	Object *Object
	// ID is the object's own identifier, or the nearest enclosing
	// instance's identifier when the object has none.
	ID string
	// Transforms lists instance transforms from root to this object.
	Transforms []Transform
}

// ExtractPlaced walks the tree from root, resolving instance/definition
// indirection. Instance objects are never yielded themselves: traversal
// descends into their definition carrying the instance's identifier and an
// extended transform chain. All other objects are yielded with the nearest
// enclosing identifier and the transforms accumulated so far.
//
// Beyond the modern child containers, any "@"-prefixed property holding an
// object that itself exposes an "elements" container is descended, per the
// old category-grouped convention.
func ExtractPlaced(root *Object) []Placed {
	var out []Placed
	extractPlaced(root, "", nil, &out)
	return out
}

func extractPlaced(obj *Object, inheritedID string, transforms []Transform, out *[]Placed) {
	currentID := obj.ID
	if currentID == "" {
		currentID = inheritedID
	}

	if obj.IsInstance() {
		branch := transforms
		if tf, ok := obj.TransformOf(); ok {
			branch = appendTransform(transforms, tf)
		}
		extractPlaced(obj.Definition(), currentID, branch, out)
		return
	}

	*out = append(*out, Placed{Object: obj, ID: currentID, Transforms: transforms})

	for _, child := range obj.Children() {
		extractPlaced(child, currentID, transforms, out)
	}

	for _, key := range obj.Keys() {
		if !strings.HasPrefix(key, "@") {
			continue
		}
		v, _ := obj.Get(key)
		sub, ok := v.(*Object)
		if !ok {
			continue
		}
		if _, hasElements := sub.Get(propElements); hasElements {
			extractPlaced(sub, currentID, transforms, out)
		}
	}
}

// appendTransform extends a transform chain without mutating the input, so
// sibling branches never observe each other's transforms.
func appendTransform(list []Transform, tf Transform) []Transform {
	out := make([]Transform, len(list), len(list)+1)
	copy(out, list)
	return append(out, tf)
}
