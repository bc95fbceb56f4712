// Package node models semi-structured design-model objects and their
// traversal. An Object is one element of a model tree: a stable identifier,
// a type tag, and an ordered set of dynamic properties whose values may be
// scalars, lists, or nested Objects.
//
// Model exports have accumulated several shape conventions over time:
// children live under "elements" or the older "@elements", display geometry
// under "displayValue" or "@displayValue", and very old exports bucket
// elements per category behind "@"-prefixed properties next to an "@Lines"
// marker. This package recognizes all of them.
package node

// Property names recognized across data-shape generations.
const (
	propElements       = "elements"
	propElementsLegacy = "@elements"
	propDisplay        = "displayValue"
	propDisplayLegacy  = "@displayValue"
	propDefinition     = "definition"
	propTransform      = "transform"
	propLinesMarker    = "@Lines"
	propParentType     = "parent_type"
)

// Object is one model element. Dynamic properties preserve insertion order
// so ambiguous lookups (e.g. several candidate parameter records) resolve
// deterministically.
type Object struct {
	ID   string
	Type string

	keys  []string
	props map[string]any
}

// New returns an empty Object with the given identifier and type tag.
func New(id, typ string) *Object {
	return &Object{ID: id, Type: typ}
}

// Set stores a dynamic property, appending the key on first write.
func (o *Object) Set(key string, value any) {
	if o.props == nil {
		o.props = make(map[string]any)
	}
	if _, exists := o.props[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.props[key] = value
}

// Get returns the property value and whether the key is present at all.
// A present key may still hold a nil value.
func (o *Object) Get(key string) (any, bool) {
	if o == nil || o.props == nil {
		return nil, false
	}
	v, ok := o.props[key]
	return v, ok
}

// Keys returns the dynamic property names in insertion order.
// The returned slice is shared; callers must not modify it.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// ---------------------------------------------------------------------------
// Shape classification
// ---------------------------------------------------------------------------

// Shape classifies how an Object stores its children. It is determined once
// by inspection rather than by chained attribute probing at every call site.
type Shape int

const (
	// ShapeLeaf has no recognized child container.
	ShapeLeaf Shape = iota
	// ShapeModern stores children under "elements" or "@elements".
	ShapeModern
	// ShapeLegacyBucketed carries an "@Lines" marker and buckets children
	// per category behind "@"-prefixed dynamic properties.
	ShapeLegacyBucketed
)

// Shape inspects the object's properties and classifies its child layout.
func (o *Object) Shape() Shape {
	if len(o.Children()) > 0 {
		return ShapeModern
	}
	if _, ok := o.Get(propLinesMarker); ok {
		return ShapeLegacyBucketed
	}
	return ShapeLeaf
}

// Children returns the object's element list under either recognized
// container name. Non-object entries are skipped.
func (o *Object) Children() []*Object {
	v, ok := o.Get(propElements)
	if !ok || v == nil {
		v, _ = o.Get(propElementsLegacy)
	}
	return objectList(v)
}

// objectList extracts the *Object entries from a decoded list value.
func objectList(v any) []*Object {
	list, ok := v.([]any)
	if !ok {
		if objs, ok := v.([]*Object); ok {
			return objs
		}
		return nil
	}
	var out []*Object
	for _, item := range list {
		if obj, ok := item.(*Object); ok {
			out = append(out, obj)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Display geometry
// ---------------------------------------------------------------------------

// DisplayValues returns the object's display geometry under either
// recognized property name, filtered to object entries. Nil means the
// object carries no renderable geometry of its own.
func (o *Object) DisplayValues() []*Object {
	v, ok := o.Get(propDisplay)
	if !ok || v == nil {
		v, _ = o.Get(propDisplayLegacy)
	}
	switch t := v.(type) {
	case *Object:
		return []*Object{t}
	default:
		return objectList(v)
	}
}

// Displayable reports whether the object can be rendered: either it has
// display geometry and an identifier itself, or it is an instance whose
// definition has both.
func (o *Object) Displayable() bool {
	if len(o.DisplayValues()) > 0 && o.ID != "" {
		return true
	}
	if def := o.Definition(); def != nil {
		return len(def.DisplayValues()) > 0 && def.ID != ""
	}
	return false
}

// Displayable filters objs to those that are displayable and addressable.
func Displayable(objs []*Object) []*Object {
	var out []*Object
	for _, obj := range objs {
		if obj.Displayable() && obj.ID != "" {
			out = append(out, obj)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Instance / definition
// ---------------------------------------------------------------------------

// Definition returns the shared shape definition referenced by an instance
// object, or nil for non-instance objects.
func (o *Object) Definition() *Object {
	v, _ := o.Get(propDefinition)
	def, _ := v.(*Object)
	return def
}

// IsInstance reports whether the object references a definition.
func (o *Object) IsInstance() bool {
	return o.Definition() != nil
}

// Transform is a placement transform carried by an instance: a flat matrix
// plus the unit system its translation components are expressed in.
type Transform struct {
	Matrix []float64
	Units  string
}

// TransformOf extracts the instance's placement transform. The second
// return is false when the object carries no transform record.
func (o *Object) TransformOf() (Transform, bool) {
	v, _ := o.Get(propTransform)
	rec, ok := v.(*Object)
	if !ok {
		return Transform{}, false
	}
	var tf Transform
	if units, _ := rec.Get("units"); units != nil {
		if s, ok := units.(string); ok {
			tf.Units = s
		}
	}
	if raw, _ := rec.Get("matrix"); raw != nil {
		if list, ok := raw.([]any); ok {
			for _, item := range list {
				if f, ok := toFloat(item); ok {
					tf.Matrix = append(tf.Matrix, f)
				}
			}
		}
	}
	return tf, true
}

// toFloat widens any decoded numeric value to float64.
func toFloat(v any) (float64, bool) {
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
