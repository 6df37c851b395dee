package node

import (
	"reflect"
	"strings"

	"operation-history/internal/match"
	"operation-history/primitive"
)

// Slot describes how a value of a declared Go type is filled from untyped input.
type Slot struct {
	// Type is the declared Go type of the slot.
	Type     reflect.Type
	Dispatch DispatcherEnum
	// Scalar is the kind a primitive slot coerces to.
	Scalar primitive.KindEnum
	// Target is the struct type built for struct slots and for aliased interface slots.
	// It is nil for interface slots without an alias; those keep the raw input.
	Target reflect.Type
	// Elem describes the elements of sequence and map slots.
	Elem *Slot
}

// Field is a Slot bound to a struct field.
type Field struct {
	Slot
	Name     string
	WireName string
	Index    []int
	Aliased  bool
}

// Descriptor is the static field table of one struct type. It is built once per type
// and never depends on a particular instance.
type Descriptor struct {
	Type   reflect.Type
	Fields []Field

	exact  map[string]int
	folded map[string]int
}

// Lookup resolves an input key to a field: wire name or Go name first, then a
// case and separator insensitive match. When two fields fold to the same name the
// one declared first wins.
func (d *Descriptor) Lookup(name string) (Field, bool) {
	if i, ok := d.exact[name]; ok {
		return d.Fields[i], true
	}

	if i, ok := d.folded[match.NormalizeIdent(name)]; ok {
		return d.Fields[i], true
	}

	return Field{}, false
}

// Field returns the field with the given Go name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// WireNames lists the wire names of all fields in declaration order.
func (d *Descriptor) WireNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.WireName
	}

	return names
}

func newSlot(t reflect.Type) *Slot {
	s := &Slot{Type: t, Dispatch: Dispatch(t)}

	switch s.Dispatch {
	case DispatcherPrimitive:
		s.Scalar = primitive.FromReflectType(base(t))
	case DispatcherStruct:
		s.Target = base(t)
	case DispatcherSlice, DispatcherMap:
		s.Elem = newSlot(base(t).Elem())
	}

	return s
}

// wireName returns the element name a field is exchanged under: the xml tag name when present.
func wireName(sf reflect.StructField) (string, bool) {
	tag, ok := sf.Tag.Lookup("xml")
	if !ok {
		return sf.Name, true
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", false
	}

	// "ns local" form
	if i := strings.LastIndexByte(name, ' '); i >= 0 {
		name = name[i+1:]
	}

	if name == "" {
		return sf.Name, true
	}

	return name, true
}
