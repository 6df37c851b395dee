package hydrate

import (
	"reflect"

	"operation-history/node"
)

// Default returns a default instance of T: pointer-to-struct fields are allocated,
// sequences and maps are empty but non-nil, aliased interface fields hold a default
// of their registered type. Self-referencing pointers are left nil.
//
// T may be a struct or a pointer to one; any other type yields its zero value.
// Default panics when T's aliases are misdeclared.
func Default[T any]() T {
	var out T

	v := reflect.ValueOf(&out).Elem()

	t := node.Base(v.Type())
	if t.Kind() != reflect.Struct {
		return out
	}

	inst := reflect.New(t).Elem()
	if err := fill(node.DefaultRegistry(), inst, make(map[reflect.Type]bool)); err != nil {
		panic(err)
	}

	v.Set(place(inst, v.Type()))

	return out
}

// fill populates the addressable struct v with fresh defaults for its nested fields.
func fill(reg *node.Registry, v reflect.Value, visiting map[reflect.Type]bool) error {
	t := v.Type()

	desc, err := reg.Describe(t)
	if err != nil {
		return err
	}

	visiting[t] = true
	defer delete(visiting, t)

	for _, f := range desc.Fields {
		fv := v.FieldByIndex(f.Index)

		switch f.Dispatch {
		case node.DispatcherStruct, node.DispatcherInterface:
			if f.Target == nil || visiting[f.Target] {
				continue
			}

			nested := reflect.New(f.Target).Elem()
			if err := fill(reg, nested, visiting); err != nil {
				return err
			}

			fv.Set(place(nested, f.Type))

		case node.DispatcherSlice:
			if f.Type.Kind() == reflect.Slice {
				fv.Set(reflect.MakeSlice(f.Type, 0, 0))
			}

		case node.DispatcherMap:
			if f.Type.Kind() == reflect.Map {
				fv.Set(reflect.MakeMap(f.Type))
			}
		}
	}

	return nil
}
