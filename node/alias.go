package node

import "reflect"

// Aliases maps a field name (wire name or Go name) to the struct type that is
// instantiated for the field's values. For sequence and map fields it names the
// element type.
type Aliases map[string]reflect.Type

// Aliaser is implemented by record types that register aliases for their own fields.
// Aliases are scoped to the implementing type, so the same field name may resolve
// differently on unrelated types.
type Aliaser interface {
	HydrationAliases() Aliases
}

// Alias is shorthand for reflect.TypeFor, for use in Aliases literals.
func Alias[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

func aliasesOf(t reflect.Type) Aliases {
	if a, ok := reflect.Zero(t).Interface().(Aliaser); ok {
		return a.HydrationAliases()
	}

	if a, ok := reflect.New(t).Interface().(Aliaser); ok {
		return a.HydrationAliases()
	}

	return nil
}

// fits reports whether a value built for the struct type target can be stored in a slot of type slot.
func fits(target, slot reflect.Type) bool {
	switch {
	case slot == target:
		return true
	case slot.Kind() == reflect.Ptr:
		return slot.Elem() == target
	case slot.Kind() == reflect.Interface:
		return target.Implements(slot) || reflect.PointerTo(target).Implements(slot)
	default:
		return false
	}
}
