package node

import (
	"reflect"

	"operation-history/primitive"
)

//go:generate go tool stringer -type=DispatcherEnum -trimprefix=Dispatcher -output=dispatcher_string.go

// DispatcherEnum tells the hydrator which strategy fills a slot of a given Go type.
type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherPrimitive
	DispatcherInterface
	DispatcherSlice
	DispatcherMap
	DispatcherStruct
)

// Dispatch classifies a declared Go type. Pointers are looked through, so *T dispatches like T.
func Dispatch(t reflect.Type) DispatcherEnum {
	t = base(t)

	// checked before structs: time.Time is a scalar
	if primitive.FromReflectType(t) != 0 {
		return DispatcherPrimitive
	}

	switch t.Kind() {
	case reflect.Interface:
		return DispatcherInterface
	case reflect.Slice, reflect.Array:
		return DispatcherSlice
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return DispatcherMap
		}
		return DispatcherUnknown
	case reflect.Struct:
		return DispatcherStruct
	default:
		return DispatcherUnknown
	}
}

func base(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}

// Base returns t with all pointer indirections removed.
func Base(t reflect.Type) reflect.Type {
	return base(t)
}
