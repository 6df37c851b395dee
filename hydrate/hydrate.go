// Package hydrate turns loosely typed payload trees into typed record graphs.
//
// A payload tree is what a transport hands back after decoding: nested
// map[string]any values, []any sequences and scalar leaves, partially populated.
// Hydration overlays such a tree onto a default instance of the target type:
//
//	data, err := hydrate.Hydrate(hydrate.Default[postal.OperationHistoryData](), tree)
//
// Every field keeps its declared shape. Scalars are coerced to the field's kind,
// nested trees are hydrated against fresh defaults of the field's struct type (or
// of the type registered for the field with node.Aliaser), and sequences are
// hydrated element by element. Fields missing from the tree keep their defaults.
//
// Coercion is lenient by default: malformed scalars are converted best-effort and
// reported as warnings. Strict turns those reports into errors.
package hydrate

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"operation-history/internal/diagnostic"
	"operation-history/internal/match"
	"operation-history/node"
	"operation-history/primitive"
)

// Tree is an untyped payload: nested trees, []any sequences and scalar leaves.
type Tree = map[string]any

var (
	ErrCoercion = errors.New("scalar coercion failed")
	ErrShape    = errors.New("value shape does not match field")
)

// Hydrate overlays in onto def and returns the result. A nil tree returns def unchanged.
// def itself is never modified: nested values are rebuilt rather than written through.
//
// In lenient mode (the default) the error is non-nil only for schema problems such as
// a misdeclared alias. In strict mode it also joins every rejected value; the returned
// instance then holds defaults in place of the rejected fields.
func Hydrate[T any](def T, in Tree, opts ...Option) (T, error) {
	out, _, err := Diagnose(def, in, opts...)
	return out, err
}

// Diagnose is Hydrate that also returns everything noticed along the way.
func Diagnose[T any](def T, in Tree, opts ...Option) (T, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics
	if in == nil {
		return def, diags, nil
	}

	h := &hydrator{settings: newSettings(opts), diags: &diags}

	out := def
	v := reflect.ValueOf(&out).Elem()

	if v.Kind() == reflect.Ptr {
		elem := v.Type().Elem()
		if elem.Kind() != reflect.Struct {
			return def, diags, fmt.Errorf("%w: %v", node.ErrNotAStruct, v.Type())
		}

		p := reflect.New(elem)
		if v.IsNil() {
			fresh, err := h.fresh(elem)
			if err != nil {
				return def, diags, err
			}
			p.Elem().Set(fresh)
		} else {
			p.Elem().Set(v.Elem())
		}

		v.Set(p)
		v = p.Elem()
	}

	if v.Kind() != reflect.Struct {
		return def, diags, fmt.Errorf("%w: %v", node.ErrNotAStruct, v.Type())
	}

	if err := h.overlay(v, in, ""); err != nil {
		return def, diags, err
	}

	return out, diags, diags.Err()
}

type hydrator struct {
	settings
	diags *diagnostic.Diagnostics
}

// overlay writes the fields present in `in` onto the addressable struct dst.
func (h *hydrator) overlay(dst reflect.Value, in Tree, path string) error {
	desc, err := h.registry.Describe(dst.Type())
	if err != nil {
		return err
	}

	for _, key := range slices.Sorted(maps.Keys(in)) {
		fieldPath := joinPath(path, key)

		f, ok := desc.Lookup(key)
		if !ok {
			h.diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityInfo,
				Code:        diagnostic.CodeUnknownField,
				Message:     "field is not part of the type and was ignored",
				TypeName:    desc.Type.String(),
				FieldPath:   fieldPath,
				Suggestions: match.Suggest(key, desc.WireNames(), 2, 3),
			})

			continue
		}

		v, ok, err := h.value(&f.Slot, in[key], fieldPath, desc.Type)
		if err != nil {
			return err
		}

		if ok {
			dst.FieldByIndex(f.Index).Set(v)
		}
	}

	return nil
}

// value converts raw into a value assignable to slot.Type. ok is false when the
// slot should keep its default.
func (h *hydrator) value(slot *node.Slot, raw any, path string, owner reflect.Type) (v reflect.Value, ok bool, err error) {
	switch slot.Dispatch {
	case node.DispatcherPrimitive:
		return h.scalar(slot, raw, path, owner)

	case node.DispatcherStruct:
		return h.structure(slot, raw, path, owner)

	case node.DispatcherInterface:
		if slot.Target != nil {
			return h.structure(slot, raw, path, owner)
		}

		if raw == nil {
			return reflect.Zero(slot.Type), true, nil
		}

		rv := reflect.ValueOf(raw)
		if !rv.Type().AssignableTo(slot.Type) {
			h.report(diagnostic.CodeShapeMismatch, owner, path, fmt.Sprintf("%T is not assignable to %v", raw, slot.Type), ErrShape)
			return reflect.Value{}, false, nil
		}

		return rv, true, nil

	case node.DispatcherSlice:
		return h.sequence(slot, raw, path, owner)

	case node.DispatcherMap:
		return h.mapping(slot, raw, path, owner)

	default:
		h.report(diagnostic.CodeShapeMismatch, owner, path, fmt.Sprintf("fields of type %v cannot be hydrated", slot.Type), ErrShape)
		return reflect.Value{}, false, nil
	}
}

func (h *hydrator) scalar(slot *node.Slot, raw any, path string, owner reflect.Type) (reflect.Value, bool, error) {
	if _, composite := asComposite(raw); composite {
		h.report(diagnostic.CodeShapeMismatch, owner, path, fmt.Sprintf("expected a %v scalar, got %T", slot.Scalar, raw), ErrShape)
		return reflect.Value{}, false, nil
	}

	out, exact, err := primitive.Coerce(raw, node.Base(slot.Type), h.allowed)
	if err != nil {
		h.report(diagnostic.CodeNotAllowed, owner, path, err.Error(), errors.Join(ErrCoercion, err))
		return reflect.Value{}, false, nil
	}

	if !exact {
		msg := fmt.Sprintf("%T %v coerced to %v %v", raw, raw, slot.Scalar, out.Interface())
		h.report(diagnostic.CodeLossyCoercion, owner, path, msg, ErrCoercion)

		if h.strict {
			return reflect.Value{}, false, nil
		}
	}

	return place(out, slot.Type), true, nil
}

func (h *hydrator) structure(slot *node.Slot, raw any, path string, owner reflect.Type) (reflect.Value, bool, error) {
	// empty elements decode to ""
	if s, ok := raw.(string); raw == nil || ok && strings.TrimSpace(s) == "" {
		h.diags.AddInfo(diagnostic.CodeNullStructure, "empty value, default structure kept", owner.String(), path)
		return reflect.Value{}, false, nil
	}

	tree, ok := asTree(raw)
	if !ok {
		h.report(diagnostic.CodeShapeMismatch, owner, path, fmt.Sprintf("expected a %v structure, got %T", slot.Target, raw), ErrShape)
		return reflect.Value{}, false, nil
	}

	v, err := h.build(slot.Target, tree, path)
	if err != nil {
		return reflect.Value{}, false, err
	}

	return place(v, slot.Type), true, nil
}

func (h *hydrator) sequence(slot *node.Slot, raw any, path string, owner reflect.Type) (reflect.Value, bool, error) {
	var items []any

	switch seq := raw.(type) {
	case nil:
	case []any:
		items = seq
	default:
		// a lone element is not wrapped into a sequence by the wire format
		h.diags.AddInfo(diagnostic.CodeSingleElement, "single value treated as a one-element sequence", owner.String(), path)
		items = []any{raw}
	}

	st := node.Base(slot.Type)

	elems := make([]reflect.Value, 0, len(items))
	for i, item := range items {
		ev, ok, err := h.value(slot.Elem, item, fmt.Sprintf("%s[%d]", path, i), owner)
		if err != nil {
			return reflect.Value{}, false, err
		}

		if !ok {
			if ev, err = h.zero(slot.Elem); err != nil {
				return reflect.Value{}, false, err
			}
		}

		elems = append(elems, ev)
	}

	var out reflect.Value

	if st.Kind() == reflect.Array {
		out = reflect.New(st).Elem()
		if len(elems) > st.Len() {
			h.report(diagnostic.CodeShapeMismatch, owner, path,
				fmt.Sprintf("%d elements do not fit into %v, extra elements dropped", len(elems), st), ErrShape)
		}

		for i := 0; i < len(elems) && i < st.Len(); i++ {
			out.Index(i).Set(elems[i])
		}
	} else {
		out = reflect.MakeSlice(st, 0, len(elems))
		out = reflect.Append(out, elems...)
	}

	return place(out, slot.Type), true, nil
}

func (h *hydrator) mapping(slot *node.Slot, raw any, path string, owner reflect.Type) (reflect.Value, bool, error) {
	mt := node.Base(slot.Type)

	if raw == nil {
		return place(reflect.MakeMap(mt), slot.Type), true, nil
	}

	tree, ok := asTree(raw)
	if !ok {
		h.report(diagnostic.CodeShapeMismatch, owner, path, fmt.Sprintf("expected a keyed structure, got %T", raw), ErrShape)
		return reflect.Value{}, false, nil
	}

	out := reflect.MakeMapWithSize(mt, len(tree))
	for _, key := range slices.Sorted(maps.Keys(tree)) {
		ev, ok, err := h.value(slot.Elem, tree[key], joinPath(path, key), owner)
		if err != nil {
			return reflect.Value{}, false, err
		}

		if ok {
			out.SetMapIndex(reflect.ValueOf(key).Convert(mt.Key()), ev)
		}
	}

	return place(out, slot.Type), true, nil
}

// build hydrates in against a fresh default of the struct type t.
func (h *hydrator) build(t reflect.Type, in Tree, path string) (reflect.Value, error) {
	v, err := h.fresh(t)
	if err != nil {
		return reflect.Value{}, err
	}

	if err := h.overlay(v, in, path); err != nil {
		return reflect.Value{}, err
	}

	return v, nil
}

// zero is the value a rejected sequence element is replaced with.
func (h *hydrator) zero(slot *node.Slot) (reflect.Value, error) {
	if slot.Target == nil {
		return reflect.Zero(slot.Type), nil
	}

	v, err := h.fresh(slot.Target)
	if err != nil {
		return reflect.Value{}, err
	}

	return place(v, slot.Type), nil
}

func (h *hydrator) fresh(t reflect.Type) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	if err := fill(h.registry, v, make(map[reflect.Type]bool)); err != nil {
		return reflect.Value{}, err
	}

	return v, nil
}

// report records a problem with a value: a warning in lenient mode, an error wrapping cause in strict mode.
func (h *hydrator) report(code string, owner reflect.Type, path, msg string, cause error) {
	if h.strict {
		h.diags.AddError(code, msg, owner.String(), path, cause)
		return
	}

	h.diags.AddWarning(code, msg, owner.String(), path)
}

// place stores v, a value of a struct or scalar type, in a slot of type slot,
// taking its address when the slot is a pointer or only *T satisfies the slot's interface.
func place(v reflect.Value, slot reflect.Type) reflect.Value {
	for depth := 0; v.Type() != slot; depth++ {
		if slot.Kind() == reflect.Interface && v.Type().Implements(slot) {
			break
		}

		if depth > 4 {
			panic(fmt.Sprintf("hydrate: %v cannot be placed in %v", v.Type(), slot))
		}

		p := reflect.New(v.Type())
		p.Elem().Set(v)
		v = p
	}

	return v
}

func asTree(raw any) (Tree, bool) {
	switch t := raw.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(Tree, len(t))
		for k, v := range t {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}

	return nil, false
}

func asComposite(raw any) (any, bool) {
	if _, ok := raw.([]any); ok {
		return raw, true
	}

	if _, ok := asTree(raw); ok {
		return raw, true
	}

	return nil, false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}
