package node

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"operation-history/internal/match"
)

var (
	ErrNotAStruct     = errors.New("type is not a struct")
	ErrAliasField     = errors.New("alias names an unknown field")
	ErrAliasMismatch  = errors.New("alias type does not fit the field")
	ErrAliasNotStruct = errors.New("alias type is not a struct")
)

// Registry caches descriptors per type. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[reflect.Type]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[reflect.Type]*Descriptor)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used when none is configured.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Describe returns the descriptor of t (pointers are looked through), building it and
// the descriptors of every struct type reachable from it on first use.
func (r *Registry) Describe(t reflect.Type) (*Descriptor, error) {
	t = base(t)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotAStruct, t)
	}

	r.mu.RLock()
	d, ok := r.descriptors[t]
	r.mu.RUnlock()

	if ok {
		return d, nil
	}

	built := make(map[reflect.Type]*Descriptor)

	var dealer Dealer
	dealer.Needs(t)

	for next, ok := dealer.NextNeeds(); ok; next, ok = dealer.NextNeeds() {
		r.mu.RLock()
		_, cached := r.descriptors[next]
		r.mu.RUnlock()

		if cached {
			continue
		}

		d, err := build(next, &dealer)
		if err != nil {
			return nil, err
		}

		built[next] = d
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for typ, d := range built {
		if _, exists := r.descriptors[typ]; !exists {
			r.descriptors[typ] = d
		}
	}

	return r.descriptors[t], nil
}

// MustDescribe is like Describe but panics on error. Intended for package-level schema checks.
func (r *Registry) MustDescribe(t reflect.Type) *Descriptor {
	d, err := r.Describe(t)
	if err != nil {
		panic(err)
	}

	return d
}

func build(t reflect.Type, dealer *Dealer) (*Descriptor, error) {
	d := &Descriptor{
		Type:   t,
		exact:  make(map[string]int),
		folded: make(map[string]int),
	}

	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || sf.Name == "XMLName" {
			continue
		}

		// embedded structs contribute their promoted fields instead
		if sf.Anonymous && base(sf.Type).Kind() == reflect.Struct {
			continue
		}

		if throughPointer(t, sf.Index) {
			continue
		}

		name, ok := wireName(sf)
		if !ok {
			continue
		}

		d.Fields = append(d.Fields, Field{
			Slot:     *newSlot(sf.Type),
			Name:     sf.Name,
			WireName: name,
			Index:    sf.Index,
		})
	}

	for i, f := range d.Fields {
		for _, key := range []string{f.WireName, f.Name} {
			if _, taken := d.exact[key]; !taken {
				d.exact[key] = i
			}

			if folded := match.NormalizeIdent(key); folded != "" {
				if _, taken := d.folded[folded]; !taken {
					d.folded[folded] = i
				}
			}
		}
	}

	if err := applyAliases(d, aliasesOf(t)); err != nil {
		return nil, err
	}

	for _, f := range d.Fields {
		needTargets(&f.Slot, dealer)
	}

	return d, nil
}

func applyAliases(d *Descriptor, aliases Aliases) error {
	for key, alias := range aliases {
		i, ok := d.exact[key]
		if !ok {
			return fmt.Errorf("%w: %v.%s", ErrAliasField, d.Type, key)
		}

		if alias == nil || base(alias).Kind() != reflect.Struct {
			return fmt.Errorf("%w: %v.%s -> %v", ErrAliasNotStruct, d.Type, key, alias)
		}

		target := base(alias)
		f := &d.Fields[i]

		slot := &f.Slot
		if slot.Dispatch == DispatcherSlice || slot.Dispatch == DispatcherMap {
			slot = slot.Elem
		}

		if slot.Dispatch != DispatcherStruct && slot.Dispatch != DispatcherInterface || !fits(target, slot.Type) {
			return fmt.Errorf("%w: %v.%s -> %v", ErrAliasMismatch, d.Type, key, alias)
		}

		slot.Target = target
		f.Aliased = true
	}

	return nil
}

func needTargets(s *Slot, dealer *Dealer) {
	for ; s != nil; s = s.Elem {
		if s.Target != nil {
			dealer.Needs(s.Target)
		}
	}
}

func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		t = t.Field(i).Type
		if t.Kind() == reflect.Ptr {
			return true
		}
	}

	return false
}
