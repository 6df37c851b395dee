package node

import "reflect"

// Dealer is a worklist of struct types whose descriptors still have to be built.
// A type handed out once is never handed out again, which keeps recursive types finite.
type Dealer struct {
	needs map[reflect.Type]struct{}
	done  map[reflect.Type]struct{}
}

func (d *Dealer) NextNeeds() (t reflect.Type, ok bool) {
	for t = range d.needs {
		delete(d.needs, t)

		if _, exists := d.done[t]; !exists {
			d.Done(t)

			return t, true
		}
	}

	return nil, false
}

func (d *Dealer) Needs(t reflect.Type) {
	if d.needs == nil {
		d.needs = make(map[reflect.Type]struct{})
	}

	if _, exists := d.done[t]; !exists {
		d.needs[t] = struct{}{}
	}
}

func (d *Dealer) Done(t reflect.Type) {
	if d.done == nil {
		d.done = make(map[reflect.Type]struct{})
	}

	delete(d.needs, t)
	d.done[t] = struct{}{}
}
