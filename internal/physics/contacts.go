package physics

import "golang.org/x/exp/slices"

// ContactListener receives sprite-pair contact changes, one call per unordered pair,
// in ascending (a, b) order with a < b.
type ContactListener interface {
	OnContactAdded(a, b BodyID)
	OnContactPersisted(a, b BodyID)
	OnContactRemoved(a, b BodyID)
}

// ContactFuncs adapts plain functions to ContactListener. Nil fields are skipped.
type ContactFuncs struct {
	Added     func(a, b BodyID)
	Persisted func(a, b BodyID)
	Removed   func(a, b BodyID)
}

func (f ContactFuncs) OnContactAdded(a, b BodyID) {
	if f.Added != nil {
		f.Added(a, b)
	}
}

func (f ContactFuncs) OnContactPersisted(a, b BodyID) {
	if f.Persisted != nil {
		f.Persisted(a, b)
	}
}

func (f ContactFuncs) OnContactRemoved(a, b BodyID) {
	if f.Removed != nil {
		f.Removed(a, b)
	}
}

type contactPair struct {
	a, b BodyID
}

func makePair(x, y BodyID) contactPair {
	if x > y {
		x, y = y, x
	}
	return contactPair{a: x, b: y}
}

func sortPairs(pairs []contactPair) {
	slices.SortFunc(pairs, func(p, q contactPair) int {
		if p.a != q.a {
			return cmpID(p.a, q.a)
		}
		return cmpID(p.b, q.b)
	})
}

func cmpID(x, y BodyID) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// dispatchContacts diffs this step's touching pairs against the previous step.
func (w *World) dispatchContacts() {
	var added, persisted, removed []contactPair
	for p := range w.touched {
		if _, ok := w.contacts[p]; ok {
			persisted = append(persisted, p)
		} else {
			added = append(added, p)
		}
	}
	for p := range w.contacts {
		if _, ok := w.touched[p]; !ok {
			removed = append(removed, p)
		}
	}

	clear(w.contacts)
	for p := range w.touched {
		w.contacts[p] = struct{}{}
	}

	if w.listener == nil {
		return
	}
	sortPairs(added)
	sortPairs(persisted)
	sortPairs(removed)
	for _, p := range added {
		w.listener.OnContactAdded(p.a, p.b)
	}
	for _, p := range persisted {
		w.listener.OnContactPersisted(p.a, p.b)
	}
	for _, p := range removed {
		w.listener.OnContactRemoved(p.a, p.b)
	}
}
