package heap

import (
	"errors"
	"math/rand"
	"testing"
)

type entry struct {
	cost  int
	index int
}

// lower cost = higher priority
func byCost(a, b *entry) int { return b.cost - a.cost }

func slotOf(e *entry) *int { return &e.index }

func newEntries(costs ...int) []*entry {
	out := make([]*entry, len(costs))
	for i, c := range costs {
		out[i] = &entry{cost: c, index: -1}
	}
	return out
}

func checkInvariant(t *testing.T, h *Heap[*entry]) {
	t.Helper()
	for i := 0; i < h.count; i++ {
		if h.items[i].index != i {
			t.Fatalf("item at %d records index %d", i, h.items[i].index)
		}
		if i > 0 {
			parent := h.items[(i-1)/2]
			if byCost(h.items[i], parent) > 0 {
				t.Fatalf("heap order broken at %d: child %d above parent %d", i, h.items[i].cost, parent.cost)
			}
		}
	}
}

func TestRemoveFirstReturnsSortedOrder(t *testing.T) {
	costs := []int{7, 3, 9, 1, 4, 4, 8, 0, 2, 6}
	h := New(len(costs), byCost, slotOf)
	for _, e := range newEntries(costs...) {
		if err := h.Add(e); err != nil {
			t.Fatalf("Add: %v", err)
		}
		checkInvariant(t, h)
	}

	prev := -1
	for h.Count() > 0 {
		e, ok := h.RemoveFirst()
		if !ok {
			t.Fatalf("RemoveFirst failed with Count=%d", h.Count())
		}
		if e.cost < prev {
			t.Fatalf("popped %d after %d", e.cost, prev)
		}
		if e.index != -1 {
			t.Fatalf("popped item still claims slot %d", e.index)
		}
		prev = e.cost
		checkInvariant(t, h)
	}
	if _, ok := h.RemoveFirst(); ok {
		t.Fatalf("RemoveFirst on empty heap returned an item")
	}
}

func TestAddBeyondCapacity(t *testing.T) {
	h := New(2, byCost, slotOf)
	es := newEntries(1, 2, 3)
	if err := h.Add(es[0]); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := h.Add(es[1]); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := h.Add(es[2]); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if h.Count() != 2 || h.MaxSize() != 2 {
		t.Fatalf("Count/MaxSize = %d/%d", h.Count(), h.MaxSize())
	}
	if h.Contains(es[2]) {
		t.Fatalf("rejected item reported as contained")
	}
}

func TestContains(t *testing.T) {
	h := New(4, byCost, slotOf)
	es := newEntries(5, 1, 3)
	_ = h.Add(es[0])
	_ = h.Add(es[1])

	if !h.Contains(es[0]) || !h.Contains(es[1]) {
		t.Fatalf("added items not found")
	}
	if h.Contains(es[2]) {
		t.Fatalf("never-added item found")
	}
	// A stale index pointing at a live slot must not fool Contains.
	es[2].index = 0
	if h.Contains(es[2]) {
		t.Fatalf("identity check skipped")
	}

	first, _ := h.RemoveFirst()
	if h.Contains(first) {
		t.Fatalf("removed item still contained")
	}
	h.Clear()
	if h.Count() != 0 || h.Contains(es[0]) {
		t.Fatalf("Clear left items behind")
	}
}

func TestUpdateItemAfterPriorityChange(t *testing.T) {
	h := New(8, byCost, slotOf)
	es := newEntries(10, 20, 30, 40, 50)
	for _, e := range es {
		_ = h.Add(e)
	}
	es[4].cost = 5
	h.UpdateItem(es[4])
	checkInvariant(t, h)

	first, _ := h.RemoveFirst()
	if first != es[4] {
		t.Fatalf("expected updated item first, got cost %d", first.cost)
	}
}

func TestRandomOperationsKeepHeapProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const capacity = 64
	h := New(capacity, byCost, slotOf)
	var live []*entry

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(3); {
		case op == 0 && h.Count() < capacity:
			e := &entry{cost: rng.Intn(100), index: -1}
			if err := h.Add(e); err != nil {
				t.Fatalf("step %d: Add: %v", step, err)
			}
			live = append(live, e)
		case op == 1 && h.Count() > 0:
			e, _ := h.RemoveFirst()
			for _, other := range live {
				if h.Contains(other) && other.cost < e.cost {
					t.Fatalf("step %d: popped %d while %d remained", step, e.cost, other.cost)
				}
			}
		case op == 2 && len(live) > 0:
			e := live[rng.Intn(len(live))]
			if h.Contains(e) && e.cost > 0 {
				e.cost -= rng.Intn(e.cost + 1)
				h.UpdateItem(e)
			}
		}
		checkInvariant(t, h)
	}
}
