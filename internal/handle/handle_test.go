package handle

import "testing"

func TestArenaInsertGet(t *testing.T) {
	var a Arena[string]
	id := a.Insert("red")
	if !id.Valid() {
		t.Fatal("Insert returned invalid handle")
	}
	v, ok := a.Get(id)
	if !ok || v != "red" {
		t.Errorf("Get = %q, %v; want red, true", v, ok)
	}
	if a.Len() != 1 {
		t.Errorf("Len = %d, want 1", a.Len())
	}
}

func TestArenaStaleHandle(t *testing.T) {
	var a Arena[int]
	first := a.Insert(1)
	if _, ok := a.Remove(first); !ok {
		t.Fatal("Remove failed")
	}
	second := a.Insert(2)

	if first.Index() != second.Index() {
		t.Fatalf("slot not reused: %d vs %d", first.Index(), second.Index())
	}
	if first == second {
		t.Fatal("reused slot issued identical handle")
	}
	if _, ok := a.Get(first); ok {
		t.Error("stale handle resolved after slot reuse")
	}
	if v, ok := a.Get(second); !ok || v != 2 {
		t.Errorf("Get(second) = %d, %v", v, ok)
	}
	if _, ok := a.Remove(first); ok {
		t.Error("Remove of stale handle succeeded")
	}
}

func TestArenaInvalid(t *testing.T) {
	var a Arena[int]
	if _, ok := a.Get(Invalid); ok {
		t.Error("Invalid handle resolved")
	}
	if Invalid.Index() != -1 {
		t.Errorf("Invalid.Index() = %d, want -1", Invalid.Index())
	}
}

func TestArenaAllAndClear(t *testing.T) {
	var a Arena[int]
	ids := []ID{a.Insert(10), a.Insert(20), a.Insert(30)}
	a.Remove(ids[1])

	sum := 0
	for _, v := range a.All() {
		sum += v
	}
	if sum != 40 {
		t.Errorf("sum over All = %d, want 40", sum)
	}

	a.Clear()
	if a.Len() != 0 {
		t.Errorf("Len after Clear = %d", a.Len())
	}
	for _, id := range ids {
		if a.Contains(id) {
			t.Errorf("handle %d live after Clear", id)
		}
	}
}
