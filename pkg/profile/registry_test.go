package profile

import (
	"slices"
	"testing"
)

type orderListener struct {
	name string
	log  *[]string
}

func (l *orderListener) OnLayoutChanged(*Profile) { *l.log = append(*l.log, l.name) }

func TestRegistryOrderAndDedup(t *testing.T) {
	var log []string
	a := &orderListener{"a", &log}
	b := &orderListener{"b", &log}
	c := &orderListener{"c", &log}

	var r Registry
	for _, l := range []*orderListener{a, b, c} {
		if !r.Add(l) {
			t.Fatalf("Add(%s) = false", l.name)
		}
	}
	if r.Add(b) {
		t.Error("adding a registered listener should be a no-op")
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	if n := r.Notify(&Profile{}); n != 3 {
		t.Errorf("Notify() = %d, want 3", n)
	}
	if want := []string{"c", "b", "a"}; !slices.Equal(log, want) {
		t.Errorf("notify order = %v, want %v", log, want)
	}

	if !r.Remove(b) || r.Remove(b) {
		t.Error("Remove should succeed once")
	}
	log = nil
	r.Notify(&Profile{})
	if want := []string{"c", "a"}; !slices.Equal(log, want) {
		t.Errorf("after remove = %v, want %v", log, want)
	}
}

type selfRemovingListener struct {
	r     *Registry
	calls int
}

func (l *selfRemovingListener) OnLayoutChanged(*Profile) {
	l.calls++
	l.r.Remove(l)
}

func TestRegistryRemoveDuringNotify(t *testing.T) {
	var r Registry
	l := &selfRemovingListener{r: &r}
	r.Add(l)

	r.Notify(&Profile{})
	r.Notify(&Profile{})
	if l.calls != 1 {
		t.Errorf("calls = %d, want 1", l.calls)
	}
}
