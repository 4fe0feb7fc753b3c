package tui

import "testing"

type countingView struct {
	refreshes int
}

func (c *countingView) Refresh() { c.refreshes++ }

func TestRegistryBroadcast(t *testing.T) {
	reg := NewRegistry()
	a := &countingView{}
	b := &countingView{}

	reg.Register("a", a)
	reg.Register("b", b)

	reg.BroadcastRefresh()
	reg.BroadcastRefresh()

	if a.refreshes != 2 || b.refreshes != 2 {
		t.Errorf("refreshes = %d, %d, want 2, 2", a.refreshes, b.refreshes)
	}
}

func TestRegistryUnregister(t *testing.T) {
	reg := NewRegistry()
	a := &countingView{}
	reg.Register("a", a)
	reg.Unregister("a")

	reg.BroadcastRefresh()
	if a.refreshes != 0 {
		t.Errorf("unregistered view refreshed %d times", a.refreshes)
	}

	// Unregistering an unknown id is a no-op
	reg.Unregister("ghost")
}

func TestRegistryGetOrCreate(t *testing.T) {
	reg := NewRegistry()
	built := 0
	factory := func() View {
		built++
		return &countingView{}
	}

	first := reg.GetOrCreate("tab", factory)
	second := reg.GetOrCreate("tab", factory)

	if built != 1 {
		t.Errorf("factory ran %d times, want 1", built)
	}
	if first != second {
		t.Error("GetOrCreate returned different views for the same id")
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	reg := NewRegistry()
	old := &countingView{}
	repl := &countingView{}

	reg.Register("tab", old)
	reg.Register("tab", repl)

	reg.BroadcastRefresh()
	if old.refreshes != 0 {
		t.Error("replaced view still receiving refreshes")
	}
	if repl.refreshes != 1 {
		t.Errorf("replacement refreshed %d times, want 1", repl.refreshes)
	}
}
