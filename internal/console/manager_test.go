package console

import "testing"

func TestManagerOpenAndActive(t *testing.T) {
	m := NewManager(10, 3)

	if m.Active() != nil {
		t.Fatalf("expected no active surface before open")
	}

	a, err := m.Open("first")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	b, err := m.Open("second")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if got := m.Active(); got != a {
		t.Fatalf("expected first surface active, got %v", got)
	}
	if !m.SetActive(b.ID) {
		t.Fatalf("SetActive(%q) failed", b.ID)
	}
	if got := m.Active(); got != b {
		t.Fatalf("expected second surface active")
	}
	if m.SetActive("surface-999") {
		t.Fatalf("SetActive should fail for unknown ID")
	}
}

func TestManagerGetAndList(t *testing.T) {
	m := NewManager(10, 3)
	a, _ := m.Open("first")
	b, _ := m.Open("second")

	if m.Get(a.ID) != a || m.Get(b.ID) != b {
		t.Fatalf("Get returned wrong surface")
	}
	if m.Get("nope") != nil {
		t.Fatalf("Get should return nil for unknown ID")
	}

	list := m.List()
	if len(list) != 2 || list[0] != a || list[1] != b {
		t.Fatalf("List order wrong: %v", list)
	}
}

func TestManagerCycle(t *testing.T) {
	m := NewManager(10, 3)
	a, _ := m.Open("first")
	b, _ := m.Open("second")
	c, _ := m.Open("third")

	if got := m.Cycle(1); got != b {
		t.Fatalf("expected second surface, got %v", got)
	}
	if got := m.Cycle(1); got != c {
		t.Fatalf("expected third surface, got %v", got)
	}
	if got := m.Cycle(1); got != a {
		t.Fatalf("expected wrap to first surface, got %v", got)
	}
	if got := m.Cycle(-1); got != c {
		t.Fatalf("expected wrap back to third surface, got %v", got)
	}
}

func TestManagerClose(t *testing.T) {
	m := NewManager(10, 3)
	a, _ := m.Open("first")
	b, _ := m.Open("second")
	m.SetActive(b.ID)

	m.Close(b.ID)
	if m.Get(b.ID) != nil {
		t.Fatalf("closed surface still registered")
	}
	if got := m.Active(); got != a {
		t.Fatalf("active index not adjusted after close")
	}

	m.CloseAll()
	if len(m.List()) != 0 {
		t.Fatalf("CloseAll left surfaces behind")
	}
	if m.Active() != nil {
		t.Fatalf("CloseAll should clear the active surface")
	}
}

func TestManagerSurfaceIDsAreUnique(t *testing.T) {
	m := NewManager(10, 3)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		s, err := m.Open("tab")
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate surface ID %q", s.ID)
		}
		seen[s.ID] = true
	}
}
