package sets

import "testing"

func TestSet_AddHas(t *testing.T) {
	s := New(".png", ".jpg")
	if !s.Has(".png") || s.Has(".gif") {
		t.Fatalf("unexpected membership: %v", s)
	}
	s.Add(".gif")
	s.Add(".gif")
	if !s.Has(".gif") {
		t.Fatal("expected .gif after Add")
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 members, got %d", s.Len())
	}
}

func TestSet_NilHasNothing(t *testing.T) {
	var s Set[string]
	if s.Has("x") {
		t.Fatal("nil set must not report members")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty nil set, got %d", s.Len())
	}
}
