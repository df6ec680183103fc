package uid

import "testing"

func TestGenerateTableID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTableID()
		if !IsTableID(id) {
			t.Fatalf("generated id %q does not look like a table id", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestIsTableIDRejects(t *testing.T) {
	for _, s := range []string{"", "abc", "../../etc/passwd", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"} {
		if IsTableID(s) {
			t.Fatalf("%q accepted as table id", s)
		}
	}
}

func TestGenerateConnectionIDUnique(t *testing.T) {
	if GenerateConnectionID() == GenerateConnectionID() {
		t.Fatalf("connection ids collided")
	}
}
