package value

import "testing"

func TestKeyPathString(t *testing.T) {
	var p KeyPath
	if got := p.String(); got != "$" {
		t.Errorf("empty path = %q, want %q", got, "$")
	}

	p = p.WithKey("a").WithKey("b").WithIndex(2).WithKey("c")
	want := "a.b[2].c"
	if got := p.String(); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestKeyPathImmutable(t *testing.T) {
	base := KeyPath{}.WithKey("a")
	withB := base.WithKey("b")
	withC := base.WithKey("c")
	if withB.String() == withC.String() {
		t.Fatalf("expected divergent paths, got %q and %q", withB.String(), withC.String())
	}
	if base.String() != "a" {
		t.Errorf("base path mutated: %q", base.String())
	}
}
