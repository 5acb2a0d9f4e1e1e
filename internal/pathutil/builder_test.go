package pathutil

import "testing"

func TestPathBuilder_Basic(t *testing.T) {
	p := &PathBuilder{}
	p.Push("paths")
	p.Push("/pets")

	got := p.String()
	want := "paths./pets"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if p.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", p.Depth())
	}
}

func TestPathBuilder_PushPop(t *testing.T) {
	p := &PathBuilder{}
	p.Push("a")
	p.Push("b")
	p.Pop()
	p.Push("c")

	got := p.String()
	want := "a.c"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPathBuilder_PopToEmpty(t *testing.T) {
	p := &PathBuilder{}
	p.Push("a")
	p.Pop()
	p.Pop() // no-op on empty
	p.Push("b")

	if got := p.String(); got != "b" {
		t.Errorf("String() = %q, want %q", got, "b")
	}
	if p.length != 1 {
		t.Errorf("length = %d, want 1", p.length)
	}
}

func TestPathBuilder_Brackets(t *testing.T) {
	p := &PathBuilder{}
	p.Push("schema")
	p.Push("anyOf")
	p.Push("[2]")

	want := "schema.anyOf[2]"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if p.length != len(want) {
		t.Errorf("length = %d, want %d", p.length, len(want))
	}

	p.Pop()
	p.Push("oneOf")
	if got := p.String(); got != "schema.anyOf.oneOf" {
		t.Errorf("String() = %q, want %q", got, "schema.anyOf.oneOf")
	}
}

func TestPathBuilder_Empty(t *testing.T) {
	p := &PathBuilder{}
	if got := p.String(); got != "" {
		t.Errorf("String() on empty = %q, want empty", got)
	}
}

func TestPathBuilder_Pool(t *testing.T) {
	p := Get()
	p.Push("paths")
	Put(p)

	q := Get()
	defer Put(q)
	if q.Depth() != 0 {
		t.Errorf("pooled builder should be reset, got depth %d", q.Depth())
	}
}
