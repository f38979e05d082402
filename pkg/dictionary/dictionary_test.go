package dictionary

import "testing"

func TestInternAssignsDenseIDs(t *testing.T) {
	d := New()
	ids := map[string]uint32{}
	for _, w := range []string{"the", "quick", "brown", "the", "fox", "quick"} {
		ids[w] = d.Intern(w)
	}
	if d.Size() != 4 {
		t.Fatalf("expected 4 distinct words, got %d", d.Size())
	}
	if ids["the"] != 0 || ids["quick"] != 1 || ids["brown"] != 2 || ids["fox"] != 3 {
		t.Fatalf("unexpected first-seen IDs: %v", ids)
	}
}

func TestWordOfRoundTrip(t *testing.T) {
	d := New()
	for _, w := range []string{"alpha", "beta", "gamma"} {
		id := d.Intern(w)
		if got := d.WordOf(id); got != w {
			t.Errorf("WordOf(Intern(%q)) = %q", w, got)
		}
	}
}

func TestLookupMissing(t *testing.T) {
	d := New()
	d.Intern("present")
	if _, ok := d.Lookup("absent"); ok {
		t.Error("expected Lookup to fail for unseen word")
	}
}

func TestBumpDFOncePerDoc(t *testing.T) {
	d := New()
	id := d.Intern("the")
	d.BumpDF(id, 0)
	d.BumpDF(id, 0) // same doc again: should not double count
	d.BumpDF(id, 1)
	if got := d.DF(id); got != 2 {
		t.Fatalf("DF = %d, want 2", got)
	}
}

func TestBumpDFDistinguishesDocZero(t *testing.T) {
	d := New()
	id := d.Intern("x")
	// Never bumped: DF must be 0, not confused with docID 0's marker.
	if got := d.DF(id); got != 0 {
		t.Fatalf("DF before any bump = %d, want 0", got)
	}
	d.BumpDF(id, 0)
	if got := d.DF(id); got != 1 {
		t.Fatalf("DF after bump for doc 0 = %d, want 1", got)
	}
}

func TestValidateInvariant(t *testing.T) {
	d := New()
	for _, w := range []string{"a", "b", "c"} {
		d.Intern(w)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}
