package prefstore

import (
	"os"
	"testing"
)

func memStore() *Store {
	return New(NewMemory())
}

func TestGetMissingReturnsDefault(t *testing.T) {
	s := memStore()
	if got := Get(s, "absent", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
	if got := Get(s, "absent", 42); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := memStore()
	if err := Set(s, "timeline-search", "dizzy"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := Get(s, "timeline-search", ""); got != "dizzy" {
		t.Errorf("got %q, want dizzy", got)
	}

	type rng struct{ Start, End string }
	want := rng{Start: "2024-02-01", End: "2024-02-28"}
	if err := Set(s, "timeline-date-range", want); err != nil {
		t.Fatalf("Set struct: %v", err)
	}
	if got := Get(s, "timeline-date-range", rng{}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCorruptValueFallsBackToDefault(t *testing.T) {
	mem := NewMemory()
	s := New(mem)

	// Plant corrupt non-JSON bytes directly in the provider.
	if err := mem.Save("timeline-search", []byte("not{json")); err != nil {
		t.Fatal(err)
	}
	if got := Get(s, "timeline-search", ""); got != "" {
		t.Errorf("corrupt value should yield default, got %q", got)
	}
}

func TestSetIsImmediatelyVisible(t *testing.T) {
	mem := NewMemory()
	a := New(mem)
	b := New(mem)

	if err := Set(a, "k", []string{"visit"}); err != nil {
		t.Fatal(err)
	}
	got := Get(b, "k", []string{})
	if len(got) != 1 || got[0] != "visit" {
		t.Errorf("second store instance sees %v", got)
	}
}

func TestSubscribeNotifiesOnSet(t *testing.T) {
	s := memStore()

	var keys []string
	cancel := s.Subscribe(func(key string) { keys = append(keys, key) })

	if err := Set(s, "a", 1); err != nil {
		t.Fatal(err)
	}
	if err := Set(s, "b", 2); err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v, want [a b]", keys)
	}

	cancel()
	if err := Set(s, "c", 3); err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 {
		t.Errorf("subscriber fired after cancel: %v", keys)
	}
}

func TestSQLiteProviderPersistsAcrossReopen(t *testing.T) {
	dbFile, err := os.CreateTemp("", "vitalog-prefstore-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	p1, err := OpenSQLite(dbFile.Name())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	s1 := New(p1)
	if err := Set(s1, "quickNotes", []string{"n1"}); err != nil {
		t.Fatal(err)
	}
	if err := s1.Close(); err != nil {
		t.Fatal(err)
	}

	p2, err := OpenSQLite(dbFile.Name())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s2 := New(p2)
	defer s2.Close()

	got := Get(s2, "quickNotes", []string{})
	if len(got) != 1 || got[0] != "n1" {
		t.Errorf("after reopen got %v", got)
	}
}

func TestSQLiteSaveOverwrites(t *testing.T) {
	dbFile, err := os.CreateTemp("", "vitalog-prefstore-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	p, err := OpenSQLite(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if err := p.Save("k", []byte(`"v1"`)); err != nil {
		t.Fatal(err)
	}
	if err := p.Save("k", []byte(`"v2"`)); err != nil {
		t.Fatal(err)
	}
	raw, err := p.Load("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `"v2"` {
		t.Errorf("got %s, want \"v2\"", raw)
	}
}
