package testkit

import (
	"os"
	"path/filepath"
	"testing"
)

var addFn = func(a, b int) int { return a + b }

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
}

func TestSwap_Restores(t *testing.T) {
	t.Run("swap", func(t *testing.T) {
		Swap(t, &addFn, func(a, b int) int { return 99 })
		if got := addFn(1, 2); got != 99 {
			t.Fatalf("swap did not take effect, got %d", got)
		}
	})
	if got := addFn(1, 2); got != 3 {
		t.Fatalf("swap did not restore, got %d", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	got := DecodeJSON[map[string]any](t, []byte(`{"success":true}`))
	if got["success"] != true {
		t.Fatalf("got %v", got)
	}
}

func TestLeftovers(t *testing.T) {
	dir := t.TempDir()
	if n := len(Leftovers(t, dir, "*.pdf")); n != 0 {
		t.Fatalf("empty dir reported %d files", n)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.pdf"), nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if got := Leftovers(t, dir, "*.pdf"); len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	MustContain(t, "a fax was sent", "fax")
}
