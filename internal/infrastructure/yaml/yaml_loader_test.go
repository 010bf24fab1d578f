package yaml

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selection.yml")
	body := `productId: pizza
quantity: 2
baseId: thin
ingredients:
  - id: cheese
    quantity: 3
  - id: basil
    quantity: 1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Quantity != 2 || snap.BaseID != "thin" || len(snap.Ingredients) != 2 || snap.Ingredients[0].ID != "cheese" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestDecode_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product.toml")
	if err := os.WriteFile(path, []byte("id = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := Decode(path, &out); err == nil {
		t.Error("expected error for .toml")
	}
}

func TestIsDocument(t *testing.T) {
	for name, want := range map[string]bool{"a.yaml": true, "b.YML": true, "c.json": true, "d.txt": false, "e": false} {
		if got := IsDocument(name); got != want {
			t.Errorf("IsDocument(%q) = %v, want %v", name, got, want)
		}
	}
}
