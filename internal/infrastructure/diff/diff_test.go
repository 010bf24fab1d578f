package diff

import "testing"

func TestDiffer_Diff(t *testing.T) {
	d := &Differ{}

	t.Run("no change yields empty delta", func(t *testing.T) {
		got := d.Diff(map[string]int{"toppings.olive": 2}, map[string]int{"toppings.olive": 2})
		if len(got) != 0 {
			t.Fatalf("expected empty delta, got %v", got)
		}
	})

	t.Run("changed, added and removed keys", func(t *testing.T) {
		before := map[string]int{"quantity": 1, "toppings.olive": 2, "sauces.bbq": 1}
		after := map[string]int{"quantity": 2, "toppings.olive": 2, "addons.fries": 1}

		got := d.Diff(before, after)
		want := map[string]Change{
			"quantity":     {From: 1, To: 2},
			"addons.fries": {From: 0, To: 1},
			"sauces.bbq":   {From: 1, To: 0},
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d changes, got %v", len(want), got)
		}
		for k, w := range want {
			if got[k] != w {
				t.Errorf("%s: expected %+v, got %+v", k, w, got[k])
			}
		}
	})
}
