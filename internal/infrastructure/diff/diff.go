package diff

// Change is the before/after quantity of one selection key.
type Change struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type Differ struct{}

// Diff compares two flattened selections ("group.id" -> quantity). Keys missing on
// one side count as 0.
func (d *Differ) Diff(before, after map[string]int) map[string]Change {
	delta := map[string]Change{}
	for k, v := range after {
		if before[k] != v {
			delta[k] = Change{From: before[k], To: v}
		}
	}
	for k, v := range before {
		if _, ok := after[k]; !ok && v != 0 {
			delta[k] = Change{From: v, To: 0}
		}
	}
	return delta
}
