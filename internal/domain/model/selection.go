package model

// Entry is one option id with its selected quantity.
type Entry struct {
	ID       string `json:"id" yaml:"id"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// Snapshot is the transportable form of a selection. Entry order is the order
// in which the customer first touched each option.
type Snapshot struct {
	ProductID   string   `json:"productId" yaml:"productId"`
	Quantity    int      `json:"quantity" yaml:"quantity"`
	BaseID      string   `json:"baseId,omitempty" yaml:"baseId,omitempty"`
	Variations  []string `json:"variations,omitempty" yaml:"variations,omitempty"`
	Addons      []Entry  `json:"addons,omitempty" yaml:"addons,omitempty"`
	Ingredients []Entry  `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Toppings    []Entry  `json:"toppings,omitempty" yaml:"toppings,omitempty"`
	Sauces      []Entry  `json:"sauces,omitempty" yaml:"sauces,omitempty"`
}

// Counts flattens the snapshot into "group.id" -> quantity keys.
func (s Snapshot) Counts() map[string]int {
	out := map[string]int{"quantity": s.Quantity}
	if s.BaseID != "" {
		out["bases."+s.BaseID] = 1
	}
	for _, id := range s.Variations {
		out["variations."+id] = 1
	}
	for group, entries := range map[string][]Entry{
		"addons":      s.Addons,
		"ingredients": s.Ingredients,
		"toppings":    s.Toppings,
		"sauces":      s.Sauces,
	} {
		for _, e := range entries {
			if e.Quantity > 0 {
				out[group+"."+e.ID] = e.Quantity
			}
		}
	}
	return out
}

// ToMap renders the snapshot as the data document rule packs are evaluated against.
func (s Snapshot) ToMap() map[string]any {
	variations := make([]any, len(s.Variations))
	for i, v := range s.Variations {
		variations[i] = v
	}
	return map[string]any{
		"productId":   s.ProductID,
		"quantity":    s.Quantity,
		"baseId":      s.BaseID,
		"variations":  variations,
		"addons":      entriesToMap(s.Addons),
		"ingredients": entriesToMap(s.Ingredients),
		"toppings":    entriesToMap(s.Toppings),
		"sauces":      entriesToMap(s.Sauces),
		"totals": map[string]any{
			"addons":      total(s.Addons),
			"ingredients": total(s.Ingredients),
			"toppings":    total(s.Toppings),
			"sauces":      total(s.Sauces),
		},
	}
}

func entriesToMap(entries []Entry) map[string]any {
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		m[e.ID] = e.Quantity
	}
	return m
}

func total(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Quantity
	}
	return n
}
