package selection

import (
	"fmt"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/model"
)

// counts keeps per-option quantities together with the order in which each
// option was first touched. An option keeps its position after dropping to 0.
type counts struct {
	order []string
	qty   map[string]int
}

func newCounts() *counts {
	return &counts{qty: make(map[string]int)}
}

func (c *counts) set(id string, n int) {
	if n < 0 {
		n = 0
	}
	if _, seen := c.qty[id]; !seen {
		c.order = append(c.order, id)
	}
	c.qty[id] = n
}

func (c *counts) total() int {
	t := 0
	for _, n := range c.qty {
		t += n
	}
	return t
}

func (c *counts) entries() []model.Entry {
	var out []model.Entry
	for _, id := range c.order {
		if n := c.qty[id]; n > 0 {
			out = append(out, model.Entry{ID: id, Quantity: n})
		}
	}
	return out
}

// Selection is the customer's current choices for one product instance.
// It is owned by a single customization session and is not safe for concurrent use.
type Selection struct {
	product  *domain.Product
	quantity int
	baseID   string
	groups   map[domain.GroupKind]*counts
}

// New returns the empty selection for product with quantity 1.
func New(product *domain.Product) *Selection {
	s := &Selection{
		product:  product,
		quantity: 1,
		groups:   make(map[domain.GroupKind]*counts),
	}
	for _, g := range []domain.GroupKind{domain.GroupVariations, domain.GroupAddons, domain.GroupIngredients, domain.GroupToppings, domain.GroupSauces} {
		s.groups[g] = newCounts()
	}
	return s
}

// Restore rebuilds a selection from a snapshot. Quantities are set directly, so
// ceilings are not applied here; the validator reports them instead.
func Restore(product *domain.Product, snap model.Snapshot) (*Selection, error) {
	s := New(product)
	if snap.Quantity != 0 {
		if err := s.SetQuantity(snap.Quantity); err != nil {
			return nil, err
		}
	}
	if snap.BaseID != "" {
		if err := s.SelectBase(snap.BaseID); err != nil {
			return nil, err
		}
	}
	for _, id := range snap.Variations {
		if err := s.Set(domain.GroupVariations, id, 1); err != nil {
			return nil, err
		}
	}
	for _, kind := range domain.Groups {
		for _, e := range snapshotEntries(snap, kind) {
			if err := s.Set(kind, e.ID, e.Quantity); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// snapshotEntries returns the quantified entries a snapshot holds for kind.
func snapshotEntries(snap model.Snapshot, kind domain.GroupKind) []model.Entry {
	switch kind {
	case domain.GroupAddons:
		return snap.Addons
	case domain.GroupIngredients:
		return snap.Ingredients
	case domain.GroupToppings:
		return snap.Toppings
	case domain.GroupSauces:
		return snap.Sauces
	}
	return nil
}

func (s *Selection) Product() *domain.Product { return s.product }

func (s *Selection) Quantity() int { return s.quantity }

func (s *Selection) SetQuantity(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidQuantity, n)
	}
	s.quantity = n
	return nil
}

func (s *Selection) IncrementQuantity() { s.quantity++ }

// DecrementQuantity never goes below 1.
func (s *Selection) DecrementQuantity() {
	if s.quantity > 1 {
		s.quantity--
	}
}

// Base returns the chosen base, if any.
func (s *Selection) Base() (domain.Option, bool) {
	if s.baseID == "" {
		return domain.Option{}, false
	}
	g, _ := s.product.Group(domain.GroupBases)
	return g.Option(s.baseID)
}

// SelectBase replaces any previously chosen base.
func (s *Selection) SelectBase(id string) error {
	if _, err := s.lookup(domain.GroupBases, id); err != nil {
		return err
	}
	s.baseID = id
	return nil
}

func (s *Selection) ClearBase() { s.baseID = "" }

// ToggleVariation flips a legacy variation and reports whether it is now selected.
func (s *Selection) ToggleVariation(id string) (bool, error) {
	if _, err := s.lookup(domain.GroupVariations, id); err != nil {
		return false, err
	}
	c := s.groups[domain.GroupVariations]
	on := c.qty[id] == 0
	if on {
		c.set(id, 1)
	} else {
		c.set(id, 0)
	}
	return on, nil
}

// Increment adds one unit of an option. For groups with an increment ceiling the
// call is a no-op (applied=false) when it would push the group total past max.
func (s *Selection) Increment(kind domain.GroupKind, id string) (bool, error) {
	g, err := s.quantified(kind)
	if err != nil {
		return false, err
	}
	if _, err := s.lookup(kind, id); err != nil {
		return false, err
	}
	c := s.groups[kind]
	if g.CeilingOnIncrement && !g.Policy.Allows(c.total()+1) {
		return false, nil
	}
	c.set(id, c.qty[id]+1)
	return true, nil
}

// Decrement removes one unit of an option, clamping at zero.
func (s *Selection) Decrement(kind domain.GroupKind, id string) (bool, error) {
	if _, err := s.quantified(kind); err != nil {
		return false, err
	}
	if _, err := s.lookup(kind, id); err != nil {
		return false, err
	}
	c := s.groups[kind]
	if c.qty[id] == 0 {
		return false, nil
	}
	c.set(id, c.qty[id]-1)
	return true, nil
}

// Set assigns a quantity directly. Bases and variations treat any positive value as "on".
func (s *Selection) Set(kind domain.GroupKind, id string, n int) error {
	if _, err := s.lookup(kind, id); err != nil {
		return err
	}
	switch kind {
	case domain.GroupBases:
		if n > 0 {
			s.baseID = id
		} else if s.baseID == id {
			s.baseID = ""
		}
	case domain.GroupVariations:
		if n > 1 {
			n = 1
		}
		s.groups[kind].set(id, n)
	default:
		s.groups[kind].set(id, n)
	}
	return nil
}

// Get returns the selected quantity of an option; 0 means not selected.
func (s *Selection) Get(kind domain.GroupKind, id string) int {
	if kind == domain.GroupBases {
		if s.baseID == id {
			return 1
		}
		return 0
	}
	if c, ok := s.groups[kind]; ok {
		return c.qty[id]
	}
	return 0
}

func (s *Selection) Total(kind domain.GroupKind) int {
	if kind == domain.GroupBases {
		if s.baseID != "" {
			return 1
		}
		return 0
	}
	if c, ok := s.groups[kind]; ok {
		return c.total()
	}
	return 0
}

// Entries lists the selected options of a group in first-touch order.
func (s *Selection) Entries(kind domain.GroupKind) []model.Entry {
	if kind == domain.GroupBases {
		if s.baseID == "" {
			return nil
		}
		return []model.Entry{{ID: s.baseID, Quantity: 1}}
	}
	if c, ok := s.groups[kind]; ok {
		return c.entries()
	}
	return nil
}

func (s *Selection) Snapshot() model.Snapshot {
	snap := model.Snapshot{
		ProductID:   s.product.ID,
		Quantity:    s.quantity,
		BaseID:      s.baseID,
		Addons:      s.Entries(domain.GroupAddons),
		Ingredients: s.Entries(domain.GroupIngredients),
		Toppings:    s.Entries(domain.GroupToppings),
		Sauces:      s.Entries(domain.GroupSauces),
	}
	for _, e := range s.Entries(domain.GroupVariations) {
		snap.Variations = append(snap.Variations, e.ID)
	}
	return snap
}

func (s *Selection) quantified(kind domain.GroupKind) (domain.ModifierGroup, error) {
	g, err := s.product.Group(kind)
	if err != nil {
		return g, err
	}
	if !g.Quantified {
		return g, fmt.Errorf("%w: %s is not quantity-selectable", domain.ErrUnknownGroup, kind)
	}
	return g, nil
}

func (s *Selection) lookup(kind domain.GroupKind, id string) (domain.Option, error) {
	g, err := s.product.Group(kind)
	if err != nil {
		return domain.Option{}, err
	}
	o, ok := g.Option(id)
	if !ok {
		return o, fmt.Errorf("%w: %s/%s", domain.ErrUnknownOption, kind, id)
	}
	if !o.Available() {
		return o, fmt.Errorf("%w: %s/%s", domain.ErrOptionUnavailable, kind, id)
	}
	return o, nil
}
