package session

import (
	"errors"
	"testing"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/engine"
	"github.com/shopspring/decimal"
)

func product() *domain.Product {
	base := decimal.NewFromInt(20)
	one := 1
	return &domain.Product{
		ID:                  "wrap",
		Name:                "Wrap",
		BasePrice:           &base,
		Bases:               []domain.Option{{ID: "white"}, {ID: "brown"}},
		Toppings:            []domain.Option{{ID: "jalapeno"}},
		MaxToppingSelection: &one,
	}
}

func TestSession_Apply(t *testing.T) {
	s := Start(product())
	if s.State() != Open {
		t.Fatalf("expected open, got %s", s.State())
	}

	cases := []struct {
		name    string
		action  Action
		changed bool
	}{
		{"select base", Action{Op: OpSelectBase, OptionID: "white"}, true},
		{"same base again", Action{Op: OpSelectBase, OptionID: "white"}, false},
		{"topping", Action{Op: OpIncrement, Group: "toppings", OptionID: "jalapeno"}, true},
		{"topping past ceiling", Action{Op: OpIncrement, Group: "toppings", OptionID: "jalapeno"}, false},
		{"decrement quantity at 1", Action{Op: OpDecQuantity}, false},
		{"set quantity", Action{Op: OpSetQuantity, Quantity: 3}, true},
		{"clear base", Action{Op: OpClearBase}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			changed, err := s.Apply(tc.action)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if changed != tc.changed {
				t.Errorf("expected changed=%v, got %v", tc.changed, changed)
			}
		})
	}

	if _, err := s.Apply(Action{Op: OpIncrement, Group: "drinks", OptionID: "x"}); !errors.Is(err, domain.ErrUnknownGroup) {
		t.Errorf("expected ErrUnknownGroup, got %v", err)
	}
	if _, err := s.Apply(Action{Op: "explode"}); err == nil {
		t.Error("expected error for unknown op")
	}
}

func TestSession_Submit(t *testing.T) {
	t.Run("hands off and closes", func(t *testing.T) {
		s := Start(product())
		var got domain.OrderLine
		line, err := s.Submit(func(l domain.OrderLine) error {
			if s.State() != Submitted {
				t.Errorf("expected submitted during hand-off, got %s", s.State())
			}
			got = l
			return nil
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if got.ProductID != "wrap" || !line.UnitPrice.Equal(decimal.NewFromInt(20)) {
			t.Errorf("unexpected line: %+v", line)
		}
		if s.State() != Closed {
			t.Errorf("expected closed, got %s", s.State())
		}
		if _, err := s.Apply(Action{Op: OpIncQuantity}); !errors.Is(err, domain.ErrSessionClosed) {
			t.Errorf("expected ErrSessionClosed, got %v", err)
		}
	})

	t.Run("failed hand-off keeps the session open", func(t *testing.T) {
		s := Start(product())
		s.Apply(Action{Op: OpSelectBase, OptionID: "brown"})
		boom := errors.New("sink down")
		if _, err := s.Submit(func(domain.OrderLine) error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("expected sink error, got %v", err)
		}
		if s.State() != Open {
			t.Errorf("expected open, got %s", s.State())
		}
		if s.Snapshot().BaseID != "brown" {
			t.Error("selection must survive a failed hand-off")
		}
	})

	t.Run("violations block submission", func(t *testing.T) {
		p := product()
		atLeast := 1
		p.MinToppingSelection = &atLeast
		s := Start(p)
		called := false
		_, err := s.Submit(func(domain.OrderLine) error { called = true; return nil })
		var verr *engine.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if called || s.State() != Open {
			t.Error("blocked submission must not reach the sink or change state")
		}
	})
}

func TestSession_Close(t *testing.T) {
	s := Start(product())
	s.Close()
	if s.State() != Closed {
		t.Fatalf("expected closed, got %s", s.State())
	}
	if _, err := s.Selection(); !errors.Is(err, domain.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
	if snap := s.Snapshot(); snap.ProductID != "wrap" {
		t.Errorf("closed snapshot should still name the product, got %+v", snap)
	}
}
