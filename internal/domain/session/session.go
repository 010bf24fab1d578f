package session

import (
	"errors"
	"fmt"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/engine"
	"github.com/Victor-armando18/menu-customizer/internal/domain/model"
	"github.com/Victor-armando18/menu-customizer/internal/domain/selection"
)

type State string

const (
	Closed    State = "closed"
	Open      State = "open"
	Submitted State = "submitted"
)

type Op string

var ErrUnknownAction = errors.New("unknown action")

const (
	OpIncrement       Op = "increment"
	OpDecrement       Op = "decrement"
	OpSelectBase      Op = "select_base"
	OpClearBase       Op = "clear_base"
	OpToggleVariation Op = "toggle_variation"
	OpSetQuantity     Op = "set_quantity"
	OpIncQuantity     Op = "increment_quantity"
	OpDecQuantity     Op = "decrement_quantity"
)

// Action is one customer interaction with the customization surface.
type Action struct {
	Op       Op     `json:"op"`
	Group    string `json:"group,omitempty"`
	OptionID string `json:"optionId,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

// Session is the customization surface for one product. A session only moves
// forward: Open -> Submitted -> Closed, or Open -> Closed.
type Session struct {
	product   *domain.Product
	selection *selection.Selection
	state     State
}

// Start opens a session with a fresh selection.
func Start(p *domain.Product) *Session {
	return &Session{product: p, selection: selection.New(p), state: Open}
}

func (s *Session) State() State { return s.state }

func (s *Session) Product() *domain.Product { return s.product }

// Selection exposes the live selection while the session is open.
func (s *Session) Selection() (*selection.Selection, error) {
	if s.state != Open {
		return nil, domain.ErrSessionClosed
	}
	return s.selection, nil
}

// Apply performs an action. The returned flag is false when the action changed nothing.
func (s *Session) Apply(a Action) (bool, error) {
	if s.state != Open {
		return false, domain.ErrSessionClosed
	}
	sel := s.selection
	switch a.Op {
	case OpIncrement, OpDecrement:
		kind, err := domain.ParseGroup(a.Group)
		if err != nil {
			return false, err
		}
		if a.Op == OpIncrement {
			return sel.Increment(kind, a.OptionID)
		}
		return sel.Decrement(kind, a.OptionID)
	case OpSelectBase:
		prev, _ := sel.Base()
		if err := sel.SelectBase(a.OptionID); err != nil {
			return false, err
		}
		return prev.ID != a.OptionID, nil
	case OpClearBase:
		_, had := sel.Base()
		sel.ClearBase()
		return had, nil
	case OpToggleVariation:
		if _, err := sel.ToggleVariation(a.OptionID); err != nil {
			return false, err
		}
		return true, nil
	case OpSetQuantity:
		prev := sel.Quantity()
		if err := sel.SetQuantity(a.Quantity); err != nil {
			return false, err
		}
		return prev != a.Quantity, nil
	case OpIncQuantity:
		sel.IncrementQuantity()
		return true, nil
	case OpDecQuantity:
		prev := sel.Quantity()
		sel.DecrementQuantity()
		return prev != sel.Quantity(), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownAction, a.Op)
}

func (s *Session) Snapshot() model.Snapshot {
	if s.selection == nil {
		return model.Snapshot{ProductID: s.product.ID}
	}
	return s.selection.Snapshot()
}

// Submit validates and assembles the selection, then hands the line to handoff.
// The session closes only when handoff succeeds; otherwise it stays open with the
// selection intact.
func (s *Session) Submit(handoff func(domain.OrderLine) error) (domain.OrderLine, error) {
	if s.state != Open {
		return domain.OrderLine{}, domain.ErrSessionClosed
	}
	line, err := engine.Assemble(s.product, s.selection)
	if err != nil {
		return domain.OrderLine{}, err
	}
	s.state = Submitted
	if handoff != nil {
		if err := handoff(line); err != nil {
			s.state = Open
			return domain.OrderLine{}, err
		}
	}
	s.Close()
	return line, nil
}

// Close discards the selection without producing an order line.
func (s *Session) Close() {
	s.selection = nil
	s.state = Closed
}
