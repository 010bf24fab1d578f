package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/engine"
	"github.com/Victor-armando18/menu-customizer/internal/domain/model"
	"github.com/Victor-armando18/menu-customizer/internal/domain/selection"
	"github.com/Victor-armando18/menu-customizer/internal/domain/session"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure/diff"
	"github.com/Victor-armando18/menu-customizer/internal/interfaces"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// QuoteRequest asks for a trusted recomputation of a client-side selection.
type QuoteRequest struct {
	Selection        model.Snapshot   `json:"selection"`
	ClaimedUnitPrice *decimal.Decimal `json:"claimedUnitPrice,omitempty"`
}

// QuoteResult is the priced and validated view of a selection.
type QuoteResult struct {
	Quote        engine.Quote       `json:"quote"`
	Selection    model.Snapshot     `json:"selection"`
	Violations   []domain.Violation `json:"violations"`
	Valid        bool               `json:"valid"`
	Priceable    bool               `json:"priceable"`
	ServerDelta  bool               `json:"serverDelta"`
	RulesVersion string             `json:"rulesVersion,omitempty"`
	Annotations  map[string]any     `json:"annotations,omitempty"`
}

// SessionView is what clients see of a customization session after each call.
type SessionView struct {
	ID        string                 `json:"id"`
	State     session.State          `json:"state"`
	ProductID string                 `json:"productId"`
	Applied   bool                   `json:"applied"`
	Changed   map[string]diff.Change `json:"changed,omitempty"`
	Result    *QuoteResult           `json:"result,omitempty"`
}

type sessionEntry struct {
	mu      sync.Mutex
	session *session.Session

	// lastSeen is guarded by the registry mutex.
	lastSeen time.Time
}

type Options struct {
	RulesVersion string
	Loader       interfaces.RulePackLoader
	Executor     interfaces.RuleExecutor
	Logger       *zap.Logger

	// SessionIdleTimeout bounds how long an untouched session stays registered.
	// Zero keeps sessions until they are submitted or closed.
	SessionIdleTimeout time.Duration
}

type CustomizationService struct {
	catalog      interfaces.ProductCatalog
	sink         interfaces.OrderSink
	loader       interfaces.RulePackLoader
	executor     interfaces.RuleExecutor
	rulesVersion string
	differ       *diff.Differ
	log          *zap.Logger
	now          func() time.Time
	idleTimeout  time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewCustomizationService(catalog interfaces.ProductCatalog, sink interfaces.OrderSink, opts Options) *CustomizationService {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &CustomizationService{
		catalog:      catalog,
		sink:         sink,
		loader:       opts.Loader,
		executor:     opts.Executor,
		rulesVersion: opts.RulesVersion,
		differ:       &diff.Differ{},
		log:          log.Named("customization"),
		now:          time.Now,
		idleTimeout:  opts.SessionIdleTimeout,
		sessions:     make(map[string]*sessionEntry),
	}
}

func (s *CustomizationService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, len(products))
	for i := range products {
		out[i] = products[i].Offering()
	}
	return out, nil
}

func (s *CustomizationService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	offering := p.Offering()
	return &offering, nil
}

// Quote restores the client's selection, prices it and validates it.
func (s *CustomizationService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	p, err := s.catalog.Get(ctx, req.Selection.ProductID)
	if err != nil {
		return nil, err
	}
	sel, err := selection.Restore(p, req.Selection)
	if err != nil {
		return nil, err
	}
	res, err := s.evaluate(ctx, p, sel)
	if err != nil {
		return nil, err
	}

	if req.ClaimedUnitPrice != nil && !req.ClaimedUnitPrice.Equal(res.Quote.UnitPrice) {
		res.ServerDelta = true
	}
	normalized, err := infrastructure.HasDelta(normalize(req.Selection), res.Selection)
	if err != nil {
		return nil, err
	}
	res.ServerDelta = res.ServerDelta || normalized

	s.log.Debug("quote computed",
		zap.String("product_id", p.ID),
		zap.String("unit_price", res.Quote.UnitPrice.String()),
		zap.Int("violations", len(res.Violations)),
		zap.Bool("server_delta", res.ServerDelta))
	return res, nil
}

// PatchQuote applies an RFC 6902 patch to the request before quoting it.
func (s *CustomizationService) PatchQuote(ctx context.Context, req QuoteRequest, patch []byte) (*QuoteResult, error) {
	updated, err := infrastructure.ApplyPatch(req, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return s.Quote(ctx, updated)
}

// SubmitSelection assembles a stateless selection and hands it to the order sink.
func (s *CustomizationService) SubmitSelection(ctx context.Context, snap model.Snapshot) (*domain.SubmittedLine, error) {
	p, err := s.catalog.Get(ctx, snap.ProductID)
	if err != nil {
		return nil, err
	}
	sel, err := selection.Restore(p, snap)
	if err != nil {
		return nil, err
	}
	if err := s.guard(ctx, p, sel); err != nil {
		return nil, err
	}
	line, err := engine.Assemble(p, sel)
	if err != nil {
		return nil, err
	}
	sub, err := s.handoff(ctx, "", line)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *CustomizationService) OpenSession(ctx context.Context, productID string) (*SessionView, error) {
	p, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	id := uuid.New().String()
	entry := &sessionEntry{session: session.Start(p)}

	s.mu.Lock()
	entry.lastSeen = s.now()
	s.sessions[id] = entry
	s.mu.Unlock()

	s.log.Info("session opened", zap.String("session_id", id), zap.String("product_id", p.ID))

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return s.view(ctx, id, entry.session, true, nil)
}

// ApplyAction mutates an open session. A no-op action (for example an increment past
// a ceiling) reports applied=false and an empty change set.
func (s *CustomizationService) ApplyAction(ctx context.Context, id string, action session.Action) (*SessionView, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	before := entry.session.Snapshot().Counts()
	applied, err := entry.session.Apply(action)
	if err != nil {
		return nil, err
	}
	changed := s.differ.Diff(before, entry.session.Snapshot().Counts())
	if !applied {
		s.log.Debug("action was a no-op", zap.String("session_id", id), zap.String("op", string(action.Op)), zap.String("option_id", action.OptionID))
	}
	return s.view(ctx, id, entry.session, applied, changed)
}

func (s *CustomizationService) GetSession(ctx context.Context, id string) (*SessionView, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return s.view(ctx, id, entry.session, false, nil)
}

// SubmitSession validates, assembles and hands off the session's order line. The
// session is discarded once the sink accepts the line.
func (s *CustomizationService) SubmitSession(ctx context.Context, id string) (*domain.SubmittedLine, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	sel, err := entry.session.Selection()
	if err != nil {
		return nil, err
	}
	if err := s.guard(ctx, entry.session.Product(), sel); err != nil {
		return nil, err
	}

	var submitted domain.SubmittedLine
	_, err = entry.session.Submit(func(line domain.OrderLine) error {
		sub, err := s.handoff(ctx, id, line)
		submitted = sub
		return err
	})
	if err != nil {
		s.log.Warn("session submit blocked", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}
	s.forget(id)
	s.log.Info("session submitted", zap.String("session_id", id), zap.String("line_id", submitted.ID))
	return &submitted, nil
}

// CloseSession discards a session without submitting it.
func (s *CustomizationService) CloseSession(ctx context.Context, id string) error {
	entry, err := s.entry(id)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	entry.session.Close()
	entry.mu.Unlock()
	s.forget(id)
	s.log.Info("session closed", zap.String("session_id", id))
	return nil
}

func (s *CustomizationService) handoff(ctx context.Context, sessionID string, line domain.OrderLine) (domain.SubmittedLine, error) {
	sub := domain.SubmittedLine{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		SubmittedAt: s.now().UTC(),
		Line:        line,
	}
	if err := s.sink.Submit(ctx, sub); err != nil {
		return domain.SubmittedLine{}, fmt.Errorf("submit order line: %w", err)
	}
	return sub, nil
}

// guard blocks submission on rule-pack violations; cardinality is checked by Assemble.
func (s *CustomizationService) guard(ctx context.Context, p *domain.Product, sel *selection.Selection) error {
	out, err := s.applyRules(ctx, p, sel, engine.QuoteSelection(p, sel))
	if err != nil {
		return err
	}
	if len(out.violations) > 0 {
		return &engine.ValidationError{Violations: out.violations}
	}
	return nil
}

func (s *CustomizationService) evaluate(ctx context.Context, p *domain.Product, sel *selection.Selection) (*QuoteResult, error) {
	q := engine.QuoteSelection(p, sel)
	violations := engine.Validate(p, sel)
	out, err := s.applyRules(ctx, p, sel, q)
	if err != nil {
		return nil, err
	}
	violations = append(violations, out.violations...)
	if violations == nil {
		violations = []domain.Violation{}
	}
	return &QuoteResult{
		Quote:        q,
		Selection:    sel.Snapshot(),
		Violations:   violations,
		Valid:        len(violations) == 0,
		Priceable:    p.HasValidPrice(),
		RulesVersion: s.rulesVersion,
		Annotations:  out.annotations,
	}, nil
}

func (s *CustomizationService) view(ctx context.Context, id string, sess *session.Session, applied bool, changed map[string]diff.Change) (*SessionView, error) {
	v := &SessionView{
		ID:        id,
		State:     sess.State(),
		ProductID: sess.Product().ID,
		Applied:   applied,
		Changed:   changed,
	}
	sel, err := sess.Selection()
	if err != nil {
		return v, nil
	}
	res, err := s.evaluate(ctx, sess.Product(), sel)
	if err != nil {
		return nil, err
	}
	v.Result = res
	return v, nil
}

func (s *CustomizationService) entry(id string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e.lastSeen = s.now()
	return e, nil
}

// EvictIdle drops sessions that have not been touched for longer than the idle
// timeout and returns how many were removed.
func (s *CustomizationService) EvictIdle() int {
	if s.idleTimeout <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
			s.log.Info("session evicted", zap.String("session_id", id))
		}
	}
	return evicted
}

// SweepIdle runs EvictIdle every interval until ctx is done.
func (s *CustomizationService) SweepIdle(ctx context.Context, interval time.Duration) {
	if s.idleTimeout <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictIdle()
		}
	}
}

func (s *CustomizationService) forget(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// normalize drops zero-quantity entries so client and server snapshots compare equal
// when they describe the same selection.
func normalize(snap model.Snapshot) model.Snapshot {
	if snap.Quantity == 0 {
		snap.Quantity = 1
	}
	snap.Addons = nonZero(snap.Addons)
	snap.Ingredients = nonZero(snap.Ingredients)
	snap.Toppings = nonZero(snap.Toppings)
	snap.Sauces = nonZero(snap.Sauces)
	return snap
}

func nonZero(entries []model.Entry) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if e.Quantity > 0 {
			out = append(out, e)
		}
	}
	return out
}
