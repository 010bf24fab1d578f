package features

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/engine"
	"github.com/Victor-armando18/menu-customizer/internal/domain/session"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure/catalog"
	"github.com/Victor-armando18/menu-customizer/internal/usecase"
	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type memorySink struct {
	lines []domain.SubmittedLine
}

func (s *memorySink) Submit(ctx context.Context, line domain.SubmittedLine) error {
	s.lines = append(s.lines, line)
	return nil
}

type customizationTestContext struct {
	product *domain.Product
	sink    *memorySink
	svc     *usecase.CustomizationService
	view    *usecase.SessionView
	err     error
}

func (c *customizationTestContext) reset() {
	*c = customizationTestContext{sink: &memorySink{}}
}

func dec(v int) *decimal.Decimal {
	d := decimal.NewFromInt(int64(v))
	return &d
}

func groupOf(singular string) domain.GroupKind {
	return domain.GroupKind(singular + "s")
}

func (c *customizationTestContext) aProductWithBasePrice(id string, price int) error {
	c.product = &domain.Product{ID: id, Name: id, BasePrice: dec(price)}
	return nil
}

func (c *customizationTestContext) aProductWithoutAPrice(id string) error {
	c.product = &domain.Product{ID: id, Name: id}
	return nil
}

func (c *customizationTestContext) theProductHasADiscountPriceOf(price int) error {
	c.product.DiscountPrice = dec(price)
	return nil
}

func (c *customizationTestContext) theProductOffers(id, singular string, price int) error {
	o := domain.Option{ID: id, Name: id, Price: dec(price)}
	switch groupOf(singular) {
	case domain.GroupBases:
		c.product.Bases = append(c.product.Bases, o)
	case domain.GroupAddons:
		c.product.Addons = append(c.product.Addons, o)
	case domain.GroupIngredients:
		c.product.Ingredients = append(c.product.Ingredients, o)
	case domain.GroupToppings:
		c.product.Toppings = append(c.product.Toppings, o)
	case domain.GroupSauces:
		c.product.Sauces = append(c.product.Sauces, o)
	default:
		return fmt.Errorf("unknown group %q", singular)
	}
	return nil
}

func (c *customizationTestContext) theProductGivesFreeIngredients(free, excess int) error {
	c.product.MaxIngredientSelection = &free
	c.product.DefaultIngredientExcessPrice = dec(excess)
	return nil
}

func (c *customizationTestContext) theProductAllowsAtMost(n int, group string) error {
	switch group {
	case "toppings":
		c.product.MaxToppingSelection = &n
	case "sauces":
		c.product.MaxSauceSelection = &n
	default:
		return fmt.Errorf("no maximum for %q", group)
	}
	return nil
}

func (c *customizationTestContext) theProductRequiresAtLeast(n int, singular string) error {
	switch groupOf(singular) {
	case domain.GroupIngredients:
		c.product.MinIngredientSelection = &n
	case domain.GroupToppings:
		c.product.MinToppingSelection = &n
	case domain.GroupSauces:
		c.product.MinSauceSelection = &n
	default:
		return fmt.Errorf("no minimum for %q", singular)
	}
	return nil
}

func (c *customizationTestContext) iOpenACustomizationSession() error {
	c.svc = usecase.NewCustomizationService(catalog.NewMemoryCatalog(*c.product), c.sink, usecase.Options{})
	view, err := c.svc.OpenSession(context.Background(), c.product.ID)
	if err != nil {
		return err
	}
	c.view = view
	return nil
}

func (c *customizationTestContext) apply(a session.Action) error {
	view, err := c.svc.ApplyAction(context.Background(), c.view.ID, a)
	if err != nil {
		return err
	}
	c.view = view
	return nil
}

func (c *customizationTestContext) iSelectTheBase(id string) error {
	return c.apply(session.Action{Op: session.OpSelectBase, OptionID: id})
}

func (c *customizationTestContext) iAdd(n int, singular, id string) error {
	for i := 0; i < n; i++ {
		if err := c.apply(session.Action{Op: session.OpIncrement, Group: string(groupOf(singular)), OptionID: id}); err != nil {
			return err
		}
	}
	return nil
}

func (c *customizationTestContext) iRemove(n int, singular, id string) error {
	for i := 0; i < n; i++ {
		if err := c.apply(session.Action{Op: session.OpDecrement, Group: string(groupOf(singular)), OptionID: id}); err != nil {
			return err
		}
	}
	return nil
}

func (c *customizationTestContext) iSetTheQuantityTo(n int) error {
	return c.apply(session.Action{Op: session.OpSetQuantity, Quantity: n})
}

func (c *customizationTestContext) iSubmitTheSession() error {
	_, c.err = c.svc.SubmitSession(context.Background(), c.view.ID)
	return nil
}

func (c *customizationTestContext) theUnitPriceIs(price int) error {
	got := c.view.Result.Quote.UnitPrice
	if !got.Equal(decimal.NewFromInt(int64(price))) {
		return fmt.Errorf("expected unit price %d, got %s", price, got)
	}
	return nil
}

func (c *customizationTestContext) theTotalIs(total int) error {
	got := c.view.Result.Quote.Total
	if !got.Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("expected total %d, got %s", total, got)
	}
	return nil
}

func (c *customizationTestContext) theIngredientTierHas(free, paid, cost int) error {
	tier := c.view.Result.Quote.Ingredients
	if tier.FreeCount != free || tier.PaidCount != paid || !tier.TotalCost.Equal(decimal.NewFromInt(int64(cost))) {
		return fmt.Errorf("expected %d free, %d paid, cost %d; got %d, %d, %s", free, paid, cost, tier.FreeCount, tier.PaidCount, tier.TotalCost)
	}
	return nil
}

func (c *customizationTestContext) theSessionHas(n int, singular, id string) error {
	counts := c.view.Result.Selection.Counts()
	if got := counts[string(groupOf(singular))+"."+id]; got != n {
		return fmt.Errorf("expected %d x %s %q, got %d", n, singular, id, got)
	}
	return nil
}

func (c *customizationTestContext) theLastActionChangedNothing() error {
	if c.view.Applied || len(c.view.Changed) != 0 {
		return fmt.Errorf("expected a no-op, got applied=%v changed=%v", c.view.Applied, c.view.Changed)
	}
	return nil
}

func (c *customizationTestContext) submissionIsBlockedWith(message string) error {
	var verr *engine.ValidationError
	if !errors.As(c.err, &verr) {
		return fmt.Errorf("expected a validation error, got %v", c.err)
	}
	for _, m := range engine.Messages(verr.Violations) {
		if m == message {
			return nil
		}
	}
	return fmt.Errorf("expected violation %q, got %v", message, engine.Messages(verr.Violations))
}

func (c *customizationTestContext) theOrderLineIsRecorded() error {
	if c.err != nil {
		return fmt.Errorf("expected submission to succeed: %v", c.err)
	}
	if len(c.sink.lines) != 1 || c.sink.lines[0].Line.ProductID != c.product.ID {
		return fmt.Errorf("expected one recorded line, got %+v", c.sink.lines)
	}
	return nil
}

func (c *customizationTestContext) submissionFailsBecauseNoValidPrice() error {
	if !errors.Is(c.err, domain.ErrNoValidPrice) {
		return fmt.Errorf("expected ErrNoValidPrice, got %v", c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &customizationTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a product "([^"]*)" with base price (\d+)$`, tc.aProductWithBasePrice)
	ctx.Step(`^a product "([^"]*)" without a price$`, tc.aProductWithoutAPrice)
	ctx.Step(`^the product has a discount price of (\d+)$`, tc.theProductHasADiscountPriceOf)
	ctx.Step(`^the product offers "([^"]*)" as an? (base|addon|ingredient|topping|sauce) at (\d+)$`, tc.theProductOffers)
	ctx.Step(`^the product gives (\d+) free ingredients with an excess price of (\d+)$`, tc.theProductGivesFreeIngredients)
	ctx.Step(`^the product allows at most (\d+) (toppings|sauces)$`, tc.theProductAllowsAtMost)
	ctx.Step(`^the product requires at least (\d+) (ingredient|topping|sauce)s?$`, tc.theProductRequiresAtLeast)

	// When steps
	ctx.Step(`^I open a customization session$`, tc.iOpenACustomizationSession)
	ctx.Step(`^I select the base "([^"]*)"$`, tc.iSelectTheBase)
	ctx.Step(`^I add (\d+) x (addon|ingredient|topping|sauce) "([^"]*)"$`, tc.iAdd)
	ctx.Step(`^I remove (\d+) x (addon|ingredient|topping|sauce) "([^"]*)"$`, tc.iRemove)
	ctx.Step(`^I set the quantity to (\d+)$`, tc.iSetTheQuantityTo)
	ctx.Step(`^I submit the session$`, tc.iSubmitTheSession)

	// Then steps
	ctx.Step(`^the unit price is (\d+)$`, tc.theUnitPriceIs)
	ctx.Step(`^the total is (\d+)$`, tc.theTotalIs)
	ctx.Step(`^the ingredient tier has (\d+) free and (\d+) paid costing (\d+)$`, tc.theIngredientTierHas)
	ctx.Step(`^the session has (\d+) x (addon|ingredient|topping|sauce) "([^"]*)"$`, tc.theSessionHas)
	ctx.Step(`^the last action changed nothing$`, tc.theLastActionChangedNothing)
	ctx.Step(`^submission is blocked with "([^"]*)"$`, tc.submissionIsBlockedWith)
	ctx.Step(`^the order line is recorded$`, tc.theOrderLineIsRecorded)
	ctx.Step(`^submission fails because the product has no valid price$`, tc.submissionFailsBecauseNoValidPrice)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"customization.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
