package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/engine"
	"github.com/Victor-armando18/menu-customizer/internal/domain/model"
	"github.com/Victor-armando18/menu-customizer/internal/domain/session"
	"github.com/Victor-armando18/menu-customizer/internal/usecase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CustomizationFacade is what the HTTP layer needs from the customization service.
type CustomizationFacade interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	Quote(ctx context.Context, req usecase.QuoteRequest) (*usecase.QuoteResult, error)
	PatchQuote(ctx context.Context, req usecase.QuoteRequest, patch []byte) (*usecase.QuoteResult, error)
	SubmitSelection(ctx context.Context, snap model.Snapshot) (*domain.SubmittedLine, error)
	OpenSession(ctx context.Context, productID string) (*usecase.SessionView, error)
	ApplyAction(ctx context.Context, id string, action session.Action) (*usecase.SessionView, error)
	GetSession(ctx context.Context, id string) (*usecase.SessionView, error)
	SubmitSession(ctx context.Context, id string) (*domain.SubmittedLine, error)
	CloseSession(ctx context.Context, id string) error
}

type PatchRequest struct {
	Request usecase.QuoteRequest `json:"request"`
	Patch   json.RawMessage      `json:"patch"`
}

type OpenSessionRequest struct {
	ProductID string `json:"productId"`
}

type errorResponse struct {
	Error      string             `json:"error"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

type handlers struct {
	svc CustomizationFacade
	log *zap.Logger
}

func (h *handlers) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) listProducts(c echo.Context) error {
	products, err := h.svc.ListProducts(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *handlers) getProduct(c echo.Context) error {
	p, err := h.svc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *handlers) quote(c echo.Context) error {
	var req usecase.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	res, err := h.svc.Quote(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *handlers) patchQuote(c echo.Context) error {
	var req PatchRequest
	if err := c.Bind(&req); err != nil || len(req.Patch) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid patch request"})
	}
	res, err := h.svc.PatchQuote(c.Request().Context(), req.Request, req.Patch)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *handlers) submitSelection(c echo.Context) error {
	var snap model.Snapshot
	if err := c.Bind(&snap); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	sub, err := h.svc.SubmitSelection(c.Request().Context(), snap)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *handlers) openSession(c echo.Context) error {
	var req OpenSessionRequest
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "productId is required"})
	}
	view, err := h.svc.OpenSession(c.Request().Context(), req.ProductID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *handlers) getSession(c echo.Context) error {
	view, err := h.svc.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *handlers) applyAction(c echo.Context) error {
	var action session.Action
	if err := c.Bind(&action); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid action"})
	}
	view, err := h.svc.ApplyAction(c.Request().Context(), c.Param("id"), action)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *handlers) submitSession(c echo.Context) error {
	sub, err := h.svc.SubmitSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *handlers) closeSession(c echo.Context) error {
	if err := h.svc.CloseSession(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// fail maps service errors onto HTTP statuses.
func (h *handlers) fail(c echo.Context, err error) error {
	var verr *engine.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "selection is not valid", Violations: verr.Violations})
	case errors.Is(err, domain.ErrNoValidPrice):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "this product cannot be ordered right now"})
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSessionClosed):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnknownGroup),
		errors.Is(err, domain.ErrUnknownOption),
		errors.Is(err, domain.ErrOptionUnavailable),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, session.ErrUnknownAction),
		errors.Is(err, usecase.ErrInvalidPatch):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
