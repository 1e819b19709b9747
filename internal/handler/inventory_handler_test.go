package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"go-sweetshop/internal/apperr"
	"go-sweetshop/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInventoryService struct {
	view *model.StockView
	err  error

	gotID       uint
	gotQuantity int
}

func (s *stubInventoryService) Purchase(sweetID uint, quantity int, principal model.Principal) (*model.StockView, error) {
	s.gotID, s.gotQuantity = sweetID, quantity
	return s.view, s.err
}

func (s *stubInventoryService) Restock(sweetID uint, quantity int, principal model.Principal) (*model.StockView, error) {
	s.gotID, s.gotQuantity = sweetID, quantity
	return s.view, s.err
}

func newInventoryApp(svc *stubInventoryService) *fiber.App {
	app := fiber.New()
	h := NewInventoryHandler(svc)
	app.Post("/api/sweets/:id/purchase", h.Purchase)
	app.Post("/api/sweets/:id/restock", h.Restock)
	return app
}

func postJSON(app *fiber.App, path, body string) (int, string) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		return 0, err.Error()
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestPurchaseHandler_Success(t *testing.T) {
	svc := &stubInventoryService{view: &model.StockView{SweetID: 1, SweetName: "Barfi", Quantity: 95}}
	app := newInventoryApp(svc)

	status, body := postJSON(app, "/api/sweets/1/purchase", `{"quantity": 5}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, uint(1), svc.gotID)
	assert.Equal(t, 5, svc.gotQuantity)

	var view model.StockView
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Equal(t, 95, view.Quantity)
}

func TestPurchaseHandler_MissingQuantityPassedAsZero(t *testing.T) {
	svc := &stubInventoryService{err: apperr.Validation("Purchase quantity must be greater than zero")}
	app := newInventoryApp(svc)

	status, body := postJSON(app, "/api/sweets/1/purchase", `{}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, 0, svc.gotQuantity)
	assert.Contains(t, body, "Purchase quantity must be greater than zero")
}

func TestPurchaseHandler_InvalidID(t *testing.T) {
	svc := &stubInventoryService{}
	app := newInventoryApp(svc)

	status, body := postJSON(app, "/api/sweets/abc/purchase", `{"quantity": 5}`)
	assert.Equal(t, 400, status)
	assert.Contains(t, body, "ID must be a positive number")
}

func TestPurchaseHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"insufficient stock", apperr.InsufficientStock(95, 150), 400},
		{"not found", apperr.NotFound("Sweet", 1), 404},
		{"forbidden", apperr.Forbidden("Only ADMIN users can restock inventory"), 403},
		{"invariant breach", apperr.Internal("stock update was not applied"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newInventoryApp(&stubInventoryService{err: tt.err})
			status, _ := postJSON(app, "/api/sweets/1/purchase", `{"quantity": 5}`)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestRestockHandler_ForbiddenBody(t *testing.T) {
	svc := &stubInventoryService{err: apperr.Forbidden("Only ADMIN users can restock inventory")}
	app := newInventoryApp(svc)

	status, body := postJSON(app, "/api/sweets/1/restock", `{"quantity": 50}`)
	assert.Equal(t, 403, status)
	assert.Contains(t, body, "Access Forbidden")
	assert.Contains(t, body, "Only ADMIN users can restock inventory")
}

func TestRestockHandler_Success(t *testing.T) {
	svc := &stubInventoryService{view: &model.StockView{SweetID: 2, SweetName: "Laddu", Quantity: 150}}
	app := newInventoryApp(svc)

	status, body := postJSON(app, "/api/sweets/2/restock", `{"quantity": 50}`)
	assert.Equal(t, 200, status)
	assert.Contains(t, body, `"quantity":150`)
	assert.Equal(t, uint(2), svc.gotID)
	assert.Equal(t, 50, svc.gotQuantity)
}
