package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/go-storefront-checkout.git/internal/checkout"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	Ingest  *checkout.Service
	Query   *checkout.QueryService
	Catalog checkout.CatalogStore
}

type CreateOrderReq struct {
	Items      []OrderItemReq      `json:"items"`
	Address    checkout.AddressRef `json:"address"`
	GuestEmail string              `json:"guestEmail"`
}

type OrderItemReq struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/order/create", h.createOrder)
	r.Get("/api/order/list", h.listOrders)
	r.Get("/api/product/list", h.listProducts)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items := make([]checkout.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, checkout.OrderItem{ProductID: it.Product, Qty: it.Quantity})
	}

	o, err := h.Ingest.CreateOrder(ctx, checkout.CreateOrderInput{
		UserID:     Identity(r).UserID,
		GuestEmail: req.GuestEmail,
		Items:      items,
		Address:    req.Address,
		TraceID:    r.Header.Get("X-Request-Id"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Order Placed",
		"order":   checkout.NewOrderPayload(o),
	})
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	views, err := h.Query.Find(ctx, Identity(r).UserID, checkout.QueryParams{
		OrderID:    r.URL.Query().Get("orderId"),
		GuestEmail: r.URL.Query().Get("guestEmail"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": views})
}

func (h *OrdersHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	products, err := h.Catalog.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if products == nil {
		products = []checkout.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "products": products})
}
