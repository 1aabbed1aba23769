package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/ariefcatur/go-storefront-checkout.git/internal/checkout"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	Carts   *checkout.CartService
	Catalog checkout.CatalogStore
}

type UpdateCartReq struct {
	CartData checkout.Cart `json:"cartData"`
}

type CartItemReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Get("/api/cart", h.getCart)
	r.Post("/api/cart/update", h.updateCart)
	r.Post("/api/cart/add", h.addItem)
	r.Post("/api/cart/item", h.setQuantity)
}

func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Carts.Get(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	prices, err := h.Catalog.OfferPrices(ctx, ids)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"cartItems": c,
		"count":     c.Count(),
		"amount":    c.AmountCents(prices),
	})
}

func (h *CartHandler) updateCart(w http.ResponseWriter, r *http.Request) {
	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	var req UpdateCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.CartData == nil {
		req.CartData = checkout.Cart{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Carts.Replace(ctx, userID, req.CartData); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Cart updated"})
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	var req CartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Carts.Add(ctx, userID, req.ProductID)
	h.writeCartMutation(w, c, err, "Item added to cart")
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	var req CartItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Carts.SetQuantity(ctx, userID, req.ProductID, req.Quantity)
	h.writeCartMutation(w, c, err, "Cart updated")
}

// writeCartMutation reports a failed mirror write as a warning, not a
// failure: the returned cart already carries the mutation.
func (h *CartHandler) writeCartMutation(w http.ResponseWriter, c checkout.Cart, err error, msg string) {
	var mirror *checkout.MirrorWriteError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": msg, "cartItems": c})
	case errors.As(err, &mirror):
		log.Printf("%v", mirror)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"message":   msg + " (account sync pending)",
			"cartItems": c,
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
