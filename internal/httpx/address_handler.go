package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/go-storefront-checkout.git/internal/checkout"
	"github.com/go-chi/chi/v5"
)

type AddressHandler struct {
	Book checkout.AddressBook
}

type AddressView struct {
	ID string `json:"id"`
	checkout.AddressSnapshot
}

type saveAddressReq struct {
	AddressID string                   `json:"addressId"`
	Address   checkout.AddressSnapshot `json:"address"`
}

func (h *AddressHandler) Register(r *chi.Mux) {
	r.Get("/api/user/get-address", h.list)
	r.Post("/api/user/add-address", h.add)
	r.Put("/api/user/update-address", h.update)
	r.Delete("/api/user/delete-address", h.remove)
}

func (h *AddressHandler) list(w http.ResponseWriter, r *http.Request) {
	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	addresses, err := h.Book.ByUser(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]AddressView, 0, len(addresses))
	for _, a := range addresses {
		views = append(views, AddressView{ID: a.ID, AddressSnapshot: a.AddressSnapshot})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "addresses": views})
}

func (h *AddressHandler) add(w http.ResponseWriter, r *http.Request) {
	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	var req saveAddressReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	a, err := h.Book.Create(ctx, checkout.Address{UserID: userID, AddressSnapshot: req.Address})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Address added successfully",
		"address": AddressView{ID: a.ID, AddressSnapshot: a.AddressSnapshot},
	})
}

func (h *AddressHandler) update(w http.ResponseWriter, r *http.Request) {
	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	var req saveAddressReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AddressID == "" {
		writeError(w, http.StatusBadRequest, "addressId and updated data are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	a, err := h.Book.Update(ctx, userID, req.AddressID, req.Address)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Address updated successfully",
		"address": AddressView{ID: a.ID, AddressSnapshot: a.AddressSnapshot},
	})
}

func (h *AddressHandler) remove(w http.ResponseWriter, r *http.Request) {
	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	var req saveAddressReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AddressID == "" {
		writeError(w, http.StatusBadRequest, "addressId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Book.Delete(ctx, userID, req.AddressID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Address deleted successfully"})
}
