package handler

import (
	"net/http"

	"ziggler-bot/internal/cart"
	"ziggler-bot/internal/utils"
)

type cartItemRequest struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	Cart  *cart.Cart `json:"cart"`
	Quote cart.Quote `json:"quote"`
}

func newCartResponse(c *cart.Cart) cartResponse {
	return cartResponse{Cart: c, Quote: c.Quote()}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.GetCart(r.Context(), ownerFrom(r))
	if err != nil {
		writeError(w, r, "getCart", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, newCartResponse(c))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "addCartItem", errBadRequest)
		return
	}

	c, err := h.carts.AddItem(r.Context(), cart.AddItemParams{
		Owner:     ownerFrom(r),
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, r, "addCartItem", err)
		return
	}

	h.metrics.CartMutations.Inc()
	utils.WriteJSON(w, http.StatusOK, newCartResponse(c))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "updateCartItem", errBadRequest)
		return
	}

	c, err := h.carts.UpdateItem(r.Context(), cart.UpdateItemParams{
		Owner:     ownerFrom(r),
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, r, "updateCartItem", err)
		return
	}

	h.metrics.CartMutations.Inc()
	utils.WriteJSON(w, http.StatusOK, newCartResponse(c))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), ownerFrom(r)); err != nil {
		writeError(w, r, "clearCart", err)
		return
	}

	h.metrics.CartMutations.Inc()
	w.WriteHeader(http.StatusNoContent)
}
