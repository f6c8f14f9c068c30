package handler

import (
	"net/http"

	"ziggler-bot/internal/logger"
	"ziggler-bot/internal/order"
	"ziggler-bot/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var delivery order.DeliveryInfo
	if err := decodeJSON(r, &delivery); err != nil {
		writeError(w, r, "placeOrder", errBadRequest)
		return
	}

	o, err := h.orders.PlaceOrder(r.Context(), order.PlaceOrderParams{
		UserID:   userIDFrom(r),
		Delivery: delivery,
	})
	if err != nil {
		writeError(w, r, "placeOrder", err)
		return
	}

	h.metrics.OrdersPlaced.Inc()
	logger.FromCtx(r.Context()).Info("order placed",
		zap.String("order_number", o.Number),
		zap.Int64("total_price", o.TotalPrice),
	)
	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context(), userIDFrom(r), utils.QueryInt(r, "limit", 0))
	if err != nil {
		writeError(w, r, "listOrders", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), mux.Vars(r)["number"], userIDFrom(r))
	if err != nil {
		writeError(w, r, "getOrder", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.CancelOrder(r.Context(), mux.Vars(r)["number"], userIDFrom(r))
	if err != nil {
		writeError(w, r, "cancelOrder", err)
		return
	}

	h.metrics.OrdersCanceled.Inc()
	utils.WriteJSON(w, http.StatusOK, o)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "updateOrderStatus", errBadRequest)
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), mux.Vars(r)["number"], req.Status)
	if err != nil {
		writeError(w, r, "updateOrderStatus", err)
		return
	}

	if o.Status == order.StatusCancelled {
		h.metrics.OrdersCanceled.Inc()
	}
	logger.FromCtx(r.Context()).Info("order status updated",
		zap.String("order_number", o.Number),
		zap.String("status", string(o.Status)),
	)
	utils.WriteJSON(w, http.StatusOK, o)
}
