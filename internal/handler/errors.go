package handler

import (
	"errors"
	"net/http"

	"ziggler-bot/internal/cart"
	"ziggler-bot/internal/category"
	"ziggler-bot/internal/favorite"
	"ziggler-bot/internal/logger"
	"ziggler-bot/internal/order"
	"ziggler-bot/internal/product"
	"ziggler-bot/internal/user"
	"ziggler-bot/internal/utils"

	"go.uber.org/zap"
)

var errBadRequest = errors.New("malformed request body")

var notFound = []error{
	product.ErrProductNotFound,
	category.ErrCategoryNotFound,
	cart.ErrCartNotFound,
	cart.ErrItemNotFound,
	order.ErrOrderNotFound,
	user.ErrUserNotFound,
	favorite.ErrFavoriteNotFound,
}

var badRequest = []error{
	errBadRequest,
	product.ErrEmptySearch,
	cart.ErrInvalidQuantity,
	cart.ErrInvalidVariant,
	cart.ErrInvalidOwner,
	order.ErrInvalidDelivery,
	order.ErrInvalidStatus,
	user.ErrInvalidUser,
	user.ErrInvalidEmail,
	user.ErrInvalidPhone,
	user.ErrUnsupportedLanguage,
	favorite.ErrInvalidUser,
}

var conflict = []error{
	cart.ErrConcurrentUpdate,
	order.ErrInvalidTransition,
}

func matches(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func statusFor(err error) int {
	switch {
	case matches(err, notFound):
		return http.StatusNotFound
	case matches(err, badRequest):
		return http.StatusBadRequest
	case matches(err, conflict):
		return http.StatusConflict
	case errors.Is(err, order.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeError maps a domain error to its status. Infrastructure failures are
// logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := statusFor(err)
	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "handler"),
		zap.String("op", op),
	)

	if code == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", code)
		return
	}

	log.Info("request rejected", zap.Int("status", code), zap.Error(err))
	utils.WriteJSONError(w, err.Error(), code)
}
