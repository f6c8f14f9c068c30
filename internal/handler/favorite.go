package handler

import (
	"net/http"

	"ziggler-bot/internal/favorite"
	"ziggler-bot/internal/product"
	"ziggler-bot/internal/utils"

	"github.com/gorilla/mux"
)

type favoriteView struct {
	*favorite.Favorite
	EffectivePrice  int64 `json:"effective_price"`
	DiscountPercent int   `json:"discount_percent"`
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.favorites.List(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, r, "listFavorites", err)
		return
	}

	views := make([]favoriteView, 0, len(favs))
	for _, f := range favs {
		views = append(views, favoriteView{
			Favorite:        f,
			EffectivePrice:  f.EffectivePrice(),
			DiscountPercent: f.DiscountPercent(),
		})
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

type toggleFavoriteRequest struct {
	ProductID int64 `json:"product_id"`
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleFavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "toggleFavorite", errBadRequest)
		return
	}
	if req.ProductID <= 0 {
		writeError(w, r, "toggleFavorite", product.ErrProductNotFound)
		return
	}

	saved, err := h.favorites.Toggle(r.Context(), userIDFrom(r), req.ProductID)
	if err != nil {
		writeError(w, r, "toggleFavorite", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"favorite": saved})
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseInt64(mux.Vars(r)["product_id"])
	if !ok {
		writeError(w, r, "removeFavorite", favorite.ErrFavoriteNotFound)
		return
	}

	if err := h.favorites.Remove(r.Context(), userIDFrom(r), id); err != nil {
		writeError(w, r, "removeFavorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
