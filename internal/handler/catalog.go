package handler

import (
	"net/http"

	"ziggler-bot/internal/category"
	"ziggler-bot/internal/product"
	"ziggler-bot/internal/utils"

	"github.com/gorilla/mux"
)

type categoryView struct {
	*category.Category
	DisplayName   string          `json:"display_name"`
	Subcategories []*categoryView `json:"subcategories,omitempty"`
}

func localize(c *category.Category, lang string) *categoryView {
	v := &categoryView{Category: c, DisplayName: c.LocalizedName(lang)}
	for _, sub := range c.Subcategories {
		v.Subcategories = append(v.Subcategories, localize(sub, lang))
	}
	return v
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, "listCategories", err)
		return
	}

	lang := r.URL.Query().Get("lang")
	views := make([]*categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, localize(c, lang))
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) listCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseInt64(mux.Vars(r)["id"])
	if !ok {
		writeError(w, r, "listCategoryProducts", category.ErrCategoryNotFound)
		return
	}

	if _, err := h.categories.GetCategory(r.Context(), id); err != nil {
		writeError(w, r, "listCategoryProducts", err)
		return
	}

	res, err := h.products.ListByCategory(
		r.Context(),
		id,
		utils.QueryInt(r, "skip", 0),
		utils.QueryInt(r, "limit", 0),
	)
	if err != nil {
		writeError(w, r, "listCategoryProducts", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Search(r.Context(), r.URL.Query().Get("q"), utils.QueryInt(r, "limit", 0))
	if err != nil {
		writeError(w, r, "searchProducts", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) featuredProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Featured(r.Context(), utils.QueryInt(r, "limit", 0))
	if err != nil {
		writeError(w, r, "featuredProducts", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

type productCard struct {
	*product.Product
	EffectivePrice int64             `json:"effective_price"`
	Variants       *product.Variants `json:"variants"`
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseInt64(mux.Vars(r)["id"])
	if !ok {
		writeError(w, r, "getProduct", product.ErrProductNotFound)
		return
	}

	p, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, "getProduct", err)
		return
	}
	variants, err := h.products.ListVariants(r.Context(), id)
	if err != nil {
		writeError(w, r, "getProduct", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, productCard{
		Product:        p,
		EffectivePrice: p.EffectivePrice(),
		Variants:       variants,
	})
}
