package handler

import (
	"encoding/json"
	"net/http"

	"ziggler-bot/internal/cart"
	"ziggler-bot/internal/category"
	"ziggler-bot/internal/favorite"
	"ziggler-bot/internal/metrics"
	"ziggler-bot/internal/middleware"
	"ziggler-bot/internal/order"
	"ziggler-bot/internal/product"
	"ziggler-bot/internal/user"
	"ziggler-bot/internal/utils"

	"github.com/gorilla/mux"
)

// Handler is the JSON adapter the chat gateway talks to. It renders nothing:
// prices stay integers and timestamps stay RFC 3339.
type Handler struct {
	categories category.Service
	products   product.Service
	carts      cart.Service
	orders     order.Service
	users      user.Service
	favorites  favorite.Service
	metrics    *metrics.Registry
	contacts   Contacts
}

// Contacts is what GET /contacts hands to the gateway's help screen.
type Contacts struct {
	SupportEmail string `json:"support_email"`
}

func New(
	categories category.Service,
	products product.Service,
	carts cart.Service,
	orders order.Service,
	users user.Service,
	favorites favorite.Service,
	reg *metrics.Registry,
	contacts Contacts,
) *Handler {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Handler{
		categories: categories,
		products:   products,
		carts:      carts,
		orders:     orders,
		users:      users,
		favorites:  favorites,
		metrics:    reg,
		contacts:   contacts,
	}
}

// Routes registers every endpoint on r. isAdmin decides admin access for
// callers without the ADMIN role.
func (h *Handler) Routes(r *mux.Router, isAdmin func(int64) bool) {
	wrap := func(f http.HandlerFunc, mws ...func(http.Handler) http.Handler) http.Handler {
		var next http.Handler = f
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
	identity := middleware.RequireIdentity
	userOnly := middleware.RequireUser
	admin := middleware.RequireAdmin(isAdmin)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/contacts", h.getContacts).Methods(http.MethodGet)

	// users
	r.Handle("/users", wrap(h.upsertUser, userOnly)).Methods(http.MethodPost)
	r.Handle("/me", wrap(h.getMe, userOnly)).Methods(http.MethodGet)
	r.Handle("/me", wrap(h.updateMe, userOnly)).Methods(http.MethodPatch)
	r.Handle("/me/notifications", wrap(h.toggleNotifications, userOnly)).Methods(http.MethodPost)
	r.Handle("/me/language", wrap(h.setLanguage, userOnly)).Methods(http.MethodPut)

	// favorites
	r.Handle("/me/favorites", wrap(h.listFavorites, userOnly)).Methods(http.MethodGet)
	r.Handle("/me/favorites", wrap(h.toggleFavorite, userOnly)).Methods(http.MethodPost)
	r.Handle("/me/favorites/{product_id}", wrap(h.removeFavorite, userOnly)).Methods(http.MethodDelete)

	// catalog
	r.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}/products", h.listCategoryProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/search", h.searchProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/featured", h.featuredProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)

	// cart
	r.Handle("/cart", wrap(h.getCart, identity)).Methods(http.MethodGet)
	r.Handle("/cart/items", wrap(h.addCartItem, identity)).Methods(http.MethodPost)
	r.Handle("/cart/items", wrap(h.updateCartItem, identity)).Methods(http.MethodPatch)
	r.Handle("/cart", wrap(h.clearCart, identity)).Methods(http.MethodDelete)

	// orders
	r.Handle("/orders", wrap(h.placeOrder, userOnly)).Methods(http.MethodPost)
	r.Handle("/orders", wrap(h.listOrders, userOnly)).Methods(http.MethodGet)
	r.Handle("/orders/{number}", wrap(h.getOrder, userOnly)).Methods(http.MethodGet)
	r.Handle("/orders/{number}/cancel", wrap(h.cancelOrder, userOnly)).Methods(http.MethodPost)
	r.Handle("/admin/orders/{number}/status", wrap(h.updateOrderStatus, admin)).Methods(http.MethodPatch)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *Handler) getContacts(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.contacts)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func ownerFrom(r *http.Request) cart.Owner {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return cart.Owner{UserID: id, SessionID: utils.GetSessionIDFromContext(r.Context())}
}

func userIDFrom(r *http.Request) int64 {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return id
}
