package httpapi

import (
	"context"
	"net/http"
	"time"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/service"

	"github.com/gorilla/mux"
)

type PrincipalResolver interface {
	Resolve(ctx context.Context, bearer string) (auth.Principal, error)
}

type Services struct {
	Auth        service.AuthServiceInterface
	Waitlist    service.WaitlistServiceInterface
	Orders      service.OrderServiceInterface
	Menu        service.MenuServiceInterface
	Tables      service.TableServiceInterface
	Restaurants service.RestaurantServiceInterface
	Staff       service.StaffServiceInterface
}

type Handler struct {
	Services
	Hub      *Hub
	Resolver PrincipalResolver
	Debug    bool
}

func NewHandler(svcs Services, hub *Hub, resolver PrincipalResolver, debug bool) *Handler {
	return &Handler{
		Services: svcs,
		Hub:      hub,
		Resolver: resolver,
		Debug:    debug,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.authenticate)

	api.HandleFunc("/auth/login", h.login).Methods("POST")
	api.HandleFunc("/auth/me", h.me).Methods("GET")

	api.HandleFunc("/guest/menu", h.guestMenu).Methods("GET")
	api.HandleFunc("/guest/order", h.guestOrder).Methods("POST")
	api.HandleFunc("/guest/waitlist", h.registerWaitlist).Methods("POST")
	api.HandleFunc("/guest/waitlist", h.guestWaitlist).Methods("GET")

	api.HandleFunc("/manager/waitlist", h.managerWaitlist).Methods("GET")
	api.HandleFunc("/manager/waitlist/{id}/call", h.callWaitlist).Methods("POST")
	api.HandleFunc("/manager/waitlist/{id}/seat", h.seatWaitlist).Methods("POST")
	api.HandleFunc("/manager/waitlist/{id}/complete", h.completeWaitlist).Methods("POST")
	api.HandleFunc("/manager/waitlist/{id}/cancel", h.cancelWaitlist).Methods("POST")
	api.HandleFunc("/manager/orders/active", h.activeOrders).Methods("GET")
	api.HandleFunc("/manager/orders/{id}", h.getOrder).Methods("GET")
	api.HandleFunc("/manager/orders/{id}/items", h.addOrderItems).Methods("POST")
	api.HandleFunc("/manager/orders/{id}/send", h.sendOrder).Methods("POST")
	api.HandleFunc("/manager/orders/{id}/complete", h.completeOrder).Methods("POST")
	api.HandleFunc("/manager/tables", h.tablesOverview).Methods("GET")
	api.HandleFunc("/manager/stats", h.dailyStats).Methods("GET")
	api.HandleFunc("/manager/live", h.liveFeed).Methods("GET")

	admin := api.PathPrefix("/admin/restaurants").Subrouter()
	admin.HandleFunc("", h.listRestaurants).Methods("GET")
	admin.HandleFunc("/new", h.createRestaurant).Methods("POST")
	admin.HandleFunc("/{id}", h.getRestaurant).Methods("GET")
	admin.HandleFunc("/{id}/delete", h.deleteRestaurant).Methods("POST")

	admin.HandleFunc("/{id}/menu/categories", h.listCategories).Methods("GET")
	admin.HandleFunc("/{id}/menu/categories", h.createCategory).Methods("POST")
	admin.HandleFunc("/{id}/menu/categories/{categoryId}", h.updateCategory).Methods("PUT")
	admin.HandleFunc("/{id}/menu/categories/{categoryId}", h.deleteCategory).Methods("DELETE")
	admin.HandleFunc("/{id}/menu/items", h.listItems).Methods("GET")
	admin.HandleFunc("/{id}/menu/items", h.createItem).Methods("POST")
	admin.HandleFunc("/{id}/menu/items/{itemId}", h.getItem).Methods("GET")
	admin.HandleFunc("/{id}/menu/items/{itemId}", h.updateItem).Methods("PUT")
	admin.HandleFunc("/{id}/menu/items/{itemId}", h.deleteItem).Methods("DELETE")
	admin.HandleFunc("/{id}/menu/items/{itemId}/image", h.uploadItemImage).Methods("POST")
	admin.HandleFunc("/{id}/menu/items/{itemId}/option-groups", h.createOptionGroup).Methods("POST")
	admin.HandleFunc("/{id}/menu/option-groups/{groupId}", h.deleteOptionGroup).Methods("DELETE")
	admin.HandleFunc("/{id}/menu/option-groups/{groupId}/options", h.createOption).Methods("POST")
	admin.HandleFunc("/{id}/menu/options/{optionId}", h.deleteOption).Methods("DELETE")

	admin.HandleFunc("/{id}/tables", h.listTables).Methods("GET")
	admin.HandleFunc("/{id}/tables", h.resizeTables).Methods("POST")
	admin.HandleFunc("/{id}/tables/{tableId}/qr.png", h.tableQR).Methods("GET")
	admin.HandleFunc("/{id}/qr/regenerate", h.rotateTokens).Methods("POST")
	admin.HandleFunc("/{id}/qr/waitlist.png", h.waitlistQR).Methods("GET")

	admin.HandleFunc("/{id}/users", h.listStaff).Methods("GET")
	admin.HandleFunc("/{id}/users", h.createStaff).Methods("POST")
	admin.HandleFunc("/{id}/users/{userId}", h.updateStaff).Methods("PUT")
	admin.HandleFunc("/{id}/users/{userId}", h.deleteStaff).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "pos-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	result, err := h.Auth.Login(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	p := auth.FromContext(r.Context())
	if !p.Authenticated() {
		h.writeError(w, r, auth.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
