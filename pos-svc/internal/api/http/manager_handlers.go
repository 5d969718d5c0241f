package httpapi

import (
	"context"
	"net/http"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/service"

	"github.com/google/uuid"
)

type seatRequest struct {
	TableID uuid.UUID `json:"table_id"`
}

type addItemsRequest struct {
	Items []service.OrderItemInput `json:"items"`
}

type seatResponse struct {
	Entry *domain.WaitlistEntry `json:"entry"`
	Order *domain.Order         `json:"order"`
}

func (h *Handler) managerWaitlist(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := queryUUID(r, "restaurant_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	entries, err := h.Waitlist.ListForManager(r.Context(), auth.FromContext(r.Context()), restaurantID, r.URL.Query().Get("status"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type waitlistAction func(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.WaitlistEntry, error)

func (h *Handler) waitlistTransition(action waitlistAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		entry, err := action(r.Context(), auth.FromContext(r.Context()), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

func (h *Handler) callWaitlist(w http.ResponseWriter, r *http.Request) {
	h.waitlistTransition(h.Waitlist.Call)(w, r)
}

func (h *Handler) completeWaitlist(w http.ResponseWriter, r *http.Request) {
	h.waitlistTransition(h.Waitlist.Complete)(w, r)
}

func (h *Handler) cancelWaitlist(w http.ResponseWriter, r *http.Request) {
	h.waitlistTransition(h.Waitlist.Cancel)(w, r)
}

func (h *Handler) seatWaitlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req seatRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	entry, order, err := h.Waitlist.Seat(r.Context(), auth.FromContext(r.Context()), id, req.TableID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seatResponse{Entry: entry, Order: order})
}

func (h *Handler) activeOrders(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := queryUUID(r, "restaurant_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	orders, err := h.Orders.ListActive(r.Context(), auth.FromContext(r.Context()), restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type orderAction func(ctx context.Context, p auth.Principal, id uuid.UUID) (*domain.Order, error)

func (h *Handler) orderEndpoint(action orderAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		order, err := action(r.Context(), auth.FromContext(r.Context()), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	h.orderEndpoint(h.Orders.Get)(w, r)
}

func (h *Handler) sendOrder(w http.ResponseWriter, r *http.Request) {
	h.orderEndpoint(h.Orders.Send)(w, r)
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	h.orderEndpoint(h.Orders.Complete)(w, r)
}

func (h *Handler) addOrderItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req addItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.AddItems(r.Context(), auth.FromContext(r.Context()), id, req.Items)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) tablesOverview(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := queryUUID(r, "restaurant_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	overview, err := h.Orders.TablesOverview(r.Context(), auth.FromContext(r.Context()), restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *Handler) dailyStats(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := queryUUID(r, "restaurant_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	stats, err := h.Restaurants.DailyStats(r.Context(), auth.FromContext(r.Context()), restaurantID, r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// liveFeed authorizes before the upgrade; errors after it cannot be reported as JSON.
func (h *Handler) liveFeed(w http.ResponseWriter, r *http.Request) {
	explicit, err := queryUUID(r, "restaurant_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p := auth.FromContext(r.Context())
	if err := auth.Require(p, domain.RoleManager, nil); err != nil {
		h.writeError(w, r, err)
		return
	}
	target := p.Scope(explicit)
	if target == nil {
		h.writeError(w, r, badRequest("restaurant_id is required"))
		return
	}
	if err := auth.Require(p, domain.RoleManager, target); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.Hub.ServeWS(w, r, *target)
}
