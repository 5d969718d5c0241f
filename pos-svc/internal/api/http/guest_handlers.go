package httpapi

import (
	"net/http"

	"mfood/pos-svc/internal/service"
)

func (h *Handler) guestMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Menu.GuestMenu(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) guestOrder(w http.ResponseWriter, r *http.Request) {
	var in service.GuestOrderInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.Orders.PlaceGuestOrder(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) registerWaitlist(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterWaitlistInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	entry, err := h.Waitlist.Register(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// guestWaitlist returns the masked queue, or a single entry's status when id is given.
func (h *Handler) guestWaitlist(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := queryUUID(r, "restaurant_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if restaurantID == nil {
		h.writeError(w, r, badRequest("restaurant_id is required"))
		return
	}
	id, err := queryUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if id != nil {
		entry, err := h.Waitlist.Status(r.Context(), *restaurantID, *id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
		return
	}

	entries, err := h.Waitlist.ListWaiting(r.Context(), *restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
