package httpapi

import (
	"net/http"

	"mfood/pos-svc/internal/auth"
	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/service"

	"github.com/google/uuid"
)

const maxImageSize = 10 << 20

// restaurantAndID parses the {id} restaurant segment plus one nested id.
func restaurantAndID(r *http.Request, name string) (uuid.UUID, uuid.UUID, error) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := pathUUID(r, name)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return restaurantID, id, nil
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.List(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var in service.CreateRestaurantInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	rest, err := h.Restaurants.Create(r.Context(), auth.FromContext(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rest, err := h.Restaurants.Get(r.Context(), auth.FromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Restaurants.Delete(r.Context(), auth.FromContext(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	categories, err := h.Menu.ListCategories(r.Context(), auth.FromContext(r.Context()), restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	category, err := h.Menu.CreateCategory(r.Context(), auth.FromContext(r.Context()), restaurantID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	restaurantID, id, err := restaurantAndID(r, "categoryId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	category, err := h.Menu.UpdateCategory(r.Context(), auth.FromContext(r.Context()), restaurantID, id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	restaurantID, id, err := restaurantAndID(r, "categoryId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Menu.DeleteCategory(r.Context(), auth.FromContext(r.Context()), restaurantID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items, err := h.Menu.ListItems(r.Context(), auth.FromContext(r.Context()), restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, id, err := restaurantAndID(r, "itemId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.Menu.GetItem(r.Context(), auth.FromContext(r.Context()), restaurantID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.Menu.CreateItem(r.Context(), auth.FromContext(r.Context()), restaurantID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, id, err := restaurantAndID(r, "itemId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.ItemPatchInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.Menu.UpdateItem(r.Context(), auth.FromContext(r.Context()), restaurantID, id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, id, err := restaurantAndID(r, "itemId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Menu.DeleteItem(r.Context(), auth.FromContext(r.Context()), restaurantID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadItemImage(w http.ResponseWriter, r *http.Request) {
	restaurantID, id, err := restaurantAndID(r, "itemId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p := auth.FromContext(r.Context())
	// the body is only read once the caller may edit this restaurant's menu
	if err := auth.Require(p, domain.RoleManager, &restaurantID); err != nil {
		h.writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+1<<20)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		h.writeError(w, r, badRequest("file too large or malformed upload"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, r, badRequest("image file is required"))
		return
	}
	defer file.Close()
	if header.Size > maxImageSize {
		h.writeError(w, r, badRequest("file too large: maximum is 10 MiB"))
		return
	}

	item, err := h.Menu.UploadItemImage(r.Context(), p, restaurantID, id, service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createOptionGroup(w http.ResponseWriter, r *http.Request) {
	restaurantID, itemID, err := restaurantAndID(r, "itemId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.OptionGroupInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	group, err := h.Menu.CreateOptionGroup(r.Context(), auth.FromContext(r.Context()), restaurantID, itemID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *Handler) deleteOptionGroup(w http.ResponseWriter, r *http.Request) {
	restaurantID, id, err := restaurantAndID(r, "groupId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Menu.DeleteOptionGroup(r.Context(), auth.FromContext(r.Context()), restaurantID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createOption(w http.ResponseWriter, r *http.Request) {
	restaurantID, groupID, err := restaurantAndID(r, "groupId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.OptionInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	option, err := h.Menu.CreateOption(r.Context(), auth.FromContext(r.Context()), restaurantID, groupID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, option)
}

func (h *Handler) deleteOption(w http.ResponseWriter, r *http.Request) {
	restaurantID, id, err := restaurantAndID(r, "optionId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Menu.DeleteOption(r.Context(), auth.FromContext(r.Context()), restaurantID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tables, err := h.Tables.List(r.Context(), auth.FromContext(r.Context()), restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) resizeTables(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.ResizeTablesInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	tables, err := h.Tables.Resize(r.Context(), auth.FromContext(r.Context()), restaurantID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) rotateTokens(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.RotateTokensInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	result, err := h.Tables.RotateTokens(r.Context(), auth.FromContext(r.Context()), restaurantID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

func (h *Handler) tableQR(w http.ResponseWriter, r *http.Request) {
	restaurantID, tableID, err := restaurantAndID(r, "tableId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	png, err := h.Tables.TableQR(r.Context(), auth.FromContext(r.Context()), restaurantID, tableID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writePNG(w, png)
}

func (h *Handler) waitlistQR(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	png, err := h.Tables.WaitlistQR(r.Context(), auth.FromContext(r.Context()), restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writePNG(w, png)
}

func (h *Handler) listStaff(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	profiles, err := h.Staff.List(r.Context(), auth.FromContext(r.Context()), restaurantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *Handler) createStaff(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.CreateStaffInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	profile, err := h.Staff.Create(r.Context(), auth.FromContext(r.Context()), restaurantID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *Handler) updateStaff(w http.ResponseWriter, r *http.Request) {
	restaurantID, userID, err := restaurantAndID(r, "userId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in service.UpdateStaffInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	profile, err := h.Staff.Update(r.Context(), auth.FromContext(r.Context()), restaurantID, userID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) deleteStaff(w http.ResponseWriter, r *http.Request) {
	restaurantID, userID, err := restaurantAndID(r, "userId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Staff.Delete(r.Context(), auth.FromContext(r.Context()), restaurantID, userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
