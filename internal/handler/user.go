package handler

import (
	"net/http"

	"ziggler-bot/internal/user"
	"ziggler-bot/internal/utils"
)

type upsertUserRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

func (h *Handler) upsertUser(w http.ResponseWriter, r *http.Request) {
	var req upsertUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "upsertUser", errBadRequest)
		return
	}

	u, err := h.users.Upsert(r.Context(), user.UpsertParams{
		ID:       userIDFrom(r),
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(w, r, "upsertUser", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, r, "getMe", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

type updateMeRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "updateMe", errBadRequest)
		return
	}

	u, err := h.users.UpdateContact(r.Context(), user.UpdateContactParams{
		UserID:   userIDFrom(r),
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		writeError(w, r, "updateMe", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) toggleNotifications(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.users.ToggleNotifications(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, r, "toggleNotifications", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"notifications_enabled": enabled})
}

type languageRequest struct {
	Language string `json:"language"`
}

func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "setLanguage", errBadRequest)
		return
	}

	if err := h.users.SetLanguage(r.Context(), userIDFrom(r), req.Language); err != nil {
		writeError(w, r, "setLanguage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
