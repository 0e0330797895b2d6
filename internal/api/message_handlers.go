package api

import (
	"net/http"

	"rentx/internal/entities"
	"rentx/internal/service"
	"rentx/internal/validation"
)

type MessageHandler struct {
	Service   *service.MessageService
	Validator *validation.Validator
}

func NewMessageHandler(svc *service.MessageService, v *validation.Validator) *MessageHandler {
	return &MessageHandler{Service: svc, Validator: v}
}

// Create handles POST /api/messages (public contact form).
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Validator.Validate(req); err != nil {
		writeError(w, err)
		return
	}
	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// ToggleStatus flips a message between read and unread.
func (h *MessageHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.Service.ToggleStatus(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Message deleted"})
}
