package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nexodus/nexodus-api/internal/api/middleware"
	"github.com/nexodus/nexodus-api/internal/api/response"
	"github.com/nexodus/nexodus-api/internal/domain"
	"github.com/nexodus/nexodus-api/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatHandler handles the chat endpoints
type ChatHandler struct {
	chats *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chats *service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// Create handles POST /chats/Chat: a new chat opened by a user message.
func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}

	var msg domain.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	id, err := h.chats.Create(r.Context(), userID, msg)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, map[string]string{"id": id.Hex()})
}

// Get handles GET /chats/Chat?id=
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}

	chatID, ok := chatIDFromQuery(w, r)
	if !ok {
		return
	}

	chat, err := h.chats.Get(r.Context(), userID, chatID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, chat)
}

// List handles GET /chats/list, newest chat first.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}

	summaries, err := h.chats.List(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, summaries)
}

// Rename handles PUT /chats/Chat
func (h *ChatHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}

	var input domain.ChatRename
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	chatID, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		response.BadRequest(w, "Invalid chat id.")
		return
	}

	if err := h.chats.Rename(r.Context(), userID, chatID, input.Title); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "Chat renamed."})
}

// Append handles PUT /chats/append?id=
func (h *ChatHandler) Append(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}

	chatID, ok := chatIDFromQuery(w, r)
	if !ok {
		return
	}

	var msg domain.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.chats.Append(r.Context(), userID, chatID, msg); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "Message appended."})
}

// Delete handles DELETE /chats/Chat?id=
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.RequireUserID(w, r)
	if !ok {
		return
	}

	chatID, ok := chatIDFromQuery(w, r)
	if !ok {
		return
	}

	if err := h.chats.Delete(r.Context(), userID, chatID); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "Chat deleted."})
}

func chatIDFromQuery(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		response.BadRequest(w, "Missing chat id.")
		return primitive.NilObjectID, false
	}

	chatID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		response.BadRequest(w, "Invalid chat id.")
		return primitive.NilObjectID, false
	}
	return chatID, true
}
