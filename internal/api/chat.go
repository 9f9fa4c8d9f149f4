package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/engine"
)

type chatMessageRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

func handleChatMessage(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req chatMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required")
			return
		}

		resp, err := deps.Engine.ProcessMessage(r.Context(), req.Message, req.ConversationID)
		if err != nil {
			slog.Error("processing chat message failed", "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "processing message: %v", err)
			return
		}

		slog.Debug("chat turn handled",
			"conversation_id", resp.ConversationID,
			"profile_detected", resp.ProfileDetected,
			"quoted", resp.Package != nil,
		)
		writeJSON(w, http.StatusOK, resp)
	}
}

type createLeadRequest struct {
	ConversationID string `json:"conversation_id"`
	Email          string `json:"email"`
}

func handleCreateLead(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req createLeadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.ConversationID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "conversation_id is required")
			return
		}

		leadID, err := deps.Engine.CreateLead(r.Context(), req.ConversationID, req.Email)
		if errors.Is(err, engine.ErrUnknownConversation) {
			httpError(w, http.StatusNotFound, "invalid_request_error", "unknown conversation %s", req.ConversationID)
			return
		}
		if err != nil {
			slog.Error("creating lead failed", "conversation_id", req.ConversationID, "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "creating lead: %v", err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"lead_id": leadID})
	}
}
