package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/storage"
)

type destinationPayload struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	BestMonths    string `json:"best_months"`
	IdealProfiles string `json:"ideal_profiles"`
	AirportCodes  string `json:"airport_codes"`
	Status        string `json:"status"`
}

type destinationResponse struct {
	ID int64 `json:"id"`
	destinationPayload
}

func toDestinationResponse(d storage.Destination) destinationResponse {
	return destinationResponse{
		ID: d.ID,
		destinationPayload: destinationPayload{
			Name:          d.Name,
			Description:   d.Description,
			BestMonths:    d.BestMonths,
			IdealProfiles: d.IdealProfiles,
			AirportCodes:  d.AirportCodes,
			Status:        d.Status,
		},
	}
}

// handleListDestinations serves the public catalog: active entries only.
func handleListDestinations(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		destinations, err := deps.Store.ListActiveDestinations(r.Context())
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing destinations: %v", err)
			return
		}
		resp := make([]destinationResponse, 0, len(destinations))
		for _, d := range destinations {
			resp = append(resp, toDestinationResponse(d))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleGetDestination(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid destination id")
			return
		}
		d, err := deps.Store.GetDestination(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "invalid_request_error", "destination %d not found", id)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "loading destination: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, toDestinationResponse(d))
	}
}

func handleCreateDestination(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req destinationPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Name == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name is required")
			return
		}

		id, err := deps.Store.CreateDestination(r.Context(), storage.Destination{
			Name:          req.Name,
			Description:   req.Description,
			BestMonths:    req.BestMonths,
			IdealProfiles: req.IdealProfiles,
			AirportCodes:  req.AirportCodes,
			Status:        req.Status,
		})
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "creating destination: %v", err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": id})
	}
}

func handleUpdateDestination(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid destination id")
			return
		}
		var req destinationPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		err = deps.Store.UpdateDestination(r.Context(), storage.Destination{
			ID:            id,
			Name:          req.Name,
			Description:   req.Description,
			BestMonths:    req.BestMonths,
			IdealProfiles: req.IdealProfiles,
			AirportCodes:  req.AirportCodes,
			Status:        req.Status,
		})
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "invalid_request_error", "destination %d not found", id)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "updating destination: %v", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDeleteDestination(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid destination id")
			return
		}
		err = deps.Store.DeleteDestination(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "invalid_request_error", "destination %d not found", id)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "deleting destination: %v", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
