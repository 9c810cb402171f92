package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"openinterview/internal/availability/service"
	httputil "openinterview/pkg/http"
	"openinterview/pkg/logger"
	"openinterview/pkg/model"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	profileID := ps.ByName("profileID")
	if profileID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Profile ID parameter is required",
		})
		return
	}

	view, err := h.service.Get(r.Context(), profileID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, view)
}

func (h *AvailabilityHandler) Put(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	profileID := ps.ByName("profileID")
	if profileID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Profile ID parameter is required",
		})
		return
	}

	var doc model.AvailabilityDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	view, err := h.service.Put(r.Context(), profileID, &doc)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, view)
}

func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	profileID := ps.ByName("profileID")
	if profileID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Profile ID parameter is required",
		})
		return
	}

	if err := h.service.Delete(r.Context(), profileID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability/:profileID", h.Get)
	router.PUT("/api/v1/availability/:profileID", h.Put)
	router.DELETE("/api/v1/availability/:profileID", h.Delete)
}
