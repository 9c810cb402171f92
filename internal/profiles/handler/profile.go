package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"openinterview/internal/profiles/service"
	httputil "openinterview/pkg/http"
	"openinterview/pkg/logger"
	"openinterview/pkg/model"
)

type ProfileHandler struct {
	service service.ProfileService
	log     *logger.Logger
}

func NewProfileHandler(service service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log,
	}
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var profile model.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), &profile); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, profile)
}

func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	profile, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, profile)
}

func (h *ProfileHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	profiles, totalCount, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, profiles, totalCount, limit, offset)
}

func (h *ProfileHandler) GetPublicByHandle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	handle := ps.ByName("handle")
	if handle == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Handle parameter is required",
		})
		return
	}

	public, err := h.service.GetPublicByHandle(r.Context(), handle)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, public)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var updates model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	profile, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, profile)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ProfileHandler) AddAttachment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var attachment model.Attachment
	if err := json.NewDecoder(r.Body).Decode(&attachment); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	created, err := h.service.AddAttachment(r.Context(), id, &attachment)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, created)
}

func (h *ProfileHandler) RemoveAttachment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	attachmentID := ps.ByName("attachmentID")
	if id == "" || attachmentID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID and attachment ID parameters are required",
		})
		return
	}

	if err := h.service.RemoveAttachment(r.Context(), id, attachmentID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ProfileHandler) SetResume(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	var attachment model.Attachment
	if err := json.NewDecoder(r.Body).Decode(&attachment); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	resume, err := h.service.SetResume(r.Context(), id, &attachment)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, resume)
}

func (h *ProfileHandler) ClearResume(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		})
		return
	}

	if err := h.service.ClearResume(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ProfileHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/profiles", h.Create)
	router.GET("/api/v1/profiles", h.GetAll)
	router.GET("/api/v1/profiles/id/:id", h.GetByID)
	router.PATCH("/api/v1/profiles/id/:id", h.Update)
	router.DELETE("/api/v1/profiles/id/:id", h.Delete)
	router.POST("/api/v1/profiles/id/:id/attachments", h.AddAttachment)
	router.DELETE("/api/v1/profiles/id/:id/attachments/:attachmentID", h.RemoveAttachment)
	router.PUT("/api/v1/profiles/id/:id/resume", h.SetResume)
	router.DELETE("/api/v1/profiles/id/:id/resume", h.ClearResume)
	router.GET("/api/v1/public/profiles/:handle", h.GetPublicByHandle)
}
