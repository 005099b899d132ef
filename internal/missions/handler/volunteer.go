package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	missionerrors "festivol/internal/missions/errors"
	"festivol/internal/missions/service"
	httputil "festivol/pkg/http"
	"festivol/pkg/logger"
	"festivol/pkg/model"
)

type VolunteerHandler struct {
	service *service.VolunteerService
	log     *logger.Logger
}

func NewVolunteerHandler(svc *service.VolunteerService, log *logger.Logger) *VolunteerHandler {
	return &VolunteerHandler{
		service: svc,
		log:     log,
	}
}

func (h *VolunteerHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var volunteer model.Volunteer
	if err := json.NewDecoder(r.Body).Decode(&volunteer); err != nil {
		h.writeInvalidBody(w, "Create")
		return
	}

	created, err := h.service.Create(r.Context(), &volunteer)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *VolunteerHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	volunteer, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, volunteer); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *VolunteerHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	volunteers, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, volunteers, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *VolunteerHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.VolunteerUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeInvalidBody(w, "Update")
		return
	}

	volunteer, err := h.service.Update(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, volunteer); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

// Matches lists open missions scored against the volunteer's preferences.
func (h *VolunteerHandler) Matches(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	matches, err := h.service.MatchMissions(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Matches", err)
		return
	}

	if err := httputil.WriteSuccess(w, matches); err != nil {
		h.log.Error("failed to write success response", "handler", "Matches", "error", err)
	}
}

func (h *VolunteerHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/volunteers", h.Create)
	router.GET("/api/v1/volunteers", h.GetAll)
	router.GET("/api/v1/volunteers/id/:id", h.GetByID)
	router.PATCH("/api/v1/volunteers/id/:id", h.Update)
	router.GET("/api/v1/volunteers/id/:id/matches", h.Matches)
}

func (h *VolunteerHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, missionerrors.ToAppError(err)); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *VolunteerHandler) writeInvalidBody(w http.ResponseWriter, handlerName string) {
	if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}
