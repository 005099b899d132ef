package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	missionerrors "festivol/internal/missions/errors"
	"festivol/internal/missions/service"
	"festivol/pkg/config"
	httputil "festivol/pkg/http"
	"festivol/pkg/logger"
	"festivol/pkg/model"
)

type MissionHandler struct {
	service *service.MissionService
	cfg     *config.Config
	log     *logger.Logger
}

func NewMissionHandler(cfg *config.Config, svc *service.MissionService) *MissionHandler {
	return &MissionHandler{
		service: svc,
		cfg:     cfg,
		log:     cfg.Log,
	}
}

// volunteerRequest is the body of every membership-changing call.
type volunteerRequest struct {
	VolunteerID string `json:"volunteer_id"`
}

func (h *MissionHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var mission model.Mission
	if err := json.NewDecoder(r.Body).Decode(&mission); err != nil {
		h.writeInvalidBody(w, "Create")
		return
	}

	created, err := h.service.Create(r.Context(), &mission)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *MissionHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	mission, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, mission); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *MissionHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	missions, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, missions, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *MissionHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.MissionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeInvalidBody(w, "Update")
		return
	}

	mission, err := h.service.Update(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, mission); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *MissionHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *MissionHandler) Publish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.statusTransition(w, r, ps, "Publish", h.service.Publish)
}

func (h *MissionHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.statusTransition(w, r, ps, "Cancel", h.service.Cancel)
}

func (h *MissionHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.statusTransition(w, r, ps, "Complete", h.service.Complete)
}

func (h *MissionHandler) statusTransition(w http.ResponseWriter, r *http.Request, ps httprouter.Params, name string, op func(ctx context.Context, id string) (*model.Mission, error)) {
	mission, err := op(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, name, err)
		return
	}

	if err := httputil.WriteSuccess(w, mission); err != nil {
		h.log.Error("failed to write success response", "handler", name, "error", err)
	}
}

func (h *MissionHandler) Register(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req volunteerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VolunteerID == "" {
		h.writeInvalidBody(w, "Register")
		return
	}

	mission, err := h.service.Register(r.Context(), ps.ByName("id"), req.VolunteerID)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteSuccess(w, mission); err != nil {
		h.log.Error("failed to write success response", "handler", "Register", "error", err)
	}
}

func (h *MissionHandler) Unregister(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req volunteerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VolunteerID == "" {
		h.writeInvalidBody(w, "Unregister")
		return
	}

	mission, err := h.service.Unregister(r.Context(), ps.ByName("id"), req.VolunteerID, false)
	if err != nil {
		h.writeError(w, "Unregister", err)
		return
	}

	if err := httputil.WriteSuccess(w, mission); err != nil {
		h.log.Error("failed to write success response", "handler", "Unregister", "error", err)
	}
}

func (h *MissionHandler) ListByVolunteer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	missions, err := h.service.ListByVolunteer(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "ListByVolunteer", err)
		return
	}

	if err := httputil.WriteSuccess(w, missions); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByVolunteer", "error", err)
	}
}

func (h *MissionHandler) RequestResponsible(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req volunteerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VolunteerID == "" {
		h.writeInvalidBody(w, "RequestResponsible")
		return
	}

	mission, err := h.service.RequestResponsible(r.Context(), ps.ByName("id"), req.VolunteerID, h.cfg.AutoApproveResponsibles)
	if err != nil {
		h.writeError(w, "RequestResponsible", err)
		return
	}

	if err := httputil.WriteSuccess(w, mission); err != nil {
		h.log.Error("failed to write success response", "handler", "RequestResponsible", "error", err)
	}
}

func (h *MissionHandler) ApproveResponsible(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	mission, err := h.service.ApproveResponsible(r.Context(), ps.ByName("id"), ps.ByName("volunteer_id"))
	if err != nil {
		h.writeError(w, "ApproveResponsible", err)
		return
	}

	if err := httputil.WriteSuccess(w, mission); err != nil {
		h.log.Error("failed to write success response", "handler", "ApproveResponsible", "error", err)
	}
}

func (h *MissionHandler) DeclineResponsible(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	mission, err := h.service.DeclineResponsible(r.Context(), ps.ByName("id"), ps.ByName("volunteer_id"))
	if err != nil {
		h.writeError(w, "DeclineResponsible", err)
		return
	}

	if err := httputil.WriteSuccess(w, mission); err != nil {
		h.log.Error("failed to write success response", "handler", "DeclineResponsible", "error", err)
	}
}

func (h *MissionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/missions", h.Create)
	router.GET("/api/v1/missions", h.GetAll)
	router.GET("/api/v1/missions/id/:id", h.GetByID)
	router.PATCH("/api/v1/missions/id/:id", h.Update)
	router.DELETE("/api/v1/missions/id/:id", h.Delete)

	router.POST("/api/v1/missions/id/:id/publish", h.Publish)
	router.POST("/api/v1/missions/id/:id/cancel", h.Cancel)
	router.POST("/api/v1/missions/id/:id/complete", h.Complete)

	router.POST("/api/v1/missions/id/:id/register", h.Register)
	router.POST("/api/v1/missions/id/:id/unregister", h.Unregister)

	router.POST("/api/v1/missions/id/:id/responsibles", h.RequestResponsible)
	router.POST("/api/v1/missions/id/:id/responsibles/:volunteer_id/approve", h.ApproveResponsible)
	router.POST("/api/v1/missions/id/:id/responsibles/:volunteer_id/decline", h.DeclineResponsible)

	router.GET("/api/v1/volunteers/id/:id/missions", h.ListByVolunteer)
}

func (h *MissionHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, missionerrors.ToAppError(err)); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *MissionHandler) writeInvalidBody(w http.ResponseWriter, handlerName string) {
	if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}
