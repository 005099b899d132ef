package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	missionerrors "festivol/internal/missions/errors"
	"festivol/internal/missions/service"
	apperrors "festivol/pkg/errors"
	httputil "festivol/pkg/http"
	"festivol/pkg/logger"
)

// AssignmentHandler serves the coordinator grid: flipping and relocating
// volunteer assignments across missions.
type AssignmentHandler struct {
	service *service.MissionService
	log     *logger.Logger
}

func NewAssignmentHandler(svc *service.MissionService, log *logger.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: svc,
		log:     log,
	}
}

type toggleRequest struct {
	MissionID   string `json:"mission_id"`
	VolunteerID string `json:"volunteer_id"`
}

type moveRequest struct {
	SourceMissionID string `json:"source_mission_id"`
	TargetMissionID string `json:"target_mission_id"`
	VolunteerID     string `json:"volunteer_id"`
}

func (h *AssignmentHandler) Toggle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MissionID == "" || req.VolunteerID == "" {
		h.writeInvalidBody(w, "Toggle")
		return
	}

	result, err := h.service.Toggle(r.Context(), req.MissionID, req.VolunteerID)
	if err != nil {
		h.writeError(w, "Toggle", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Toggle", "error", err)
	}
}

func (h *AssignmentHandler) Move(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.SourceMissionID == "" || req.TargetMissionID == "" || req.VolunteerID == "" {
		h.writeInvalidBody(w, "Move")
		return
	}
	if req.SourceMissionID == req.TargetMissionID {
		h.writeError(w, "Move", apperrors.InvalidInput("source and target missions must differ"))
		return
	}

	mission, err := h.service.Move(r.Context(), req.SourceMissionID, req.TargetMissionID, req.VolunteerID)
	if err != nil {
		h.writeError(w, "Move", err)
		return
	}

	if err := httputil.WriteSuccess(w, mission); err != nil {
		h.log.Error("failed to write success response", "handler", "Move", "error", err)
	}
}

func (h *AssignmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/assignments/toggle", h.Toggle)
	router.POST("/api/v1/assignments/move", h.Move)
}

func (h *AssignmentHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, missionerrors.ToAppError(err)); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *AssignmentHandler) writeInvalidBody(w http.ResponseWriter, handlerName string) {
	if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}
