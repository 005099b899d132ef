package handler

import (
	"github.com/julienschmidt/httprouter"
)

// API bundles the service's handlers behind a single route registrar for the
// application bootstrap.
type API struct {
	Missions    *MissionHandler
	Assignments *AssignmentHandler
	Volunteers  *VolunteerHandler
}

func (a *API) RegisterRoutes(router *httprouter.Router) {
	a.Missions.RegisterRoutes(router)
	a.Assignments.RegisterRoutes(router)
	a.Volunteers.RegisterRoutes(router)
}
