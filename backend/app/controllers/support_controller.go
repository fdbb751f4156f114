package controllers

import (
	"culinary-calc/backend/app/dto"
	"culinary-calc/backend/app/services"
	"net/http"
)

type SupportController struct {
	Support  *services.SupportService
	Activity *services.ActivityService
}

func NewSupportController(support *services.SupportService, activity *services.ActivityService) *SupportController {
	return &SupportController{Support: support, Activity: activity}
}

func (c *SupportController) List(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	tickets, err := c.Support.ListOwn(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (c *SupportController) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.TicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := c.Support.CreateTicket(r.Context(), id.UserID, req.Subject, req.Message, req.Priority)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	c.Activity.Record(r.Context(), activityFor(r, id.UserID, services.ActionTicketCreated, "support_ticket", t.ID, map[string]string{"subject": t.Subject, "priority": string(t.Priority)}))
	writeJSON(w, http.StatusCreated, t)
}
