package controllers

import (
	"culinary-calc/backend/app/dto"
	"culinary-calc/backend/app/services"
	"net/http"
)

type AdminController struct {
	Admin    *services.AdminService
	Activity *services.ActivityService
}

func NewAdminController(admin *services.AdminService, activity *services.ActivityService) *AdminController {
	return &AdminController{Admin: admin, Activity: activity}
}

func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := c.Admin.SystemStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	list, err := c.Admin.ListUsers(r.Context(), pageParam(r), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (c *AdminController) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.ToggleStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IsActive == nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "isActive is required")
		return
	}
	id := r.PathValue("id")
	if err := c.Admin.SetUserStatus(r.Context(), id, *req.IsActive); err != nil {
		writeServiceError(w, r, err)
		return
	}
	c.Activity.Record(r.Context(), activityFor(r, admin.UserID, services.ActionUserStatusChange, "user", id, map[string]bool{"isActive": *req.IsActive}))
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (c *AdminController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	if err := c.Admin.UpdateUserRole(r.Context(), id, req.Role); err != nil {
		writeServiceError(w, r, err)
		return
	}
	c.Activity.Record(r.Context(), activityFor(r, admin.UserID, services.ActionUserRoleChanged, "user", id, map[string]string{"role": req.Role}))
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (c *AdminController) Tickets(w http.ResponseWriter, r *http.Request) {
	list, err := c.Admin.ListTickets(r.Context(), pageParam(r), r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (c *AdminController) RespondTicket(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.RespondTicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	if err := c.Admin.RespondToTicket(r.Context(), id, admin.UserID, req.Response, req.Status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	c.Activity.Record(r.Context(), activityFor(r, admin.UserID, services.ActionTicketResponded, "support_ticket", id, map[string]string{"status": req.Status}))
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (c *AdminController) Recipes(w http.ResponseWriter, r *http.Request) {
	list, err := c.Admin.ListRecipes(r.Context(), pageParam(r), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (c *AdminController) Ingredients(w http.ResponseWriter, r *http.Request) {
	list, err := c.Admin.ListIngredients(r.Context(), pageParam(r), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (c *AdminController) Suppliers(w http.ResponseWriter, r *http.Request) {
	list, err := c.Admin.ListSuppliers(r.Context(), pageParam(r), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (c *AdminController) ActivityLogs(w http.ResponseWriter, r *http.Request) {
	list, err := c.Admin.ActivityLogs(r.Context(), pageParam(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
