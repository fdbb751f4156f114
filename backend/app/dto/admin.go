package dto

import "culinary-calc/backend/app/models"

type AdminStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	ActiveUsers      int64 `json:"activeUsers"`
	TotalRecipes     int64 `json:"totalRecipes"`
	TotalIngredients int64 `json:"totalIngredients"`
	TotalSuppliers   int64 `json:"totalSuppliers"`
	OpenTickets      int64 `json:"openTickets"`
	ResolvedTickets  int64 `json:"resolvedTickets"`
	RecentActivity   int64 `json:"recentActivity"`
}

type UserList struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}

type TicketList struct {
	Tickets []models.SupportTicket `json:"tickets"`
	Total   int64                  `json:"total"`
}

type RecipeList struct {
	Recipes []models.Recipe `json:"recipes"`
	Total   int64           `json:"total"`
}

type IngredientList struct {
	Ingredients []models.Ingredient `json:"ingredients"`
	Total       int64               `json:"total"`
}

type SupplierList struct {
	Suppliers []models.Supplier `json:"suppliers"`
	Total     int64             `json:"total"`
}

type ActivityList struct {
	Logs  []models.ActivityLog `json:"logs"`
	Total int64                `json:"total"`
}

type ToggleStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type RespondTicketRequest struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
