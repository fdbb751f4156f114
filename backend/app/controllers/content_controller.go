package controllers

import (
	"culinary-calc/backend/app/dto"
	"culinary-calc/backend/app/services"
	"net/http"
)

// ContentController serves a tenant's own recipes and inventory.
type ContentController struct {
	Recipes   *services.RecipeService
	Inventory *services.InventoryService
	Activity  *services.ActivityService
}

func NewContentController(recipes *services.RecipeService, inventory *services.InventoryService, activity *services.ActivityService) *ContentController {
	return &ContentController{Recipes: recipes, Inventory: inventory, Activity: activity}
}

func (c *ContentController) ListRecipes(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	out, err := c.Recipes.ListRecipes(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *ContentController) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.RecipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rec, err := c.Recipes.CreateRecipe(r.Context(), id.UserID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	c.Activity.Record(r.Context(), activityFor(r, id.UserID, services.ActionRecipeCreated, "recipe", rec.ID, nil))
	writeJSON(w, http.StatusCreated, rec)
}

func (c *ContentController) ListIngredients(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	out, err := c.Inventory.ListIngredients(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *ContentController) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.IngredientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ing, err := c.Inventory.CreateIngredient(r.Context(), id.UserID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	c.Activity.Record(r.Context(), activityFor(r, id.UserID, services.ActionIngredientAdded, "ingredient", ing.ID, nil))
	writeJSON(w, http.StatusCreated, ing)
}

func (c *ContentController) ListCategories(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	out, err := c.Inventory.ListCategories(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *ContentController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cat, err := c.Inventory.CreateCategory(r.Context(), id.UserID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (c *ContentController) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	out, err := c.Inventory.ListSuppliers(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *ContentController) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req dto.SupplierRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sup, err := c.Inventory.CreateSupplier(r.Context(), id.UserID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sup)
}
