package services

import (
	"context"
	"testing"

	"culinary-calc/backend/app/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryIsScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.mustUser(t, "ana@example.com", "")
	bea := env.mustUser(t, "bea@example.com", "")

	cat, err := env.inventory.CreateCategory(ctx, ana.ID, dto.CategoryRequest{Name: "Dairy"})
	require.NoError(t, err)
	assert.Equal(t, "#6366f1", cat.Color)

	sup, err := env.inventory.CreateSupplier(ctx, ana.ID, dto.SupplierRequest{Name: "Farm Co"})
	require.NoError(t, err)

	ing, err := env.inventory.CreateIngredient(ctx, ana.ID, dto.IngredientRequest{
		Name: "Milk", Unit: "l", UnitCost: 1.2, Stock: 2, MinStock: 5,
		ExpirationDate: "2026-12-01", CategoryID: &cat.ID, SupplierID: &sup.ID,
	})
	require.NoError(t, err)
	assert.True(t, ing.LowStock())
	require.NotNil(t, ing.ExpirationDate)

	_, err = env.inventory.CreateIngredient(ctx, bea.ID, dto.IngredientRequest{Name: "Milk", Unit: "l", CategoryID: &cat.ID})
	assert.ErrorIs(t, err, ErrInvalidInput, "another tenant's category is rejected")

	_, err = env.inventory.CreateIngredient(ctx, ana.ID, dto.IngredientRequest{Name: "Eggs", Unit: "u", ExpirationDate: "01/12/2026"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.inventory.CreateIngredient(ctx, ana.ID, dto.IngredientRequest{Name: "Eggs"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	mine, err := env.inventory.ListIngredients(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Category)
	assert.Equal(t, "Dairy", mine[0].Category.Name)

	theirs, err := env.inventory.ListIngredients(ctx, bea.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	cats, err := env.inventory.ListCategories(ctx, bea.ID)
	require.NoError(t, err)
	assert.Empty(t, cats)
	sups, err := env.inventory.ListSuppliers(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, sups, 1)
}

func TestCreateRecipe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.mustUser(t, "chef@example.com", "")
	bea := env.mustUser(t, "rival@example.com", "")

	flour, err := env.inventory.CreateIngredient(ctx, ana.ID, dto.IngredientRequest{Name: "Flour", Unit: "kg", UnitCost: 0.8, Stock: 10})
	require.NoError(t, err)
	sugar, err := env.inventory.CreateIngredient(ctx, bea.ID, dto.IngredientRequest{Name: "Sugar", Unit: "kg", Stock: 10})
	require.NoError(t, err)

	rec, err := env.recipes.CreateRecipe(ctx, ana.ID, dto.RecipeRequest{
		Name: "Bread", TotalCost: 3.5, SellingPrice: 6,
		Ingredients: []dto.RecipeIngredientInput{{IngredientID: flour.ID, Quantity: 0.5, Cost: 0.4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Servings)
	assert.Equal(t, 3.5, rec.TotalCost, "costs are stored as submitted")
	require.Len(t, rec.Ingredients, 1)
	assert.Equal(t, rec.ID, rec.Ingredients[0].RecipeID)

	_, err = env.recipes.CreateRecipe(ctx, ana.ID, dto.RecipeRequest{
		Name:        "Cake",
		Ingredients: []dto.RecipeIngredientInput{{IngredientID: sugar.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.recipes.CreateRecipe(ctx, ana.ID, dto.RecipeRequest{
		Name: "Twice",
		Ingredients: []dto.RecipeIngredientInput{
			{IngredientID: flour.ID, Quantity: 1},
			{IngredientID: flour.ID, Quantity: 2},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.recipes.CreateRecipe(ctx, ana.ID, dto.RecipeRequest{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := env.recipes.ListRecipes(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Ingredients, 1)
	require.NotNil(t, list[0].Ingredients[0].Ingredient)
	assert.Equal(t, "Flour", list[0].Ingredients[0].Ingredient.Name)

	all, err := env.admin.ListRecipes(ctx, 1, "bre")
	require.NoError(t, err)
	require.Equal(t, int64(1), all.Total)
	require.NotNil(t, all.Recipes[0].User)
	assert.Equal(t, ana.Email, all.Recipes[0].User.Email)

	ings, err := env.admin.ListIngredients(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), ings.Total)
}
