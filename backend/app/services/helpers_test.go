package services

import (
	"context"
	"testing"
	"time"

	"culinary-calc/backend/app/db/dbtest"
	jwtutil "culinary-calc/backend/app/jwt"
	"culinary-calc/backend/app/models"
	"culinary-calc/backend/app/repo"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	auth      *AuthService
	admin     *AdminService
	support   *SupportService
	inventory *InventoryService
	recipes   *RecipeService
	activity  *ActivityService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := dbtest.Open(t)
	users := repo.NewUserRepository(gdb)
	sessions := repo.NewSessionRepository(gdb)
	ingredients := repo.NewIngredientRepository(gdb)
	categories := repo.NewCategoryRepository(gdb)
	suppliers := repo.NewSupplierRepository(gdb)
	recipes := repo.NewRecipeRepository(gdb)
	tickets := repo.NewTicketRepository(gdb)
	activity := repo.NewActivityRepository(gdb)

	signer := &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "test", TTL: 7 * 24 * time.Hour}
	auth, err := NewAuthService(users, sessions, signer, AuthOptions{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	return &testEnv{
		db:   gdb,
		auth: auth,
		admin: NewAdminService(AdminRepos{
			Users: users, Recipes: recipes, Ingredients: ingredients,
			Suppliers: suppliers, Tickets: tickets, Activity: activity,
		}, nil),
		support:   NewSupportService(tickets, nil),
		inventory: NewInventoryService(ingredients, categories, suppliers, nil),
		recipes:   NewRecipeService(recipes, ingredients, categories, nil),
		activity:  NewActivityService(activity),
	}
}

func (e *testEnv) mustUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	u, err := e.auth.CreateUser(context.Background(), NewUser{Name: "Cook " + email, Email: email, Password: "secret123", Role: role})
	require.NoError(t, err)
	return u
}
