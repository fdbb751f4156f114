package services

import (
	"context"
	"testing"
	"time"

	"culinary-calc/backend/app/cache"
	"culinary-calc/backend/app/dto"
	"culinary-calc/backend/app/models"
	"culinary-calc/backend/app/repo"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIsAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.mustUser(t, "admin@example.com", models.RoleAdmin)
	user := env.mustUser(t, "user@example.com", models.RoleUser)

	ok, err := env.admin.IsAdmin(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.admin.IsAdmin(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.admin.IsAdmin(ctx, "no-such-user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, env.admin.SetUserStatus(ctx, admin.ID, false))
	ok, err = env.admin.IsAdmin(ctx, admin.ID)
	require.NoError(t, err)
	assert.False(t, ok, "deactivated admins lose admin access")
}

func TestUpdateUserRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "promote@example.com", "")

	require.NoError(t, env.admin.UpdateUserRole(ctx, u.ID, "admin"))
	ok, err := env.admin.IsAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, env.admin.UpdateUserRole(ctx, u.ID, "superuser"), ErrInvalidInput)
	assert.ErrorIs(t, env.admin.UpdateUserRole(ctx, "missing", "user"), ErrNotFound)
}

func TestSetUserStatusUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	assert.ErrorIs(t, env.admin.SetUserStatus(context.Background(), "missing", false), ErrNotFound)
}

func TestListUsersSearchAndPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, email := range []string{"alpha@kitchen.io", "beta@kitchen.io", "gamma@bakery.io"} {
		env.mustUser(t, email, "")
	}

	all, err := env.admin.ListUsers(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	assert.Len(t, all.Users, 3)

	kitchen, err := env.admin.ListUsers(ctx, 1, "KITCHEN")
	require.NoError(t, err)
	assert.Equal(t, int64(2), kitchen.Total)

	wildcard, err := env.admin.ListUsers(ctx, 1, "%")
	require.NoError(t, err)
	assert.Equal(t, int64(0), wildcard.Total, "LIKE wildcards are matched literally")

	second, err := env.admin.ListUsers(ctx, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), second.Total)
	assert.Empty(t, second.Users)
}

func TestSupportTicketFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.mustUser(t, "help@example.com", "")
	admin := env.mustUser(t, "staff@example.com", models.RoleAdmin)

	_, err := env.support.CreateTicket(ctx, user.ID, " ", "body", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = env.support.CreateTicket(ctx, user.ID, "Subject", "body", "critical")
	assert.ErrorIs(t, err, ErrInvalidInput)

	tk, err := env.support.CreateTicket(ctx, user.ID, "Oven broken", "Costs look wrong", "")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, tk.Priority)
	assert.Equal(t, models.TicketOpen, tk.Status)

	open, err := env.admin.ListTickets(ctx, 1, "open")
	require.NoError(t, err)
	assert.Equal(t, int64(1), open.Total)

	_, err = env.admin.ListTickets(ctx, 1, "bogus")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, env.admin.RespondToTicket(ctx, tk.ID, admin.ID, "Fixed", string(models.TicketResolved)))
	assert.ErrorIs(t, env.admin.RespondToTicket(ctx, "missing", admin.ID, "Fixed", "resolved"), ErrNotFound)
	assert.ErrorIs(t, env.admin.RespondToTicket(ctx, tk.ID, admin.ID, "", "resolved"), ErrInvalidInput)

	own, err := env.support.ListOwn(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, models.TicketResolved, own[0].Status)
	require.NotNil(t, own[0].AdminResponse)
	assert.Equal(t, "Fixed", *own[0].AdminResponse)
	assert.NotNil(t, own[0].ResolvedAt)

	all, err := env.admin.ListTickets(ctx, 1, "all")
	require.NoError(t, err)
	assert.Equal(t, int64(1), all.Total)
}

func TestSystemStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "one@example.com", "")
	env.mustUser(t, "two@example.com", "")
	require.NoError(t, env.admin.SetUserStatus(ctx, u.ID, false))
	_, err := env.support.CreateTicket(ctx, u.ID, "s", "m", "high")
	require.NoError(t, err)
	env.activity.Record(ctx, Activity{UserID: u.ID, Action: ActionLogin})

	st, err := env.admin.SystemStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.TotalUsers)
	assert.Equal(t, int64(1), st.ActiveUsers)
	assert.Equal(t, int64(1), st.OpenTickets)
	assert.Equal(t, int64(0), st.ResolvedTickets)
	assert.Equal(t, int64(1), st.RecentActivity)
}

func TestSystemStatsServedFromCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	stats := cache.NewStatsCache(rdb, time.Minute)
	svc := NewAdminService(AdminRepos{
		Users:       repo.NewUserRepository(env.db),
		Recipes:     repo.NewRecipeRepository(env.db),
		Ingredients: repo.NewIngredientRepository(env.db),
		Suppliers:   repo.NewSupplierRepository(env.db),
		Tickets:     repo.NewTicketRepository(env.db),
		Activity:    repo.NewActivityRepository(env.db),
	}, stats)

	env.mustUser(t, "first@example.com", "")
	first, err := svc.SystemStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalUsers)
	assert.True(t, mr.Exists("culinary:admin:stats"))

	// written behind the service's back, so only a cache miss would see it
	env.mustUser(t, "second@example.com", "")
	cached, err := svc.SystemStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.TotalUsers)

	u := env.mustUser(t, "third@example.com", "")
	require.NoError(t, svc.SetUserStatus(ctx, u.ID, false))
	assert.False(t, mr.Exists("culinary:admin:stats"))

	fresh, err := svc.SystemStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), fresh.TotalUsers)
	assert.Equal(t, int64(2), fresh.ActiveUsers)
}

func TestActivityLogs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustUser(t, "audit@example.com", "")

	env.activity.Record(ctx, Activity{
		UserID: u.ID, Action: ActionTicketCreated, EntityType: "support_ticket", EntityID: "t-1",
		Details: map[string]string{"subject": "hi"}, IP: "10.0.0.1", UserAgent: "test",
	})

	logs, err := env.admin.ActivityLogs(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), logs.Total)
	assert.Equal(t, ActionTicketCreated, logs.Logs[0].Action)
	assert.JSONEq(t, `{"subject":"hi"}`, logs.Logs[0].Details)
	assert.Equal(t, "10.0.0.1", logs.Logs[0].IPAddress)
}

func TestContentWritesInvalidateStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	stats := cache.NewStatsCache(rdb, time.Minute)

	auth, err := NewAuthService(repo.NewUserRepository(env.db), repo.NewSessionRepository(env.db), nil,
		AuthOptions{BcryptCost: bcrypt.MinCost, Stats: stats})
	require.NoError(t, err)
	inventory := NewInventoryService(repo.NewIngredientRepository(env.db), repo.NewCategoryRepository(env.db), repo.NewSupplierRepository(env.db), stats)
	recipes := NewRecipeService(repo.NewRecipeRepository(env.db), repo.NewIngredientRepository(env.db), repo.NewCategoryRepository(env.db), stats)

	prime := func() {
		t.Helper()
		require.NoError(t, stats.Set(ctx, &dto.AdminStats{TotalUsers: 99}))
		require.True(t, mr.Exists("culinary:admin:stats"))
	}

	prime()
	u, err := auth.CreateUser(ctx, NewUser{Name: "Cook", Email: "cook@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("culinary:admin:stats"), "new user")

	prime()
	_, err = recipes.CreateRecipe(ctx, u.ID, dto.RecipeRequest{Name: "Soup"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("culinary:admin:stats"), "new recipe")

	prime()
	_, err = inventory.CreateIngredient(ctx, u.ID, dto.IngredientRequest{Name: "Salt", Unit: "g"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("culinary:admin:stats"), "new ingredient")

	prime()
	_, err = inventory.CreateSupplier(ctx, u.ID, dto.SupplierRequest{Name: "Mill"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("culinary:admin:stats"), "new supplier")

	prime()
	_, err = recipes.CreateRecipe(ctx, u.ID, dto.RecipeRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, mr.Exists("culinary:admin:stats"), "rejected writes keep the cache")
}

func TestListSuppliersAcrossTenants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.mustUser(t, "ana@example.com", "")
	bea := env.mustUser(t, "bea@example.com", "")

	_, err := env.inventory.CreateSupplier(ctx, ana.ID, dto.SupplierRequest{Name: "Farm Co", Contact: "Jo"})
	require.NoError(t, err)
	_, err = env.inventory.CreateSupplier(ctx, bea.ID, dto.SupplierRequest{Name: "Mill", Email: "orders@farmstead.test"})
	require.NoError(t, err)

	all, err := env.admin.ListSuppliers(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	for _, s := range all.Suppliers {
		require.NotNil(t, s.User)
		assert.NotEmpty(t, s.User.Email)
	}

	// matches the name of one and the email of the other
	found, err := env.admin.ListSuppliers(ctx, 1, "FARM")
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.Total)

	found, err = env.admin.ListSuppliers(ctx, 1, "mill")
	require.NoError(t, err)
	require.Equal(t, int64(1), found.Total)
	assert.Equal(t, bea.ID, found.Suppliers[0].UserID)
}
