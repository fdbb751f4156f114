package services

import (
	"context"
	"culinary-calc/backend/app/cache"
	"culinary-calc/backend/app/dto"
	"culinary-calc/backend/app/models"
	"culinary-calc/backend/app/repo"
	"culinary-calc/backend/global"
	"fmt"
	"strings"
	"time"
)

const (
	adminPageSize    = 20
	activityPageSize = 50
	recentActivity   = 24 * time.Hour
)

type AdminRepos struct {
	Users       *repo.UserRepository
	Recipes     *repo.RecipeRepository
	Ingredients *repo.IngredientRepository
	Suppliers   *repo.SupplierRepository
	Tickets     *repo.TicketRepository
	Activity    *repo.ActivityRepository
}

type AdminService struct {
	repos AdminRepos
	stats *cache.StatsCache
	now   func() time.Time
}

func NewAdminService(repos AdminRepos, stats *cache.StatsCache) *AdminService {
	return &AdminService{repos: repos, stats: stats, now: func() time.Time { return time.Now().UTC() }}
}

// IsAdmin fails closed: unknown and deactivated users are never admins.
func (s *AdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	u, err := s.repos.Users.FindActiveByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u != nil && u.Role.IsAdmin(), nil
}

func (s *AdminService) SystemStats(ctx context.Context) (*dto.AdminStats, error) {
	if cached, ok, err := s.stats.Get(ctx); err != nil {
		global.Logger.Warn().Err(err).Msg("stats cache read failed")
	} else if ok {
		return cached, nil
	}

	var st dto.AdminStats
	var err error
	if st.TotalUsers, err = s.repos.Users.Count(ctx, false); err != nil {
		return nil, err
	}
	if st.ActiveUsers, err = s.repos.Users.Count(ctx, true); err != nil {
		return nil, err
	}
	if st.TotalRecipes, err = s.repos.Recipes.Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalIngredients, err = s.repos.Ingredients.Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalSuppliers, err = s.repos.Suppliers.Count(ctx); err != nil {
		return nil, err
	}
	if st.OpenTickets, err = s.repos.Tickets.CountByStatus(ctx, models.TicketOpen, models.TicketInProgress); err != nil {
		return nil, err
	}
	if st.ResolvedTickets, err = s.repos.Tickets.CountByStatus(ctx, models.TicketResolved, models.TicketClosed); err != nil {
		return nil, err
	}
	if st.RecentActivity, err = s.repos.Activity.CountSince(ctx, s.now().Add(-recentActivity)); err != nil {
		return nil, err
	}

	if err := s.stats.Set(ctx, &st); err != nil {
		global.Logger.Warn().Err(err).Msg("stats cache write failed")
	}
	return &st, nil
}

func (s *AdminService) ListUsers(ctx context.Context, page int, search string) (*dto.UserList, error) {
	users, total, err := s.repos.Users.List(ctx, repo.NewPage(page, adminPageSize), search)
	if err != nil {
		return nil, err
	}
	return &dto.UserList{Users: users, Total: total}, nil
}

// SetUserStatus activates or deactivates an account. Existing sessions are
// kept; they stop validating as soon as the account is inactive.
func (s *AdminService) SetUserStatus(ctx context.Context, userID string, active bool) error {
	found, err := s.repos.Users.SetActive(ctx, userID, active)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	invalidateStats(ctx, s.stats)
	return nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, userID, role string) error {
	r, err := models.ParseRole(role)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	found, err := s.repos.Users.SetRole(ctx, userID, r)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// ListTickets accepts "" or "all" for every status.
func (s *AdminService) ListTickets(ctx context.Context, page int, status string) (*dto.TicketList, error) {
	var filter models.TicketStatus
	if status != "" && status != "all" {
		filter = models.TicketStatus(status)
		if !filter.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
		}
	}
	tickets, total, err := s.repos.Tickets.ListAll(ctx, repo.NewPage(page, adminPageSize), filter)
	if err != nil {
		return nil, err
	}
	return &dto.TicketList{Tickets: tickets, Total: total}, nil
}

func (s *AdminService) RespondToTicket(ctx context.Context, ticketID, adminID, response, status string) error {
	response = strings.TrimSpace(response)
	if response == "" {
		return fmt.Errorf("%w: response is required", ErrInvalidInput)
	}
	st := models.TicketStatus(status)
	if !st.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	found, err := s.repos.Tickets.Respond(ctx, ticketID, adminID, response, st, s.now())
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	invalidateStats(ctx, s.stats)
	return nil
}

func (s *AdminService) ListRecipes(ctx context.Context, page int, search string) (*dto.RecipeList, error) {
	recipes, total, err := s.repos.Recipes.ListAll(ctx, repo.NewPage(page, adminPageSize), search)
	if err != nil {
		return nil, err
	}
	return &dto.RecipeList{Recipes: recipes, Total: total}, nil
}

func (s *AdminService) ListIngredients(ctx context.Context, page int, search string) (*dto.IngredientList, error) {
	items, total, err := s.repos.Ingredients.ListAll(ctx, repo.NewPage(page, adminPageSize), search)
	if err != nil {
		return nil, err
	}
	return &dto.IngredientList{Ingredients: items, Total: total}, nil
}

func (s *AdminService) ListSuppliers(ctx context.Context, page int, search string) (*dto.SupplierList, error) {
	items, total, err := s.repos.Suppliers.ListAll(ctx, repo.NewPage(page, adminPageSize), search)
	if err != nil {
		return nil, err
	}
	return &dto.SupplierList{Suppliers: items, Total: total}, nil
}

func (s *AdminService) ActivityLogs(ctx context.Context, page int) (*dto.ActivityList, error) {
	logs, total, err := s.repos.Activity.List(ctx, repo.NewPage(page, activityPageSize))
	if err != nil {
		return nil, err
	}
	return &dto.ActivityList{Logs: logs, Total: total}, nil
}

// invalidateStats drops the cached admin counters after a write that changes them.
func invalidateStats(ctx context.Context, stats *cache.StatsCache) {
	if err := stats.Invalidate(ctx); err != nil {
		global.Logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
