package services

import (
	"context"
	"culinary-calc/backend/app/cache"
	"culinary-calc/backend/app/dto"
	"culinary-calc/backend/app/models"
	"culinary-calc/backend/app/repo"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// InventoryService manages a tenant's ingredients, categories and suppliers.
type InventoryService struct {
	ingredients *repo.IngredientRepository
	categories  *repo.CategoryRepository
	suppliers   *repo.SupplierRepository
	stats       *cache.StatsCache
}

func NewInventoryService(ingredients *repo.IngredientRepository, categories *repo.CategoryRepository, suppliers *repo.SupplierRepository, stats *cache.StatsCache) *InventoryService {
	return &InventoryService{ingredients: ingredients, categories: categories, suppliers: suppliers, stats: stats}
}

func (s *InventoryService) CreateIngredient(ctx context.Context, userID string, req dto.IngredientRequest) (*models.Ingredient, error) {
	name := strings.TrimSpace(req.Name)
	unit := strings.TrimSpace(req.Unit)
	if name == "" || unit == "" {
		return nil, fmt.Errorf("%w: name and unit are required", ErrInvalidInput)
	}
	if req.UnitCost < 0 || req.Stock < 0 || req.MinStock < 0 {
		return nil, fmt.Errorf("%w: cost and stock must not be negative", ErrInvalidInput)
	}
	ing := &models.Ingredient{
		Name: name, Description: req.Description, Unit: unit,
		UnitCost: req.UnitCost, Stock: req.Stock, MinStock: req.MinStock,
		IsActive: true, UserID: userID,
	}
	if req.ExpirationDate != "" {
		d, err := time.Parse(dateLayout, req.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expiration_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		ing.ExpirationDate = &d
	}
	if req.CategoryID != nil {
		ok, err := s.categories.OwnedBy(ctx, *req.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: unknown category", ErrInvalidInput)
		}
		ing.CategoryID = req.CategoryID
	}
	if req.SupplierID != nil && *req.SupplierID != "" {
		ok, err := s.suppliers.OwnedBy(ctx, *req.SupplierID, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: unknown supplier", ErrInvalidInput)
		}
		ing.SupplierID = req.SupplierID
	}
	if err := s.ingredients.Create(ctx, ing); err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats)
	return ing, nil
}

func (s *InventoryService) ListIngredients(ctx context.Context, userID string) ([]models.Ingredient, error) {
	return s.ingredients.ListByUser(ctx, userID)
}

func (s *InventoryService) CreateCategory(ctx context.Context, userID string, req dto.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	c := &models.Category{Name: name, Description: req.Description, Color: req.Color, UserID: userID}
	if c.Color == "" {
		c.Color = "#6366f1"
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *InventoryService) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

func (s *InventoryService) CreateSupplier(ctx context.Context, userID string, req dto.SupplierRequest) (*models.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	sup := &models.Supplier{
		Name: name, Contact: req.Contact, Email: req.Email, Phone: req.Phone, Address: req.Address,
		IsActive: true, UserID: userID,
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats)
	return sup, nil
}

func (s *InventoryService) ListSuppliers(ctx context.Context, userID string) ([]models.Supplier, error) {
	return s.suppliers.ListByUser(ctx, userID)
}
