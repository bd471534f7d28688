package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foodwise/foodwise/internal/metrics"
	"github.com/foodwise/foodwise/internal/model"
	"github.com/foodwise/foodwise/internal/repository"
)

// Inventory service errors.
var (
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrItemExists         = errors.New("inventory item ID already exists")
	ErrInvalidItemID      = errors.New("item ID must be a positive integer")
	ErrNameRequired       = errors.New("item name is required")
	ErrExpiryDateRequired = errors.New("expiry date is required")
	ErrInvalidWindow      = errors.New("expiry window must be at least one day")
	ErrInvalidThreshold   = errors.New("threshold must not be negative")
)

// Report defaults used when the query parameters are omitted.
const (
	DefaultExpiringWindowDays = 7
	DefaultLowStockThreshold  = 5
)

// ItemStore is the inventory persistence interface consumed by
// InventoryService. *repository.Repository satisfies it.
type ItemStore interface {
	ListItems(ctx context.Context) ([]*model.Item, error)
	GetItemByID(ctx context.Context, id int64) (*model.Item, error)
	CreateItem(ctx context.Context, item *model.Item) error
	UpdateItem(ctx context.Context, id int64, name string, quantity int, expiryDate model.Date) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	ListExpiredItems(ctx context.Context, today model.Date) ([]*model.Item, error)
	ListExpiringItems(ctx context.Context, today model.Date, days int) ([]*model.Item, error)
	ListLowStockItems(ctx context.Context, threshold int) ([]*model.Item, error)
}

// InventoryService handles inventory business logic.
type InventoryService struct {
	items   ItemStore
	metrics metrics.Recorder
	now     func() time.Time
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(items ItemStore, recorder metrics.Recorder) *InventoryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &InventoryService{
		items:   items,
		metrics: recorder,
		now:     time.Now,
	}
}

// WithClock overrides the clock used for expiry reports. Intended for tests.
func (s *InventoryService) WithClock(now func() time.Time) *InventoryService {
	s.now = now
	return s
}

// CreateItemInput defines input for creating an inventory item.
// The ID is supplied by the client.
type CreateItemInput struct {
	ID         int64
	Name       string
	Quantity   int
	ExpiryDate model.Date
}

// UpdateItemInput defines the full replacement fields for an item update.
type UpdateItemInput struct {
	Name       string
	Quantity   int
	ExpiryDate model.Date
}

// List returns all inventory items in insertion order.
func (s *InventoryService) List(ctx context.Context) ([]*model.Item, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Get returns a single inventory item by ID.
func (s *InventoryService) Get(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.items.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// Create validates and inserts a new inventory item.
// A duplicate ID fails with ErrItemExists rather than silently overwriting.
func (s *InventoryService) Create(ctx context.Context, input CreateItemInput) (*model.Item, error) {
	if input.ID <= 0 {
		return nil, ErrInvalidItemID
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.ExpiryDate.IsZero() {
		return nil, ErrExpiryDateRequired
	}

	item := &model.Item{
		ID:         input.ID,
		Name:       input.Name,
		Quantity:   input.Quantity,
		ExpiryDate: input.ExpiryDate,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.items.CreateItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrItemExists) {
			return nil, ErrItemExists
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.metrics.IncItemCreated()
	return item, nil
}

// Update fully replaces name, quantity and expiry date of an existing item.
func (s *InventoryService) Update(ctx context.Context, id int64, input UpdateItemInput) (*model.Item, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.ExpiryDate.IsZero() {
		return nil, ErrExpiryDateRequired
	}

	item, err := s.items.UpdateItem(ctx, id, input.Name, input.Quantity, input.ExpiryDate)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.metrics.IncItemUpdated()
	return item, nil
}

// Delete removes an inventory item by ID.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.items.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.metrics.IncItemDeleted()
	return nil
}

// ListExpired returns items whose expiry date has passed.
func (s *InventoryService) ListExpired(ctx context.Context) ([]*model.Item, error) {
	items, err := s.items.ListExpiredItems(ctx, model.DateOf(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to list expired items: %w", err)
	}
	return items, nil
}

// ListExpiring returns unexpired items that expire within the given number
// of days from today.
func (s *InventoryService) ListExpiring(ctx context.Context, days int) ([]*model.Item, error) {
	if days < 1 {
		return nil, ErrInvalidWindow
	}

	items, err := s.items.ListExpiringItems(ctx, model.DateOf(s.now()), days)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring items: %w", err)
	}
	return items, nil
}

// ListLowStock returns items at or below the quantity threshold.
func (s *InventoryService) ListLowStock(ctx context.Context, threshold int) ([]*model.Item, error) {
	if threshold < 0 {
		return nil, ErrInvalidThreshold
	}

	items, err := s.items.ListLowStockItems(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	return items, nil
}
