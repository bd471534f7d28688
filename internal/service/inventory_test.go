package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foodwise/foodwise/internal/metrics"
	"github.com/foodwise/foodwise/internal/model"
)

// fixedClock pins "today" to 2025-06-15 for expiry report tests.
func fixedClock() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func newTestInventoryService(store ItemStore) *InventoryService {
	return NewInventoryService(store, metrics.NewNoop()).WithClock(fixedClock)
}

func mustCreate(t *testing.T, svc *InventoryService, id int64, name string, quantity int, expiry model.Date) {
	t.Helper()
	if _, err := svc.Create(context.Background(), CreateItemInput{
		ID: id, Name: name, Quantity: quantity, ExpiryDate: expiry,
	}); err != nil {
		t.Fatalf("Create(%d): %v", id, err)
	}
}

func TestInventoryService_CreateAndGet(t *testing.T) {
	svc := newTestInventoryService(newFakeItemStore())

	expiry := model.NewDate(2025, time.July, 1)
	item, err := svc.Create(context.Background(), CreateItemInput{
		ID: 1, Name: "Milk", Quantity: 2, ExpiryDate: expiry,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID != 1 || item.Name != "Milk" || item.Quantity != 2 {
		t.Errorf("unexpected item: %+v", item)
	}

	got, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Milk" || !got.ExpiryDate.Time().Equal(expiry.Time()) {
		t.Errorf("unexpected item: %+v", got)
	}
}

func TestInventoryService_CreateValidation(t *testing.T) {
	svc := newTestInventoryService(newFakeItemStore())
	expiry := model.NewDate(2025, time.July, 1)

	tests := []struct {
		name    string
		input   CreateItemInput
		wantErr error
	}{
		{"zero_id", CreateItemInput{ID: 0, Name: "Milk", ExpiryDate: expiry}, ErrInvalidItemID},
		{"negative_id", CreateItemInput{ID: -3, Name: "Milk", ExpiryDate: expiry}, ErrInvalidItemID},
		{"missing_name", CreateItemInput{ID: 1, ExpiryDate: expiry}, ErrNameRequired},
		{"blank_name", CreateItemInput{ID: 1, Name: "  ", ExpiryDate: expiry}, ErrNameRequired},
		{"missing_expiry", CreateItemInput{ID: 1, Name: "Milk"}, ErrExpiryDateRequired},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), test.input); !errors.Is(err, test.wantErr) {
				t.Errorf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestInventoryService_CreateDuplicateID(t *testing.T) {
	svc := newTestInventoryService(newFakeItemStore())
	expiry := model.NewDate(2025, time.July, 1)

	mustCreate(t, svc, 1, "Milk", 2, expiry)

	if _, err := svc.Create(context.Background(), CreateItemInput{
		ID: 1, Name: "Eggs", Quantity: 12, ExpiryDate: expiry,
	}); !errors.Is(err, ErrItemExists) {
		t.Fatalf("expected ErrItemExists, got %v", err)
	}

	// The original item survives the failed insert.
	got, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Milk" {
		t.Errorf("expected original item untouched, got %q", got.Name)
	}
}

func TestInventoryService_ListInsertionOrder(t *testing.T) {
	svc := newTestInventoryService(newFakeItemStore())
	expiry := model.NewDate(2025, time.July, 1)

	mustCreate(t, svc, 5, "Milk", 2, expiry)
	mustCreate(t, svc, 2, "Eggs", 12, expiry)
	mustCreate(t, svc, 9, "Rice", 1, expiry)

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	wantIDs := []int64{5, 2, 9}
	if len(items) != len(wantIDs) {
		t.Fatalf("expected %d items, got %d", len(wantIDs), len(items))
	}
	for i, want := range wantIDs {
		if items[i].ID != want {
			t.Errorf("position %d: expected ID %d, got %d", i, want, items[i].ID)
		}
	}
}

func TestInventoryService_Update(t *testing.T) {
	svc := newTestInventoryService(newFakeItemStore())
	mustCreate(t, svc, 1, "Milk", 2, model.NewDate(2025, time.July, 1))

	updated, err := svc.Update(context.Background(), 1, UpdateItemInput{
		Name: "Whole Milk", Quantity: 4, ExpiryDate: model.NewDate(2025, time.August, 1),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Whole Milk" || updated.Quantity != 4 {
		t.Errorf("unexpected item after update: %+v", updated)
	}

	if _, err := svc.Update(context.Background(), 999, UpdateItemInput{
		Name: "Ghost", Quantity: 1, ExpiryDate: model.NewDate(2025, time.August, 1),
	}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound for missing item, got %v", err)
	}

	if _, err := svc.Update(context.Background(), 1, UpdateItemInput{
		Quantity: 1, ExpiryDate: model.NewDate(2025, time.August, 1),
	}); !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
}

func TestInventoryService_Delete(t *testing.T) {
	svc := newTestInventoryService(newFakeItemStore())
	mustCreate(t, svc, 1, "Milk", 2, model.NewDate(2025, time.July, 1))

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(context.Background(), 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound after delete, got %v", err)
	}

	// Deleting again reports not found rather than succeeding silently.
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound on second delete, got %v", err)
	}
}

func TestInventoryService_ExpiryReports(t *testing.T) {
	svc := newTestInventoryService(newFakeItemStore())

	// Clock is pinned to 2025-06-15.
	mustCreate(t, svc, 1, "Old Yogurt", 1, model.NewDate(2025, time.June, 10))  // expired
	mustCreate(t, svc, 2, "Milk", 2, model.NewDate(2025, time.June, 18))        // expiring within 7 days
	mustCreate(t, svc, 3, "Cheese", 1, model.NewDate(2025, time.June, 15))      // expires today: not expired, expiring
	mustCreate(t, svc, 4, "Canned Beans", 6, model.NewDate(2026, time.June, 1)) // far future

	expired, err := svc.ListExpired(context.Background())
	if err != nil {
		t.Fatalf("ListExpired: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != 1 {
		t.Errorf("expected only item 1 expired, got %+v", itemIDs(expired))
	}

	expiring, err := svc.ListExpiring(context.Background(), DefaultExpiringWindowDays)
	if err != nil {
		t.Fatalf("ListExpiring: %v", err)
	}
	if got := itemIDs(expiring); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("expected items 2 and 3 expiring, got %v", got)
	}

	if _, err := svc.ListExpiring(context.Background(), 0); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestInventoryService_LowStock(t *testing.T) {
	svc := newTestInventoryService(newFakeItemStore())
	expiry := model.NewDate(2026, time.January, 1)

	mustCreate(t, svc, 1, "Milk", 2, expiry)
	mustCreate(t, svc, 2, "Eggs", 12, expiry)
	mustCreate(t, svc, 3, "Salt", 5, expiry)

	low, err := svc.ListLowStock(context.Background(), DefaultLowStockThreshold)
	if err != nil {
		t.Fatalf("ListLowStock: %v", err)
	}
	if got := itemIDs(low); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("expected items 1 and 3 at or below threshold, got %v", got)
	}

	if _, err := svc.ListLowStock(context.Background(), -1); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("expected ErrInvalidThreshold, got %v", err)
	}
}

func itemIDs(items []*model.Item) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
