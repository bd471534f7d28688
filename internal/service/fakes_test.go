package service

import (
	"context"
	"sort"
	"sync"

	"github.com/foodwise/foodwise/internal/model"
	"github.com/foodwise/foodwise/internal/repository"
)

// fakeUserStore is an in-memory UserStore returning the same sentinel errors
// as the real repository.
type fakeUserStore struct {
	mu     sync.Mutex
	users  map[string]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Username]; ok {
		return repository.ErrUsernameExists
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeUserStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// fakeItemStore is an in-memory ItemStore that preserves insertion order.
type fakeItemStore struct {
	mu    sync.Mutex
	items map[int64]*model.Item
	order []int64
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[int64]*model.Item)}
}

func (f *fakeItemStore) ListItems(_ context.Context) ([]*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]*model.Item, 0, len(f.order))
	for _, id := range f.order {
		copied := *f.items[id]
		items = append(items, &copied)
	}
	return items, nil
}

func (f *fakeItemStore) GetItemByID(_ context.Context, id int64) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemStore) CreateItem(_ context.Context, item *model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; ok {
		return repository.ErrItemExists
	}
	copied := *item
	f.items[item.ID] = &copied
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeItemStore) UpdateItem(_ context.Context, id int64, name string, quantity int, expiryDate model.Date) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	item.Name = name
	item.Quantity = quantity
	item.ExpiryDate = expiryDate
	copied := *item
	return &copied, nil
}

func (f *fakeItemStore) DeleteItem(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(f.items, id)
	for i, ordered := range f.order {
		if ordered == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeItemStore) ListExpiredItems(_ context.Context, today model.Date) ([]*model.Item, error) {
	return f.filtered(func(item *model.Item) bool {
		return item.IsExpired(today)
	}), nil
}

func (f *fakeItemStore) ListExpiringItems(_ context.Context, today model.Date, days int) ([]*model.Item, error) {
	return f.filtered(func(item *model.Item) bool {
		return item.ExpiresWithin(today, days)
	}), nil
}

func (f *fakeItemStore) ListLowStockItems(_ context.Context, threshold int) ([]*model.Item, error) {
	return f.filtered(func(item *model.Item) bool {
		return item.Quantity <= threshold
	}), nil
}

func (f *fakeItemStore) filtered(keep func(*model.Item) bool) []*model.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]*model.Item, 0)
	for _, item := range f.items {
		if keep(item) {
			copied := *item
			items = append(items, &copied)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
