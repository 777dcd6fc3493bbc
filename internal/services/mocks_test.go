package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/cashwave/internal/cart"
	"github.com/example/cashwave/internal/models"
	"github.com/example/cashwave/internal/repository"
)

// mockUserRepo implements repository.UserRepository for testing
type mockUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepo) put(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	m.put(user)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if role, ok := updates["role"].(string); ok {
		user.Role = role
	}
	return nil
}

func (m *mockUserRepo) List(context.Context, int, int) ([]models.User, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []models.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, int64(len(users)), m.err
}

func (m *mockUserRepo) Count(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), m.err
}

// mockOrderRepo implements repository.OrderRepository for testing
type mockOrderRepo struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*models.Order
	createErr error
	getErr    error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uuid.UUID]*models.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	clone := cloneOrder(order)
	m.orders[order.ID] = clone
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, *cloneOrder(o))
		}
	}
	return orders, int64(len(orders)), nil
}

func (m *mockOrderRepo) ListAll(_ context.Context, status string, _, _ int) ([]models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []models.Order
	for _, o := range m.orders {
		if status == "" || o.Status == status {
			orders = append(orders, *cloneOrder(o))
		}
	}
	return orders, int64(len(orders)), nil
}

func (m *mockOrderRepo) ConfirmPending(_ context.Context, id, adminID uuid.UUID, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok || order.Status != models.OrderStatusPending {
		return false, nil
	}
	order.Status = models.OrderStatusConfirmed
	order.ConfirmedAt = &at
	order.ConfirmedBy = &adminID
	return true, nil
}

func (m *mockOrderRepo) SumConfirmedTotals(context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var revenue float64
	for _, o := range m.orders {
		if o.Status == models.OrderStatusConfirmed {
			revenue += o.Total
		}
	}
	return revenue, nil
}

func (m *mockOrderRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.orders)), nil
}

func cloneOrder(order *models.Order) *models.Order {
	clone := *order
	clone.Items = append([]models.OrderItem(nil), order.Items...)
	return &clone
}

// mockPurchaseRepo implements repository.PurchaseRepository for testing
type mockPurchaseRepo struct {
	mu      sync.Mutex
	records []models.PurchaseRecord
	failFor map[uuid.UUID]error // productID -> forced append error
}

func newMockPurchaseRepo() *mockPurchaseRepo {
	return &mockPurchaseRepo{failFor: make(map[uuid.UUID]error)}
}

func (m *mockPurchaseRepo) Append(_ context.Context, record *models.PurchaseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[record.ProductID]; ok {
		return err
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockPurchaseRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.PurchaseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var records []models.PurchaseRecord
	for _, r := range m.records {
		if r.UserID == userID {
			records = append(records, r)
		}
	}
	return records, nil
}

func (m *mockPurchaseRepo) Exists(_ context.Context, userID, productID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.UserID == userID && r.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPurchaseRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// mockCartStore implements cart.Store for testing
type mockCartStore struct {
	mu       sync.Mutex
	carts    map[uuid.UUID]*cart.Cart
	loadErr  error
	clearErr error
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: make(map[uuid.UUID]*cart.Cart)}
}

func (m *mockCartStore) Load(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	stored, ok := m.carts[userID]
	if !ok {
		return &cart.Cart{}, nil
	}
	clone := cart.Cart{Lines: append([]cart.Line(nil), stored.Lines...)}
	return &clone, nil
}

func (m *mockCartStore) Save(_ context.Context, userID uuid.UUID, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[userID] = c
	return nil
}

func (m *mockCartStore) Clear(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.carts, userID)
	return nil
}

func (m *mockCartStore) has(userID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.carts[userID]
	return ok
}
