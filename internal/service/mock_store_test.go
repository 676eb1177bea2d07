package service

import (
	"context"
	"strings"
	"time"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// mockStore is an in-memory Store. InTx snapshots all state before running
// the callback and restores it on error, mirroring transaction rollback.
type mockStore struct {
	products   map[uuid.UUID]*domain.Product
	carts      map[domain.Identity]*domain.Cart
	cartItems  map[uuid.UUID]*domain.CartItem
	orders     map[uuid.UUID]*domain.Order
	orderItems []*domain.OrderItem

	reporting mockReportingData

	// failReduceStock, when set, makes the next ReduceStock call fail.
	failReduceStock error
}

type mockReportingData struct {
	summary      *repository.WindowSummary
	salesDesc    []*repository.ProductSales
	salesAsc     []*repository.ProductSales
	neverOrdered []*repository.NeverOrderedProduct
	frequency    []*repository.DateBucket
	performance  []*repository.ProductPerformance
}

func newMockStore() *mockStore {
	return &mockStore{
		products:  make(map[uuid.UUID]*domain.Product),
		carts:     make(map[domain.Identity]*domain.Cart),
		cartItems: make(map[uuid.UUID]*domain.CartItem),
		orders:    make(map[uuid.UUID]*domain.Order),
	}
}

func (m *mockStore) addProduct(name string, price string, stock int) *domain.Product {
	p := &domain.Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	m.products[p.ID] = p
	return p
}

func (m *mockStore) Products() repository.ProductRepository { return &mockProductRepo{m} }

func (m *mockStore) Carts() repository.CartRepository { return &mockCartRepo{m} }

func (m *mockStore) Orders() repository.OrderRepository { return &mockOrderRepo{m} }

func (m *mockStore) Reporting() repository.ReportingRepository { return &mockReportingRepo{m} }

func (m *mockStore) InTx(ctx context.Context, fn func(repository.Store) error) error {
	products := make(map[uuid.UUID]*domain.Product, len(m.products))
	for id, p := range m.products {
		cp := *p
		products[id] = &cp
	}
	carts := make(map[domain.Identity]*domain.Cart, len(m.carts))
	for id, c := range m.carts {
		cp := *c
		carts[id] = &cp
	}
	cartItems := make(map[uuid.UUID]*domain.CartItem, len(m.cartItems))
	for id, ci := range m.cartItems {
		cp := *ci
		cartItems[id] = &cp
	}
	orders := make(map[uuid.UUID]*domain.Order, len(m.orders))
	for id, o := range m.orders {
		cp := *o
		orders[id] = &cp
	}
	orderItems := append([]*domain.OrderItem(nil), m.orderItems...)

	if err := fn(m); err != nil {
		m.products = products
		m.carts = carts
		m.cartItems = cartItems
		m.orders = orders
		m.orderItems = orderItems
		return err
	}
	return nil
}

type mockProductRepo struct{ s *mockStore }

func (r *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *mockProductRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := r.s.products[id]
	if !ok || !p.IsActive {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *mockProductRepo) List(ctx context.Context, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	products := []*domain.Product{}
	for _, p := range r.s.products {
		if p.IsActive {
			cp := *p
			products = append(products, &cp)
		}
	}
	return products, len(products), nil
}

func (r *mockProductRepo) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	products := []*domain.Product{}
	for _, p := range r.s.products {
		if p.IsActive && strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			cp := *p
			products = append(products, &cp)
		}
	}
	return products, len(products), nil
}

func (r *mockProductRepo) LockForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	locked := make(map[uuid.UUID]*domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			cp := *p
			locked[id] = &cp
		}
	}
	return locked, nil
}

func (r *mockProductRepo) ReduceStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if r.s.failReduceStock != nil {
		return r.s.failReduceStock
	}
	p, ok := r.s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	if p.StockQuantity < quantity {
		return &domain.ConflictError{Message: "stock changed concurrently"}
	}
	p.StockQuantity -= quantity
	p.TotalOrdered += quantity
	return nil
}

func (r *mockProductRepo) RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error {
	p, ok := r.s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.StockQuantity += quantity
	p.TotalOrdered -= quantity
	if p.TotalOrdered < 0 {
		p.TotalOrdered = 0
	}
	return nil
}

type mockCartRepo struct{ s *mockStore }

func (r *mockCartRepo) GetOrCreate(ctx context.Context, identity domain.Identity) (*domain.Cart, error) {
	if cart, ok := r.s.carts[identity]; ok {
		cp := *cart
		return &cp, nil
	}
	cart := &domain.Cart{
		ID:        uuid.New(),
		Identity:  identity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.s.carts[identity] = cart
	cp := *cart
	return &cp, nil
}

func (r *mockCartRepo) ListItems(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItem, error) {
	items := []*domain.CartItem{}
	for _, item := range r.s.cartItems {
		if item.CartID != cartID {
			continue
		}
		product, ok := r.s.products[item.ProductID]
		if !ok || !product.IsActive {
			continue
		}
		cp := *item
		pcp := *product
		cp.Product = &pcp
		items = append(items, &cp)
	}
	return items, nil
}

func (r *mockCartRepo) FindItem(ctx context.Context, cartID, itemID uuid.UUID) (*domain.CartItem, error) {
	item, ok := r.s.cartItems[itemID]
	if !ok || item.CartID != cartID {
		return nil, repository.ErrCartItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *mockCartRepo) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	for _, item := range r.s.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			item.Quantity += quantity
			item.UpdatedAt = time.Now()
			return nil
		}
	}
	item := &domain.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
		UpdatedAt: time.Now(),
	}
	r.s.cartItems[item.ID] = item
	return nil
}

func (r *mockCartRepo) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error {
	item, ok := r.s.cartItems[itemID]
	if !ok || item.CartID != cartID {
		return repository.ErrCartItemNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return nil
}

func (r *mockCartRepo) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	item, ok := r.s.cartItems[itemID]
	if !ok || item.CartID != cartID {
		return repository.ErrCartItemNotFound
	}
	delete(r.s.cartItems, itemID)
	return nil
}

func (r *mockCartRepo) Clear(ctx context.Context, cartID uuid.UUID) error {
	for id, item := range r.s.cartItems {
		if item.CartID == cartID {
			delete(r.s.cartItems, id)
		}
	}
	return nil
}

type mockOrderRepo struct{ s *mockStore }

func (r *mockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	cp := *order
	cp.Items = nil
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *mockOrderRepo) CreateItem(ctx context.Context, item *domain.OrderItem) error {
	cp := *item
	r.s.orderItems = append(r.s.orderItems, &cp)
	return nil
}

func (r *mockOrderRepo) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time, change decimal.Decimal) error {
	order, ok := r.s.orders[id]
	if !ok || order.Status != domain.OrderStatusPending {
		return repository.ErrOrderNotFound
	}
	order.Status = domain.OrderStatusCompleted
	order.CompletedAt = &completedAt
	order.ChangeAmount = change
	return nil
}

func (r *mockOrderRepo) FindByID(ctx context.Context, identity domain.Identity, id uuid.UUID) (*domain.Order, error) {
	order, ok := r.s.orders[id]
	if !ok || order.Identity != identity {
		return nil, repository.ErrOrderNotFound
	}
	cp := *order
	cp.Items = r.itemsFor(id)
	return &cp, nil
}

func (r *mockOrderRepo) ListByIdentity(ctx context.Context, identity domain.Identity, status domain.OrderStatus) ([]*domain.Order, error) {
	orders := []*domain.Order{}
	for _, order := range r.s.orders {
		if order.Identity != identity {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		cp := *order
		cp.Items = r.itemsFor(order.ID)
		orders = append(orders, &cp)
	}
	return orders, nil
}

func (r *mockOrderRepo) itemsFor(orderID uuid.UUID) []*domain.OrderItem {
	items := []*domain.OrderItem{}
	for _, item := range r.s.orderItems {
		if item.OrderID == orderID {
			cp := *item
			items = append(items, &cp)
		}
	}
	return items
}

type mockReportingRepo struct{ s *mockStore }

func (r *mockReportingRepo) Summary(ctx context.Context, since time.Time) (*repository.WindowSummary, error) {
	if r.s.reporting.summary != nil {
		return r.s.reporting.summary, nil
	}
	return &repository.WindowSummary{}, nil
}

func (r *mockReportingRepo) ProductSales(ctx context.Context, since time.Time, order repository.SortOrder, limit int) ([]*repository.ProductSales, error) {
	if order == repository.SortOrderAsc {
		return r.s.reporting.salesAsc, nil
	}
	return r.s.reporting.salesDesc, nil
}

func (r *mockReportingRepo) NeverOrdered(ctx context.Context, since time.Time, limit int) ([]*repository.NeverOrderedProduct, error) {
	return r.s.reporting.neverOrdered, nil
}

func (r *mockReportingRepo) OrderFrequency(ctx context.Context, since time.Time) ([]*repository.DateBucket, error) {
	return r.s.reporting.frequency, nil
}

func (r *mockReportingRepo) ProductPerformance(ctx context.Context) ([]*repository.ProductPerformance, error) {
	return r.s.reporting.performance, nil
}
