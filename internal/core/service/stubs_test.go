package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories mirroring the Mongo implementations' semantics.
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	products map[string]*domain.Product
	nextID   int
	failWith error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) seed(name, category string, price float64) string {
	r.nextID++
	id := fmt.Sprintf("p%d", r.nextID)
	r.products[id] = &domain.Product{
		ID: id, Name: name, Category: category, Price: price, InStock: true,
		CreatedAt: time.Now().UTC(),
	}
	return id
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]*domain.Product, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := []*domain.Product{}
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) ListByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	out := []*domain.Product{}
	for _, p := range r.products {
		if p.Category == category {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Product, error) {
	found := map[string]*domain.Product{}
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			clone := *p
			found[id] = &clone
		}
	}
	return found, nil
}

func (r *stubProductRepo) Insert(_ context.Context, p *domain.Product) (string, error) {
	if r.failWith != nil {
		return "", r.failWith
	}
	r.nextID++
	id := fmt.Sprintf("p%d", r.nextID)
	clone := *p
	clone.ID = id
	r.products[id] = &clone
	return id, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, p *domain.Product) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	clone.ID = id
	r.products[id] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type stubCartRepo struct {
	items    map[string]*domain.CartItem // by line id
	nextID   int
	clearErr error
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{items: make(map[string]*domain.CartItem)}
}

func (r *stubCartRepo) AddOrIncrement(_ context.Context, userID, productID string, qty int64) (string, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += qty
			item.UpdatedAt = time.Now().UTC()
			return item.ID, nil
		}
	}
	r.nextID++
	id := fmt.Sprintf("c%d", r.nextID)
	r.items[id] = &domain.CartItem{
		ID: id, UserID: userID, ProductID: productID, Quantity: qty,
		UpdatedAt: time.Now().UTC(),
	}
	return id, nil
}

func (r *stubCartRepo) UpdateQuantity(_ context.Context, userID, itemID string, qty int64) error {
	item, ok := r.items[itemID]
	if !ok || item.UserID != userID {
		return domain.ErrCartItemNotFound
	}
	item.Quantity = qty
	return nil
}

func (r *stubCartRepo) Delete(_ context.Context, userID, itemID string) error {
	if item, ok := r.items[itemID]; ok && item.UserID == userID {
		delete(r.items, itemID)
	}
	return nil
}

func (r *stubCartRepo) ListByUser(_ context.Context, userID string) ([]*domain.CartItem, error) {
	out := []*domain.CartItem{}
	for _, item := range r.items {
		if item.UserID == userID {
			clone := *item
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCartRepo) ClearUser(_ context.Context, userID string) error {
	if r.clearErr != nil {
		return r.clearErr
	}
	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

type stubOrderRepo struct {
	orders    []*domain.Order
	nextID    int
	insertErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{}
}

func (r *stubOrderRepo) Insert(_ context.Context, o *domain.Order) (string, error) {
	if r.insertErr != nil {
		return "", r.insertErr
	}
	r.nextID++
	clone := *o
	clone.ID = fmt.Sprintf("o%d", r.nextID)
	r.orders = append(r.orders, &clone)
	return clone.ID, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

// ListByUser returns newest first, like the Mongo sort on created_at.
func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	out := []*domain.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			clone := *r.orders[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListAll(_ context.Context) ([]*domain.Order, error) {
	out := []*domain.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		clone := *r.orders[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, next domain.OrderStatus) error {
	for _, o := range r.orders {
		if o.ID == id {
			if o.Status != from {
				return domain.ErrInvalidTransition
			}
			o.Status = next
			return nil
		}
	}
	return domain.ErrInvalidTransition
}

type stubAdminRepo struct {
	grants    map[string]*domain.AdminGrant // by user id
	claimedBy string
	nextID    int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{grants: make(map[string]*domain.AdminGrant)}
}

func (r *stubAdminRepo) FindGrant(_ context.Context, userID string) (*domain.AdminGrant, error) {
	g, ok := r.grants[userID]
	if !ok {
		return nil, nil
	}
	clone := *g
	return &clone, nil
}

func (r *stubAdminRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.grants)), nil
}

func (r *stubAdminRepo) ClaimBootstrap(_ context.Context, userID string) error {
	if r.claimedBy != "" && r.claimedBy != userID {
		return domain.ErrBootstrapTaken
	}
	r.claimedBy = userID
	return nil
}

func (r *stubAdminRepo) CreateGrant(_ context.Context, g *domain.AdminGrant) (*domain.AdminGrant, error) {
	if existing, ok := r.grants[g.UserID]; ok {
		clone := *existing
		return &clone, nil
	}
	r.nextID++
	clone := *g
	clone.ID = fmt.Sprintf("a%d", r.nextID)
	r.grants[g.UserID] = &clone
	return &clone, nil
}

func (r *stubAdminRepo) grantUser(userID string) {
	r.nextID++
	r.grants[userID] = &domain.AdminGrant{
		ID: fmt.Sprintf("a%d", r.nextID), UserID: userID,
		Email: userID + "@example.com", CreatedAt: time.Now().UTC(),
	}
}

type stubAuthRepo struct {
	users  map[string]*domain.User // by username
	nextID int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[user.Username] = &clone
	result := clone
	return &result, nil
}

// stubCache is an in-memory CatalogCache.
type stubCache struct {
	entries  map[string][]*domain.Product
	getErr   error
	setCalls int
	flushed  int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]*domain.Product)}
}

func (c *stubCache) Get(_ context.Context, category string) ([]*domain.Product, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[category], nil
}

func (c *stubCache) Set(_ context.Context, category string, products []*domain.Product) error {
	c.setCalls++
	c.entries[category] = products
	return nil
}

func (c *stubCache) Invalidate(_ context.Context) error {
	c.flushed++
	c.entries = make(map[string][]*domain.Product)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func userIdentity(id string) domain.Identity {
	return domain.Identity{UserID: id, Username: "user-" + id}
}

var anonymous = domain.Identity{}
