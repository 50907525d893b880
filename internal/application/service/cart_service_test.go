package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/config"
	"github.com/mkamau/dinepos-api/internal/domain/entity"
	"github.com/mkamau/dinepos-api/internal/domain/enum"
	domainRepo "github.com/mkamau/dinepos-api/internal/domain/repository"
	"github.com/mkamau/dinepos-api/internal/infrastructure/orderapi"
	"github.com/mkamau/dinepos-api/pkg/apperror"
	"github.com/mkamau/dinepos-api/pkg/qrtoken"
)

type fakeCartRepo struct {
	carts   map[uuid.UUID]*entity.Cart
	deleted []uuid.UUID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uuid.UUID]*entity.Cart)}
}

func (f *fakeCartRepo) Create(_ context.Context, cart *entity.Cart) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	cart.CreatedAt = time.Now()
	cart.UpdatedAt = time.Now()
	f.carts[cart.ID] = cart
	return nil
}

func (f *fakeCartRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Cart, error) {
	cart, ok := f.carts[id]
	if !ok {
		return nil, nil
	}
	return cart, nil
}

func (f *fakeCartRepo) GetOpenByTarget(_ context.Context, target string) (*entity.Cart, error) {
	for _, cart := range f.carts {
		if cart.Target == target && !cart.IsSubmitted() {
			return cart, nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) GetByOrderReference(_ context.Context, ref string) (*entity.Cart, error) {
	for _, cart := range f.carts {
		if cart.OrderReference == ref {
			return cart, nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) Save(_ context.Context, cart *entity.Cart) error {
	cart.UpdatedAt = time.Now()
	f.carts[cart.ID] = cart
	return nil
}

func (f *fakeCartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.carts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCartRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, cart := range f.carts {
		if !cart.IsSubmitted() && cart.UpdatedAt.Before(cutoff) {
			delete(f.carts, id)
			n++
		}
	}
	return n, nil
}

type fakeMenuRepo struct {
	items map[uuid.UUID]*entity.MenuItem
}

func newFakeMenuRepo(items ...*entity.MenuItem) *fakeMenuRepo {
	f := &fakeMenuRepo{items: make(map[uuid.UUID]*entity.MenuItem)}
	for _, item := range items {
		f.items[item.ID] = item
	}
	return f
}

func (f *fakeMenuRepo) Create(_ context.Context, item *entity.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (f *fakeMenuRepo) Update(_ context.Context, item *entity.MenuItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeMenuRepo) List(_ context.Context, _ *domainRepo.MenuItemFilterParams) ([]entity.MenuItem, int64, error) {
	var out []entity.MenuItem
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

type fakeSubmitter struct {
	result  *orderapi.SubmissionResult
	err     error
	lastReq *entity.OrderRequest
}

func (f *fakeSubmitter) Submit(_ context.Context, req *entity.OrderRequest) (*orderapi.SubmissionResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testPricing() config.PricingConfig {
	return config.PricingConfig{TaxRate: 0.15, CurrencySymbol: "$"}
}

func newTestCartService(cartRepo *fakeCartRepo, menuRepo *fakeMenuRepo, submitter *fakeSubmitter) *CartService {
	tokens := qrtoken.NewManager("test-secret", time.Hour)
	return NewCartService(cartRepo, menuRepo, submitter, tokens, testPricing(), 2*time.Hour)
}

func chipsItem() *entity.MenuItem {
	return &entity.MenuItem{
		ID:        uuid.New(),
		Name:      "Chips Masala",
		Category:  "Sides",
		Price:     450,
		Available: true,
	}
}

func TestCreateCartReturnsExistingOpenCart(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newTestCartService(cartRepo, newFakeMenuRepo(), &fakeSubmitter{})

	input := &CreateCartInput{Target: "table-5", OrderType: enum.OrderTypeWaiter}

	first, err := svc.CreateCart(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateCart() error = %v", err)
	}
	second, err := svc.CreateCart(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateCart() second call error = %v", err)
	}

	if first.ID != second.ID {
		t.Error("creating a cart for an occupied target must return the existing cart")
	}
	if first.TaxRate != 0.15 {
		t.Errorf("TaxRate = %v, want rate fixed from config at creation", first.TaxRate)
	}
}

func TestCreateCartQRBindsTableFromToken(t *testing.T) {
	cartRepo := newFakeCartRepo()
	tokens := qrtoken.NewManager("test-secret", time.Hour)
	svc := NewCartService(cartRepo, newFakeMenuRepo(), &fakeSubmitter{}, tokens, testPricing(), 2*time.Hour)

	token, _, err := tokens.Issue("table-9")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	cart, err := svc.CreateCart(context.Background(), &CreateCartInput{
		OrderType: enum.OrderTypeQR,
		QRToken:   token,
		Target:    "table-1", // ignored; the token wins
	})
	if err != nil {
		t.Fatalf("CreateCart() error = %v", err)
	}
	if cart.Target != "table-9" {
		t.Errorf("Target = %q, want table-9 from token", cart.Target)
	}
}

func TestCreateCartQRRejectsBadToken(t *testing.T) {
	svc := newTestCartService(newFakeCartRepo(), newFakeMenuRepo(), &fakeSubmitter{})

	_, err := svc.CreateCart(context.Background(), &CreateCartInput{
		OrderType: enum.OrderTypeQR,
		QRToken:   "not-a-token",
	})
	if err == nil {
		t.Fatal("expected error for invalid QR token")
	}
}

func TestAddItemSnapshotsMenuPrice(t *testing.T) {
	cartRepo := newFakeCartRepo()
	item := chipsItem()
	menuRepo := newFakeMenuRepo(item)
	svc := newTestCartService(cartRepo, menuRepo, &fakeSubmitter{})

	cart, err := svc.CreateCart(context.Background(), &CreateCartInput{Target: "table-5", OrderType: enum.OrderTypeWaiter})
	if err != nil {
		t.Fatalf("CreateCart() error = %v", err)
	}

	cart, err = svc.AddItem(context.Background(), cart.ID, &AddItemInput{ItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	line := cart.Line(item.ID)
	if line == nil {
		t.Fatal("expected line in cart")
	}
	if line.UnitPrice != 450 || line.Name != "Chips Masala" {
		t.Errorf("line = %q @ %d, want add-time snapshot", line.Name, line.UnitPrice)
	}

	// A later price change must not affect the open cart.
	item.Price = 600
	got, err := svc.GetCart(context.Background(), cart.ID)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if got.Line(item.ID).UnitPrice != 450 {
		t.Error("menu price change leaked into an open cart")
	}
}

func TestAddItemRejectsUnavailableItem(t *testing.T) {
	cartRepo := newFakeCartRepo()
	item := chipsItem()
	item.Available = false
	svc := newTestCartService(cartRepo, newFakeMenuRepo(item), &fakeSubmitter{})

	cart, _ := svc.CreateCart(context.Background(), &CreateCartInput{Target: "table-5", OrderType: enum.OrderTypeWaiter})

	_, err := svc.AddItem(context.Background(), cart.ID, &AddItemInput{ItemID: item.ID, Quantity: 1})
	if err == nil {
		t.Fatal("expected error adding an unavailable item")
	}
}

func TestAddItemQuantityRules(t *testing.T) {
	countable := chipsItem()
	fish := &entity.MenuItem{
		ID:          uuid.New(),
		Name:        "Whole Tilapia",
		Price:       1200,
		Available:   true,
		WeightBased: true,
	}

	tests := []struct {
		name    string
		itemID  uuid.UUID
		qty     float64
		wantErr bool
	}{
		{name: "whole quantity on countable item", itemID: countable.ID, qty: 2, wantErr: false},
		{name: "fractional quantity on countable item", itemID: countable.ID, qty: 1.5, wantErr: true},
		{name: "fractional quantity on weight-based item", itemID: fish.ID, qty: 0.75, wantErr: false},
		{name: "zero quantity", itemID: countable.ID, qty: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestCartService(newFakeCartRepo(), newFakeMenuRepo(countable, fish), &fakeSubmitter{})
			cart, _ := svc.CreateCart(context.Background(), &CreateCartInput{Target: "table-5", OrderType: enum.OrderTypeWaiter})

			_, err := svc.AddItem(context.Background(), cart.ID, &AddItemInput{ItemID: tt.itemID, Quantity: tt.qty})
			if (err != nil) != tt.wantErr {
				t.Errorf("AddItem(qty=%v) error = %v, wantErr %v", tt.qty, err, tt.wantErr)
			}
		})
	}
}

func TestSubmitCartRetiresCart(t *testing.T) {
	cartRepo := newFakeCartRepo()
	item := chipsItem()
	submitter := &fakeSubmitter{result: &orderapi.SubmissionResult{OrderReference: "1042", OrderNumber: "1042"}}
	svc := newTestCartService(cartRepo, newFakeMenuRepo(item), submitter)

	cart, _ := svc.CreateCart(context.Background(), &CreateCartInput{Target: "table-5", OrderType: enum.OrderTypeWaiter})
	if _, err := svc.AddItem(context.Background(), cart.ID, &AddItemInput{ItemID: item.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	result, err := svc.SubmitCart(context.Background(), cart.ID, "", "")
	if err != nil {
		t.Fatalf("SubmitCart() error = %v", err)
	}
	if result.OrderReference != "1042" {
		t.Errorf("OrderReference = %q, want 1042", result.OrderReference)
	}

	if submitter.lastReq == nil {
		t.Fatal("submitter was not called")
	}
	if submitter.lastReq.CustomerName != "Guest" {
		t.Errorf("CustomerName = %q, want Guest default", submitter.lastReq.CustomerName)
	}
	if submitter.lastReq.Table != "table-5" {
		t.Errorf("Table = %q, want table-5", submitter.lastReq.Table)
	}

	// The cart is gone; a new order for the table starts fresh.
	if len(cartRepo.deleted) != 1 {
		t.Errorf("deleted %d carts, want 1", len(cartRepo.deleted))
	}
	if _, err := svc.GetCart(context.Background(), cart.ID); err == nil {
		t.Error("expected submitted cart to be unavailable")
	}
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	cartRepo := newFakeCartRepo()
	submitter := &fakeSubmitter{result: &orderapi.SubmissionResult{OrderReference: "1042"}}
	svc := newTestCartService(cartRepo, newFakeMenuRepo(), submitter)

	cart, _ := svc.CreateCart(context.Background(), &CreateCartInput{Target: "table-5", OrderType: enum.OrderTypeWaiter})

	_, err := svc.SubmitCart(context.Background(), cart.ID, "Jane", "")
	if !apperror.IsKind(err, apperror.KindEmptyCart) {
		t.Errorf("SubmitCart() error = %v, want empty cart", err)
	}
	if submitter.lastReq != nil {
		t.Error("empty cart must never reach the order API")
	}
}

func TestSubmitCartSurvivesOnUpstreamFailure(t *testing.T) {
	cartRepo := newFakeCartRepo()
	item := chipsItem()
	submitter := &fakeSubmitter{err: apperror.NewSubmissionTimeoutError()}
	svc := newTestCartService(cartRepo, newFakeMenuRepo(item), submitter)

	cart, _ := svc.CreateCart(context.Background(), &CreateCartInput{Target: "table-5", OrderType: enum.OrderTypeWaiter})
	if _, err := svc.AddItem(context.Background(), cart.ID, &AddItemInput{ItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	_, err := svc.SubmitCart(context.Background(), cart.ID, "", "")
	if !apperror.IsKind(err, apperror.KindSubmissionTimeout) {
		t.Errorf("SubmitCart() error = %v, want submission timeout", err)
	}

	// The cart stays intact so the operator can retry after checking.
	got, err := svc.GetCart(context.Background(), cart.ID)
	if err != nil {
		t.Fatalf("GetCart() after failed submit error = %v", err)
	}
	if got.IsEmpty() {
		t.Error("cart lines must survive a failed submission")
	}
}

func TestGetCartDiscardsExpired(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newTestCartService(cartRepo, newFakeMenuRepo(), &fakeSubmitter{})

	cart, _ := svc.CreateCart(context.Background(), &CreateCartInput{Target: "table-5", OrderType: enum.OrderTypeWaiter})

	// Age the cart past the TTL.
	cartRepo.carts[cart.ID].UpdatedAt = time.Now().Add(-3 * time.Hour)

	_, err := svc.GetCart(context.Background(), cart.ID)
	if err == nil {
		t.Fatal("expected expired cart to be discarded on load")
	}
	if len(cartRepo.deleted) != 1 {
		t.Errorf("deleted %d carts, want 1", len(cartRepo.deleted))
	}
}

func TestSweepExpired(t *testing.T) {
	cartRepo := newFakeCartRepo()
	svc := newTestCartService(cartRepo, newFakeMenuRepo(), &fakeSubmitter{})

	fresh, _ := svc.CreateCart(context.Background(), &CreateCartInput{Target: "table-1", OrderType: enum.OrderTypeWaiter})
	stale, _ := svc.CreateCart(context.Background(), &CreateCartInput{Target: "table-2", OrderType: enum.OrderTypeWaiter})
	cartRepo.carts[stale.ID].UpdatedAt = time.Now().Add(-3 * time.Hour)

	n, err := svc.SweepExpired(context.Background())
	if err != nil {
		t.Fatalf("SweepExpired() error = %v", err)
	}
	if n != 1 {
		t.Errorf("swept %d carts, want 1", n)
	}
	if _, ok := cartRepo.carts[fresh.ID]; !ok {
		t.Error("fresh cart must survive the sweep")
	}
}
