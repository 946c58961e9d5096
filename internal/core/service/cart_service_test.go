package service

import (
	"context"
	"errors"
	"testing"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

func newCartFixture() (*CartService, *stubCartRepo, *stubProductRepo) {
	products := newStubProductRepo()
	carts := newStubCartRepo()
	return NewCartService(carts, products, discardLogger), carts, products
}

func TestCartService_Add_MergesDuplicates(t *testing.T) {
	svc, repo, products := newCartFixture()
	pid := products.seed("Keyboard", "Gaming", 800000)
	caller := userIdentity("u1")

	first, err := svc.Add(context.Background(), caller, pid, 2)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	second, err := svc.Add(context.Background(), caller, pid, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if first != second {
		t.Errorf("adds for the same product must reuse the line: %q vs %q", first, second)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected exactly 1 line, got %d", len(repo.items))
	}
	if got := repo.items[first].Quantity; got != 5 {
		t.Errorf("expected merged quantity 5, got %d", got)
	}
}

func TestCartService_Add_RejectsNonPositiveQuantity(t *testing.T) {
	svc, repo, products := newCartFixture()
	pid := products.seed("Keyboard", "Gaming", 800000)

	for _, qty := range []int64{0, -1} {
		if _, err := svc.Add(context.Background(), userIdentity("u1"), pid, qty); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if len(repo.items) != 0 {
		t.Errorf("invalid adds must not create lines, got %d", len(repo.items))
	}
}

func TestCartService_Add_UnknownProduct(t *testing.T) {
	svc, _, _ := newCartFixture()

	_, err := svc.Add(context.Background(), userIdentity("u1"), "missing", 1)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartService_Add_Anonymous(t *testing.T) {
	svc, _, products := newCartFixture()
	pid := products.seed("Keyboard", "Gaming", 800000)

	if _, err := svc.Add(context.Background(), anonymous, pid, 1); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCartService_SetQuantity_ZeroOrNegativeDeletes(t *testing.T) {
	for _, qty := range []int64{0, -1} {
		svc, repo, products := newCartFixture()
		pid := products.seed("Keyboard", "Gaming", 800000)
		caller := userIdentity("u1")
		lineID, _ := svc.Add(context.Background(), caller, pid, 2)

		if err := svc.SetQuantity(context.Background(), caller, lineID, qty); err != nil {
			t.Fatalf("qty %d: unexpected error: %v", qty, err)
		}
		if len(repo.items) != 0 {
			t.Errorf("qty %d: line must be deleted", qty)
		}

		entries, err := svc.Items(context.Background(), caller)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("qty %d: deleted line still listed", qty)
		}
	}
}

func TestCartService_SetQuantity_Replaces(t *testing.T) {
	svc, repo, products := newCartFixture()
	pid := products.seed("Keyboard", "Gaming", 800000)
	caller := userIdentity("u1")
	lineID, _ := svc.Add(context.Background(), caller, pid, 2)

	if err := svc.SetQuantity(context.Background(), caller, lineID, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.items[lineID].Quantity; got != 7 {
		t.Errorf("expected quantity replaced with 7, got %d", got)
	}
}

func TestCartService_SetQuantity_MissingLine(t *testing.T) {
	svc, _, _ := newCartFixture()

	err := svc.SetQuantity(context.Background(), userIdentity("u1"), "missing", 3)
	if !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartService_SetQuantity_OtherUsersLine(t *testing.T) {
	svc, repo, products := newCartFixture()
	pid := products.seed("Keyboard", "Gaming", 800000)
	lineID, _ := svc.Add(context.Background(), userIdentity("owner"), pid, 2)

	err := svc.SetQuantity(context.Background(), userIdentity("intruder"), lineID, 9)
	if !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound for foreign line, got %v", err)
	}
	if got := repo.items[lineID].Quantity; got != 2 {
		t.Errorf("foreign line must be untouched, got quantity %d", got)
	}
}

func TestCartService_Remove_IsIdempotent(t *testing.T) {
	svc, _, products := newCartFixture()
	pid := products.seed("Keyboard", "Gaming", 800000)
	caller := userIdentity("u1")
	lineID, _ := svc.Add(context.Background(), caller, pid, 2)

	if err := svc.Remove(context.Background(), caller, lineID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	// Second remove of the same (now absent) line succeeds silently.
	if err := svc.Remove(context.Background(), caller, lineID); err != nil {
		t.Fatalf("repeat remove must be a no-op, got %v", err)
	}
}

func TestCartService_Items_FiltersDanglingProducts(t *testing.T) {
	svc, _, products := newCartFixture()
	kept := products.seed("Keyboard", "Gaming", 800000)
	doomed := products.seed("Headset", "Gaming", 1500000)
	caller := userIdentity("u1")

	_, _ = svc.Add(context.Background(), caller, kept, 1)
	_, _ = svc.Add(context.Background(), caller, doomed, 1)

	if err := products.Delete(context.Background(), doomed); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	entries, err := svc.Items(context.Background(), caller)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected dangling line hidden, got %d entries", len(entries))
	}
	if entries[0].ProductID != kept {
		t.Errorf("expected surviving product %q, got %q", kept, entries[0].ProductID)
	}
}

func TestCartService_Items_AnonymousSeesEmptyCart(t *testing.T) {
	svc, _, _ := newCartFixture()

	entries, err := svc.Items(context.Background(), anonymous)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("anonymous cart must be empty, got %d entries", len(entries))
	}
}

func TestCartService_Clear(t *testing.T) {
	svc, repo, products := newCartFixture()
	p1 := products.seed("Keyboard", "Gaming", 800000)
	p2 := products.seed("Headset", "Gaming", 1500000)
	caller := userIdentity("u1")
	other := userIdentity("u2")

	_, _ = svc.Add(context.Background(), caller, p1, 1)
	_, _ = svc.Add(context.Background(), caller, p2, 2)
	otherLine, _ := svc.Add(context.Background(), other, p1, 3)

	if err := svc.Clear(context.Background(), caller); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if len(repo.items) != 1 {
		t.Fatalf("clear must only touch the caller's lines, %d left", len(repo.items))
	}
	if _, ok := repo.items[otherLine]; !ok {
		t.Error("another user's line disappeared")
	}
}
