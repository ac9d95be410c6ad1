package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/watchhub/watchhub/internal/models"
	"github.com/watchhub/watchhub/internal/repository"
)

func newCartService(t *testing.T) *CartService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.CartLine{}); err != nil {
		t.Fatalf("auto migrate cart line failed: %v", err)
	}
	return NewCartService(repository.NewCartRepository(db))
}

func TestCartAddLineMergesSameProductVariant(t *testing.T) {
	svc := newCartService(t)
	owner := "guest:merge"

	first, err := svc.AddLine(owner, 1, 2, "40mm", models.Money{})
	if err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	second, err := svc.AddLine(owner, 1, 3, "40mm", models.Money{})
	if err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected merge into line %s, got new line %s", first.ID, second.ID)
	}
	lines := svc.List(owner)
	if len(lines) != 1 || lines[0].Quantity != 5 {
		t.Fatalf("expected single line with quantity 5, got %+v", lines)
	}
}

func TestCartAddLineVariantsStayDistinct(t *testing.T) {
	svc := newCartService(t)
	owner := "guest:variants"

	if _, err := svc.AddLine(owner, 1, 1, "40mm", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	if _, err := svc.AddLine(owner, 1, 1, "44mm", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	lines := svc.List(owner)
	if len(lines) != 2 {
		t.Fatalf("expected 2 distinct lines, got %d", len(lines))
	}
}

func TestCartAddLineRejectsInvalidQuantity(t *testing.T) {
	svc := newCartService(t)
	if _, err := svc.AddLine("guest:badqty", 1, 0, "", models.Money{}); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	svc := newCartService(t)
	owner := "guest:setzero"

	line, err := svc.AddLine(owner, 1, 2, "", models.Money{})
	if err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	if err := svc.SetQuantity(owner, line.ID, 0); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if lines := svc.List(owner); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestCartSetQuantityMissingLineIsNoop(t *testing.T) {
	svc := newCartService(t)
	if err := svc.SetQuantity("guest:missing", "no-such-line", 3); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestCartRemoveLineIdempotent(t *testing.T) {
	svc := newCartService(t)
	owner := "guest:remove"

	line, err := svc.AddLine(owner, 1, 1, "", models.Money{})
	if err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	if err := svc.RemoveLine(owner, line.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.RemoveLine(owner, line.ID); err != nil {
		t.Fatalf("expected idempotent remove, got %v", err)
	}
}

func TestCartListKeepsInsertionOrder(t *testing.T) {
	svc := newCartService(t)
	owner := "guest:order"

	for productID := uint(1); productID <= 3; productID++ {
		if _, err := svc.AddLine(owner, productID, 1, "", models.Money{}); err != nil {
			t.Fatalf("add line failed: %v", err)
		}
	}
	lines := svc.List(owner)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if line.ProductID != uint(i+1) {
			t.Fatalf("expected insertion order, got %+v", lines)
		}
	}
}

func TestCartSubscribeNotifiesInRegistrationOrder(t *testing.T) {
	svc := newCartService(t)
	owner := "guest:subs"

	var calls []string
	svc.Subscribe(func(ownerID string, lines []models.CartLine) {
		calls = append(calls, "first")
	})
	unsubscribe := svc.Subscribe(func(ownerID string, lines []models.CartLine) {
		calls = append(calls, "second")
	})

	if _, err := svc.AddLine(owner, 1, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("expected registration-order notification, got %v", calls)
	}

	unsubscribe()
	calls = nil
	if err := svc.Clear(owner); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(calls) != 1 || calls[0] != "first" {
		t.Fatalf("expected only first subscriber after unsubscribe, got %v", calls)
	}
}

func TestCartSubscriberSeesAppliedState(t *testing.T) {
	svc := newCartService(t)
	owner := "guest:applied"

	var seen int
	svc.Subscribe(func(ownerID string, lines []models.CartLine) {
		if ownerID == owner {
			seen = len(lines)
		}
	})
	if _, err := svc.AddLine(owner, 1, 1, "", models.Money{}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}
	if seen != 1 {
		t.Fatalf("expected subscriber to see 1 line, got %d", seen)
	}
}
