package repository

import (
	"fmt"
	"testing"

	"github.com/watchhub/watchhub/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) *GormCartRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.CartLine{}); err != nil {
		t.Fatalf("migrate cart_lines failed: %v", err)
	}
	return NewCartRepository(db)
}

func createCartLine(t *testing.T, repo *GormCartRepository, ownerID string, productID uint, quantity int, variant string) *models.CartLine {
	t.Helper()
	position, err := repo.NextPosition(ownerID)
	if err != nil {
		t.Fatalf("next position failed: %v", err)
	}
	line := &models.CartLine{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  quantity,
		Variant:   variant,
		Position:  position,
	}
	if err := repo.Create(line); err != nil {
		t.Fatalf("create cart line failed: %v", err)
	}
	return line
}

func TestCartRepositoryListOrderedByPosition(t *testing.T) {
	repo := setupCartRepositoryTest(t)
	ownerID := "guest:" + uuid.NewString()

	first := createCartLine(t, repo, ownerID, 1, 1, "")
	second := createCartLine(t, repo, ownerID, 2, 1, "")
	third := createCartLine(t, repo, ownerID, 3, 1, "")

	lines, err := repo.ListByOwner(ownerID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("lines want 3 got %d", len(lines))
	}
	for i, want := range []string{first.ID, second.ID, third.ID} {
		if lines[i].ID != want {
			t.Fatalf("line %d want id %s got %s", i, want, lines[i].ID)
		}
	}
	if lines[0].Position != 1 || lines[2].Position != 3 {
		t.Fatalf("positions want 1..3 got %d..%d", lines[0].Position, lines[2].Position)
	}
}

func TestCartRepositoryFindByOwnerProductVariant(t *testing.T) {
	repo := setupCartRepositoryTest(t)
	ownerID := "guest:" + uuid.NewString()

	plain := createCartLine(t, repo, ownerID, 10, 2, "")
	leather := createCartLine(t, repo, ownerID, 10, 1, "leather-strap")

	found, err := repo.FindByOwnerProductVariant(ownerID, 10, "leather-strap")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found == nil || found.ID != leather.ID {
		t.Fatalf("want leather line, got %+v", found)
	}

	found, err = repo.FindByOwnerProductVariant(ownerID, 10, "")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found == nil || found.ID != plain.ID {
		t.Fatalf("want plain line, got %+v", found)
	}

	found, err = repo.FindByOwnerProductVariant(ownerID, 10, "mesh-band")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found != nil {
		t.Fatalf("unknown variant should return nil, got %+v", found)
	}
}

func TestCartRepositoryUpdateQuantityAndDelete(t *testing.T) {
	repo := setupCartRepositoryTest(t)
	ownerID := "guest:" + uuid.NewString()
	line := createCartLine(t, repo, ownerID, 20, 1, "")

	if err := repo.UpdateQuantity(line.ID, 7); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	got, err := repo.GetByID(line.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.Quantity != 7 {
		t.Fatalf("quantity want 7 got %+v", got)
	}

	if err := repo.Delete(line.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err = repo.GetByID(line.ID)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted line should be gone, got %+v", got)
	}

	// 重复删除不报错
	if err := repo.Delete(line.ID); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}

func TestCartRepositoryClearByOwnerScoped(t *testing.T) {
	repo := setupCartRepositoryTest(t)
	ownerA := "guest:" + uuid.NewString()
	ownerB := "guest:" + uuid.NewString()

	createCartLine(t, repo, ownerA, 30, 1, "")
	createCartLine(t, repo, ownerA, 31, 2, "")
	other := createCartLine(t, repo, ownerB, 30, 1, "")

	if err := repo.ClearByOwner(ownerA); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	linesA, err := repo.ListByOwner(ownerA)
	if err != nil {
		t.Fatalf("list owner A failed: %v", err)
	}
	if len(linesA) != 0 {
		t.Fatalf("owner A want empty cart got %d lines", len(linesA))
	}

	linesB, err := repo.ListByOwner(ownerB)
	if err != nil {
		t.Fatalf("list owner B failed: %v", err)
	}
	if len(linesB) != 1 || linesB[0].ID != other.ID {
		t.Fatalf("owner B cart should be untouched, got %+v", linesB)
	}
}
