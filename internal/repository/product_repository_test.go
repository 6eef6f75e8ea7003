package repository

import (
	"testing"
)

func TestProductDecrementStockGuarded(t *testing.T) {
	db := openRepositoryTestDB(t, "product_decrement")
	repo := NewProductRepository(db)
	category := createTestCategory(t, db, "Phones")
	product := createTestProduct(t, db, category.ID, "Phone", 199.99, 3)

	affected, err := repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	affected, err = repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("second decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement beyond stock affected want 0 got %d", affected)
	}

	fresh, err := repo.GetByID(product.ID)
	if err != nil || fresh == nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if fresh.StockQuantity != 1 {
		t.Fatalf("stock want 1 got %d", fresh.StockQuantity)
	}

	if err := repo.IncrementStock(product.ID, 4); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	fresh, _ = repo.GetByID(product.ID)
	if fresh.StockQuantity != 5 {
		t.Fatalf("stock after restock want 5 got %d", fresh.StockQuantity)
	}
}

func TestProductDeactivateHidesFromActiveQueries(t *testing.T) {
	db := openRepositoryTestDB(t, "product_deactivate")
	repo := NewProductRepository(db)
	category := createTestCategory(t, db, "Books")
	kept := createTestProduct(t, db, category.ID, "Go Book", 30, 10)
	removed := createTestProduct(t, db, category.ID, "Old Book", 10, 10)

	if err := repo.Deactivate(removed.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	products, total, err := repo.List(ProductListFilter{OnlyActive: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].ID != kept.ID {
		t.Fatalf("active list want only %s got total=%d items=%+v", kept.ID, total, products)
	}

	active, err := repo.GetActiveByID(removed.ID)
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if active != nil {
		t.Fatalf("inactive product should not be returned")
	}
	any, err := repo.GetByID(removed.ID)
	if err != nil || any == nil {
		t.Fatalf("inactive product should still exist: %v", err)
	}
	if any.IsActive {
		t.Fatalf("product should be inactive")
	}
}

func TestProductListSearchCategoryAndPaging(t *testing.T) {
	db := openRepositoryTestDB(t, "product_list")
	repo := NewProductRepository(db)
	phones := createTestCategory(t, db, "Phones")
	books := createTestCategory(t, db, "Books")
	createTestProduct(t, db, phones.ID, "Smart Phone X", 500, 5)
	createTestProduct(t, db, phones.ID, "Smart Phone Y", 600, 5)
	createTestProduct(t, db, phones.ID, "Charger", 20, 5)
	createTestProduct(t, db, books.ID, "Phone Repair Guide", 15, 5)

	products, total, err := repo.List(ProductListFilter{
		OnlyActive: true,
		Search:     "phone",
		CategoryID: phones.ID,
		Page:       1,
		PageSize:   1,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total want 2 got %d", total)
	}
	if len(products) != 1 {
		t.Fatalf("page size want 1 got %d", len(products))
	}

	_, total, err = repo.List(ProductListFilter{OnlyActive: true, Search: "phone"})
	if err != nil {
		t.Fatalf("list without category failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("search total want 3 got %d", total)
	}
}

func TestProductCountBySkuExcludesSelf(t *testing.T) {
	db := openRepositoryTestDB(t, "product_sku")
	repo := NewProductRepository(db)
	category := createTestCategory(t, db, "Audio")
	product := createTestProduct(t, db, category.ID, "Headphones", 80, 5)
	if err := db.Model(product).Update("sku", "HP-001").Error; err != nil {
		t.Fatalf("set sku failed: %v", err)
	}

	count, err := repo.CountBySku("HP-001", "")
	if err != nil || count != 1 {
		t.Fatalf("count want 1 got %d err=%v", count, err)
	}
	count, err = repo.CountBySku("HP-001", product.ID)
	if err != nil || count != 0 {
		t.Fatalf("count excluding self want 0 got %d err=%v", count, err)
	}
}
