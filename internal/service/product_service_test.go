package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/ecommerce-api/internal/models"
)

func TestProductCreateThenGetByID(t *testing.T) {
	f := newServiceFixture(t, "product_create_get")
	category := f.createCategory(t, "Books")

	created, err := f.products.Create(ProductInput{
		Name:          "  Go in Action ",
		Description:   "A book",
		Sku:           "BK-001",
		Price:         models.NewMoneyFromFloat(39.9),
		StockQuantity: 12,
		CategoryID:    category.ID,
	}, "admin")
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	got, err := f.products.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got.Name != "Go in Action" {
		t.Fatalf("name want Go in Action got %q", got.Name)
	}
	if got.Price.String() != "39.90" {
		t.Fatalf("price want 39.90 got %s", got.Price.String())
	}
	if got.StockQuantity != 12 || got.CategoryID != category.ID || got.CategoryName != "Books" {
		t.Fatalf("unexpected product: %+v", got)
	}

	var inventory models.Inventory
	if err := f.db.First(&inventory, "product_id = ?", created.ID).Error; err != nil {
		t.Fatalf("inventory row missing: %v", err)
	}
	if inventory.Quantity != 12 {
		t.Fatalf("inventory want 12 got %d", inventory.Quantity)
	}
}

func TestProductCreateValidation(t *testing.T) {
	f := newServiceFixture(t, "product_validation")
	category := f.createCategory(t, "Books")

	cases := []struct {
		name  string
		input ProductInput
	}{
		{"missing name", ProductInput{Price: models.NewMoneyFromFloat(1), CategoryID: category.ID}},
		{"zero price", ProductInput{Name: "Free", CategoryID: category.ID}},
		{"negative stock", ProductInput{Name: "Bad", Price: models.NewMoneyFromFloat(1), StockQuantity: -1, CategoryID: category.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.products.Create(tc.input, "admin")
			if !errors.Is(err, ErrBadRequest) {
				t.Fatalf("want bad request got %v", err)
			}
			if len(Details(err)) == 0 {
				t.Fatalf("want validation details")
			}
		})
	}
}

func TestProductCreateUnknownCategory(t *testing.T) {
	f := newServiceFixture(t, "product_unknown_category")
	_, err := f.products.Create(ProductInput{Name: "Lamp", Price: models.NewMoneyFromFloat(5), CategoryID: "missing"}, "admin")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want not found got %v", err)
	}
}

func TestProductDeleteIsSoft(t *testing.T) {
	f := newServiceFixture(t, "product_soft_delete")
	category := f.createCategory(t, "Garden")
	kept := f.createProduct(t, category.ID, "Rake", 10, 3)
	removed := f.createProduct(t, category.ID, "Hose", 20, 3)

	if err := f.products.Delete(removed.ID, "admin"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var row models.Product
	if err := f.db.First(&row, "id = ?", removed.ID).Error; err != nil {
		t.Fatalf("row should remain: %v", err)
	}
	if row.IsActive {
		t.Fatalf("deleted product should be inactive")
	}

	list, err := f.products.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != kept.ID {
		t.Fatalf("list want only %s got %+v", kept.ID, list)
	}

	paged, total, _, _, err := f.products.Paged(ProductPageQuery{PageNumber: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("paged failed: %v", err)
	}
	if total != 1 || len(paged) != 1 {
		t.Fatalf("paged want 1 got total=%d len=%d", total, len(paged))
	}

	if _, err := f.products.GetByID(removed.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get deleted want not found got %v", err)
	}
}

func TestProductPagedSearchAndCategory(t *testing.T) {
	f := newServiceFixture(t, "product_paged_search")
	tools := f.createCategory(t, "Tools")
	toys := f.createCategory(t, "Toys")
	f.createProduct(t, tools.ID, "Hammer", 15, 5)
	f.createProduct(t, tools.ID, "Screwdriver", 8, 5)
	f.createProduct(t, toys.ID, "Toy Hammer", 4, 5)

	items, total, page, size, err := f.products.Paged(ProductPageQuery{PageNumber: 1, PageSize: 10, SearchTerm: "hammer"})
	if err != nil {
		t.Fatalf("paged failed: %v", err)
	}
	if total != 2 || len(items) != 2 || page != 1 || size != 10 {
		t.Fatalf("search want 2 got total=%d len=%d page=%d size=%d", total, len(items), page, size)
	}

	_, total, _, _, err = f.products.Paged(ProductPageQuery{PageNumber: 1, PageSize: 10, SearchTerm: "hammer", CategoryID: tools.ID})
	if err != nil {
		t.Fatalf("paged failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("category filter want 1 got %d", total)
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 10},
		{-3, 5, 1, 5},
		{2, 500, 2, 100},
	}
	for _, tc := range cases {
		page, size := NormalizePage(tc.page, tc.size)
		if page != tc.wantPage || size != tc.wantSize {
			t.Fatalf("NormalizePage(%d,%d) want %d,%d got %d,%d", tc.page, tc.size, tc.wantPage, tc.wantSize, page, size)
		}
	}
}

func TestProductUpdateInventory(t *testing.T) {
	f := newServiceFixture(t, "product_inventory")
	category := f.createCategory(t, "Kitchen")
	product := f.createProduct(t, category.ID, "Pan", 30, 2)

	if err := f.products.UpdateInventory(product.ID, 9, "admin"); err != nil {
		t.Fatalf("update inventory failed: %v", err)
	}
	if got := f.stockOf(t, product.ID); got != 9 {
		t.Fatalf("stock want 9 got %d", got)
	}
	if err := f.products.UpdateInventory(product.ID, -1, "admin"); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("negative quantity want bad request got %v", err)
	}

	low, err := f.products.ListLowStock(10)
	if err != nil {
		t.Fatalf("low stock failed: %v", err)
	}
	if len(low) != 1 {
		t.Fatalf("low stock want 1 got %d", len(low))
	}
}

func TestAuditRecordWritesInlineWithoutQueue(t *testing.T) {
	f := newServiceFixture(t, "audit_inline")
	category := f.createCategory(t, "Toys")

	created, err := f.products.Create(ProductInput{Name: "Kite", Price: models.NewMoneyFromFloat(15), CategoryID: category.ID, StockQuantity: 3}, "admin-1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var logs []models.AuditLog
	if err := f.db.Where("entity = ? AND entity_id = ?", "Product", created.ID).Find(&logs).Error; err != nil {
		t.Fatalf("load audit logs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("audit logs want 1 got %d", len(logs))
	}
	if logs[0].Action != "Insert" || logs[0].UserID != "admin-1" || logs[0].OldValues != "" {
		t.Fatalf("unexpected audit log %+v", logs[0])
	}
	if !strings.Contains(logs[0].NewValues, "Kite") {
		t.Fatalf("new values should contain the product got %s", logs[0].NewValues)
	}
}
