package service

import (
	"errors"
	"testing"
)

func TestWishlistAddIsIdempotent(t *testing.T) {
	f := newServiceFixture(t, "wishlist_idempotent")
	customer := f.createCustomer(t, "wish@example.com")
	category := f.createCategory(t, "Plants")
	product := f.createProduct(t, category.ID, "Fern", 14, 0)

	for i := 0; i < 2; i++ {
		if err := f.wishlist.AddItem(customer.ID, product.ID); err != nil {
			t.Fatalf("add #%d failed: %v", i+1, err)
		}
	}
	got, err := f.wishlist.Get(customer.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(got.Items))
	}
	if got.Items[0].InStock {
		t.Fatalf("out of stock product should report in_stock=false")
	}

	if err := f.wishlist.AddItem(customer.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing product want not found got %v", err)
	}
	if err := f.wishlist.RemoveItem(customer.ID, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := f.wishlist.RemoveItem(customer.ID, product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove want not found got %v", err)
	}
}

func TestAddressDefaultAndOwnership(t *testing.T) {
	f := newServiceFixture(t, "address_default")
	customer := f.createCustomer(t, "home@example.com")
	other := f.createCustomer(t, "away@example.com")

	first, err := f.address.Create(customer.ID, AddressInput{Line1: "1 Main St", City: "Springfield", Country: "US", IsDefault: true})
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := f.address.Create(customer.ID, AddressInput{Line1: "2 Side St", City: "Springfield", Country: "US", IsDefault: true})
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if _, err := f.address.Create(customer.ID, AddressInput{Line1: "No city"}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("invalid address want bad request got %v", err)
	}

	list, err := f.address.List(customer.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || !list[0].IsDefault || list[1].IsDefault {
		t.Fatalf("only the newest address should be default got %+v", list)
	}

	if err := f.address.Delete(other.ID, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete want not found got %v", err)
	}
	if err := f.address.Delete(customer.ID, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}
