package service

import (
	"errors"
	"testing"
)

func TestCartAddItemBeyondStock(t *testing.T) {
	f := newServiceFixture(t, "cart_over_stock")
	customer := f.createCustomer(t, "cart@example.com")
	category := f.createCategory(t, "Audio")
	product := f.createProduct(t, category.ID, "Headphones", 99, 2)

	_, err := f.carts.AddItem(customer.ID, product.ID, 3)
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("want bad request got %v", err)
	}
}

func TestCartAddItemMergesQuantity(t *testing.T) {
	f := newServiceFixture(t, "cart_merge")
	customer := f.createCustomer(t, "merge@example.com")
	category := f.createCategory(t, "Audio")
	product := f.createProduct(t, category.ID, "Speaker", 25.5, 4)

	if _, err := f.carts.AddItem(customer.ID, product.ID, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	cart, err := f.carts.AddItem(customer.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
		t.Fatalf("want one line with quantity 3 got %+v", cart.Items)
	}
	if cart.SubTotal.String() != "76.50" {
		t.Fatalf("sub total want 76.50 got %s", cart.SubTotal.String())
	}
	if cart.TotalItems != 3 {
		t.Fatalf("total items want 3 got %d", cart.TotalItems)
	}

	if _, err := f.carts.AddItem(customer.ID, product.ID, 2); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("merged quantity beyond stock want bad request got %v", err)
	}
}

func TestCartUpdateAndRemoveItem(t *testing.T) {
	f := newServiceFixture(t, "cart_update_remove")
	customer := f.createCustomer(t, "update@example.com")
	other := f.createCustomer(t, "other@example.com")
	category := f.createCategory(t, "Office")
	product := f.createProduct(t, category.ID, "Stapler", 7, 10)

	cart, err := f.carts.AddItem(customer.ID, product.ID, 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	itemID := cart.Items[0].ID

	cart, err = f.carts.UpdateItem(customer.ID, itemID, 5)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", cart.Items[0].Quantity)
	}
	if _, err := f.carts.UpdateItem(customer.ID, itemID, 11); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("update beyond stock want bad request got %v", err)
	}
	if err := f.carts.RemoveItem(other.ID, itemID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove from another cart want not found got %v", err)
	}
	if err := f.carts.RemoveItem(customer.ID, itemID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	got, err := f.carts.Get(customer.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("cart should be empty got %d items", len(got.Items))
	}
}

func TestCartGetWithoutCart(t *testing.T) {
	f := newServiceFixture(t, "cart_empty")
	customer := f.createCustomer(t, "empty@example.com")

	cart, err := f.carts.Get(customer.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if cart.Items == nil || len(cart.Items) != 0 || cart.SubTotal.String() != "0.00" {
		t.Fatalf("unexpected empty cart: %+v", cart)
	}
}
