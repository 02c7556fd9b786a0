package domain

import (
	"errors"
	"time"
)

// CartItem captures the unit price at add time; checkout recomputes the
// charged amount from the current product price, the captured price is kept
// for display.
type CartItem struct {
	ProductID string
	Quantity  int64
	UnitPrice int64
	AddedAt   time.Time
}

// Cart is a per-customer singleton. It is emptied on checkout, never deleted.
type Cart struct {
	ID         string
	CustomerID string
	Items      []CartItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewCart(id, customerID string) (*Cart, error) {
	if id == "" || customerID == "" {
		return nil, errors.New("invalid cart data")
	}
	now := time.Now()
	return &Cart{
		ID:         id,
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// AddItem merges the quantity into an existing line for the same product
// instead of creating a duplicate line.
func (c *Cart) AddItem(productID string, quantity, unitPrice int64) error {
	if productID == "" || quantity < 1 {
		return errors.New("invalid cart item")
	}
	now := time.Now()
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.UpdatedAt = now
			return nil
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		AddedAt:   now,
	})
	c.UpdatedAt = now
	return nil
}

// SetItemQuantity sets a line's quantity exactly. A quantity of zero or less
// removes the line rather than storing it.
func (c *Cart) SetItemQuantity(productID string, quantity int64) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return errors.New("item not in cart")
}

func (c *Cart) RemoveItem(productID string) error {
	return c.SetItemQuantity(productID, 0)
}

func (c *Cart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
