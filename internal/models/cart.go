package models

import "errors"

// ItemKind discriminates cart line items.
type ItemKind string

const (
	ItemKindTicket ItemKind = "ticket"
	ItemKindFood   ItemKind = "food"
)

// CartItem represents a purchasable line item. Price is the already
// discounted per-unit price in cents at the time the item was added.
// Ticket items always have quantity 1 (one entry per seat); food items
// may carry quantity > 1 and are merged by ItemID on repeated add.
type CartItem struct {
	ItemID   string   `json:"item_id"`
	Name     string   `json:"name"`
	Price    int      `json:"price"` // in cents
	Quantity int      `json:"quantity"`
	Kind     ItemKind `json:"kind"`

	// Ticket fields, empty for food items.
	SeatID      string     `json:"seat_id,omitempty"`
	SeatRow     string     `json:"seat_row,omitempty"`
	SeatNumber  int        `json:"seat_number,omitempty"`
	TicketType  TicketType `json:"ticket_type,omitempty"`
	ShowtimeID  int        `json:"showtime_id,omitempty"`
	MovieTitle  string     `json:"movie_title,omitempty"`
	TheaterName string     `json:"theater_name,omitempty"`
	ScreenName  string     `json:"screen_name,omitempty"`
}

// Cart is the client-side list of line items pending checkout.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Validate validates a cart item.
func (i *CartItem) Validate() error {
	if i.ItemID == "" {
		return errors.New("item id is required")
	}
	if i.Name == "" {
		return errors.New("item name is required")
	}
	if i.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if i.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	switch i.Kind {
	case ItemKindTicket:
		if i.Quantity != 1 {
			return errors.New("ticket items must have quantity 1")
		}
		if i.SeatID == "" {
			return errors.New("ticket items require a seat id")
		}
		if i.ShowtimeID <= 0 {
			return errors.New("ticket items require a showtime id")
		}
		if !i.TicketType.Valid() {
			return errors.New("invalid ticket type")
		}
	case ItemKindFood:
		// No extra constraints beyond the common ones.
	default:
		return errors.New("invalid item kind")
	}

	return nil
}

// Add appends a line item. Tickets are appended unconditionally; food
// items merge into an existing entry with the same item id.
func (c *Cart) Add(item CartItem) {
	if item.Kind == ItemKindFood {
		for idx := range c.Items {
			if c.Items[idx].Kind == ItemKindFood && c.Items[idx].ItemID == item.ItemID {
				c.Items[idx].Quantity += item.Quantity
				return
			}
		}
	}
	c.Items = append(c.Items, item)
}

// Remove deletes the item at the given positional index.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrCartIndexOutOfRange
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

// RemoveFood decrements the quantity of a food item, deleting the entry
// when the quantity reaches zero. Unknown ids are a no-op.
func (c *Cart) RemoveFood(itemID string) {
	for idx := range c.Items {
		if c.Items[idx].Kind != ItemKindFood || c.Items[idx].ItemID != itemID {
			continue
		}
		if c.Items[idx].Quantity > 1 {
			c.Items[idx].Quantity--
		} else {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		}
		return
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
