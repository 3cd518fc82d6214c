package models

import "time"

type Cart struct {
	ID        string     `gorm:"primaryKey" json:"id"` // 10 character random id
	Email     string     `gorm:"index;not null" json:"email"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	Total     int        `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	CartID   string `gorm:"index" json:"-"`
	Type     string `json:"type"`
	Size     string `json:"size"`
	Qty      int    `json:"qty"`
	Subtotal int    `json:"subtotal"`
}

// Recalculate rebuilds every subtotal from the price list and sums them into
// Total. Lines whose type/size is no longer on the menu keep their stored
// subtotal.
func (c *Cart) Recalculate(prices PriceList) {
	c.Total = 0
	for i := range c.Items {
		if price, ok := prices.Price(c.Items[i].Type, c.Items[i].Size); ok {
			c.Items[i].Subtotal = c.Items[i].Qty * price
		}
		c.Total += c.Items[i].Subtotal
	}
}

// FindItem returns the index of the line matching type and size, or -1.
func (c *Cart) FindItem(itemType, size string) int {
	for i, item := range c.Items {
		if item.Type == itemType && item.Size == size {
			return i
		}
	}
	return -1
}
