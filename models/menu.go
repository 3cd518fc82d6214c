package models

import "time"

// MenuItem is one priced entry of the catalog. The pair (type, size) is
// unique; Price is in whole currency units.
type MenuItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"uniqueIndex:idx_menu_type_size;not null" json:"type"`
	Size      string    `gorm:"uniqueIndex:idx_menu_type_size;not null" json:"size"`
	Price     int       `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceList is the in-memory view of the menu: type -> size -> unit price.
type PriceList map[string]map[string]int

// Price looks up the unit price for a type/size pair.
func (p PriceList) Price(itemType, size string) (int, bool) {
	sizes, ok := p[itemType]
	if !ok {
		return 0, false
	}
	price, ok := sizes[size]
	return price, ok
}
