package domain

import "time"

// ItemCategory classifies a challan line item.
type ItemCategory string

const (
	CategoryBook        ItemCategory = "book"
	CategoryPamphlet    ItemCategory = "pamphlet"
	CategoryReceiptBook ItemCategory = "receipt_book"
	CategoryOther       ItemCategory = "other"
)

// ChallanItem is the canonical line-item shape. Legacy documents are
// normalized into it by RawChallanItem.Normalize before any business logic
// touches them.
type ChallanItem struct {
	Name     string       `json:"name"`
	Category ItemCategory `json:"category"`
	Standard string       `json:"standard,omitempty"`
	Quantity int          `json:"quantity"`
}

// Challan is a dispatch note recording books, pamphlets, or receipt books
// sent to a counsellor.
type Challan struct {
	ID            string        `json:"id"`
	ChallanNumber string        `json:"challan_number"`
	CounsellorID  string        `json:"counsellor_id"`
	Centre        string        `json:"centre,omitempty"`
	Items         []ChallanItem `json:"items"`
	Given         bool          `json:"given"`
	GivenAt       time.Time     `json:"given_at,omitempty"`
	Received      bool          `json:"received"`
	ReceivedAt    time.Time     `json:"received_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// BookRef is the nested book document carried by legacy challan items.
type BookRef struct {
	Name     string `json:"name" bson:"name"`
	Standard string `json:"standard" bson:"standard"`
}

// RawChallanItem covers both item shapes found in storage: new documents
// carry name/category/standard inline, old ones reference a nested book.
type RawChallanItem struct {
	Name     string   `json:"name,omitempty" bson:"name,omitempty"`
	Category string   `json:"category,omitempty" bson:"category,omitempty"`
	Standard string   `json:"standard,omitempty" bson:"standard,omitempty"`
	Quantity int      `json:"quantity" bson:"quantity"`
	Book     *BookRef `json:"book,omitempty" bson:"book,omitempty"`
}

// Normalize maps a raw item onto the canonical shape. A legacy item takes
// name and standard from its nested book and is a book by definition. An
// unrecognized category falls back to CategoryOther.
func (r RawChallanItem) Normalize() ChallanItem {
	item := ChallanItem{
		Name:     r.Name,
		Standard: r.Standard,
		Quantity: r.Quantity,
	}
	if r.Book != nil {
		item.Name = r.Book.Name
		item.Standard = r.Book.Standard
		item.Category = CategoryBook
		return item
	}
	switch ItemCategory(r.Category) {
	case CategoryBook, CategoryPamphlet, CategoryReceiptBook:
		item.Category = ItemCategory(r.Category)
	default:
		item.Category = CategoryOther
	}
	return item
}

// NormalizeItems adapts a slice of raw items in input order.
func NormalizeItems(raw []RawChallanItem) []ChallanItem {
	if len(raw) == 0 {
		return nil
	}
	items := make([]ChallanItem, len(raw))
	for i, r := range raw {
		items[i] = r.Normalize()
	}
	return items
}
