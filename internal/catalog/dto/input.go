package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

// Selection is one configured product as picked by the customer. Options maps
// an option group key to the chosen item keys.
type Selection struct {
	ProductID  string
	VariantKey string
	Options    map[string][]string
	Quantity   int64 // 0 means one unit
}

type AddItemsInput struct {
	StoreID    string
	Cart       []model.LineItem
	Selections []Selection
}

type RemoveItemInput struct {
	Cart []model.LineItem
	Key  string
}

type QuoteInput struct {
	StoreID     string
	Cart        []model.LineItem
	Delivery    model.Delivery
	PaymentMode model.PaymentMode
}
