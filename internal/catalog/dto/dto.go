package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

type ProductFilters struct {
	StoreID  string
	Category string
}

type StoreView struct {
	Store         model.Store
	OpenNow       bool
	ActiveWindows []string
}

type ProductView struct {
	Product      model.Product
	AvailableNow bool
}

type CartView struct {
	Lines    []model.LineItem
	Subtotal int64
	Units    int64
}

type QuoteView struct {
	Subtotal       int64
	DeliveryCharge int64
	ZoneName       string
	FinalTotal     int64
	Deposit        int64
	DepositOffered bool
	AmountDueNow   int64
}
