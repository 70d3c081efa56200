package dto

import (
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/summary"
)

type SubmitInput struct {
	StoreID     string
	RequestID   string // optional client idempotency key
	Lines       []model.LineItem
	Customer    model.Customer
	Note        string
	Delivery    model.Delivery
	PaymentMode model.PaymentMode
}

type DailySummary struct {
	Date string
	summary.Summary
}

type Snapshot struct {
	Bucket      model.Bucket
	Orders      []model.Order
	NewOrderIDs []string
}
