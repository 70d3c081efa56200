package model

import (
	"database/sql/driver"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusRejected  OrderStatus = "rejected"
	StatusDelivered OrderStatus = "delivered"
)

// Terminal reports whether no lifecycle event other than deletion applies.
func (s OrderStatus) Terminal() bool {
	return s == StatusRejected || s == StatusDelivered
}

// Bucket groups statuses the way the owner panel lists them.
type Bucket string

const (
	BucketPending Bucket = "pending"
	BucketActive  Bucket = "active"
	BucketClosed  Bucket = "closed"
)

func (b Bucket) Statuses() []OrderStatus {
	switch b {
	case BucketPending:
		return []OrderStatus{StatusPending}
	case BucketActive:
		return []OrderStatus{StatusAccepted, StatusPreparing, StatusReady}
	case BucketClosed:
		return []OrderStatus{StatusRejected, StatusDelivered}
	}
	return nil
}

func (b Bucket) Valid() bool { return b.Statuses() != nil }

// Ascending reports whether the bucket lists oldest first. Pending orders
// queue up; the other buckets show the latest first.
func (b Bucket) Ascending() bool { return b == BucketPending }

type PaymentMode string

const (
	PaymentFull    PaymentMode = "full"
	PaymentDeposit PaymentMode = "deposit"
	PaymentCash    PaymentMode = "cash"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentFull, PaymentDeposit, PaymentCash:
		return true
	}
	return false
}

type DeliveryType string

const (
	DeliveryPickup   DeliveryType = "pickup"
	DeliveryDelivery DeliveryType = "delivery"
)

func (t DeliveryType) Valid() bool {
	return t == DeliveryPickup || t == DeliveryDelivery
}

type Customer struct {
	Name     string `db:"customer_name" json:"name"`
	LastName string `db:"customer_last_name" json:"last_name"`
	Contact  string `db:"customer_contact" json:"contact"`
}

type Delivery struct {
	Type     DeliveryType `db:"delivery_type" json:"type"`
	Address  string       `db:"delivery_address" json:"address"`
	ZoneKey  string       `db:"zone_key" json:"zone_key"`
	ZoneName string       `db:"zone_name" json:"zone_name"`
	Price    int64        `db:"delivery_price" json:"delivery_price"`
}

// SelectedOption is an option item as it was priced when the line was added.
type SelectedOption struct {
	GroupKey   string `json:"group_key"`
	GroupTitle string `json:"group_title"`
	ItemKey    string `json:"item_key"`
	ItemTitle  string `json:"item_title"`
	PriceExtra int64  `json:"price_extra"`
}

// LineItem is a frozen cart/order line. Nothing in it is recomputed from the
// live catalog after it is created.
type LineItem struct {
	Key          string           `json:"key"`
	ProductID    string           `json:"product_id"`
	ProductName  string           `json:"product_name"`
	VariantKey   string           `json:"variant_key"`
	VariantTitle string           `json:"variant_title"`
	Options      []SelectedOption `json:"options"`
	ScheduleTags []string         `json:"schedule_tags,omitempty"`
	UnitPrice    int64            `json:"unit_price"`
	Quantity     int64            `json:"quantity"`
	// Signature seals the snapshot while the cart is held by the client.
	Signature    string           `json:"signature,omitempty"`
}

type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return jsonValue([]LineItem{})
	}
	return jsonValue([]LineItem(l))
}

func (l *LineItems) Scan(src interface{}) error { return scanJSON(src, (*[]LineItem)(l)) }

type Order struct {
	ID               string      `db:"id" json:"id"`
	StoreID          string      `db:"store_id" json:"store_id"`
	Status           OrderStatus `db:"status" json:"status"`
	Customer         `json:"customer"`
	Note             string      `db:"note" json:"note"`
	Delivery         `json:"delivery"`
	Items            LineItems   `db:"items" json:"items"`
	Subtotal         int64       `db:"subtotal" json:"subtotal"`
	FinalTotal       int64       `db:"final_total" json:"final_total"`
	PaymentMode      PaymentMode `db:"payment_mode" json:"payment_mode"`
	AmountPaidNow    int64       `db:"amount_paid_now" json:"amount_paid_now"`
	DepositAmount    int64       `db:"deposit_amount" json:"deposit_amount"`
	EstimatedMinutes int         `db:"estimated_minutes" json:"estimated_minutes"`
	StockProcessed   bool        `db:"stock_processed" json:"stock_processed"`
	IdempotencyKey   string      `db:"idempotency_key" json:"-"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	DecisionAt       *time.Time  `db:"decision_at" json:"decision_at"`
	ReadyAt          *time.Time  `db:"ready_at" json:"ready_at"`
	ClosedAt         *time.Time  `db:"closed_at" json:"closed_at"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`
}
