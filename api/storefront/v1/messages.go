// Package storefrontv1 holds the wire messages and service descriptors of the
// storefront gRPC API. Messages travel with the JSON codec; storefront.proto
// documents the same contract.
package storefrontv1

import "google.golang.org/protobuf/types/known/timestamppb"

type PaymentConfig struct {
	Alias              string `json:"alias"`
	BankAccountId      string `json:"bank_account_id"`
	AcceptsDeposit     bool   `json:"accepts_deposit"`
	DepositFixedAmount int64  `json:"deposit_fixed_amount"`
	DepositPercentage  string `json:"deposit_percentage"`
}

type TimeWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Store struct {
	Id            string                `json:"id"`
	Name          string                `json:"name"`
	IsActive      bool                  `json:"is_active"`
	Payment       *PaymentConfig        `json:"payment"`
	Windows       map[string]TimeWindow `json:"windows"`
	OpenNow       bool                  `json:"open_now"`
	ActiveWindows []string              `json:"active_windows"`
}

type Variant struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	PhotoUrl string `json:"photo_url,omitempty"`
}

type OptionItem struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	PriceExtra int64  `json:"price_extra"`
}

type OptionGroup struct {
	Key   string        `json:"key"`
	Title string        `json:"title"`
	Multi bool          `json:"multi"`
	Items []*OptionItem `json:"items"`
}

type Product struct {
	Id           string         `json:"id"`
	StoreId      string         `json:"store_id"`
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Detail       string         `json:"detail,omitempty"`
	Variants     []*Variant     `json:"variants"`
	OptionGroups []*OptionGroup `json:"option_groups"`
	ScheduleTags []string       `json:"schedule_tags"`
	Available    bool           `json:"available"`
	AvailableNow bool           `json:"available_now"`
	SortOrder    int32          `json:"sort_order"`
}

type SelectedOption struct {
	GroupKey   string `json:"group_key"`
	GroupTitle string `json:"group_title"`
	ItemKey    string `json:"item_key"`
	ItemTitle  string `json:"item_title"`
	PriceExtra int64  `json:"price_extra"`
}

type LineItem struct {
	Key          string            `json:"key"`
	ProductId    string            `json:"product_id"`
	ProductName  string            `json:"product_name"`
	VariantKey   string            `json:"variant_key"`
	VariantTitle string            `json:"variant_title"`
	Options      []*SelectedOption `json:"options"`
	ScheduleTags []string          `json:"schedule_tags,omitempty"`
	UnitPrice    int64             `json:"unit_price"`
	Quantity     int64             `json:"quantity"`
	Signature    string            `json:"signature,omitempty"`
}

type Customer struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Contact  string `json:"contact"`
}

type Delivery struct {
	Type     string `json:"type"`
	Address  string `json:"address"`
	ZoneKey  string `json:"zone_key"`
	ZoneName string `json:"zone_name"`
	Price    int64  `json:"delivery_price"`
}

type Order struct {
	Id               string                 `json:"id"`
	StoreId          string                 `json:"store_id"`
	Status           string                 `json:"status"`
	Customer         *Customer              `json:"customer"`
	Note             string                 `json:"note,omitempty"`
	Delivery         *Delivery              `json:"delivery"`
	Items            []*LineItem            `json:"items"`
	Subtotal         int64                  `json:"subtotal"`
	FinalTotal       int64                  `json:"final_total"`
	PaymentMode      string                 `json:"payment_mode"`
	AmountPaidNow    int64                  `json:"amount_paid_now"`
	DepositAmount    int64                  `json:"deposit_amount"`
	EstimatedMinutes int32                  `json:"estimated_minutes"`
	StockProcessed   bool                   `json:"stock_processed"`
	CreatedAt        *timestamppb.Timestamp `json:"created_at"`
	DecisionAt       *timestamppb.Timestamp `json:"decision_at,omitempty"`
	ReadyAt          *timestamppb.Timestamp `json:"ready_at,omitempty"`
	ClosedAt         *timestamppb.Timestamp `json:"closed_at,omitempty"`
	UpdatedAt        *timestamppb.Timestamp `json:"updated_at"`
	WaitingMinutes   int64                  `json:"waiting_minutes"`
	Waiting          bool                   `json:"waiting"`
	AllowedEvents    []string               `json:"allowed_events"`
}

// Catalog

type GetStoreRequest struct {
	Slug string `json:"slug"`
}

type StoreResponse struct {
	Store *Store `json:"store"`
}

type ListStoresRequest struct{}

type ListStoresResponse struct {
	Stores []*Store `json:"stores"`
}

type ListProductsRequest struct {
	StoreId  string `json:"store_id"`
	Category string `json:"category,omitempty"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
}

// Cart

type Selection struct {
	ProductId  string `json:"product_id"`
	VariantKey string `json:"variant_key"`
	// Options maps an option group key to the chosen item keys.
	Options  map[string][]string `json:"options"`
	Quantity int64               `json:"quantity"`
}

type AddItemsRequest struct {
	StoreId    string       `json:"store_id"`
	Cart       []*LineItem  `json:"cart"`
	Selections []*Selection `json:"selections"`
}

type RemoveItemRequest struct {
	Cart []*LineItem `json:"cart"`
	Key  string      `json:"key"`
}

type CartResponse struct {
	Cart     []*LineItem `json:"cart"`
	Subtotal int64       `json:"subtotal"`
	Units    int64       `json:"units"`
}

type QuoteRequest struct {
	StoreId     string      `json:"store_id"`
	Cart        []*LineItem `json:"cart"`
	Delivery    *Delivery   `json:"delivery"`
	PaymentMode string      `json:"payment_mode"`
}

type QuoteResponse struct {
	Subtotal       int64  `json:"subtotal"`
	DeliveryCharge int64  `json:"delivery_charge"`
	ZoneName       string `json:"zone_name,omitempty"`
	FinalTotal     int64  `json:"final_total"`
	Deposit        int64  `json:"deposit"`
	DepositOffered bool   `json:"deposit_offered"`
	AmountDueNow   int64  `json:"amount_due_now"`
}

// Orders

type SubmitOrderRequest struct {
	StoreId string `json:"store_id"`
	// RequestId, when set, replaces the derived idempotency key.
	RequestId   string      `json:"request_id,omitempty"`
	Cart        []*LineItem `json:"cart"`
	Customer    *Customer   `json:"customer"`
	Note        string      `json:"note,omitempty"`
	Delivery    *Delivery   `json:"delivery"`
	PaymentMode string      `json:"payment_mode"`
}

type OrderResponse struct {
	Order *Order `json:"order"`
}

type GetOrderRequest struct {
	StoreId string `json:"store_id"`
	OrderId string `json:"order_id"`
}

type ListOrdersRequest struct {
	Bucket string `json:"bucket"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type TransitionRequest struct {
	OrderId string `json:"order_id"`
}

type DeleteOrderRequest struct {
	OrderId string `json:"order_id"`
	Confirm bool   `json:"confirm"`
}

type GetDailySummaryRequest struct{}

type ModeTotals struct {
	Count   int32 `json:"count"`
	Revenue int64 `json:"revenue"`
}

type DailySummaryResponse struct {
	Date                string                `json:"date"`
	Count               int32                 `json:"count"`
	Revenue             int64                 `json:"revenue"`
	DepositsCollected   int64                 `json:"deposits_collected"`
	DepositsOutstanding int64                 `json:"deposits_outstanding"`
	CashExpected        int64                 `json:"cash_expected"`
	ByMode              map[string]ModeTotals `json:"by_mode"`
}

type WatchOrdersRequest struct {
	Bucket string `json:"bucket"`
}

type OrdersSnapshot struct {
	Bucket      string   `json:"bucket"`
	Orders      []*Order `json:"orders"`
	NewOrderIds []string `json:"new_order_ids,omitempty"`
}
