package model

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// Store is a tenant of the storefront. ID is the public slug.
type Store struct {
	BaseModel
	Name     string        `db:"name" json:"name"`
	IsActive bool          `db:"is_active" json:"is_active"`
	Payment  PaymentConfig `db:"payment" json:"payment"`
	Windows  TimeWindows   `db:"windows" json:"windows"`
}

type PaymentConfig struct {
	Alias              string          `json:"alias"`
	BankAccountID      string          `json:"bank_account_id"`
	AcceptsDeposit     bool            `json:"accepts_deposit"`
	DepositFixedAmount int64           `json:"deposit_fixed_amount"`
	DepositPercentage  decimal.Decimal `json:"deposit_percentage"`
}

func (p PaymentConfig) Value() (driver.Value, error) { return jsonValue(p) }

func (p *PaymentConfig) Scan(src interface{}) error { return scanJSON(src, p) }

// TimeWindow is a daily "HH:MM" range. From > To wraps past midnight.
type TimeWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TimeWindows maps a store-scoped window tag (e.g. "breakfast") to its range.
type TimeWindows map[string]TimeWindow

func (w TimeWindows) Value() (driver.Value, error) {
	if w == nil {
		return jsonValue(map[string]TimeWindow{})
	}
	return jsonValue(map[string]TimeWindow(w))
}

func (w *TimeWindows) Scan(src interface{}) error {
	return scanJSON(src, (*map[string]TimeWindow)(w))
}
