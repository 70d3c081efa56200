package order

import (
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/lifecycle"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
	// EventCatalogUpdated is published by the catalog tooling after an edit.
	EventCatalogUpdated = "catalog.updated"
)

// Event is the message written to the orders topic, keyed by store id.
type Event struct {
	EventID          string            `json:"event_id"`
	EventType        string            `json:"event_type"`
	StoreID          string            `json:"store_id"`
	OrderID          string            `json:"order_id,omitempty"`
	Status           model.OrderStatus `json:"status,omitempty"`
	Previous         model.OrderStatus `json:"previous,omitempty"`
	Transition       lifecycle.Event   `json:"transition,omitempty"`
	NotificationKind string            `json:"notification_kind,omitempty"`
	Order            *model.Order      `json:"order,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}
