package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// ErrUnknownZone is reported when a delivery names a zone that is not in the
// table. The charge falls back to 0 so checkout is not blocked.
var ErrUnknownZone = errors.New("unknown delivery zone")

type Zone struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type ZoneTable []Zone

// DefaultZones is the flat-fee delivery table.
var DefaultZones = ZoneTable{
	{Key: "barrio1", Name: "Barrio 1", Price: 1000},
	{Key: "barrio2", Name: "Barrio 2", Price: 1200},
	{Key: "barrio3", Name: "Barrio 3", Price: 1500},
	{Key: "barrio4", Name: "Barrio 4", Price: 1700},
	{Key: "barrio5", Name: "Barrio 5", Price: 2000},
}

func (t ZoneTable) Lookup(key string) (Zone, bool) {
	k := strings.TrimSpace(key)
	if k == "" {
		return Zone{}, false
	}
	for _, z := range t {
		if z.Key == k {
			return z, true
		}
	}
	return Zone{}, false
}

// DeliveryCharge is 0 for pickup and the zone's flat price for delivery. An
// unknown zone yields 0 together with ErrUnknownZone.
func (t ZoneTable) DeliveryCharge(deliveryType model.DeliveryType, zoneKey string) (int64, error) {
	if deliveryType != model.DeliveryDelivery {
		return 0, nil
	}
	z, ok := t.Lookup(zoneKey)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownZone, zoneKey)
	}
	return z.Price, nil
}
