package order

import (
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// WaitingThreshold is how long a pending order waits before the panel flags it.
const WaitingThreshold = 10 * time.Minute

// WaitingMinutes is the whole minutes elapsed since the order was created.
func WaitingMinutes(o *model.Order, now time.Time) int64 {
	if o.CreatedAt.IsZero() || now.Before(o.CreatedAt) {
		return 0
	}
	return int64(now.Sub(o.CreatedAt) / time.Minute)
}

func Waiting(o *model.Order, now time.Time) bool {
	return o.Status == model.StatusPending && WaitingMinutes(o, now) >= int64(WaitingThreshold/time.Minute)
}
