// Package availability decides whether products and stores are purchasable at
// a given time of day. Every function takes the clock reading as a parameter.
package availability

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// ErrMalformedWindow is reported for windows whose bounds are not HH:MM. Such
// windows are treated as always open.
var ErrMalformedWindow = errors.New("malformed time window")

// MinuteOfDay returns minutes since local midnight of t.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseClock parses "H:MM" or "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedWindow, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedWindow, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedWindow, s)
	}
	return h*60 + m, nil
}

// Contains reports whether minute falls inside w. Both bounds are inclusive.
// A window with from > to wraps past midnight. A malformed window contains
// every minute and the parse error is returned alongside true.
func Contains(w model.TimeWindow, minute int) (bool, error) {
	from, err := ParseClock(w.From)
	if err != nil {
		return true, err
	}
	to, err := ParseClock(w.To)
	if err != nil {
		return true, err
	}
	if from <= to {
		return minute >= from && minute <= to, nil
	}
	return minute >= from || minute <= to, nil
}

// TagsAvailable applies OR semantics across tags. Tags unknown to the store
// do not restrict; if none of the tags is configured the result is true.
func TagsAvailable(minute int, tags []string, windows model.TimeWindows) bool {
	if len(tags) == 0 {
		return true
	}
	configured := false
	for _, tag := range tags {
		w, ok := windows[tag]
		if !ok {
			continue
		}
		configured = true
		if in, _ := Contains(w, minute); in {
			return true
		}
	}
	return !configured
}

// ProductAvailable is TagsAvailable gated by the product's own flag.
func ProductAvailable(minute int, p *model.Product, windows model.TimeWindows) bool {
	if p == nil || !p.Available {
		return false
	}
	return TagsAvailable(minute, p.ScheduleTags, windows)
}

// StoreOpen reports whether the store takes orders at minute. A store without
// windows is open all day.
func StoreOpen(minute int, windows model.TimeWindows) bool {
	if len(windows) == 0 {
		return true
	}
	for _, w := range windows {
		if in, _ := Contains(w, minute); in {
			return true
		}
	}
	return false
}

// ActiveWindows lists, sorted, the tags whose window contains minute.
func ActiveWindows(minute int, windows model.TimeWindows) []string {
	active := make([]string, 0, len(windows))
	for tag, w := range windows {
		if in, _ := Contains(w, minute); in {
			active = append(active, tag)
		}
	}
	sort.Strings(active)
	return active
}

// Malformed lists, sorted, the tags whose window cannot be parsed. Callers log
// these; evaluation already treats them as open.
func Malformed(windows model.TimeWindows) []string {
	var bad []string
	for tag, w := range windows {
		if _, err := Contains(w, 0); err != nil {
			bad = append(bad, tag)
		}
	}
	sort.Strings(bad)
	return bad
}
