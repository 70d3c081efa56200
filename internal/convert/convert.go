// Package convert maps between domain models and storefront wire messages.
package convert

import (
	"time"

	storefrontv1 "github.com/fekuna/omnipos-storefront-service/api/storefront/v1"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func Timestamp(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func TimestampPtr(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return Timestamp(*t)
}

func LineItemToProto(l model.LineItem) *storefrontv1.LineItem {
	opts := make([]*storefrontv1.SelectedOption, len(l.Options))
	for i, o := range l.Options {
		opts[i] = &storefrontv1.SelectedOption{
			GroupKey:   o.GroupKey,
			GroupTitle: o.GroupTitle,
			ItemKey:    o.ItemKey,
			ItemTitle:  o.ItemTitle,
			PriceExtra: o.PriceExtra,
		}
	}
	return &storefrontv1.LineItem{
		Key:          l.Key,
		ProductId:    l.ProductID,
		ProductName:  l.ProductName,
		VariantKey:   l.VariantKey,
		VariantTitle: l.VariantTitle,
		Options:      opts,
		ScheduleTags: l.ScheduleTags,
		UnitPrice:    l.UnitPrice,
		Quantity:     l.Quantity,
		Signature:    l.Signature,
	}
}

func LineItemsToProto(lines []model.LineItem) []*storefrontv1.LineItem {
	out := make([]*storefrontv1.LineItem, len(lines))
	for i, l := range lines {
		out[i] = LineItemToProto(l)
	}
	return out
}

// LineItemsFromProto skips nil entries. Keys are kept as sent; the cart
// re-derives them.
func LineItemsFromProto(lines []*storefrontv1.LineItem) []model.LineItem {
	out := make([]model.LineItem, 0, len(lines))
	for _, l := range lines {
		if l == nil {
			continue
		}
		opts := make([]model.SelectedOption, 0, len(l.Options))
		for _, o := range l.Options {
			if o == nil {
				continue
			}
			opts = append(opts, model.SelectedOption{
				GroupKey:   o.GroupKey,
				GroupTitle: o.GroupTitle,
				ItemKey:    o.ItemKey,
				ItemTitle:  o.ItemTitle,
				PriceExtra: o.PriceExtra,
			})
		}
		out = append(out, model.LineItem{
			Key:          l.Key,
			ProductID:    l.ProductId,
			ProductName:  l.ProductName,
			VariantKey:   l.VariantKey,
			VariantTitle: l.VariantTitle,
			Options:      opts,
			ScheduleTags: l.ScheduleTags,
			UnitPrice:    l.UnitPrice,
			Quantity:     l.Quantity,
			Signature:    l.Signature,
		})
	}
	return out
}

func CustomerFromProto(c *storefrontv1.Customer) model.Customer {
	if c == nil {
		return model.Customer{}
	}
	return model.Customer{Name: c.Name, LastName: c.LastName, Contact: c.Contact}
}

func CustomerToProto(c model.Customer) *storefrontv1.Customer {
	return &storefrontv1.Customer{Name: c.Name, LastName: c.LastName, Contact: c.Contact}
}

func DeliveryFromProto(d *storefrontv1.Delivery) model.Delivery {
	if d == nil {
		return model.Delivery{Type: model.DeliveryPickup}
	}
	t := model.DeliveryType(d.Type)
	if t == "" {
		t = model.DeliveryPickup
	}
	return model.Delivery{Type: t, Address: d.Address, ZoneKey: d.ZoneKey}
}

func DeliveryToProto(d model.Delivery) *storefrontv1.Delivery {
	return &storefrontv1.Delivery{
		Type:     string(d.Type),
		Address:  d.Address,
		ZoneKey:  d.ZoneKey,
		ZoneName: d.ZoneName,
		Price:    d.Price,
	}
}

func StoreToProto(s model.Store, openNow bool, active []string) *storefrontv1.Store {
	windows := make(map[string]storefrontv1.TimeWindow, len(s.Windows))
	for tag, w := range s.Windows {
		windows[tag] = storefrontv1.TimeWindow{From: w.From, To: w.To}
	}
	return &storefrontv1.Store{
		Id:       s.ID,
		Name:     s.Name,
		IsActive: s.IsActive,
		Payment: &storefrontv1.PaymentConfig{
			Alias:              s.Payment.Alias,
			BankAccountId:      s.Payment.BankAccountID,
			AcceptsDeposit:     s.Payment.AcceptsDeposit,
			DepositFixedAmount: s.Payment.DepositFixedAmount,
			DepositPercentage:  s.Payment.DepositPercentage.String(),
		},
		Windows:       windows,
		OpenNow:       openNow,
		ActiveWindows: active,
	}
}

func ProductToProto(p model.Product, availableNow bool) *storefrontv1.Product {
	variants := make([]*storefrontv1.Variant, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = &storefrontv1.Variant{Key: v.Key, Title: v.Title, Price: v.Price, PhotoUrl: v.PhotoURL}
	}
	groups := make([]*storefrontv1.OptionGroup, len(p.OptionGroups))
	for i, g := range p.OptionGroups {
		items := make([]*storefrontv1.OptionItem, len(g.Items))
		for j, it := range g.Items {
			items[j] = &storefrontv1.OptionItem{Key: it.Key, Title: it.Title, PriceExtra: it.PriceExtra}
		}
		groups[i] = &storefrontv1.OptionGroup{Key: g.Key, Title: g.Title, Multi: g.Multi, Items: items}
	}

	detail := ""
	if p.Detail != nil {
		detail = *p.Detail
	}
	return &storefrontv1.Product{
		Id:           p.ID,
		StoreId:      p.StoreID,
		Name:         p.Name,
		Category:     p.Category,
		Detail:       detail,
		Variants:     variants,
		OptionGroups: groups,
		ScheduleTags: p.ScheduleTags,
		Available:    p.Available,
		AvailableNow: availableNow,
		SortOrder:    int32(p.SortOrder),
	}
}
