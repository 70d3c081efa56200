package catalog

import (
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/availability"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"
)

// Resolve snapshots a selection of p into a cart line priced at minute of the
// store day. Options are recorded in catalog order so equal choices always
// produce the same dedup key.
func Resolve(p *model.Product, sel dto.Selection, minute int, windows model.TimeWindows) (model.LineItem, error) {
	if !availability.ProductAvailable(minute, p, windows) {
		return model.LineItem{}, fmt.Errorf("%w: %s", ErrProductUnavailable, p.Name)
	}

	qty := sel.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return model.LineItem{}, fmt.Errorf("%w: negative quantity", ErrInvalidSelection)
	}

	variantKey := strings.TrimSpace(sel.VariantKey)
	variant, ok := p.FindVariant(variantKey)
	if !ok && variantKey != "" {
		return model.LineItem{}, fmt.Errorf("%w: unknown variant %q for %s", ErrInvalidSelection, variantKey, p.ID)
	}

	options, err := resolveOptions(p, sel.Options)
	if err != nil {
		return model.LineItem{}, err
	}

	var tags []string
	if len(p.ScheduleTags) > 0 {
		tags = append(tags, p.ScheduleTags...)
	}

	return model.LineItem{
		ProductID:    p.ID,
		ProductName:  p.Name,
		VariantKey:   variant.Key,
		VariantTitle: variant.Title,
		Options:      options,
		ScheduleTags: tags,
		UnitPrice:    pricing.UnitPrice(variant, options),
		Quantity:     qty,
	}, nil
}

func resolveOptions(p *model.Product, chosen map[string][]string) ([]model.SelectedOption, error) {
	known := make(map[string]bool, len(p.OptionGroups))
	out := []model.SelectedOption{}

	for _, g := range p.OptionGroups {
		known[g.Key] = true
		keys := chosen[g.Key]
		if len(keys) == 0 {
			continue
		}
		if !g.Multi && len(keys) > 1 {
			return nil, fmt.Errorf("%w: group %q accepts a single item", ErrInvalidSelection, g.Key)
		}

		picked := make(map[string]bool, len(keys))
		for _, k := range keys {
			picked[k] = true
		}
		for _, item := range g.Items {
			if !picked[item.Key] {
				continue
			}
			delete(picked, item.Key)
			out = append(out, model.SelectedOption{
				GroupKey:   g.Key,
				GroupTitle: g.Title,
				ItemKey:    item.Key,
				ItemTitle:  item.Title,
				PriceExtra: item.PriceExtra,
			})
		}
		for k := range picked {
			return nil, fmt.Errorf("%w: unknown item %q in group %q", ErrInvalidSelection, k, g.Key)
		}
	}

	for k := range chosen {
		if !known[k] {
			return nil, fmt.Errorf("%w: unknown option group %q", ErrInvalidSelection, k)
		}
	}
	return out, nil
}
