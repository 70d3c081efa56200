package catalog

import (
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pizza() *model.Product {
	return &model.Product{
		BaseModel: model.BaseModel{ID: "pizza"},
		Name:      "Pizza",
		Variants: model.Variants{
			{Key: "chica", Title: "Chica", Price: 3000},
			{Key: "grande", Title: "Grande", Price: 4000},
		},
		OptionGroups: model.OptionGroups{
			{Key: "masa", Title: "Masa", Items: []model.OptionItem{
				{Key: "fina", Title: "Fina"},
				{Key: "alta", Title: "Alta", PriceExtra: 200},
			}},
			{Key: "extras", Title: "Extras", Multi: true, Items: []model.OptionItem{
				{Key: "olives", Title: "Aceitunas", PriceExtra: 300},
				{Key: "egg", Title: "Huevo", PriceExtra: 250},
			}},
		},
		ScheduleTags: model.StringList{"dinner"},
		Available:    true,
	}
}

var dinner = model.TimeWindows{"dinner": {From: "20:00", To: "01:00"}}

const nine = 21 * 60

func TestResolveSnapshotsSelection(t *testing.T) {
	line, err := Resolve(pizza(), dto.Selection{
		ProductID:  "pizza",
		VariantKey: "grande",
		Options:    map[string][]string{"masa": {"alta"}, "extras": {"egg", "olives"}},
		Quantity:   2,
	}, nine, dinner)
	require.NoError(t, err)

	assert.Equal(t, "Pizza", line.ProductName)
	assert.Equal(t, "Grande", line.VariantTitle)
	assert.Equal(t, int64(4000+200+300+250), line.UnitPrice)
	assert.Equal(t, int64(2), line.Quantity)
	assert.Equal(t, []string{"dinner"}, line.ScheduleTags)

	// Catalog order, not pick order.
	require.Len(t, line.Options, 3)
	assert.Equal(t, "alta", line.Options[0].ItemKey)
	assert.Equal(t, "olives", line.Options[1].ItemKey)
	assert.Equal(t, "egg", line.Options[2].ItemKey)
}

func TestResolveDefaults(t *testing.T) {
	line, err := Resolve(pizza(), dto.Selection{ProductID: "pizza"}, nine, dinner)
	require.NoError(t, err)
	assert.Equal(t, "chica", line.VariantKey)
	assert.Equal(t, int64(3000), line.UnitPrice)
	assert.Equal(t, int64(1), line.Quantity)
	assert.NotNil(t, line.Options)
	assert.Empty(t, line.Options)

	bare := &model.Product{BaseModel: model.BaseModel{ID: "agua"}, Name: "Agua", Available: true}
	line, err = Resolve(bare, dto.Selection{ProductID: "agua"}, nine, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), line.UnitPrice)
	assert.Empty(t, line.VariantKey)
}

func TestResolveRejectsBadSelections(t *testing.T) {
	tests := []struct {
		name string
		sel  dto.Selection
	}{
		{"unknown variant", dto.Selection{VariantKey: "familiar"}},
		{"two items in single group", dto.Selection{Options: map[string][]string{"masa": {"fina", "alta"}}}},
		{"unknown item", dto.Selection{Options: map[string][]string{"extras": {"ham"}}}},
		{"unknown group", dto.Selection{Options: map[string][]string{"salsa": {"picante"}}}},
		{"negative quantity", dto.Selection{Quantity: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(pizza(), tt.sel, nine, dinner)
			assert.ErrorIs(t, err, ErrInvalidSelection)
		})
	}
}

func TestResolveUnavailable(t *testing.T) {
	_, err := Resolve(pizza(), dto.Selection{}, 10*60, dinner)
	assert.ErrorIs(t, err, ErrProductUnavailable)

	off := pizza()
	off.Available = false
	_, err = Resolve(off, dto.Selection{}, nine, dinner)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}
