package model

import "database/sql/driver"

type Product struct {
	BaseModel
	StoreID      string       `db:"store_id" json:"store_id"`
	Name         string       `db:"name" json:"name"`
	Category     string       `db:"category" json:"category"`
	Detail       *string      `db:"detail" json:"detail"` // Nullable
	Variants     Variants     `db:"variants" json:"variants"`
	OptionGroups OptionGroups `db:"option_groups" json:"option_groups"`
	ScheduleTags StringList   `db:"schedule_tags" json:"schedule_tags"`
	Available    bool         `db:"available" json:"available"`
	SortOrder    int          `db:"sort_order" json:"sort_order"`
}

type Variant struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type Variants []Variant

func (v Variants) Value() (driver.Value, error) {
	if v == nil {
		return jsonValue([]Variant{})
	}
	return jsonValue([]Variant(v))
}

func (v *Variants) Scan(src interface{}) error { return scanJSON(src, (*[]Variant)(v)) }

// FindVariant returns the variant with the given key. An empty key selects the
// first variant.
func (p *Product) FindVariant(key string) (Variant, bool) {
	if len(p.Variants) == 0 {
		return Variant{}, false
	}
	if key == "" {
		return p.Variants[0], true
	}
	for _, v := range p.Variants {
		if v.Key == key {
			return v, true
		}
	}
	return Variant{}, false
}

type OptionGroup struct {
	Key   string       `json:"key"`
	Title string       `json:"title"`
	Multi bool         `json:"multi"`
	Items []OptionItem `json:"items"`
}

type OptionItem struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	PriceExtra int64  `json:"price_extra"`
}

type OptionGroups []OptionGroup

func (g OptionGroups) Value() (driver.Value, error) {
	if g == nil {
		return jsonValue([]OptionGroup{})
	}
	return jsonValue([]OptionGroup(g))
}

func (g *OptionGroups) Scan(src interface{}) error { return scanJSON(src, (*[]OptionGroup)(g)) }
