package grocery

import "strings"

// InstacartMeasurement mirrors the measurement object of Instacart's
// shopping list API.
type InstacartMeasurement struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// InstacartItem is one line_item of an Instacart shopping list.
type InstacartItem struct {
	Name              string                 `json:"name"`
	DisplayText       string                 `json:"display_text"`
	Measurements      []InstacartMeasurement `json:"measurements"`
	SuggestedPackage  string                 `json:"suggested_package,omitempty"`
	SuggestedQuantity int                    `json:"suggested_quantity,omitempty"`
}

// ToInstacart exports items in the shape Instacart expects. The lowercased
// name is used for product matching.
func ToInstacart(items []Item) []InstacartItem {
	out := make([]InstacartItem, 0, len(items))
	for _, it := range items {
		ii := InstacartItem{
			Name:         strings.ToLower(it.Name),
			DisplayText:  it.Name,
			Measurements: []InstacartMeasurement{},
		}
		if it.Quantity != nil && *it.Quantity != 0 && it.Unit != "" {
			ii.Measurements = append(ii.Measurements, InstacartMeasurement{Quantity: *it.Quantity, Unit: it.Unit})
		}
		if it.RetailPackage != "" {
			ii.SuggestedPackage = it.RetailPackage
			if it.RetailPackageCount > 1 {
				ii.SuggestedQuantity = it.RetailPackageCount
			}
		}
		out = append(out, ii)
	}
	return out
}
