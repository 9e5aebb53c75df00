// Package wire holds request field types shared by the v1 handlers.
package wire

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

// Decimal is a decimal request field that accepts both "12.50" and 12.50.
type Decimal struct {
	decimal.Decimal
}

// Schema documents the field as a string or a number so huma's validator lets both
// through to UnmarshalJSON.
func (Decimal) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Description: "Decimal value, as a string or a JSON number",
		OneOf: []*huma.Schema{
			{Type: huma.TypeString},
			{Type: huma.TypeNumber},
		},
	}
}
