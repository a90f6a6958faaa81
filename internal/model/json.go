package model

import "github.com/shopspring/decimal"

// Amounts travel as JSON numbers both to the backend and to the storefront.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
