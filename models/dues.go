package models

import "github.com/shopspring/decimal"

// Dues is a monthly dues entry for a house block, maintained by admins. Amount is
// null until set; a null amount never reaches the store.
type Dues struct {
	ID         int64               `json:"id"`
	HouseBlock string              `json:"houseBlock"`
	Month      string              `json:"month"`
	Year       string              `json:"year"`
	Amount     decimal.NullDecimal `json:"amount"`
	Status     string              `json:"status"`
}
