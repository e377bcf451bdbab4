package domain

// Currency is reference data identifying a currency: its short name
// (e.g. "USD"), display title and whether it is the national currency.
type Currency struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	IsNational bool   `json:"is_national"`
}
