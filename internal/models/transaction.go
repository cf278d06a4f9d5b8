package models

const (
	TransactionStockIn  = "Stock In"
	TransactionStockOut = "Stock Out"
)

// Transaction is a stock movement recorded by a quantity adjustment.
type Transaction struct {
	ID       string `json:"ID" sheet:"ID"`
	Date     string `json:"Date" sheet:"Date"`
	Type     string `json:"Type" sheet:"Type"`
	ItemID   string `json:"ItemID" sheet:"ItemID"`
	ItemName string `json:"ItemName" sheet:"ItemName"`
	Quantity Number `json:"Quantity" sheet:"Quantity"`
	User     string `json:"User" sheet:"User"`
	Notes    string `json:"Notes" sheet:"Notes"`
}
