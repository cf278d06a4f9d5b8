package models

// PurchaseOrder mirrors the PurchaseOrders table. The table is provisioned at
// startup but nothing reads or writes it yet.
type PurchaseOrder struct {
	ID          string `json:"ID" sheet:"ID"`
	Date        string `json:"Date" sheet:"Date"`
	SupplierID  string `json:"SupplierID" sheet:"SupplierID"`
	Items       string `json:"Items" sheet:"Items"`
	Status      string `json:"Status" sheet:"Status"`
	TotalAmount Number `json:"TotalAmount" sheet:"TotalAmount"`
}
