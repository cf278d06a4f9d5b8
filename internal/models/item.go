package models

// Item statuses. An empty status is allowed.
const (
	StatusGood       = "Good"
	StatusDamaged    = "Damaged"
	StatusForRepair  = "For Repair"
	StatusLost       = "Lost"
	StatusOutOfStock = "Out of Stock"
)

// Item represents a row of the Inventory table.
type Item struct {
	ID                 string `json:"ID" sheet:"ID"`
	Project            string `json:"Project" sheet:"Project"`
	Category           string `json:"Category" sheet:"Category"`
	Item               string `json:"Item" sheet:"Item"`
	BrandModel         string `json:"BrandModel" sheet:"BrandModel"`
	Serial             string `json:"Serial" sheet:"Serial"`
	Qty                Number `json:"Qty" sheet:"Qty"`
	Unit               string `json:"Unit" sheet:"Unit"`
	UnitCost           Number `json:"UnitCost" sheet:"UnitCost"`
	DateAcquired       string `json:"DateAcquired" sheet:"DateAcquired"`
	ProcurementProject string `json:"ProcurementProject" sheet:"ProcurementProject"`
	PersonInCharge     string `json:"PersonInCharge" sheet:"PersonInCharge"`
	Location           string `json:"Location" sheet:"Location"`
	Status             string `json:"Status" sheet:"Status"`
	Remarks            string `json:"Remarks" sheet:"Remarks"`
	LastUpdated        string `json:"LastUpdated" sheet:"LastUpdated"`
}
