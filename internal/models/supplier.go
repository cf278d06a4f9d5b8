package models

type Supplier struct {
	ID      string `json:"ID" sheet:"ID"`
	Name    string `json:"Name" sheet:"Name"`
	Contact string `json:"Contact" sheet:"Contact"`
	Email   string `json:"Email" sheet:"Email"`
	Address string `json:"Address" sheet:"Address"`
}
