package rowstore

import (
	"context"
	"errors"
)

// Table names provisioned by the service.
const (
	TableInventory      = "Inventory"
	TableTransactions   = "Transactions"
	TableSuppliers      = "Suppliers"
	TablePurchaseOrders = "PurchaseOrders"
	TableAuditLogs      = "AuditLogs"
)

// Schemas holds the fixed header row of every known table. Header order is the
// column order in the backing storage.
var Schemas = map[string][]string{
	TableInventory: {
		"ID",
		"Project",
		"Category",
		"Item",
		"BrandModel",
		"Serial",
		"Qty",
		"Unit",
		"UnitCost",
		"DateAcquired",
		"ProcurementProject",
		"PersonInCharge",
		"Location",
		"Status",
		"Remarks",
		"LastUpdated",
	},
	TableTransactions:   {"ID", "Date", "Type", "ItemID", "ItemName", "Quantity", "User", "Notes"},
	TableSuppliers:      {"ID", "Name", "Contact", "Email", "Address"},
	TablePurchaseOrders: {"ID", "Date", "SupplierID", "Items", "Status", "TotalAmount"},
	TableAuditLogs:      {"Timestamp", "User", "Action", "Details"},
}

// TableNames lists the known tables in provisioning order.
var TableNames = []string{
	TableInventory,
	TableTransactions,
	TableSuppliers,
	TablePurchaseOrders,
	TableAuditLogs,
}

var (
	// ErrUnknownTable is returned when a table name has no schema.
	ErrUnknownTable = errors.New("unknown table")
	// ErrRowOutOfRange is returned when a row position does not exist.
	ErrRowOutOfRange = errors.New("row position out of range")
)

// Row is a single data row keyed by header name. Cells are kept as text.
type Row map[string]string

// Table is a handle to one named table.
type Table interface {
	Name() string
	Headers() []string
	// Rows returns every data row in storage order, header excluded.
	Rows(ctx context.Context) ([]Row, error)
	Append(ctx context.Context, row Row) error
	// Update overwrites the row at a 0-based data position.
	Update(ctx context.Context, position int, row Row) error
	// Delete removes the row at a 0-based data position; later rows shift up.
	Delete(ctx context.Context, position int) error
}

// Store resolves table names to tables, creating them on first access.
type Store interface {
	Table(ctx context.Context, name string) (Table, error)
	Close() error
}

// HeadersFor returns a copy of the header row of the named table.
func HeadersFor(name string) ([]string, error) {
	headers, ok := Schemas[name]
	if !ok {
		return nil, ErrUnknownTable
	}
	out := make([]string, len(headers))
	copy(out, headers)
	return out, nil
}

// Provision touches every known table so each exists with its header row.
func Provision(ctx context.Context, s Store) error {
	for _, name := range TableNames {
		if _, err := s.Table(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func toCells(headers []string, row Row) []string {
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = row[h]
	}
	return cells
}

func fromCells(headers []string, cells []string) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		if i < len(cells) {
			row[h] = cells[i]
		} else {
			row[h] = ""
		}
	}
	return row
}
