package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/inventory-sheets/internal/logger"
	"github.com/rogerio-castellano/inventory-sheets/internal/models"
	"github.com/rogerio-castellano/inventory-sheets/internal/repo"
)

// Audit actions.
const (
	ActionAddItem     = "Add Item"
	ActionEditItem    = "Edit Item"
	ActionDeleteItem  = "Delete Item"
	ActionAdjustStock = "Adjust Stock"
	ActionAddSupplier = "Add Supplier"
)

// LowStockThreshold is the exclusive upper bound of a low stock quantity.
const LowStockThreshold = 10

// Timestamps are written as RFC 3339 in UTC.
const timestampLayout = time.RFC3339

type Service struct {
	items        repo.ItemRepository
	suppliers    repo.SupplierRepository
	transactions repo.TransactionRepository
	audit        repo.AuditRepository
	log          *logger.Logger

	now   func() time.Time
	newID func() string

	// mu serializes mutations so read-modify-write cycles don't interleave.
	mu sync.Mutex
}

type Options struct {
	Items        repo.ItemRepository
	Suppliers    repo.SupplierRepository
	Transactions repo.TransactionRepository
	Audit        repo.AuditRepository
	Logger       *logger.Logger

	// Now and NewID default to the wall clock and random UUIDs.
	Now   func() time.Time
	NewID func() string
}

func NewService(opts Options) *Service {
	s := &Service{
		items:        opts.Items,
		suppliers:    opts.Suppliers,
		transactions: opts.Transactions,
		audit:        opts.Audit,
		log:          opts.Logger,
		now:          opts.Now,
		newID:        opts.NewID,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.NewString() }
	}
	return s
}

// ItemPatch carries the fields of an edit. Nil fields are left unchanged.
type ItemPatch struct {
	Project            *string        `json:"Project,omitempty"`
	Category           *string        `json:"Category,omitempty"`
	Item               *string        `json:"Item,omitempty"`
	BrandModel         *string        `json:"BrandModel,omitempty"`
	Serial             *string        `json:"Serial,omitempty"`
	Qty                *models.Number `json:"Qty,omitempty"`
	Unit               *string        `json:"Unit,omitempty"`
	UnitCost           *models.Number `json:"UnitCost,omitempty"`
	DateAcquired       *string        `json:"DateAcquired,omitempty"`
	ProcurementProject *string        `json:"ProcurementProject,omitempty"`
	PersonInCharge     *string        `json:"PersonInCharge,omitempty"`
	Location           *string        `json:"Location,omitempty"`
	Status             *string        `json:"Status,omitempty"`
	Remarks            *string        `json:"Remarks,omitempty"`
}

func (p ItemPatch) apply(item *models.Item) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&item.Project, p.Project)
	setString(&item.Category, p.Category)
	setString(&item.Item, p.Item)
	setString(&item.BrandModel, p.BrandModel)
	setString(&item.Serial, p.Serial)
	setString(&item.Unit, p.Unit)
	setString(&item.DateAcquired, p.DateAcquired)
	setString(&item.ProcurementProject, p.ProcurementProject)
	setString(&item.PersonInCharge, p.PersonInCharge)
	setString(&item.Location, p.Location)
	setString(&item.Status, p.Status)
	setString(&item.Remarks, p.Remarks)
	if p.Qty != nil {
		item.Qty = *p.Qty
	}
	if p.UnitCost != nil {
		item.UnitCost = *p.UnitCost
	}
}

func (s *Service) ListInventory(ctx context.Context) ([]models.Item, error) {
	return s.items.GetAll(ctx)
}

func (s *Service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.suppliers.GetAll(ctx)
}

func (s *Service) ListAuditLogs(ctx context.Context) ([]models.AuditLog, error) {
	return s.audit.GetAll(ctx)
}

// AddItem stores a new item under a fresh ID. The ID and LastUpdated of the
// input are ignored.
func (s *Service) AddItem(ctx context.Context, actor string, item models.Item) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.newID()
	item.LastUpdated = s.timestamp()
	if item.Status == "" {
		if qty, ok := item.Qty.Float(); ok && qty > 0 {
			item.Status = models.StatusGood
		} else {
			item.Status = models.StatusOutOfStock
		}
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return models.Item{}, fmt.Errorf("add item: %w", err)
	}

	details := fmt.Sprintf("Added item: %s (Serial: %s)", created.Item, created.Serial)
	if err := s.logAudit(ctx, actor, ActionAddItem, details); err != nil {
		return models.Item{}, err
	}
	return created, nil
}

func (s *Service) EditItem(ctx context.Context, actor, id string, patch ItemPatch) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return models.Item{}, err
	}

	patch.apply(&item)
	item.LastUpdated = s.timestamp()

	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return models.Item{}, err
	}

	if err := s.logAudit(ctx, actor, ActionEditItem, "Edited item ID: "+id); err != nil {
		return models.Item{}, err
	}
	return updated, nil
}

func (s *Service) DeleteItem(ctx context.Context, actor, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	return s.logAudit(ctx, actor, ActionDeleteItem, "Deleted item ID: "+id)
}

// AdjustStock moves the quantity of an item by delta, records the movement and
// returns the new quantity. A current quantity that doesn't parse counts as 0.
func (s *Service) AdjustStock(ctx context.Context, actor, id string, delta int, reason string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	current, _ := item.Qty.Int()
	newQty := current + delta
	now := s.timestamp()

	previousStatus := item.Status
	item.Qty = models.NumberFromInt(newQty)
	item.LastUpdated = now
	if newQty <= 0 {
		item.Status = models.StatusOutOfStock
	} else if previousStatus == models.StatusOutOfStock {
		item.Status = models.StatusGood
	}

	txType := models.TransactionStockOut
	if delta > 0 {
		txType = models.TransactionStockIn
	}
	tx := models.Transaction{
		ID:       s.newID(),
		Date:     now,
		Type:     txType,
		ItemID:   item.ID,
		ItemName: item.Item,
		Quantity: models.NumberFromInt(abs(delta)),
		User:     actor,
		Notes:    reason,
	}
	// Log the movement first: a failed append must leave the stock untouched.
	if err := s.transactions.Log(ctx, tx); err != nil {
		return 0, fmt.Errorf("log transaction: %w", err)
	}

	fields := map[string]any{"item_id": item.ID, "transaction_id": tx.ID, "delta": delta}
	if _, err := s.items.Update(ctx, item); err != nil {
		s.log.Error(s.log.WithFields(ctx, fields), "transaction logged but quantity not updated", err)
		return 0, err
	}

	details := fmt.Sprintf("Adjusted stock for %s by %d. Reason: %s", item.Item, delta, reason)
	// The quantity is stored at this point. An audit failure is logged, not returned.
	if err := s.logAudit(ctx, actor, ActionAdjustStock, details); err != nil {
		s.log.Error(s.log.WithFields(ctx, fields), "quantity updated but audit entry missing", err)
	}

	if newQty <= 0 {
		s.log.Warn(s.log.WithFields(ctx, map[string]any{"item_id": item.ID, "qty": newQty}), "item out of stock")
	} else if newQty < LowStockThreshold {
		s.log.Warn(s.log.WithFields(ctx, map[string]any{"item_id": item.ID, "qty": newQty}), "item low on stock")
	}
	return newQty, nil
}

func (s *Service) AddSupplier(ctx context.Context, actor string, supplier models.Supplier) (models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	supplier.ID = s.newID()
	created, err := s.suppliers.Create(ctx, supplier)
	if err != nil {
		return models.Supplier{}, fmt.Errorf("add supplier: %w", err)
	}

	if err := s.logAudit(ctx, actor, ActionAddSupplier, "Added supplier: "+created.Name); err != nil {
		return models.Supplier{}, err
	}
	return created, nil
}

func (s *Service) logAudit(ctx context.Context, actor, action, details string) error {
	entry := models.AuditLog{
		Timestamp: s.timestamp(),
		User:      actor,
		Action:    action,
		Details:   details,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
