package handlers

import (
	"github.com/rogerio-castellano/inventory-sheets/internal/inventory"
	"github.com/rogerio-castellano/inventory-sheets/internal/models"
)

type ItemIDRequest struct {
	ID string `json:"id" validate:"required"`
}

type EditItemRequest struct {
	ID string `json:"id" validate:"required"`
	inventory.ItemPatch
}

type AdjustStockRequest struct {
	ID string `json:"id" validate:"required"`
	// Amount may arrive as a JSON number or as numeric text.
	Amount models.Number `json:"amount"`
	Reason string        `json:"reason"`
}

type SupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type AdjustStockResponse struct {
	Success bool `json:"success"`
	NewQty  int  `json:"newQty"`
}
