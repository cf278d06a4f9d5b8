package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-sheets/internal/http/middleware"
	"github.com/rogerio-castellano/inventory-sheets/internal/metrics"
	"github.com/rogerio-castellano/inventory-sheets/internal/models"
)

var (
	ErrMissingBody   = errors.New("Missing request body")
	ErrInvalidBody   = errors.New("Invalid JSON body")
	ErrMissingAction = errors.New("Missing action")
	ErrInvalidAction = errors.New("Invalid action")
	ErrInvalidAmount = errors.New("amount must be an integer")
)

type queryAction func(ctx context.Context) (any, error)

type commandAction func(ctx context.Context, actor string, body []byte) (any, error)

var queryActions = map[string]queryAction{
	"getDashboardStats": func(ctx context.Context) (any, error) {
		return inventoryService.Dashboard(ctx)
	},
	"getInventory": func(ctx context.Context) (any, error) {
		return inventoryService.ListInventory(ctx)
	},
	"getSuppliers": func(ctx context.Context) (any, error) {
		return inventoryService.ListSuppliers(ctx)
	},
	"getAuditLogs": func(ctx context.Context) (any, error) {
		return inventoryService.ListAuditLogs(ctx)
	},
}

var commandActions = map[string]commandAction{
	"addItem":     addItem,
	"editItem":    editItem,
	"deleteItem":  deleteItem,
	"adjustStock": adjustStock,
	"addSupplier": addSupplier,
}

// ExecGetHandler godoc
// @Summary Run a read action
// @Description Dispatches getDashboardStats, getInventory, getSuppliers or getAuditLogs. Failures are reported as {"error": message} with status 200.
// @Tags exec
// @Produce json
// @Param action query string true "Action name" Enums(getDashboardStats, getInventory, getSuppliers, getAuditLogs)
// @Success 200 {object} inventory.DashboardStats "getDashboardStats"
// @Success 200 {array} models.Item "getInventory"
// @Success 200 {array} models.Supplier "getSuppliers"
// @Success 200 {array} models.AuditLog "getAuditLogs"
// @Failure 429 {object} middleware.ErrorResponse
// @Router /exec [get]
func ExecGetHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	action := r.URL.Query().Get("action")

	result, err := dispatchQuery(r.Context(), action)
	respond(w, r, action, start, result, err)
}

// ExecPostHandler godoc
// @Summary Run a mutating action
// @Description Dispatches addItem, editItem, deleteItem, adjustStock or addSupplier. The body is JSON of any content type. Failures are reported as {"error": message} with status 200.
// @Tags exec
// @Accept plain
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param action query string true "Action name" Enums(addItem, editItem, deleteItem, adjustStock, addSupplier)
// @Param payload body object true "Action payload"
// @Success 200 {object} SuccessResponse
// @Success 200 {object} AdjustStockResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /exec [post]
func ExecPostHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	action := r.URL.Query().Get("action")

	body, err := readBody(w, r)
	if err != nil {
		respond(w, r, action, start, nil, err)
		return
	}

	result, err := dispatchCommand(r.Context(), action, middleware.Actor(r.Context()), body)
	respond(w, r, action, start, result, err)
}

func dispatchQuery(ctx context.Context, action string) (any, error) {
	if action == "" {
		return nil, ErrMissingAction
	}
	handle, ok := queryActions[action]
	if !ok {
		return nil, ErrInvalidAction
	}
	return handle(ctx)
}

// dispatchCommand checks the body before the action name.
func dispatchCommand(ctx context.Context, action, actor string, body []byte) (any, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrMissingBody
	}
	if !json.Valid(body) {
		return nil, ErrInvalidBody
	}
	if action == "" {
		return nil, ErrMissingAction
	}
	handle, ok := commandActions[action]
	if !ok {
		return nil, ErrInvalidAction
	}
	return handle(ctx, actor, body)
}

func respond(w http.ResponseWriter, r *http.Request, action string, start time.Time, result any, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		ctx := log.WithField(r.Context(), "action", action)
		log.Warn(log.WithField(ctx, "error", err.Error()), "dispatch failed")
		writeError(w, err.Error())
	} else if werr := writeJSON(w, http.StatusOK, result); werr != nil {
		outcome = metrics.OutcomeError
		log.Error(log.WithField(r.Context(), "action", action), "failed to write response", werr)
	}
	dispatchMetrics.Observe(action, outcome, time.Since(start))
}

func decodePayload(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return ErrInvalidBody
	}
	return nil
}

func addItem(ctx context.Context, actor string, body []byte) (any, error) {
	var item models.Item
	if err := decodePayload(body, &item); err != nil {
		return nil, err
	}
	if _, err := inventoryService.AddItem(ctx, actor, item); err != nil {
		return nil, err
	}
	return SuccessResponse{Success: true}, nil
}

func editItem(ctx context.Context, actor string, body []byte) (any, error) {
	var req EditItemRequest
	if err := decodePayload(body, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := inventoryService.EditItem(ctx, actor, req.ID, req.ItemPatch); err != nil {
		return nil, err
	}
	return SuccessResponse{Success: true}, nil
}

func deleteItem(ctx context.Context, actor string, body []byte) (any, error) {
	var req ItemIDRequest
	if err := decodePayload(body, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := inventoryService.DeleteItem(ctx, actor, req.ID); err != nil {
		return nil, err
	}
	return SuccessResponse{Success: true}, nil
}

func adjustStock(ctx context.Context, actor string, body []byte) (any, error) {
	var req AdjustStockRequest
	if err := decodePayload(body, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	amount, ok := req.Amount.Int()
	if !ok {
		return nil, ErrInvalidAmount
	}
	newQty, err := inventoryService.AdjustStock(ctx, actor, req.ID, amount, req.Reason)
	if err != nil {
		return nil, err
	}
	return AdjustStockResponse{Success: true, NewQty: newQty}, nil
}

func addSupplier(ctx context.Context, actor string, body []byte) (any, error) {
	var req SupplierRequest
	if err := decodePayload(body, &req); err != nil {
		return nil, err
	}
	supplier := models.Supplier{
		Name:    req.Name,
		Contact: req.Contact,
		Email:   req.Email,
		Address: req.Address,
	}
	if _, err := inventoryService.AddSupplier(ctx, actor, supplier); err != nil {
		return nil, err
	}
	return SuccessResponse{Success: true}, nil
}
