package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rogerio-castellano/inventory-sheets/internal/inventory"
	"github.com/rogerio-castellano/inventory-sheets/internal/models"
)

func TestExecGet_ActionErrors(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		action string
		want   string
	}{
		{name: "missing action", action: "", want: "Missing action"},
		{name: "unknown action", action: "dropTables", want: "Invalid action"},
		{name: "write action over GET", action: "addItem", want: "Invalid action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := execGet(r, tt.action)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected application/json, got %q", ct)
			}
			if msg := errorMessage(w); msg != tt.want {
				t.Errorf("expected error %q, got %q", tt.want, msg)
			}
		})
	}
}

func TestExecPost_EnvelopeErrors(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	tests := []struct {
		name   string
		action string
		body   string
		want   string
	}{
		{name: "empty body", action: "addItem", body: "", want: "Missing request body"},
		{name: "empty body wins over missing action", action: "", body: "", want: "Missing request body"},
		{name: "malformed json", action: "addItem", body: "{not json", want: "Invalid JSON body"},
		{name: "missing action", action: "", body: `{}`, want: "Missing action"},
		{name: "unknown action", action: "getInventory", body: `{}`, want: "Invalid action"},
		{name: "delete without id", action: "deleteItem", body: `{}`, want: "id is required"},
		{name: "edit without id", action: "editItem", body: `{"Location":"Shelf"}`, want: "id is required"},
		{name: "adjust without id", action: "adjustStock", body: `{"amount":1}`, want: "id is required"},
		{name: "adjust with text amount", action: "adjustStock", body: `{"id":"x","amount":"lots"}`, want: "amount must be an integer"},
		{name: "adjust unknown id", action: "adjustStock", body: `{"id":"missing","amount":"1"}`, want: "Item not found"},
		{name: "delete unknown id", action: "deleteItem", body: `{"id":"missing"}`, want: "Item not found"},
		{name: "payload of the wrong shape", action: "deleteItem", body: `[1,2]`, want: "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := execPost(r, tt.action, tt.body)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			if msg := errorMessage(w); msg != tt.want {
				t.Errorf("expected error %q, got %q", tt.want, msg)
			}
		})
	}

	logs, err := listAuditLogs(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 0 {
		t.Errorf("failed actions must not be audited, got %d entries", len(logs))
	}
}

func TestAddItem_DefaultStatusAndNumbers(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := execPost(r, "addItem", `{"Item":"Drill","Serial":"DR-1","Qty":5,"UnitCost":12.5,"Status":""}`)
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}

	empty, err := addItem(r, models.Item{Item: "Tape", Qty: "0"})
	if err != nil {
		t.Fatal(err)
	}
	if empty.Status != models.StatusOutOfStock {
		t.Errorf("expected %q, got %q", models.StatusOutOfStock, empty.Status)
	}

	w = execGet(r, "getInventory")
	var raw []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("error decoding inventory: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("expected 2 items, got %d", len(raw))
	}
	if raw[0]["Status"] != models.StatusGood {
		t.Errorf("expected %q, got %v", models.StatusGood, raw[0]["Status"])
	}
	if raw[0]["Qty"] != 5.0 {
		t.Errorf("expected numeric Qty 5, got %#v", raw[0]["Qty"])
	}
	if raw[0]["UnitCost"] != 12.5 {
		t.Errorf("expected numeric UnitCost 12.5, got %#v", raw[0]["UnitCost"])
	}
	if id, _ := raw[0]["ID"].(string); id == "" {
		t.Error("expected a generated ID")
	}
}

func TestEditItem_UpdatesProvidedFields(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	item, err := addItem(r, models.Item{Item: "Drill", Location: "Shelf A", Remarks: "new", Qty: "3"})
	if err != nil {
		t.Fatal(err)
	}

	w := execPostJSON(r, "editItem", map[string]any{"id": item.ID, "Location": "Shelf B", "Qty": 4})
	if msg := errorMessage(w); msg != "" {
		t.Fatalf("unexpected error %q", msg)
	}

	items, err := listInventory(r)
	if err != nil {
		t.Fatal(err)
	}
	got := items[0]
	if got.Location != "Shelf B" || got.Qty != "4" {
		t.Errorf("expected edited Location and Qty, got %q and %q", got.Location, got.Qty)
	}
	if got.Remarks != "new" || got.Item != "Drill" {
		t.Errorf("fields not in the payload must not change, got %+v", got)
	}
}

func TestDeleteItem_RemovesOnlyMatchingRow(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	var ids []string
	for _, name := range []string{"Drill", "Saw", "Tape"} {
		item, err := addItem(r, models.Item{Item: name, Qty: "1"})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, item.ID)
	}

	w := execPostJSON(r, "deleteItem", map[string]string{"id": ids[0]})
	if msg := errorMessage(w); msg != "" {
		t.Fatalf("unexpected error %q", msg)
	}

	items, err := listInventory(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != ids[1] || items[1].ID != ids[2] {
		t.Errorf("expected the remaining items %v, got %+v", ids[1:], items)
	}
}

func TestAdjustStock_AcceptsNumericStrings(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	item, err := addItem(r, models.Item{Item: "Drill", Qty: "3"})
	if err != nil {
		t.Fatal(err)
	}

	w := execPostJSON(r, "adjustStock", map[string]string{"id": item.ID, "amount": "-5", "reason": "damage"})
	var resp struct {
		Success bool   `json:"success"`
		NewQty  int    `json:"newQty"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.Success || resp.NewQty != -2 {
		t.Fatalf("expected success with newQty -2, got %+v", resp)
	}

	items, err := listInventory(r)
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Status != models.StatusOutOfStock {
		t.Errorf("expected %q, got %q", models.StatusOutOfStock, items[0].Status)
	}

	w = execPostJSON(r, "adjustStock", map[string]any{"id": item.ID, "amount": 7, "reason": "delivery"})
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.NewQty != 5 {
		t.Errorf("expected newQty 5, got %d", resp.NewQty)
	}
}

func TestAddSupplier_ListedAndAudited(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := execPostJSON(r, "addSupplier", map[string]string{
		"name":    "Acme",
		"contact": "Jo",
		"email":   "sales@acme.test",
		"address": "1 Main St",
	})
	if msg := errorMessage(w); msg != "" {
		t.Fatalf("unexpected error %q", msg)
	}

	w = execGet(r, "getSuppliers")
	var suppliers []models.Supplier
	if err := json.NewDecoder(w.Body).Decode(&suppliers); err != nil {
		t.Fatalf("error decoding suppliers: %v", err)
	}
	if len(suppliers) != 1 || suppliers[0].Name != "Acme" || suppliers[0].Email != "sales@acme.test" {
		t.Errorf("unexpected suppliers %+v", suppliers)
	}

	logs, err := listAuditLogs(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Details != "Added supplier: Acme" {
		t.Errorf("unexpected audit log %+v", logs)
	}
}

func TestAuditLog_RecordsCaller(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	execPostJSON(r, "addItem", models.Item{Item: "Anonymous"})
	execPostJSON(r, "addItem", models.Item{Item: "Header"}, map[string]string{"X-User-Email": "clerk@example.com"})
	execPostJSON(r, "addItem", models.Item{Item: "Token"}, map[string]string{
		"X-User-Email":  "clerk@example.com",
		"Authorization": "Bearer " + token,
	})

	logs, err := listAuditLogs(r)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"anonymous@local", "clerk@example.com", "admin@example.com"}
	if len(logs) != len(want) {
		t.Fatalf("expected %d audit entries, got %d", len(want), len(logs))
	}
	for i, user := range want {
		if logs[i].User != user {
			t.Errorf("entry %d: expected user %q, got %q", i, user, logs[i].User)
		}
		if logs[i].Action != inventory.ActionAddItem {
			t.Errorf("entry %d: expected action %q, got %q", i, inventory.ActionAddItem, logs[i].Action)
		}
	}
}

func TestExec_InvalidToken(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := execPostJSON(r, "addItem", models.Item{Item: "Drill"}, map[string]string{"Authorization": "Bearer forged"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if msg := errorMessage(w); msg != "invalid token" {
		t.Errorf("expected 'invalid token', got %q", msg)
	}

	items, err := listInventory(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("rejected requests must not write, got %d items", len(items))
	}
}

func TestGetDashboardStats(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	for _, qty := range []string{"0", "4", "25"} {
		if _, err := addItem(r, models.Item{Item: "item-" + qty, Qty: models.Number(qty), UnitCost: "2"}); err != nil {
			t.Fatal(err)
		}
	}
	items, err := listInventory(r)
	if err != nil {
		t.Fatal(err)
	}
	execPostJSON(r, "adjustStock", map[string]any{"id": items[1].ID, "amount": 2, "reason": "delivery"})

	w := execGet(r, "getDashboardStats")
	var stats inventory.DashboardStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("error decoding stats: %v", err)
	}

	if stats.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", stats.TotalItems)
	}
	if stats.LowStock != 1 || stats.OutOfStock != 1 {
		t.Errorf("expected 1 low and 1 out of stock, got %d and %d", stats.LowStock, stats.OutOfStock)
	}
	if stats.TotalValue != 62 {
		t.Errorf("expected total value 62, got %v", stats.TotalValue)
	}
	if len(stats.RecentActivities) != 1 || stats.RecentActivities[0].Type != models.TransactionStockIn {
		t.Errorf("unexpected recent activities %+v", stats.RecentActivities)
	}
	if len(stats.Chart.Labels) != 7 || stats.Chart.StockIn[6] != 2 {
		t.Errorf("expected today's bucket to hold the delivery, got %+v", stats.Chart)
	}
}

func TestAuxiliaryRoutes(t *testing.T) {
	r := newRouter()
	execGet(r, "getInventory")

	tests := []struct {
		path     string
		contains string
	}{
		{path: "/healthz", contains: "ok"},
		{path: "/metrics", contains: "inventory_dispatch_total"},
		{path: "/", contains: "<title>Inventory</title>"},
		{path: "/dashboard.html", contains: "mainChart"},
		{path: "/app.js", contains: "callApi"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("expected body to contain %q", tt.contains)
			}
		})
	}
}
