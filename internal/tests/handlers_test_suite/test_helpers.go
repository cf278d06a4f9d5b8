package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rogerio-castellano/inventory-sheets/internal/auth"
	handler "github.com/rogerio-castellano/inventory-sheets/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-sheets/internal/http/router"
	"github.com/rogerio-castellano/inventory-sheets/internal/inventory"
	"github.com/rogerio-castellano/inventory-sheets/internal/metrics"
	"github.com/rogerio-castellano/inventory-sheets/internal/models"
	"github.com/rogerio-castellano/inventory-sheets/internal/repo"
	"github.com/rogerio-castellano/inventory-sheets/internal/rowstore"
)

const testSecret = "test-secret"

var (
	store    *rowstore.MemoryStore
	signer   *auth.Signer
	registry *prometheus.Registry
	token    string
)

func init() {
	store = rowstore.NewMemoryStore()
	if err := rowstore.Provision(context.Background(), store); err != nil {
		panic(fmt.Sprintf("error provisioning store: %v", err))
	}

	handler.SetInventoryService(inventory.NewService(inventory.Options{
		Items:        repo.NewSheetItemRepository(store),
		Suppliers:    repo.NewSheetSupplierRepository(store),
		Transactions: repo.NewSheetTransactionRepository(store),
		Audit:        repo.NewSheetAuditRepository(store),
	}))

	registry = prometheus.NewRegistry()
	handler.SetDispatchMetrics(metrics.NewDispatchMetrics(registry))

	signer = auth.NewSigner(testSecret)
	var err error
	token, err = signer.GenerateToken("admin@example.com", time.Hour)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func newRouter() http.Handler {
	return router.NewRouter(router.Options{
		Signer:   signer,
		Gatherer: registry,
	})
}

func clearAll() {
	store.Clear()
}

func execGet(r http.Handler, action string) *httptest.ResponseRecorder {
	target := "/exec"
	if action != "" {
		target += "?action=" + url.QueryEscape(action)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// execPost sends body as text/plain, the way the frontend does.
func execPost(r http.Handler, action, body string, headers ...map[string]string) *httptest.ResponseRecorder {
	target := "/exec"
	if action != "" {
		target += "?action=" + url.QueryEscape(action)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func execPostJSON(r http.Handler, action string, payload any, headers ...map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	return execPost(r, action, string(body), headers...)
}

func errorMessage(w *httptest.ResponseRecorder) string {
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		return ""
	}
	msg, _ := resp["error"].(string)
	return msg
}

func listInventory(r http.Handler) ([]models.Item, error) {
	w := execGet(r, "getInventory")
	var items []models.Item
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("error decoding inventory: %v", err)
	}
	return items, nil
}

func listAuditLogs(r http.Handler) ([]models.AuditLog, error) {
	w := execGet(r, "getAuditLogs")
	var logs []models.AuditLog
	if err := json.NewDecoder(w.Body).Decode(&logs); err != nil {
		return nil, fmt.Errorf("error decoding audit logs: %v", err)
	}
	return logs, nil
}

func addItem(r http.Handler, item models.Item) (models.Item, error) {
	before, err := listInventory(r)
	if err != nil {
		return models.Item{}, err
	}
	w := execPostJSON(r, "addItem", item)
	if msg := errorMessage(w); msg != "" {
		return models.Item{}, fmt.Errorf("addItem failed: %s", msg)
	}
	after, err := listInventory(r)
	if err != nil {
		return models.Item{}, err
	}
	if len(after) != len(before)+1 {
		return models.Item{}, fmt.Errorf("expected %d items, got %d", len(before)+1, len(after))
	}
	return after[len(after)-1], nil
}
