package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogerio-castellano/inventory-sheets/internal/db"
	handler "github.com/rogerio-castellano/inventory-sheets/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-sheets/internal/http/router"
	"github.com/rogerio-castellano/inventory-sheets/internal/inventory"
	"github.com/rogerio-castellano/inventory-sheets/internal/models"
	"github.com/rogerio-castellano/inventory-sheets/internal/repo"
	"github.com/rogerio-castellano/inventory-sheets/internal/rowstore"
)

type backend struct {
	name string
	open func(t *testing.T) rowstore.Store
}

// backends lists the persistent stores. Postgres runs only when
// INVENTORY_TEST_DATABASE_URL points at a disposable database.
func backends() []backend {
	list := []backend{{
		name: "xlsx",
		open: func(t *testing.T) rowstore.Store {
			s, err := rowstore.OpenXLSXStore(filepath.Join(t.TempDir(), "inventory.xlsx"))
			if err != nil {
				t.Fatalf("error opening workbook: %v", err)
			}
			return s
		},
	}}

	if dbURL := os.Getenv("INVENTORY_TEST_DATABASE_URL"); dbURL != "" {
		list = append(list, backend{
			name: "postgres",
			open: func(t *testing.T) rowstore.Store {
				database, err := db.Connect(context.Background(), dbURL)
				if err != nil {
					t.Fatalf("could not connect to database: %v", err)
				}
				for _, name := range rowstore.TableNames {
					if _, err := database.Exec("DROP TABLE IF EXISTS sheet_" + strings.ToLower(name)); err != nil {
						t.Fatalf("error dropping %s: %v", name, err)
					}
				}
				return rowstore.NewPostgresStore(database)
			},
		})
	}
	return list
}

// setup wires the handlers to a fresh store and returns the router.
func setup(t *testing.T, b backend) http.Handler {
	t.Helper()
	store := b.open(t)
	t.Cleanup(func() { _ = store.Close() })

	if err := rowstore.Provision(context.Background(), store); err != nil {
		t.Fatalf("error provisioning store: %v", err)
	}

	handler.SetInventoryService(inventory.NewService(inventory.Options{
		Items:        repo.NewSheetItemRepository(store),
		Suppliers:    repo.NewSheetSupplierRepository(store),
		Transactions: repo.NewSheetTransactionRepository(store),
		Audit:        repo.NewSheetAuditRepository(store),
	}))
	return router.NewRouter(router.Options{})
}

func execGet(r http.Handler, action string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/exec?action="+action, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func execPost(r http.Handler, action string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/exec?action="+action, bytes.NewReader(body))
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")
	req.Header.Set("X-User-Email", "integration@example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func listInventory(r http.Handler) ([]models.Item, error) {
	var items []models.Item
	if err := json.NewDecoder(execGet(r, "getInventory").Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("error decoding inventory: %v", err)
	}
	return items, nil
}

func errorMessage(w *httptest.ResponseRecorder) string {
	var resp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Error
}
