package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testRUC = "20123456789"

// buildTestApp arma la API completa sobre el datastore en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	products, suppliers, entries, withdrawals := store.Repos()
	v := validator.New()
	log := zerolog.Nop()
	return apphttp.NewApp("almacen-test", apphttp.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(products, v),
		SupplierUC:       usecase.NewSupplierUseCase(suppliers, v),
		EntryUC:          inventory.NewEntryUseCase(products, suppliers, entries, v),
		BulkEntryUC:      inventory.NewBulkEntryUseCase(products, suppliers, entries, v, 10, log),
		WithdrawalUC:     inventory.NewWithdrawalUseCase(memory.NewTxRunner(store), products, withdrawals, v),
		BulkWithdrawalUC: inventory.NewBulkWithdrawalUseCase(products, entries, withdrawals, v, 10, log),
		StockUC:          inventory.NewStockUseCase(products, entries, withdrawals),
		KardexUC:         inventory.NewKardexUseCase(products, suppliers, entries, withdrawals, pdf.NewKardexPDFGenerator("Almacén")),
		Log:              log,
	})
}

// call ejecuta la petición y decodifica el cuerpo JSON (si lo hay) en un map.
func call(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && resp.Header.Get("Content-Type") != "application/pdf" {
		require.NoError(t, json.Unmarshal(raw, &out), "respuesta: %s", raw)
	}
	return resp.StatusCode, out
}

// seed crea un producto y un proveedor y registra una entrada de qty unidades.
func seed(t *testing.T, app *fiber.App, title, qty string) string {
	t.Helper()
	status, p := call(t, app, http.MethodPost, "/api/products", map[string]any{
		"title": title, "unitOfMeasurement": "UND", "materialType": "Ferretería",
	})
	require.Equal(t, fiber.StatusCreated, status, "%v", p)
	id := p["id"].(string)

	status, _ = call(t, app, http.MethodPost, "/api/suppliers", map[string]any{"name": "Ferretería Central", "ruc": testRUC})
	require.Contains(t, []int{fiber.StatusCreated, fiber.StatusConflict}, status)

	status, e := call(t, app, http.MethodPost, "/api/entries", map[string]any{
		"productId": id, "ruc": testRUC, "quantity": qty, "price": "2.5", "startTime": "2024-01-01T08:00:00Z",
	})
	require.Equal(t, fiber.StatusCreated, status, "%v", e)
	return id
}

func firstError(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	errs, ok := body["errors"].([]any)
	require.True(t, ok, "se esperaba errors en %v", body)
	require.NotEmpty(t, errs)
	return errs[0].(map[string]any)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	status, body := call(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestBulkWithdrawal_HTTP(t *testing.T) {
	app := buildTestApp(t)
	id := seed(t, app, "Tubería PVC", "100")

	status, body := call(t, app, http.MethodPost, "/api/withdrawals/bulk", map[string]any{
		"withdrawals": []map[string]any{
			{"productId": id, "title": "Obra norte", "quantity": 60, "endTime": "2024-01-15T10:00:00Z"},
			{"productId": id, "title": "Obra sur", "quantity": 50, "endTime": "2024-01-15T10:00:00Z"},
		},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, body["total"])
	assert.EqualValues(t, 1, body["successCount"])
	assert.EqualValues(t, 1, body["errorCount"])

	results := body["results"].([]any)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].(map[string]any), "withdrawal")
	e := firstError(t, results[1].(map[string]any))
	assert.Equal(t, "quantity", e["field"])
	assert.EqualValues(t, 1, e["index"])
	assert.Equal(t, "40", e["available"])
	assert.Equal(t, "50", e["requested"])

	status, stock := call(t, app, http.MethodGet, "/api/products/"+id+"/stock", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "40", stock["available"])
}

func TestBulkWithdrawal_HTTPErroresDeLote(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/withdrawals/bulk", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	items := make([]map[string]any, 11)
	for i := range items {
		items[i] = map[string]any{"productId": "x", "title": "Obra norte", "quantity": 1, "endTime": "2024-01-15T10:00:00Z"}
	}
	status, body := call(t, app, http.MethodPost, "/api/withdrawals/bulk", map[string]any{"withdrawals": items})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestWithdrawal_HTTPStatusPorError(t *testing.T) {
	app := buildTestApp(t)
	id := seed(t, app, "Cemento Sol", "5")

	w := map[string]any{"productId": id, "title": "Obra norte", "quantity": "2", "endTime": "2024-01-15T10:00:00Z"}
	status, created := call(t, app, http.MethodPost, "/api/withdrawals", w)
	require.Equal(t, fiber.StatusCreated, status, "%v", created)

	status, body := call(t, app, http.MethodPost, "/api/withdrawals", w)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "El registro de salida ya existe", firstError(t, body)["message"])

	status, body = call(t, app, http.MethodPost, "/api/withdrawals", map[string]any{
		"productId": id, "title": "Obra sur", "quantity": "4", "endTime": "2024-01-15T10:00:00Z",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "quantity", firstError(t, body)["field"])

	status, body = call(t, app, http.MethodPost, "/api/withdrawals", map[string]any{
		"productId": "00000000-0000-0000-0000-000000000000", "title": "Obra sur", "quantity": "1", "endTime": "2024-01-15T10:00:00Z",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "productId", firstError(t, body)["field"])

	status, body = call(t, app, http.MethodPost, "/api/withdrawals", map[string]any{
		"productId": id, "title": "abc", "quantity": "1", "endTime": "ayer",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Len(t, body["errors"], 2)

	wid := created["id"].(string)
	status, body = call(t, app, http.MethodPut, "/api/withdrawals/"+wid, map[string]any{
		"title": "Obra norte", "quantity": "5", "endTime": "2024-01-15T10:00:00Z",
	})
	assert.Equal(t, fiber.StatusOK, status, "%v", body)

	status, _ = call(t, app, http.MethodDelete, "/api/withdrawals/"+wid, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = call(t, app, http.MethodGet, "/api/withdrawals/"+wid, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestProducts_HTTP(t *testing.T) {
	app := buildTestApp(t)

	status, body := call(t, app, http.MethodPost, "/api/products/bulk", map[string]any{"products": []any{}})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.EqualValues(t, -1, firstError(t, body)["index"])

	status, body = call(t, app, http.MethodPost, "/api/products/bulk", map[string]any{"products": []map[string]any{
		{"title": "Cemento Sol", "unitOfMeasurement": "BLS", "materialType": "Construcción"},
		{"title": "Cemento Sol", "unitOfMeasurement": "BLS", "materialType": "Construcción"},
	}})
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["totalCreated"])
	assert.EqualValues(t, 1, body["totalFailed"])

	id := seed(t, app, "Arena fina", "3")
	status, body = call(t, app, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["code"])

	status, _ = call(t, app, http.MethodGet, "/api/products/no-es-uuid", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = call(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, body["total"])
}

func TestEntries_HTTPBulk(t *testing.T) {
	app := buildTestApp(t)
	id := seed(t, app, "Cemento Sol", "5")

	status, body := call(t, app, http.MethodPost, "/api/entries/bulk", map[string]any{"entries": []map[string]any{
		{"productId": id, "ruc": testRUC, "quantity": 5, "price": 2.5, "startTime": "2024-01-01T08:00:00Z"},
		{"productId": id, "ruc": "20000000000", "quantity": 1, "price": 1, "startTime": "2024-01-02T08:00:00Z"},
		{"productId": id, "ruc": testRUC, "quantity": 1, "price": 1, "startTime": "2024-01-02T08:00:00Z"},
	}})
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["successCount"])
	results := body["results"].([]any)
	assert.Equal(t, "El registro ya existe", firstError(t, results[0].(map[string]any))["message"])
	assert.Equal(t, "ruc", firstError(t, results[1].(map[string]any))["field"])
	assert.Contains(t, results[2].(map[string]any), "entry")
}

func TestKardex_HTTP(t *testing.T) {
	app := buildTestApp(t)
	id := seed(t, app, "Cemento Sol", "10")

	status, body := call(t, app, http.MethodGet, "/api/products/"+id+"/kardex", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["lines"], 1)
	assert.Equal(t, "10", body["balance"])

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id+"/kardex/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "kardex_"+id+".pdf")
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestStock_HTTPProductoInexistente(t *testing.T) {
	app := buildTestApp(t)
	for _, id := range []string{"no-es-uuid", "7c9e6679-7425-40de-944b-e07fc1f90ae7"} {
		status, body := call(t, app, http.MethodGet, "/api/products/"+id+"/stock", nil)
		assert.Equal(t, fiber.StatusNotFound, status, id)
		assert.Equal(t, "NOT_FOUND", body["code"])
	}
}
