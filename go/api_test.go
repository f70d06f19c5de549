package restaurantserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	menucatalog "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/catalog"
	menumemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/memory"
	menuapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/application"
	ordersmemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/application"
	reportsapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/application"
	apierrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

var fixedNow = time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouterWithGinEngine(gin.New(), testHandlers(t))
}

func testHandlers(t *testing.T) ApiHandleFunctions {
	t.Helper()
	menuRepo := menumemory.NewRepository()
	menuService := menuapp.NewService(menuRepo)
	_, err := menuService.SeedIfEmpty(context.Background(), menuapp.DefaultSeed())
	require.NoError(t, err)

	catalog := menucatalog.New(menuRepo)
	orderRepo := ordersmemory.NewRepository()
	clock := func() time.Time { return fixedNow }
	orderService := ordersapp.NewService(orderRepo, catalog, ordersapp.WithClock(clock))
	reportService := reportsapp.NewService(orderRepo, catalog, reportsapp.WithClock(clock))

	return ApiHandleFunctions{
		MenuAPI:   NewMenuAPI(menuService),
		OrderAPI:  NewOrderAPI(orderService, ordersworkflows.NewInlineOrderWorkflows(orderService)),
		ReportAPI: NewReportAPI(reportService),
		PageAPI:   NewPageAPI(menuService),
	}
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMenu_ListSeeded(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/menu", "")
	require.Equal(t, http.StatusOK, rec.Code)

	items := decode[[]map[string]any](t, rec)
	require.Len(t, items, 4)
	assert.Equal(t, "Idli", items[0]["name"])
	assert.Equal(t, true, items[0]["available"])
	assert.Equal(t, float64(10), items[0]["max_qty"])
	assert.Equal(t, "General", items[0]["category"])
	assert.Contains(t, rec.Body.String(), `"price":1.50`)
}

func TestMenu_UpsertCreatesThenUpdates(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/menu", `{"name":"Vada","price":1.25,"category":"Snacks"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, true, created["created"])
	assert.Equal(t, "Snacks", created["category"])

	rec = do(t, router, http.MethodPost, "/api/menu", `{"name":"VADA","price":"1.40"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[map[string]any](t, rec)
	assert.Equal(t, true, updated["updated"])
	assert.Equal(t, created["id"], updated["id"])
	assert.Contains(t, rec.Body.String(), `"price":1.40`)
}

func TestMenu_UpsertValidation(t *testing.T) {
	router := newTestRouter(t)
	cases := map[string]string{
		`{"price":1}`:                  "name required",
		`{"name":"New Dish"}`:          "price required for new item",
		`{"name":"Dosa","price":-1}`:   "price must be non-negative",
		`{"name":"Dosa","price":true}`: "",
	}
	for body, detail := range cases {
		rec := do(t, router, http.MethodPost, "/api/menu", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
		problem := decode[apierrors.ProblemDetail](t, rec)
		if detail != "" {
			assert.Equal(t, detail, problem.Detail, body)
		}
	}
}

func TestMenu_UpdateItem(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/api/menu/1", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no fields provided", decode[apierrors.ProblemDetail](t, rec).Detail)

	rec = do(t, router, http.MethodPut, "/api/menu/999", `{"description":"x"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPut, "/api/menu/abc", `{"description":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, "/api/menu/2", `{"max_qty":0,"category":"","description":"crispy"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	item := decode[map[string]any](t, rec)
	assert.Equal(t, float64(1), item["max_qty"])
	assert.Equal(t, "General", item["category"])
	assert.Equal(t, "crispy", item["description"])

	rec = do(t, router, http.MethodGet, "/api/menu/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, rec)["max_qty"])
}

func TestMenu_AvailabilityIsIdempotent(t *testing.T) {
	router := newTestRouter(t)

	first := do(t, router, http.MethodPut, "/api/menu/1/availability", `{"available":false}`)
	require.Equal(t, http.StatusOK, first.Code)
	second := do(t, router, http.MethodPut, "/api/menu/1/availability", `{"available":false}`)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	rec := do(t, router, http.MethodPut, "/api/menu/1/availability", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "available required", decode[apierrors.ProblemDetail](t, rec).Detail)

	rec = do(t, router, http.MethodPut, "/api/menu/77/availability", `{"available":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrders_PlaceValidOrder(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/orders", `{"table":"4","items":[{"id":1,"qty":2},{"id":3,"qty":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[map[string]any](t, rec)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "4", order["table_number"])
	assert.Equal(t, []any{
		map[string]any{"id": float64(1), "qty": float64(2)},
		map[string]any{"id": float64(3), "qty": float64(1)},
	}, order["items"])
	assert.Equal(t, "2024-03-06T12:00:00.000000Z", order["created_at"])

	rec = do(t, router, http.MethodGet, "/api/orders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodGet, "/api/orders/2", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrders_RejectsEveryInvalidLine(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPut, "/api/menu/2/availability", `{"available":false}`)

	rec := do(t, router, http.MethodPost, "/api/orders", `{"items":[{"id":2,"qty":1},{"id":42,"qty":1},{"id":1,"qty":11},{"id":4,"qty":0}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, "validation failed", problem.Detail)
	assert.Equal(t, []string{
		"Dosa is currently unavailable",
		"item 42 not found",
		"Idli exceeds max qty (10)",
		"invalid qty for Thali",
	}, problem.Details)

	rec = do(t, router, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/orders", `{"table":"1","items":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "items array required", decode[apierrors.ProblemDetail](t, rec).Detail)
}

func TestOrders_StatusUpdates(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/api/orders", `{"items":[{"id":1,"qty":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodPut, "/api/orders/1/status", `{"status":"served"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "served", decode[map[string]any](t, rec)["status"])

	rec = do(t, router, http.MethodPut, "/api/orders/1/status", `{"status":"eaten"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid status", decode[apierrors.ProblemDetail](t, rec).Detail)

	rec = do(t, router, http.MethodPut, "/api/orders/9/status", `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReports_SingleDay(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/api/orders", `{"items":[{"id":1,"qty":2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/reports?period=day&range=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"period":"day","data":[{"period":"2024-03-06","orders":1,"items":2,"revenue":3.00}]}`, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"revenue":3.00`)
}

func TestReports_PriceChangeAffectsRevenueNotOrders(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/orders", `{"items":[{"id":1,"qty":2}]}`)

	rec := do(t, router, http.MethodPut, "/api/menu/1", `{"price":2.25}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/reports?range=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"revenue":4.50`)

	rec = do(t, router, http.MethodGet, "/api/orders/1", "")
	assert.Contains(t, rec.Body.String(), `"items":[{"id":1,"qty":2}]`)
}

func TestReports_WeeksAndInvalidPeriod(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/reports?period=week&range=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[map[string]any](t, rec)
	data := report["data"].([]any)
	require.Len(t, data, 4)
	assert.Equal(t, "2024-03-04 to 2024-03-10", data[3].(map[string]any)["period"])

	rec = do(t, router, http.MethodGet, "/api/reports?period=year", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid period", decode[apierrors.ProblemDetail](t, rec).Detail)
}

func TestPages(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chole Bhature")

	for _, path := range []string{"/kitchen", "/summary", "/reports"} {
		rec := do(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", path)
	}
}

func TestReports_RejectsOversizedRange(t *testing.T) {
	router := newTestRouter(t)

	for _, value := range []string{"1001", "2000000000", "100000000000000", "99999999999999999999999"} {
		rec := do(t, router, http.MethodGet, "/api/reports?period=day&range="+value, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, value)
		assert.Equal(t, "range must be at most 1000", decode[apierrors.ProblemDetail](t, rec).Detail, value)
	}

	rec := do(t, router, http.MethodGet, "/api/reports?period=day&range=1000", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
