//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-restaurant-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type menuItemPayload struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Available bool        `json:"available"`
	MaxQty    int         `json:"max_qty"`
	Category  string      `json:"category"`
}

type orderPayload struct {
	ID          int64  `json:"id"`
	TableNumber string `json:"table_number"`
	Items       []struct {
		ID  int64 `json:"id"`
		Qty int   `json:"qty"`
	} `json:"items"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type problemDetail struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Status  int      `json:"status"`
	Detail  string   `json:"detail"`
	Details []string `json:"details"`
}

type apiError struct {
	status  int
	title   string
	detail  string
	details []string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestKitchenDisplayContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	menuItemMatcher := matchers.Map{
		"id":        matchers.Like(pacttest.IdliID),
		"name":      matchers.Like("Idli"),
		"price":     matchers.Like(1.5),
		"available": matchers.Like(true),
		"max_qty":   matchers.Like(10),
		"category":  matchers.Like("General"),
	}
	orderMatcher := func(status string) matchers.Map {
		return matchers.Map{
			"id":           matchers.Like(pacttest.ExistingOrderID),
			"table_number": matchers.Like(pacttest.ExampleTable),
			"items": matchers.EachLike(matchers.Map{
				"id":  matchers.Like(pacttest.IdliID),
				"qty": matchers.Like(2),
			}, 1),
			"status":     matchers.Term(status, "pending|served|cancelled|rejected"),
			"created_at": matchers.Regex("2024-03-06T12:00:00.000000Z", `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}Z`),
		}
	}

	pact.AddInteraction().
		Given(pacttest.StateMenuSeeded).
		UponReceiving("a request for the menu").
		WithRequest("GET", "/api/menu").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(menuItemMatcher, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateMenuSeeded).
		UponReceiving("a valid order for a table").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderRequest(pacttest.Line(pacttest.IdliID, 2)))
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderMatcher("pending"))
		})

	pact.AddInteraction().
		Given(pacttest.StateDosaUnavailable).
		UponReceiving("an order containing an unavailable item").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderRequest(pacttest.Line(pacttest.DosaID, 1)))
		}).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":    matchers.S("/problems/validation-error"),
				"title":   matchers.S("Validation Error"),
				"status":  matchers.Like(http.StatusBadRequest),
				"details": []string{"Dosa is currently unavailable"},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to mark an order served").
		WithRequest("PUT", fmt.Sprintf("/api/orders/%d/status", pacttest.ExistingOrderID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]any{"status": "served"})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderMatcher("served"))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a status change for a missing order").
		WithRequest("PUT", fmt.Sprintf("/api/orders/%d/status", pacttest.MissingOrderID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]any{"status": "served"})
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newKitchenClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		menu, err := client.ListMenu(ctx)
		if err != nil {
			return fmt.Errorf("list menu: %w", err)
		}
		if len(menu) == 0 {
			return fmt.Errorf("expected at least one menu item")
		}

		placed, err := client.PlaceOrder(ctx, pacttest.ExampleOrderRequest(pacttest.Line(pacttest.IdliID, 2)))
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if placed.ID == 0 || placed.Status != "pending" {
			return fmt.Errorf("unexpected placed order %+v", placed)
		}

		_, err = client.PlaceOrder(ctx, pacttest.ExampleOrderRequest(pacttest.Line(pacttest.DosaID, 1)))
		apiErr, ok := err.(apiError)
		if !ok || apiErr.Status() != http.StatusBadRequest || len(apiErr.details) != 1 {
			return fmt.Errorf("expected 400 with one problem, got %v", err)
		}

		served, err := client.UpdateStatus(ctx, pacttest.ExistingOrderID, "served")
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if served.Status != "served" {
			return fmt.Errorf("expected served, got %s", served.Status)
		}

		if _, err := client.UpdateStatus(ctx, pacttest.MissingOrderID, "served"); err == nil {
			return fmt.Errorf("expected 404 for order %d", pacttest.MissingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type kitchenClient struct {
	baseURL    string
	httpClient *http.Client
}

func newKitchenClient(config pactconsumer.MockServerConfig) *kitchenClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &kitchenClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *kitchenClient) ListMenu(ctx context.Context) ([]menuItemPayload, error) {
	var items []menuItemPayload
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *kitchenClient) PlaceOrder(ctx context.Context, body map[string]any) (*orderPayload, error) {
	var order orderPayload
	if err := c.do(ctx, http.MethodPost, "/api/orders", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *kitchenClient) UpdateStatus(ctx context.Context, id int64, status string) (*orderPayload, error) {
	var order orderPayload
	path := fmt.Sprintf("/api/orders/%d/status", id)
	if err := c.do(ctx, http.MethodPut, path, map[string]any{"status": status}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *kitchenClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status:  status,
		title:   problem.Title,
		detail:  problem.Detail,
		details: problem.Details,
	}
}
