package baselinker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkoval24/printflow/config"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// capturedCall — один вызов API, как его увидел сервер.
type capturedCall struct {
	Method string
	Token  string
	Params map[string]any
}

func newTestServer(t *testing.T, respond func(method string) string) (*httptest.Server, *[]capturedCall) {
	t.Helper()
	var calls []capturedCall

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		call := capturedCall{
			Method: r.PostFormValue("method"),
			Token:  r.Header.Get("X-BLToken"),
		}
		if raw := r.PostFormValue("parameters"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &call.Params); err != nil {
				t.Errorf("parameters не JSON: %v", err)
			}
		}
		calls = append(calls, call)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(respond(call.Method)))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.Baselinker{
		APIURL:            srv.URL,
		Token:             "secret",
		SourceStatusID:    "219626",
		ProcessedStatusID: "330001",
		Timeout:           5 * time.Second,
		ExcludeNames:      []string{"Skarpety"},
	}, nopLogger{})
}

const ordersPayload = `{
	"status": "SUCCESS",
	"orders": [
		{
			"order_id": 1001,
			"payment_done": 49.90,
			"payment_method_cod": "0",
			"products": [
				{"name": "Plakat B2", "sku": "ABC123", "quantity": 5},
				{"name": "Skarpety kolorowe", "sku": "SOCK1", "quantity": 1}
			]
		},
		{
			"order_id": 1002,
			"payment_done": 0,
			"payment_method_cod": "1",
			"products": [{"name": "Plakat A3", "sku": "DEF456", "quantity": 2}]
		},
		{
			"order_id": 1003,
			"payment_done": 0,
			"payment_method_cod": "0",
			"products": [{"name": "Plakat", "sku": "GHI789", "quantity": 1}]
		}
	]
}`

func TestClient_HasNewOrders(t *testing.T) {
	srv, calls := newTestServer(t, func(string) string { return ordersPayload })
	c := newTestClient(srv)

	ok, err := c.HasNewOrders(context.Background(), 3)
	if err != nil {
		t.Fatalf("HasNewOrders: %v", err)
	}
	if !ok {
		t.Fatal("есть оплаченные заказы, ожидали true")
	}

	call := (*calls)[0]
	if call.Method != "getOrders" {
		t.Errorf("method = %q", call.Method)
	}
	if call.Token != "secret" {
		t.Errorf("X-BLToken = %q", call.Token)
	}
	if call.Params["status_id"] != "219626" {
		t.Errorf("status_id = %v", call.Params["status_id"])
	}
	if call.Params["get_unconfirmed_orders"] != false {
		t.Errorf("get_unconfirmed_orders = %v", call.Params["get_unconfirmed_orders"])
	}
	if _, ok := call.Params["date_from"]; !ok {
		t.Error("нет date_from")
	}
}

func TestClient_HasNewOrders_AllUnpaid(t *testing.T) {
	srv, _ := newTestServer(t, func(string) string {
		return `{"status":"SUCCESS","orders":[{"order_id":1,"payment_done":0,"payment_method_cod":"0","products":[]}]}`
	})
	c := newTestClient(srv)

	ok, err := c.HasNewOrders(context.Background(), 3)
	if err != nil {
		t.Fatalf("HasNewOrders: %v", err)
	}
	if ok {
		t.Fatal("неоплаченный не-COD заказ не должен считаться новым")
	}
}

func TestClient_OrderDetails(t *testing.T) {
	srv, _ := newTestServer(t, func(string) string { return ordersPayload })
	c := newTestClient(srv)

	batch, err := c.OrderDetails(context.Background(), 3)
	if err != nil {
		t.Fatalf("OrderDetails: %v", err)
	}

	// 1003 не прошёл правило оплаты.
	if len(batch.OrderIDs) != 2 || batch.OrderIDs[0] != "1001" || batch.OrderIDs[1] != "1002" {
		t.Errorf("OrderIDs = %v", batch.OrderIDs)
	}
	// Skarpety исключены, имена файлов sku.pdf в нижнем регистре.
	if len(batch.Files) != 2 {
		t.Fatalf("Files = %v", batch.Files)
	}
	if batch.Files[0] != "abc123.pdf" || batch.Files[1] != "def456.pdf" {
		t.Errorf("Files = %v", batch.Files)
	}
	if batch.Quantities["abc123.pdf"] != 5 || batch.Quantities["def456.pdf"] != 2 {
		t.Errorf("Quantities = %v", batch.Quantities)
	}
}

func TestClient_UpdateStatus(t *testing.T) {
	srv, calls := newTestServer(t, func(string) string { return `{"status":"SUCCESS"}` })
	c := newTestClient(srv)

	if err := c.UpdateStatus(context.Background(), "1001"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	call := (*calls)[0]
	if call.Method != "setOrderStatus" {
		t.Errorf("method = %q", call.Method)
	}
	if call.Params["order_id"] != "1001" || call.Params["status_id"] != "330001" {
		t.Errorf("parameters = %v", call.Params)
	}
}

func TestClient_APIError(t *testing.T) {
	srv, _ := newTestServer(t, func(string) string {
		return `{"status":"ERROR","error_message":"Invalid token"}`
	})
	c := newTestClient(srv)

	if _, err := c.HasNewOrders(context.Background(), 3); err == nil {
		t.Error("статус ERROR должен давать ошибку")
	}
	if err := c.UpdateStatus(context.Background(), "1"); err == nil {
		t.Error("статус ERROR должен давать ошибку")
	}
	if err := c.Health(context.Background()); err == nil {
		t.Error("статус ERROR должен давать ошибку")
	}
}

func TestClient_Health(t *testing.T) {
	srv, calls := newTestServer(t, func(string) string { return `{"status":"SUCCESS"}` })
	c := newTestClient(srv)

	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	if (*calls)[0].Method != "getOrderStatusList" {
		t.Errorf("method = %q", (*calls)[0].Method)
	}
}
