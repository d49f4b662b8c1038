package baselinker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mkoval24/printflow/config"
	"github.com/mkoval24/printflow/internal/domain"
	"github.com/mkoval24/printflow/internal/ports"
)

// Client — платформа заказов Baselinker. API принимает form-POST с полями
// token/method/parameters, где parameters — JSON-строка; токен дублируется
// в заголовке X-BLToken.
type Client struct {
	httpc *http.Client
	log   ports.Logger
	cfg   config.Baselinker
}

var _ ports.OrderPlatform = (*Client)(nil)

func NewClient(cfg config.Baselinker, log ports.Logger) *Client {
	return &Client{
		httpc: &http.Client{Timeout: cfg.Timeout},
		log:   log,
		cfg:   cfg,
	}
}

type apiProduct struct {
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// flexScalar принимает число или строку: API отдаёт order_id числом,
// а payment_method_cod строкой "0"/"1".
type flexScalar string

func (f *flexScalar) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexScalar(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexScalar(n.String())
	return nil
}

type apiOrder struct {
	OrderID          flexScalar   `json:"order_id"`
	PaymentDone      float64      `json:"payment_done"`
	PaymentMethodCOD flexScalar   `json:"payment_method_cod"`
	Products         []apiProduct `json:"products"`
}

type ordersResponse struct {
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message"`
	Orders       []apiOrder `json:"orders"`
}

// paid — правило валидности оплаты: заказ либо оплачен, либо идёт
// наложенным платежом.
func (o apiOrder) paid() bool {
	return o.PaymentDone != 0 || o.PaymentMethodCOD == "1"
}

func (c *Client) HasNewOrders(ctx context.Context, lookbackDays int) (bool, error) {
	orders, err := c.fetchOrders(ctx, lookbackDays)
	if err != nil {
		return false, err
	}
	for _, o := range orders {
		if o.paid() {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) OrderDetails(ctx context.Context, lookbackDays int) (*domain.OrderBatch, error) {
	orders, err := c.fetchOrders(ctx, lookbackDays)
	if err != nil {
		return nil, err
	}

	batch := domain.NewOrderBatch()
	for _, o := range orders {
		if !o.paid() {
			continue
		}
		batch.AddOrder(string(o.OrderID))

		for _, p := range o.Products {
			if c.excluded(p.Name) {
				continue
			}
			batch.AddFile(p.SKU+".pdf", p.Quantity)
		}
	}

	c.log.Infof(ctx, "baselinker: %d orders in window, %d valid, %d files",
		len(orders), len(batch.OrderIDs), len(batch.Files))
	return batch, nil
}

func (c *Client) UpdateStatus(ctx context.Context, orderID string) error {
	params := map[string]any{
		"order_id":  orderID,
		"status_id": c.cfg.ProcessedStatusID,
	}
	var resp struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
	}
	if err := c.call(ctx, "setOrderStatus", params, &resp); err != nil {
		return err
	}
	if resp.Status != "SUCCESS" {
		return fmt.Errorf("setOrderStatus %s: %s", orderID, resp.ErrorMessage)
	}
	return nil
}

// Health дёргает лёгкий метод списка статусов: он не зависит от наличия
// заказов и проверяет и сеть, и токен.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
	}
	if err := c.call(ctx, "getOrderStatusList", map[string]any{}, &resp); err != nil {
		return err
	}
	if resp.Status != "SUCCESS" {
		return fmt.Errorf("getOrderStatusList: %s", resp.ErrorMessage)
	}
	return nil
}

func (c *Client) fetchOrders(ctx context.Context, lookbackDays int) ([]apiOrder, error) {
	params := map[string]any{
		"date_from":              midnightDaysAgo(lookbackDays).Unix(),
		"get_unconfirmed_orders": false,
		"status_id":              c.cfg.SourceStatusID,
	}
	var resp ordersResponse
	if err := c.call(ctx, "getOrders", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "SUCCESS" {
		return nil, fmt.Errorf("getOrders: %s", resp.ErrorMessage)
	}
	return resp.Orders, nil
}

func (c *Client) call(ctx context.Context, method string, params map[string]any, out any) error {
	rawParams, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal %s parameters: %w", method, err)
	}

	form := url.Values{}
	form.Set("token", c.cfg.Token)
	form.Set("method", method)
	form.Set("parameters", string(rawParams))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-BLToken", c.cfg.Token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("baselinker %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("baselinker %s: unexpected status %d", method, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

func (c *Client) excluded(productName string) bool {
	for _, bad := range c.cfg.ExcludeNames {
		if bad != "" && strings.Contains(productName, bad) {
			return true
		}
	}
	return false
}

// midnightDaysAgo — полночь локального дня N дней назад; от неё считается
// окно выборки заказов.
func midnightDaysAgo(days int) time.Time {
	t := time.Now().AddDate(0, 0, -days)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
