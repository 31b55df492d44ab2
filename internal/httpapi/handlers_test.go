package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vyaparhub/backend/internal/kv"
	"vyaparhub/backend/internal/ledger"
	"vyaparhub/backend/internal/service"
	"vyaparhub/backend/internal/tools"
)

// newTestAPI builds a full API with an in-memory store, real AuthManager and
// real Service so handler tests exercise the complete request path.
func newTestAPI(t *testing.T) *API {
	t.Helper()

	store, err := ledger.Open(context.Background(), kv.NewMemory())
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	svc := service.New(store, tools.NewWeatherService(0))
	auth := NewAuthManager("test-secret-key", time.Hour, "owner-pass")

	return New(svc, auth, "*")
}

func loginToken(t *testing.T, handler http.Handler) string {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{
		"username": "owner",
		"password": "owner-pass",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d (body: %s)", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	if body["access_token"] == "" {
		t.Fatal("expected access_token in login response")
	}
	return body["access_token"]
}

func authedRequest(t *testing.T, token, method, path string, payload any) *http.Request {
	t.Helper()

	var req *http.Request
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHandleHealth(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["ok"] != true {
		t.Fatalf("expected ok:true, got %v", body["ok"])
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	payload, _ := json.Marshal(map[string]string{
		"username": "owner",
		"password": "wrongpassword",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestHandleLogin_RateLimit(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	payload, _ := json.Marshal(map[string]string{
		"username": "owner",
		"password": "badpass",
	})

	var last int
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after repeated attempts, got %d", last)
	}
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/dashboard"},
		{http.MethodGet, "/api/v1/products"},
		{http.MethodPost, "/api/v1/invoices"},
		{http.MethodGet, "/api/v1/wallet"},
		{http.MethodGet, "/api/v1/weather?pincode=400001"},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestDashboardReflectsInvoices(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := loginToken(t, handler)

	invoiceReq := map[string]any{
		"customer_name":   "Asha",
		"customer_mobile": "9876543210",
		"items": []map[string]string{
			{"name": "Rice 1kg", "qty": "2", "price": "45", "gst": "5"},
		},
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPost, "/api/v1/invoices", invoiceReq))
	if rec.Code != http.StatusCreated {
		t.Fatalf("invoice: expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var invoiceBody struct {
		Invoice struct {
			GrandTotal float64 `json:"grand_total"`
		} `json:"invoice"`
		Notification string `json:"notification"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&invoiceBody); err != nil {
		t.Fatalf("decode invoice body: %v", err)
	}
	if invoiceBody.Invoice.GrandTotal != 94.5 {
		t.Fatalf("grand total = %v, want 94.5", invoiceBody.Invoice.GrandTotal)
	}
	if invoiceBody.Notification != "Invoice generated successfully!" {
		t.Fatalf("notification = %q", invoiceBody.Notification)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodGet, "/api/v1/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", rec.Code)
	}
	var dash struct {
		Metrics struct {
			TodaySales    float64 `json:"today_sales"`
			LowStockCount int     `json:"low_stock_count"`
			PendingBills  int     `json:"pending_bills"`
		} `json:"metrics"`
		RecentTransactions []json.RawMessage `json:"recent_transactions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.Metrics.TodaySales != 94.5 {
		t.Fatalf("today sales = %v, want 94.5", dash.Metrics.TodaySales)
	}
	if dash.Metrics.LowStockCount != 1 || dash.Metrics.PendingBills != 0 {
		t.Fatalf("unexpected metrics: %+v", dash.Metrics)
	}
	if len(dash.RecentTransactions) != 1 {
		t.Fatalf("recent transactions = %d, want 1", len(dash.RecentTransactions))
	}
}

func TestInvoiceWithNoValidLinesRejected(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := loginToken(t, handler)

	invoiceReq := map[string]any{
		"customer_name": "Asha",
		"items": []map[string]string{
			{"name": "", "qty": "2", "price": "45", "gst": "5"},
			{"name": "Rice 1kg", "qty": "junk", "price": "45", "gst": "5"},
		},
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPost, "/api/v1/invoices", invoiceReq))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestProductCreateAndList(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := loginToken(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Salt 1kg", "price": 20.0, "stock": 25, "minStock": 5,
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodGet, "/api/v1/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var body struct {
		Products []struct {
			Name string `json:"name"`
		} `json:"products"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(body.Products) != 4 {
		t.Fatalf("expected 4 products (3 seeded + 1 created), got %d", len(body.Products))
	}
}

func TestToolsEndpoints(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := loginToken(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPost, "/api/v1/tools/emi", map[string]any{
		"loan_amount": 100000.0, "interest_rate": 12.0, "tenure_months": 12.0,
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("emi: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPost, "/api/v1/tools/currency", map[string]any{
		"amount": 100.0, "from": "USD", "to": "INR",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("currency: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	var currency struct {
		Display string `json:"display"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&currency); err != nil {
		t.Fatalf("decode currency: %v", err)
	}
	if currency.Display != "100 USD = 8300.00 INR" {
		t.Fatalf("currency display = %q", currency.Display)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPost, "/api/v1/tools/qr", map[string]any{
		"text": "upi://pay?pa=shop@bank",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("qr: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodGet, "/api/v1/weather?pincode=400001", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("weather: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodGet, "/api/v1/weather?pincode=12", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("weather bad pin: expected 400, got %d", rec.Code)
	}
}

func TestChatEndpoints(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := loginToken(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPost, "/api/v1/chat/messages", map[string]string{
		"message": "hello",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("chat: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPost, "/api/v1/chat/commands", map[string]string{
		"message": "calculate emi",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("command: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	var command struct {
		Section string `json:"section"`
		Tool    string `json:"tool"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&command); err != nil {
		t.Fatalf("decode command: %v", err)
	}
	if command.Section != "tools" || command.Tool != "emi" {
		t.Fatalf("unexpected navigation: %+v", command)
	}
}

func TestThemePreferenceRoundTrip(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := loginToken(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPut, "/api/v1/preferences/theme", map[string]bool{
		"dark_mode": true,
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("put theme: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodGet, "/api/v1/preferences/theme", nil))
	var theme struct {
		DarkMode bool `json:"dark_mode"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&theme); err != nil {
		t.Fatalf("decode theme: %v", err)
	}
	if !theme.DarkMode {
		t.Fatal("dark mode should be on after PUT")
	}
}

func TestNotesExpensesTodosEndpoints(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := loginToken(t, handler)

	posts := []struct {
		path    string
		payload any
	}{
		{"/api/v1/notes", map[string]string{"text": "call supplier"}},
		{"/api/v1/expenses", map[string]any{"label": "rent", "amount": 8000.0}},
		{"/api/v1/todos", map[string]string{"text": "restock sugar"}},
	}
	for _, tc := range posts {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPost, tc.path, tc.payload))
		if rec.Code != http.StatusCreated {
			t.Fatalf("%s: expected 201, got %d (body: %s)", tc.path, rec.Code, rec.Body.String())
		}
	}

	for _, path := range []string{"/api/v1/notes", "/api/v1/expenses", "/api/v1/todos", "/api/v1/wallet", "/api/v1/transactions"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(t, token, http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token, http.MethodPost, "/api/v1/expenses", map[string]any{
		"label": "", "amount": 10.0,
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank expense label: expected 400, got %d", rec.Code)
	}
}

func TestUnknownJSONFieldsRejected(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := loginToken(t, handler)

	raw := []byte(`{"text":"note","bogus":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}
