package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for nil config, got %v", err)
	}
	if err := ValidateConfig(&Config{}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for missing secret, got %v", err)
	}
	if err := ValidateConfig(&Config{SecretKey: "sk_test_123"}); err != nil {
		t.Fatalf("validate config failed: %v", err)
	}
	if err := ValidateConfig(&Config{SecretKey: "sk_test_123", APIBaseURL: "::bad::"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for bad base url, got %v", err)
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	var gotForm map[string][]string
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form failed: %v", err)
		}
		gotForm = r.PostForm
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "cs_test_abc",
			"url":    "https://checkout.stripe.com/pay/cs_test_abc",
			"status": "open",
		})
	}))
	defer server.Close()

	cfg := &Config{SecretKey: "sk_test_123", APIBaseURL: server.URL}
	result, err := CreateCheckoutSession(context.Background(), cfg, CreateInput{
		OrderNo:  "WH20260101ABC",
		Currency: "USD",
		Items: []LineItem{
			{Name: "Diver 300", UnitAmountMinor: 12900, Quantity: 2},
			{Name: "Field Watch", Variant: "40mm", UnitAmountMinor: 5500, Quantity: 1},
		},
		CustomerEmail: "buyer@example.com",
		SuccessURL:    "https://shop.example/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     "https://shop.example/cart",
	})
	if err != nil {
		t.Fatalf("create checkout session failed: %v", err)
	}
	if result.SessionID != "cs_test_abc" || result.URL == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if gotAuth != "Bearer sk_test_123" {
		t.Fatalf("unexpected authorization header: %s", gotAuth)
	}
	if got := gotForm["line_items[0][price_data][unit_amount]"]; len(got) != 1 || got[0] != "12900" {
		t.Fatalf("unexpected first unit amount: %v", got)
	}
	if got := gotForm["line_items[1][price_data][product_data][name]"]; len(got) != 1 || got[0] != "Field Watch (40mm)" {
		t.Fatalf("expected variant folded into name, got %v", got)
	}
	if got := gotForm["customer_email"]; len(got) != 1 || got[0] != "buyer@example.com" {
		t.Fatalf("unexpected customer email: %v", got)
	}
	if got := gotForm["payment_method_types[]"]; len(got) != 1 || got[0] != "card" {
		t.Fatalf("expected default payment method card, got %v", got)
	}
}

func TestCreateCheckoutSessionInputValidation(t *testing.T) {
	cfg := &Config{SecretKey: "sk_test_123"}
	base := CreateInput{
		OrderNo:    "WH1",
		Currency:   "USD",
		Items:      []LineItem{{Name: "Watch", UnitAmountMinor: 100, Quantity: 1}},
		SuccessURL: "https://shop.example/success",
		CancelURL:  "https://shop.example/cart",
	}

	missingOrder := base
	missingOrder.OrderNo = ""
	if _, err := CreateCheckoutSession(context.Background(), cfg, missingOrder); !errors.Is(err, ErrInputInvalid) {
		t.Fatalf("expected ErrInputInvalid for missing order no, got %v", err)
	}
	noItems := base
	noItems.Items = nil
	if _, err := CreateCheckoutSession(context.Background(), cfg, noItems); !errors.Is(err, ErrInputInvalid) {
		t.Fatalf("expected ErrInputInvalid for empty items, got %v", err)
	}
	zeroAmount := base
	zeroAmount.Items = []LineItem{{Name: "Watch", UnitAmountMinor: 0, Quantity: 1}}
	if _, err := CreateCheckoutSession(context.Background(), cfg, zeroAmount); !errors.Is(err, ErrInputInvalid) {
		t.Fatalf("expected ErrInputInvalid for zero amount, got %v", err)
	}
}

func TestQueryCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/cs_test_abc" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":             "cs_test_abc",
			"payment_status": "paid",
			"status":         "complete",
			"amount_total":   31300,
			"currency":       "usd",
			"customer_details": map[string]interface{}{
				"email": "buyer@example.com",
			},
		})
	}))
	defer server.Close()

	cfg := &Config{SecretKey: "sk_test_123", APIBaseURL: server.URL}
	result, err := QueryCheckoutSession(context.Background(), cfg, "cs_test_abc")
	if err != nil {
		t.Fatalf("query checkout session failed: %v", err)
	}
	if result.PaymentStatus != "paid" || result.SessionStatus != "complete" {
		t.Fatalf("unexpected status pair: %+v", result)
	}
	if result.AmountTotalMinor != 31300 {
		t.Fatalf("unexpected amount: %d", result.AmountTotalMinor)
	}
	if result.Currency != "USD" {
		t.Fatalf("unexpected currency: %s", result.Currency)
	}
	if result.CustomerEmail != "buyer@example.com" {
		t.Fatalf("unexpected customer email: %s", result.CustomerEmail)
	}
}

func TestQueryCheckoutSessionErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"No such checkout session"}}`))
	}))
	defer server.Close()

	cfg := &Config{SecretKey: "sk_test_123", APIBaseURL: server.URL}
	if _, err := QueryCheckoutSession(context.Background(), cfg, "cs_missing"); !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}
