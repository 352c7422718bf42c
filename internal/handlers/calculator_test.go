package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"dentalbooks/internal/services/expense"
	"dentalbooks/internal/services/income"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculatorApp() *fiber.App {
	h := NewCalculatorHandler(income.NewService(nil, nil, nil, nil), expense.NewService(nil, nil))
	app := fiber.New()
	app.Post("/calculate", h.Calculate)
	app.Post("/classify", h.Classify)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func amount(t *testing.T, data map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	s, ok := data[key].(string)
	require.True(t, ok, "%s missing from %v", key, data)
	return decimal.RequireFromString(s)
}

func TestCalculatorHandler_Calculate(t *testing.T) {
	app := newCalculatorApp()

	status, body := post(t, app, "/calculate", `{
		"form": {"method": "NET", "super_holding": "WITH", "commission_split_percent": "40", "gst_on_commission_percent": "10"},
		"entry": {"gross_patient_fee": "1200"}
	}`)
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.True(t, decimal.RequireFromString("471.43").Equal(amount(t, data, "total_payment_to_dentist")))
}

func TestCalculatorHandler_CalculateRejects(t *testing.T) {
	app := newCalculatorApp()

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "missing gross fee",
			body:  `{"form": {"method": "NET", "super_holding": "WITH", "commission_split_percent": "40", "gst_on_commission_percent": "10"}, "entry": {}}`,
			field: "gross_patient_fee",
		},
		{
			name:  "unknown method",
			body:  `{"form": {"method": "FLAT"}, "entry": {"gross_patient_fee": "100"}}`,
			field: "method",
		},
		{
			name:  "net form missing split",
			body:  `{"form": {"method": "NET", "super_holding": "WITH", "gst_on_commission_percent": "10"}, "entry": {"gross_patient_fee": "100"}}`,
			field: "commission_split_percent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, app, "/calculate", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)

			fields, ok := body["fields"].(map[string]interface{})
			require.True(t, ok)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestCalculatorHandler_Classify(t *testing.T) {
	app := newCalculatorApp()

	status, body := post(t, app, "/classify", `{
		"amount": "110", "gst_applicable": true, "gst_percentage": "10", "gst_type": "INCLUSIVE", "business_use_percent": "50"
	}`)
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "INCLUSIVE", data["treatment"])
	assert.True(t, decimal.NewFromInt(50).Equal(amount(t, data, "net_amount")))
	assert.True(t, decimal.NewFromInt(5).Equal(amount(t, data, "gst_amount")))
	assert.True(t, decimal.NewFromInt(55).Equal(amount(t, data, "total_amount")))
}

func TestCalculatorHandler_ClassifyRejectsBadBody(t *testing.T) {
	app := newCalculatorApp()

	status, body := post(t, app, "/classify", `{"gst_applicable": false}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["fields"], "amount")
}
