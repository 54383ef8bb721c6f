package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/emi-calculator/pkg/id"
	"github.com/iwvelando/emi-calculator/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler() http.Handler {
	return NewHandler(zap.NewNop(), DefaultConfig(), "1.2.3")
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) emiResponse {
	t.Helper()
	var resp emiResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHandleEMIQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/emi?principal=1000000&rate=8.5&tenure=20", nil)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	resp := decodeResponse(t, rr)
	assert.InDelta(t, 8678, resp.EMI, 1)
	assert.Equal(t, resp.EMI*240, resp.TotalPayment)
	assert.Equal(t, "linear-proxy", resp.Method)
	assert.Equal(t, "EMI: ₹8,678, Total Payment: ₹20,82,776, Total Interest: ₹10,82,776", resp.Summary)
	assert.Len(t, resp.Chart, 2)
	assert.Empty(t, resp.Schedule)
	require.Len(t, resp.Yearly, 20)
	assert.Len(t, resp.Yearly[0].Months, 12)
	assert.InDelta(t, resp.EMI*12, resp.Yearly[0].TotalEMI, 1e-6)
	assert.True(t, id.Valid(resp.RequestID))
	assert.Equal(t, resp.RequestID, rr.Header().Get(RequestIDHeader))
	assert.NotEmpty(t, resp.Duration)
}

func TestHandleEMIViews(t *testing.T) {
	tests := []struct {
		view         string
		scheduleLen  int
		yearlyLen    int
		expectStatus int
	}{
		{"monthly", 120, 10, http.StatusOK},
		{"yearly", 0, 10, http.StatusOK},
		{"summary", 0, 0, http.StatusOK},
		{"weekly", 0, 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet,
				"/api/emi?principal=1200000&rate=0&tenure=10&view="+tt.view, nil)
			rr := httptest.NewRecorder()
			newTestHandler().ServeHTTP(rr, req)

			require.Equal(t, tt.expectStatus, rr.Code, rr.Body.String())
			if tt.expectStatus != http.StatusOK {
				return
			}
			resp := decodeResponse(t, rr)
			assert.Equal(t, 10000.0, resp.EMI)
			assert.Len(t, resp.Schedule, tt.scheduleLen)
			assert.Len(t, resp.Yearly, tt.yearlyLen)
		})
	}
}

func TestHandleEMIQueryEmptyFieldsAreZero(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/emi?principal=500000&rate=&tenure=", nil)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decodeResponse(t, rr)
	assert.Equal(t, 0.0, resp.EMI)
	assert.Empty(t, resp.Yearly)
	assert.NotEmpty(t, resp.Warnings)
}

func TestHandleEMIQueryInvalid(t *testing.T) {
	tests := map[string]string{
		"non-numeric principal": "/api/emi?principal=abc&rate=8&tenure=5",
		"negative rate":         "/api/emi?principal=1000&rate=-8&tenure=5",
		"fractional tenure":     "/api/emi?principal=1000&rate=8&tenure=2.5",
		"unknown method":        "/api/emi?principal=1000&rate=8&tenure=5&method=flat",
		"unknown currency":      "/api/emi?principal=1000&rate=8&tenure=5&currency=euro",
		"unknown format":        "/api/emi?principal=1000&rate=8&tenure=5&format=xml",
		"tenure past limit":     "/api/emi?principal=1000&rate=8&tenure=5000",
	}

	for name, target := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			rr := httptest.NewRecorder()
			newTestHandler().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleEMIPost(t *testing.T) {
	payload := map[string]interface{}{
		"principal":         1000000,
		"annualRatePercent": 8.5,
		"tenureYears":       20,
		"method":            "reducing-balance",
		"view":              "monthly",
		"currency":          "western",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/emi", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decodeResponse(t, rr)
	assert.Equal(t, "reducing-balance", resp.Method)
	require.Len(t, resp.Schedule, 240)
	assert.Equal(t, 0.0, resp.Schedule[239].Balance)
	assert.InDelta(t, 1000000, testutil.SumPrincipal(resp.Schedule), 0.01)
	assert.True(t, strings.HasPrefix(resp.Summary, "EMI: 8,678,"), resp.Summary)
}

func TestHandleEMIPostInvalid(t *testing.T) {
	tests := map[string]struct {
		body   string
		status int
	}{
		"malformed json":     {`{"principal":`, http.StatusBadRequest},
		"unknown field":      {`{"amount": 5}`, http.StatusBadRequest},
		"fractional tenure":  {`{"principal": 1000, "tenureYears": 1.5}`, http.StatusBadRequest},
		"negative principal": {`{"principal": -1000, "tenureYears": 5}`, http.StatusBadRequest},
		"oversized body":     {`{"method": "` + strings.Repeat("x", 32*1024) + `"}`, http.StatusRequestEntityTooLarge},
		"tenure past limit":  {`{"principal": 1000000, "annualRatePercent": 8.5, "tenureYears": 5000}`, http.StatusBadRequest},
		"tenure overflows months": {
			`{"principal": 1000000, "annualRatePercent": 8.5, "tenureYears": 1537228672809129301}`,
			http.StatusBadRequest,
		},
		"reducing tenure past limit": {
			`{"principal": 1000000, "tenureYears": 100000000, "method": "reducing-balance"}`,
			http.StatusBadRequest,
		},
		"unknown format": {`{"principal": 1000, "tenureYears": 1, "format": "xml"}`, http.StatusBadRequest},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/emi", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			newTestHandler().ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestHandleEMIBodyLimitOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetBodyBytes(64)
	handler := NewHandler(zap.NewNop(), cfg, "")

	small := `{"principal": 1000, "tenureYears": 1}`
	large := `{"principal": 1000, "tenureYears": 1, "method": "` + strings.Repeat("x", 64) + `"}`

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/emi", strings.NewReader(small)))
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/emi", strings.NewReader(large)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code, rr.Body.String())
}

func TestHandleEMIPostTenureAtLimit(t *testing.T) {
	body := `{"principal": 1000000, "annualRatePercent": 8.5, "tenureYears": 1000, "view": "summary"}`
	req := httptest.NewRequest(http.MethodPost, "/api/emi", strings.NewReader(body))
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decodeResponse(t, rr)
	assert.Equal(t, 1000, resp.Input.TenureYears)
	assert.Empty(t, resp.Schedule)
}

func TestHandleEMICSV(t *testing.T) {
	tests := map[string]*http.Request{
		"query": httptest.NewRequest(http.MethodGet, "/api/emi?principal=1200000&rate=0&tenure=10&format=csv", nil),
		"body": httptest.NewRequest(http.MethodPost, "/api/emi",
			strings.NewReader(`{"principal": 1200000, "tenureYears": 10, "format": "CSV"}`)),
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			newTestHandler().ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
			assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

			lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
			require.Len(t, lines, 121)
			assert.Equal(t, "year,month,emi,principal,interest,balance", lines[0])
			assert.Equal(t, "1,1,10000.00,10000.00,0.00,1190000.00", lines[1])
			assert.Equal(t, "10,120,10000.00,10000.00,0.00,0.00", lines[120])
		})
	}
}

func TestHandleEMIMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/emi", nil)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleEMIDefaultMethodFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = "reducing-balance"
	handler := NewHandler(zap.NewNop(), cfg, "")

	req := httptest.NewRequest(http.MethodGet, "/api/emi?principal=100000&rate=10&tenure=1&view=summary", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "reducing-balance", decodeResponse(t, rr).Method)
}

func TestRequestIDPropagation(t *testing.T) {
	existing := id.New()
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(RequestIDHeader, existing)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)
	assert.Equal(t, existing, rr.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(RequestIDHeader, "not a ulid")
	rr = httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)
	assert.True(t, id.Valid(rr.Header().Get(RequestIDHeader)))
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "1.2.3", body["version"])

	rr = httptest.NewRecorder()
	NewHandler(nil, nil, " ").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "dev", body["version"])

	rr = httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/version", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	cfg := DefaultConfig()
	cfg.Address = addr

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, zap.NewNop(), cfg, "test") }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/version")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
