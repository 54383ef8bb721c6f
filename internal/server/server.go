// Package server exposes the amortization engine over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/emi-calculator/pkg/amortization"
	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/format"
	"github.com/iwvelando/emi-calculator/pkg/id"
	"github.com/iwvelando/emi-calculator/pkg/loaninput"
	"github.com/iwvelando/emi-calculator/pkg/output"
	"github.com/iwvelando/emi-calculator/pkg/validation"
	"go.uber.org/zap"
)

// RequestIDHeader carries the identifier assigned to each request.
const RequestIDHeader = "X-Request-Id"

type handler struct {
	logger       *zap.Logger
	maxBodyBytes int64
	method       amortization.InterestMethod
	version      string
}

// NewHandler constructs the HTTP handler that serves the EMI API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	maxBodyBytes := cfg.BodyBytes()
	if maxBodyBytes <= 0 {
		maxBodyBytes = constants.DefaultMaxBodyBytes
	}

	method, err := cfg.InterestMethod()
	if err != nil {
		method = amortization.LinearProxy
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodyBytes: maxBodyBytes, method: method, version: trimmedVersion}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/emi", h.handleEMI)
	mux.HandleFunc("/api/version", h.handleVersion)

	return withRequestID(mux)
}

type requestIDKey struct{}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !id.Valid(requestID) {
			requestID = id.New()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}

type emiRequest struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TenureYears       int     `json:"tenureYears"`
	Method            string  `json:"method"`
	View              string  `json:"view"`
	Currency          string  `json:"currency"`
	Format            string  `json:"format"`
}

type emiResponse struct {
	RequestID     string                    `json:"requestId"`
	Input         amortization.LoanInput    `json:"input"`
	Method        string                    `json:"method"`
	EMI           float64                   `json:"emi"`
	TotalPayment  float64                   `json:"totalPayment"`
	TotalInterest float64                   `json:"totalInterest"`
	Summary       string                    `json:"summary"`
	Chart         []output.ChartSlice       `json:"chart"`
	Schedule      []amortization.MonthEntry `json:"schedule,omitempty"`
	Yearly        []yearRow                 `json:"yearly,omitempty"`
	Warnings      []string                  `json:"warnings,omitempty"`
	Duration      string                    `json:"duration"`
}

type yearRow struct {
	Year           int                       `json:"year"`
	TotalEMI       float64                   `json:"totalEmi"`
	TotalPrincipal float64                   `json:"totalPrincipal"`
	TotalInterest  float64                   `json:"totalInterest"`
	ClosingBalance float64                   `json:"closingBalance"`
	Months         []amortization.MonthEntry `json:"months"`
}

func (h *handler) handleEMI(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEMI"
	start := time.Now()

	var req emiRequest
	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		input, err := loaninput.Parse(query.Get("principal"), query.Get("rate"), query.Get("tenure"))
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
		req = emiRequest{
			Principal:         input.Principal,
			AnnualRatePercent: input.AnnualRatePercent,
			TenureYears:       input.TenureYears,
			Method:            query.Get("method"),
			View:              query.Get("view"),
			Currency:          query.Get("currency"),
			Format:            query.Get("format"),
		}
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.respondError(w, r, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodyBytes), op)
				return
			}
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
			return
		}
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.calculate(w, r, req, start, op)
}

func (h *handler) calculate(w http.ResponseWriter, r *http.Request, req emiRequest, start time.Time, op string) {
	method := h.method
	if strings.TrimSpace(req.Method) != "" {
		parsed, err := amortization.ParseInterestMethod(req.Method)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
		method = parsed
	}

	view := req.View
	if view == "" {
		view = constants.ViewYearly
	}
	if err := validation.ValidateView(view); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	style, ok := format.ParseStyle(req.Currency)
	if !ok {
		h.respondError(w, r, http.StatusBadRequest,
			fmt.Sprintf("expected currency of %s or %s, got %s",
				constants.CurrencyIndian, constants.CurrencyWestern, req.Currency), op)
		return
	}

	responseFormat := strings.ToLower(strings.TrimSpace(req.Format))
	if responseFormat == "" {
		responseFormat = constants.OutputFormatJSON
	}
	if err := validation.ValidateResponseFormat(responseFormat); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	if err := loaninput.CheckTenure(req.TenureYears); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	input := amortization.LoanInput{
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TenureYears:       req.TenureYears,
	}

	calc := amortization.NewCalculator(h.logger, amortization.WithMethod(method))
	result, err := calc.Calculate(input)
	if err != nil {
		status := http.StatusInternalServerError
		var invalid *amortization.InvalidInputError
		if errors.As(err, &invalid) {
			status = http.StatusBadRequest
		}
		h.respondError(w, r, status, err.Error(), op)
		return
	}

	if responseFormat == constants.OutputFormatCSV {
		h.logger.Info("emi computed",
			zap.String("op", op),
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("method", result.Method.String()),
			zap.String("format", responseFormat),
			zap.Int("months", len(result.Schedule)),
			zap.Duration("duration", time.Since(start)),
		)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, output.CsvString(result)); err != nil {
			h.logger.Error("failed to write CSV response", zap.String("op", op), zap.Error(err))
		}
		return
	}

	response := emiResponse{
		RequestID:     requestIDFrom(r.Context()),
		Input:         result.Input,
		Method:        result.Method.String(),
		EMI:           result.EMI,
		TotalPayment:  result.TotalPayment,
		TotalInterest: result.TotalInterest,
		Summary:       output.Summary(result, style),
		Chart:         output.Chart(result),
		Warnings:      validation.LoanWarnings(input),
	}

	switch view {
	case constants.ViewMonthly:
		response.Schedule = result.Schedule
		response.Yearly = buildYearRows(result.Yearly)
	case constants.ViewYearly:
		response.Yearly = buildYearRows(result.Yearly)
	}

	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.logger.Info("emi computed",
		zap.String("op", op),
		zap.String("request_id", response.RequestID),
		zap.String("method", response.Method),
		zap.Int("months", len(result.Schedule)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func buildYearRows(yearly []amortization.YearEntry) []yearRow {
	rows := make([]yearRow, 0, len(yearly))
	for _, year := range yearly {
		rows = append(rows, yearRow{
			Year:           year.Year,
			TotalEMI:       year.TotalEMI(),
			TotalPrincipal: year.TotalPrincipal(),
			TotalInterest:  year.TotalInterest(),
			ClosingBalance: year.ClosingBalance(),
			Months:         year.Months,
		})
	}
	return rows
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("emi request failed",
		zap.String("op", op),
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func Serve(ctx context.Context, logger *zap.Logger, cfg *Config, version string) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           NewHandler(logger, cfg, version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server",
			zap.String("op", "server.Serve"),
			zap.String("address", cfg.Address),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down http server", zap.String("op", "server.Serve"))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
