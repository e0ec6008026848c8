package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/polyroots/internal/errors"
	"github.com/agbru/polyroots/internal/input"
	"github.com/agbru/polyroots/internal/numeral"
	"github.com/agbru/polyroots/internal/polynomial"
	"github.com/agbru/polyroots/internal/service"
	"github.com/agbru/polyroots/pkg/models"
)

// RequestError is a request validation failure with its HTTP status.
type RequestError struct {
	Message    string
	StatusCode int
}

func (e RequestError) Error() string {
	return e.Message
}

func badRequest(format string, args ...any) RequestError {
	return RequestError{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusBadRequest}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, models.AlgorithmsResponse{
		Algorithms: s.factory.List(),
		Default:    polynomial.DefaultAlgorithm,
	})
}

// handleSolve reconstructs the polynomial of the posted root document.
// The body is JSON (or JSONC) by default and YAML when the content type
// says so. Query parameters: k (selection count) and algo (strategy).
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	k, algo, err := s.parseSolveParams(r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	doc, err := input.Parse(body, requestFormat(r))
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	key := solveKey(doc, algo, k)
	if report, ok := s.cache.get(key); ok {
		s.metrics.CacheLookup(true)
		w.Header().Set("X-Cache", "HIT")
		s.writeJSONResponse(w, http.StatusOK, report)
		return
	}
	s.metrics.CacheLookup(false)

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	sol, err := s.service.Solve(ctx, doc, algo, k)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	report := service.BuildReport(sol)
	s.cache.add(key, report)
	w.Header().Set("X-Cache", "MISS")
	s.writeJSONResponse(w, http.StatusOK, report)
}

// parseSolveParams reads k (default -1, meaning the document decides) and
// algo (default strategy when empty).
func (s *Server) parseSolveParams(r *http.Request) (int, string, error) {
	q := r.URL.Query()
	k := -1
	if raw := q.Get("k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, "", badRequest("Invalid 'k' parameter: must be a non-negative integer")
		}
		k = v
	}
	algo := strings.ToLower(strings.TrimSpace(q.Get("algo")))
	if algo == "" {
		algo = polynomial.DefaultAlgorithm
	}
	if !slices.Contains(s.factory.List(), algo) {
		return 0, "", badRequest("Unknown algorithm %q (available: %s)", algo, strings.Join(s.factory.List(), ", "))
	}
	return k, algo, nil
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	q := r.URL.Query()
	digits, rawBase := q.Get("numeral"), q.Get("base")
	if rawBase == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "Missing 'base' parameter")
		return
	}
	base, err := numeral.ParseBase(rawBase)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	value, err := numeral.Decode(digits, base)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSONResponse(w, http.StatusOK, models.DecodeResponse{
		Numeral: digits,
		Base:    base,
		Value:   value.String(),
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	var req models.EvaluateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	value, err := s.service.Evaluate(req.Coefficients, req.X)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, models.EvaluateResponse{
		X:      strings.TrimSpace(req.X),
		Value:  value.String(),
		IsRoot: value.Sign() == 0,
	})
}

// readBody reads the request body up to the configured limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.securityConfig.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, RequestError{
				Message:    fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit),
				StatusCode: http.StatusRequestEntityTooLarge,
			}
		}
		return nil, badRequest("Failed to read request body: %v", err)
	}
	if len(body) == 0 {
		return nil, badRequest("Empty request body")
	}
	return body, nil
}

func requestFormat(r *http.Request) input.Format {
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		return input.FormatYAML
	}
	return input.FormatAuto
}

func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	var reqErr RequestError
	if errors.As(err, &reqErr) {
		s.writeErrorResponse(w, reqErr.StatusCode, reqErr.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

// writeServiceError maps service failures to HTTP statuses: input errors
// are the client's, timeouts are 504 and everything else is a 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var inputErr apperrors.InputError
	var unknown *polynomial.UnknownAssemblerError
	switch {
	case errors.As(err, &inputErr), errors.As(err, &unknown):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusGatewayTimeout, "Reconstruction exceeded the request timeout")
	default:
		s.logger.Error("solve failed", err)
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
