package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON body into req and validates its tags.
// On error the response has already been written and the handler should return.
//
//	var req QuoteRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Price quote"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(LogMsgRequestDecoded, "action", actionName)

	return validateOrRespond(r, w, req, ErrMsgInvalidRequestSummary)
}

// ValidateQuery validates a query struct the handler filled from the URL.
func ValidateQuery(r *http.Request, w http.ResponseWriter, q any) error {
	return validateOrRespond(r, w, q, ErrMsgInvalidQuery)
}

func validateOrRespond(r *http.Request, w http.ResponseWriter, v any, summary string) error {
	if err := GetValidator().ValidateStruct(v); err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgValidationFailed, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  summary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// GetPathParam returns a chi URL parameter, writing a 400 when it is empty.
func GetPathParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	value := chi.URLParam(r, name)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, name))
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam returns the query value or defaultValue when absent.
func GetOptionalQueryParam(r *http.Request, paramName, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetIntQueryParam parses an optional integer parameter. A malformed value
// yields -1 so the struct validator rejects it with a field message.
func GetIntQueryParam(r *http.Request, paramName string, defaultValue int) int {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return v
}
