package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"chat-relay-api/internal/services"
	"chat-relay-api/pkg/lambda"
)

const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token"
	corsAllowMethods = "OPTIONS,POST"
)

// fallbackErrorBody is used if an error body itself cannot be encoded
var fallbackErrorBody = []byte(`{"success": false, "error": "Internal server error"}`)

// SuccessResponse is the body returned when generation succeeded
type SuccessResponse struct {
	Success      bool            `json:"success"`
	Response     string          `json:"response"`
	ResponseTime json.RawMessage `json:"response_time"`
}

// ErrorResponse is the body returned for every failure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CORSHeaders returns a fresh copy of the full header set used on the
// success and generic error paths
func CORSHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  corsAllowOrigin,
		"Access-Control-Allow-Headers": corsAllowHeaders,
		"Access-Control-Allow-Methods": corsAllowMethods,
	}
}

func successResponse(text string, responseTime json.RawMessage) *lambda.Response {
	body, err := encodeJSON(SuccessResponse{
		Success:      true,
		Response:     text,
		ResponseTime: responseTime,
	})
	if err != nil {
		return genericErrorResponse(err)
	}

	return &lambda.Response{
		StatusCode: http.StatusOK,
		Headers:    CORSHeaders(),
		Body:       body,
	}
}

// upstreamErrorResponse mirrors the downstream status and carries no CORS headers
func upstreamErrorResponse(err *services.UpstreamHTTPError) *lambda.Response {
	body, encErr := encodeJSON(ErrorResponse{Success: false, Error: err.Error()})
	if encErr != nil {
		body = fallbackErrorBody
	}

	return &lambda.Response{
		StatusCode: err.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

func genericErrorResponse(err error) *lambda.Response {
	body, encErr := encodeJSON(ErrorResponse{Success: false, Error: err.Error()})
	if encErr != nil {
		body = fallbackErrorBody
	}

	return &lambda.Response{
		StatusCode: http.StatusInternalServerError,
		Headers:    CORSHeaders(),
		Body:       body,
	}
}

// encodeJSON marshals v without HTML escaping so generated text is forwarded as-is
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
