package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

// toAPIError maps an internal error to a stable code and a user-safe message.
// Raw error text is never returned for 5xx responses.
func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "MM-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status == http.StatusBadGateway:
		return apiError{
			Code:    "MM-GEN-5020",
			Message: "Content generation failed. The language model provider did not return usable content; retry shortly.",
		}
	case status == http.StatusGatewayTimeout:
		return apiError{
			Code:    "MM-GEN-5040",
			Message: "Content generation timed out. Retry with a shorter request.",
		}
	case status >= 500:
		switch {
		case strings.Contains(raw, "compose worksheet"), strings.Contains(raw, "render pdf"):
			return apiError{Code: "MM-PDF-5001", Message: "The worksheet could not be rendered. Please retry."}
		case strings.Contains(raw, "load curriculum"):
			return apiError{Code: "MM-CUR-5001", Message: "Curriculum data could not be loaded. Check the curriculum directory."}
		case strings.Contains(raw, "save artifact"), strings.Contains(raw, "artifact dir"):
			return apiError{Code: "MM-STO-5001", Message: "The PDF could not be stored. Check the storage directory."}
		default:
			return apiError{Code: "MM-API-5000", Message: "Internal server error. Please retry or check service logs."}
		}
	case status == http.StatusBadRequest:
		code = "MM-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "MM-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusMethodNotAllowed:
		code = "MM-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	if status >= 400 && status < 500 && err != nil {
		switch {
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		case strings.Contains(raw, "subject:"):
			msg = "Subject must be 'math' or 'science'."
		case strings.Contains(raw, "prompt:"):
			msg = "A prompt is required."
		case strings.Contains(raw, "grade:"):
			msg = "A grade is required."
		case strings.Contains(raw, "pdf not found"):
			msg = "PDF not found."
		case strings.Contains(raw, "curriculum not found"):
			msg = err.Error()
		}
	}
	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
