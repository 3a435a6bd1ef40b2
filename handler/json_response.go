package handler

import (
	"encoding/json"
	"net/http"
)

// Result is the envelope returned by the form endpoints.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status  int
	headers http.Header
	body    any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for k, vs := range j.headers {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets a custom HTTP status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONHeader adds a response header.
func WithJSONHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(http.Header)
		}
		r.headers.Add(key, value)
	}
}

// JSON encodes v as the response body with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Success renders {"success":true,"message":message} with status 200.
func Success(message string, opts ...JSONOption) Response {
	return JSON(Result{Success: true, Message: message}, opts...)
}

// Failure renders {"success":false,"message":message} with status.
func Failure(status int, message string, opts ...JSONOption) Response {
	return JSON(Result{Success: false, Message: message}, append([]JSONOption{WithJSONStatus(status)}, opts...)...)
}
