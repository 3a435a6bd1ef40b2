package binder

import (
	"mime"
	"net/http"
	"strings"
)

const (
	mediaTypeForm      = "application/x-www-form-urlencoded"
	mediaTypeMultipart = "multipart/form-data"
	mediaTypeJSON      = "application/json"
)

// mediaType returns the lowercased media type of the request without
// parameters, or an empty string when the header is missing.
func mediaType(r *http.Request) (string, map[string]string) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", nil
	}
	mt, params, err := mime.ParseMediaType(ct)
	if err != nil {
		if idx := strings.Index(ct, ";"); idx != -1 {
			ct = ct[:idx]
		}
		return strings.ToLower(strings.TrimSpace(ct)), nil
	}
	return mt, params
}
