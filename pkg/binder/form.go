package binder

import (
	"fmt"
	"net/http"
)

// DefaultMaxMemory bounds the in-memory part of multipart parsing.
const DefaultMaxMemory = 1 << 20 // 1 MB

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies. Supported field kinds are string, []string, bool and integers.
//
//	type Submission struct {
//		Name      string   `form:"name"`
//		Interests []string `form:"interests"` // also matches "interests[]"
//		Internal  string   `form:"-"`
//	}
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mt, params := mediaType(r)

		switch mt {
		case mediaTypeForm:
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindValues(v, "form", r.PostForm, ErrInvalidForm)

		case mediaTypeMultipart:
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values := map[string][]string{}
			if r.MultipartForm != nil {
				values = r.MultipartForm.Value
			}
			return bindValues(v, "form", values, ErrInvalidForm)

		default:
			return ErrBinderNotApplicable
		}
	}
}
