package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boubliclub/formrelay/handler"
	"github.com/boubliclub/formrelay/pkg/session"
)

// RouterOptions configures the middleware in front of the contact handler.
type RouterOptions struct {
	// Sessions issues the session the cooldown is keyed on. Optional.
	Sessions *session.Manager
}

// Router mounts svc behind the method gate and the session middleware.
// Rate limits, including the per-IP bucket, are guard checks so that the
// honeypot always answers first.
//
//	r := chi.NewRouter()
//	r.Mount("/contact", contact.Router(svc, contact.RouterOptions{Sessions: sessions}))
func Router(svc *Service, opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(handler.AllowMethods(svc.Message("method_not_allowed"), http.MethodPost))
	if opts.Sessions != nil {
		r.Use(opts.Sessions.EnsureSession)
	}

	r.HandleFunc("/", svc.HandlerFunc())
	return r
}
