// Package session issues anonymous, stateless sessions.
//
// A session is an id plus its creation and expiry times, sealed into an
// opaque token with cookie.Manager. Nothing is stored server side: any
// state keyed by the session id (such as the contact form cooldown) lives
// in its own store with a TTL equal to the session lifetime.
//
// Tokens travel through a Transport. CookieTransport uses an HTTP cookie,
// HeaderTransport a request/response header for non-browser clients, and
// CompositeTransport reads from the first one that carries a token and
// writes to all of them.
//
//	m := session.New(codec,
//		session.WithTransport(session.NewCompositeTransport(
//			session.NewCookieTransport(codec, "sid"),
//			session.NewHeaderTransport("X-Session-Token"),
//		)),
//	)
//	r.Use(m.EnsureSession)
//
// Handlers read the session with FromContext and log it through
// LoggerExtractor.
package session
