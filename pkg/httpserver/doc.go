// Package httpserver runs an http.Handler with sane timeouts and a graceful
// shutdown triggered by context cancellation, SIGINT or SIGTERM. It also
// provides liveness and readiness handlers.
package httpserver
