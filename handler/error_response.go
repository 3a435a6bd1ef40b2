package handler

import "net/http"

type errorResponse struct {
	err error
}

// Render writes nothing and returns the wrapped error, so Wrap hands it to
// the configured ErrorHandler.
func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error defers rendering to the ErrorHandler configured on Wrap.
//
//	func (s *Service) submit(ctx handler.Context, req Request) handler.Response {
//		if err := s.do(ctx, req); err != nil {
//			return handler.Error(err)
//		}
//		return handler.Success("ok")
//	}
func Error(err error) Response {
	if err == nil {
		err = ErrNilResponse
	}
	return errorResponse{err: err}
}
