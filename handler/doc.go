// Package handler provides type-safe HTTP request handling.
//
// Handlers are generic functions that receive a bound request value and
// return a Response:
//
//	type Submission struct {
//		Name  string `form:"name" json:"name"`
//		Email string `form:"email" json:"email"`
//	}
//
//	func submit(ctx handler.Context, req Submission) handler.Response {
//		if err := service.Submit(ctx, req); err != nil {
//			return handler.Failure(http.StatusUnprocessableEntity, "...")
//		}
//		return handler.Success("Merci !")
//	}
//
//	r.Post("/contact", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, Submission](binder.Form(), binder.JSON()),
//		handler.WithErrorHandler[handler.Context, Submission](errHandler),
//	))
//
// # Responses
//
// JSON writes any value; Success and Failure write the {success, message}
// envelope the site's forms expect.
//
// # Errors
//
// Binding and rendering errors go to the ErrorHandler. NewErrorHandler
// maps HTTPError to its status, binder errors to 400, validator errors to
// 422 and everything else to 500, renders them with Failure and logs them
// with the request id.
//
// # Decorators
//
// Decorators wrap a HandlerFunc with cross-cutting logic. The first
// decorator passed to WithDecorators is the outermost. A decorator may
// return a Response without calling next, which is how request guards
// short-circuit.
package handler
