// Package dispatcher drives a form submission from the client side.
//
// A Form is an idle/submitting state machine. Submit runs the precheck,
// marks the form busy through the Presenter, hands the payload to a
// Transport and, once the call settles, restores the control, shows the
// outcome overlay and resets the fields on success. While a submission is
// in flight further Submit calls fail with ErrBusy and never reach the
// transport.
//
//	form := dispatcher.NewForm("contact",
//		dispatcher.NewRelayTransport(http.DefaultClient, "https://example.com/contact"),
//		dispatcher.NewTerminalPresenter(os.Stdout),
//	)
//	outcome, err := form.Submit(ctx, dispatcher.Payload{"name": "Jane"})
package dispatcher
