// Package logger builds *slog.Logger instances from functional options and
// decorates their handler so request-scoped values (request id, session id,
// environment) are pulled from context.Context on every record.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "formrelay"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "mail delivered", logger.Component("contact"))
package logger
