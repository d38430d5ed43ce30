/*
Package tracing provides request correlation for the HTTP surface.

Each inbound request gets an X-Request-ID (reused if the client sent a valid
UUID), stored in the request context and echoed back. The agent client copies
it onto outbound model calls so a chat turn can be followed through the logs.

	router.Use(tracing.Middleware(logger))

	log := tracing.Logger(ctx, logger)
	log.Info("executing tool", zap.String("tool", name))
*/
package tracing
