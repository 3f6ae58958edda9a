/*
Package tracing provides lightweight request tracing.

Every request gets a span. The trace ID comes from an incoming X-Trace-ID
header or is minted as a req_ prefixed ULID, and both the trace and span IDs
are echoed on the response. Finished spans are buffered (1000) and logged by
a collector goroutine, so a slow logger never blocks a request.

# Usage

	tracer := tracing.New("todolists", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	logger.Info("list created", tracing.Field(c.Request.Context()))
*/
package tracing
