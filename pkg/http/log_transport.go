package http

import (
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type payloadContextKey struct{}

var redactedHeaders = map[string]struct{}{
	"Authorization": {},
	"X-Api-Key":     {},
}

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Any("headers", redact(req.Header)),
	}
	if payload, ok := ctx.Value(payloadContextKey{}).([]byte); ok && len(payload) > 0 {
		fields = append(fields, zap.Int("payload_bytes", len(payload)))
	}

	resp, err := t.transport.RoundTrip(req)
	fields = append(fields, zap.Duration("duration", time.Since(start)))
	if err != nil {
		ctxzap.Debug(ctx, "HTTP outbound request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	ctxzap.Debug(ctx, "HTTP outbound request", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}

func redact(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for key, values := range h {
		if _, ok := redactedHeaders[http.CanonicalHeaderKey(key)]; ok {
			out[key] = []string{"[redacted]"}
			continue
		}
		out[key] = values
	}
	return out
}

// WithRequestLogging logs method, URL, status and latency of every outbound call at debug level.
func WithRequestLogging() HttpOpts {
	return func(c *httpConfig) {
		c.logRequests = true
	}
}
