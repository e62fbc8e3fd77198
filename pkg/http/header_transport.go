package http

import "net/http"

// headerTransport fills in headers the caller did not set explicitly
type headerTransport struct {
	headers   http.Header
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	for key, values := range t.headers {
		if reqCopy.Header.Get(key) != "" {
			continue
		}
		for _, v := range values {
			reqCopy.Header.Add(key, v)
		}
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithDefaultHeader adds a header to every request unless the request already carries it.
func WithDefaultHeader(key, value string) HttpOpts {
	return func(c *httpConfig) {
		if c.headers == nil {
			c.headers = make(http.Header)
		}
		c.headers.Set(key, value)
	}
}

// WithAuthToken sends a bearer token. An empty token is a no-op.
func WithAuthToken(token string) HttpOpts {
	return func(c *httpConfig) {
		if token == "" {
			return
		}
		WithDefaultHeader("Authorization", "Bearer "+token)(c)
	}
}
