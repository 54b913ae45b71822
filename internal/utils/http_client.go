package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithBaseURL("https://relay.example.com"))
//	resp, err := client.R().Post("/send")
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption configures the underlying resty client.
type HTTPClientOption func(c *resty.Client)

// WithBaseURL sets the URL every relative request path is resolved against.
func WithBaseURL(url string) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetBaseURL(url)
	}
}

// WithTimeout sets the overall request timeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		if timeout > 0 {
			c.SetTimeout(timeout)
		}
	}
}

// WithHeader sets a header sent with every request.
func WithHeader(name, value string) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetHeader(name, value)
	}
}

// NewHTTPClient creates and returns a new HTTPClient instance.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	c := resty.New()
	for _, opt := range opts {
		opt(c)
	}
	return &HTTPClient{Client: c}
}
