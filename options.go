package paperwave

import "time"

type clientOptions struct {
	timeout   time.Duration
	authToken string
	userAgent string
	encoder   Encoder
}

func defaultClientOptions() *clientOptions {
	return &clientOptions{
		timeout:   15 * time.Second,
		userAgent: "paperwave-go",
		encoder:   &JSONEncoder{},
	}
}

// ClientOption is a function that configures the API client during NewClient.
type ClientOption func(*clientOptions)

// ClientTimeout sets the per-request timeout. Non-positive values are ignored
// and the 15s default kept.
func ClientTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// ClientAuthToken sends the given bearer token with every request.
func ClientAuthToken(token string) ClientOption {
	return func(o *clientOptions) {
		o.authToken = token
	}
}

// ClientUserAgent overrides the User-Agent header sent with every request.
func ClientUserAgent(ua string) ClientOption {
	return func(o *clientOptions) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// ClientEncoder replaces the default JSON encoder used to decode responses.
func ClientEncoder(e Encoder) ClientOption {
	return func(o *clientOptions) {
		if e != nil {
			o.encoder = e
		}
	}
}
