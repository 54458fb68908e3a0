package httpclient

import "context"

// Getter is the seam between the fetch facade and the wire; tests stub it.
type Getter interface {
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}
