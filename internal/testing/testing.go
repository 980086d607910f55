// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
)

// RoutedRoundTripper dispatches by request URL, letting a single test
// double stand in for a gateway that hits several distinct endpoints
// (search, then a follow-up track fetch, then an album fetch). A route can
// be requested any number of times; each request gets a fresh copy of its
// body.
type RoutedRoundTripper struct {
	Routes map[string]*http.Response
	Err    map[string]error
}

func NewRoutedRoundTripper() *RoutedRoundTripper {
	return &RoutedRoundTripper{
		Routes: make(map[string]*http.Response),
		Err:    make(map[string]error),
	}
}

func (m *RoutedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	u := req.URL.String()
	if err, ok := m.Err[u]; ok {
		return nil, err
	}
	if resp, ok := m.Routes[u]; ok {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))
		out := *resp
		out.Body = io.NopCloser(bytes.NewReader(body))
		return &out, nil
	}
	return nil, errors.New("no route registered for " + u)
}

// JSONResponse builds an *http.Response carrying body as its JSON payload.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
