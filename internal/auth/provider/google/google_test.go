package google

import (
	"errors"
	"net/http"
	"testing"

	"golang.org/x/oauth2"

	"classroom-auth/internal/auth/provider"
)

func TestClassifyExchangeError(t *testing.T) {
	badGrant := &oauth2.RetrieveError{
		Response: &http.Response{StatusCode: http.StatusBadRequest},
		Body:     []byte(`{"error":"invalid_grant"}`),
	}
	if !errors.Is(classifyExchangeError(badGrant), provider.ErrInvalidGrant) {
		t.Fatal("provider 4xx must classify as invalid grant")
	}

	upstream := &oauth2.RetrieveError{
		Response: &http.Response{StatusCode: http.StatusBadGateway},
	}
	if errors.Is(classifyExchangeError(upstream), provider.ErrInvalidGrant) {
		t.Fatal("provider 5xx must not classify as invalid grant")
	}

	network := errors.New("dial tcp: connection refused")
	if errors.Is(classifyExchangeError(network), provider.ErrInvalidGrant) {
		t.Fatal("network failure must not classify as invalid grant")
	}
}
