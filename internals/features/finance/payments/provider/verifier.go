package provider

import (
	"context"
	"net/http"
	"time"
)

// VerifyResult carries the provider's answer for a transaction reference.
// Confirmed is the only field the settlement pipeline branches on; everything
// else is recorded into payment metadata as-is.
type VerifyResult struct {
	Confirmed   bool
	Reference   string
	AmountMinor int64
	Currency    string
	Raw         map[string]any
}

// Verifier confirms a charge with its payment provider. Implementations fail
// closed: any transport error, non-2xx response, or unexpected payload shape
// yields Confirmed=false.
type Verifier interface {
	Name() string
	Verify(ctx context.Context, reference string) (VerifyResult, error)
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}
