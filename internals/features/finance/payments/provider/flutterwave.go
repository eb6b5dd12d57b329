package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const flutterwaveBaseURL = "https://api.flutterwave.com/v3"

// Flutterwave verifies charges via GET /transactions/verify_by_reference.
// Success means top-level status == "success" AND data.status == "successful".
type Flutterwave struct {
	SecretKey string
	BaseURL   string
	HTTP      *http.Client
}

func NewFlutterwave(secretKey string) *Flutterwave {
	return &Flutterwave{
		SecretKey: secretKey,
		BaseURL:   flutterwaveBaseURL,
		HTTP:      defaultHTTPClient(),
	}
}

func (f *Flutterwave) Name() string { return "flutterwave" }

type flutterwaveVerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string  `json:"status"`
		TxRef    string  `json:"tx_ref"`
		FlwRef   string  `json:"flw_ref"`
		Amount   float64 `json:"amount"` // naira, not kobo
		Currency string  `json:"currency"`
	} `json:"data"`
}

func (f *Flutterwave) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	if strings.TrimSpace(f.SecretKey) == "" {
		return VerifyResult{}, fmt.Errorf("flutterwave: secret key not configured")
	}

	endpoint := f.BaseURL + "/transactions/verify_by_reference?tx_ref=" + url.QueryEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return VerifyResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+f.SecretKey)

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("flutterwave: verify request failed: %w", err)
	}
	defer resp.Body.Close()

	var body flutterwaveVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return VerifyResult{}, fmt.Errorf("flutterwave: decode response: %w", err)
	}
	raw := map[string]any{
		"status":      body.Status,
		"message":     body.Message,
		"data_status": body.Data.Status,
		"flw_ref":     body.Data.FlwRef,
		"amount":      body.Data.Amount,
		"currency":    body.Data.Currency,
	}

	if resp.StatusCode != http.StatusOK {
		return VerifyResult{Raw: raw}, nil
	}

	return VerifyResult{
		Confirmed:   body.Status == "success" && body.Data.Status == "successful",
		Reference:   body.Data.TxRef,
		AmountMinor: int64(body.Data.Amount * 100),
		Currency:    body.Data.Currency,
		Raw:         raw,
	}, nil
}
