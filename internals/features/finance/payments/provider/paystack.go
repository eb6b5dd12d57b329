package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const paystackBaseURL = "https://api.paystack.co"

// Paystack verifies charges via GET /transaction/verify/:reference.
// Success means the top-level status flag is true AND data.status == "success".
type Paystack struct {
	SecretKey string
	BaseURL   string
	HTTP      *http.Client
}

func NewPaystack(secretKey string) *Paystack {
	return &Paystack{
		SecretKey: secretKey,
		BaseURL:   paystackBaseURL,
		HTTP:      defaultHTTPClient(),
	}
}

func (p *Paystack) Name() string { return "paystack" }

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string          `json:"status"`
		Reference string          `json:"reference"`
		Amount    int64           `json:"amount"` // kobo
		Currency  string          `json:"currency"`
		Metadata  json.RawMessage `json:"metadata"`
	} `json:"data"`
}

func (p *Paystack) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	if strings.TrimSpace(p.SecretKey) == "" {
		return VerifyResult{}, fmt.Errorf("paystack: secret key not configured")
	}

	endpoint := p.BaseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return VerifyResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("paystack: verify request failed: %w", err)
	}
	defer resp.Body.Close()

	var body paystackVerifyResponse
	raw := map[string]any{}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&body); err != nil {
		return VerifyResult{}, fmt.Errorf("paystack: decode response: %w", err)
	}
	raw["status"] = body.Status
	raw["message"] = body.Message
	raw["data_status"] = body.Data.Status
	raw["amount"] = body.Data.Amount
	raw["currency"] = body.Data.Currency

	if resp.StatusCode != http.StatusOK {
		return VerifyResult{Raw: raw}, nil
	}

	return VerifyResult{
		Confirmed:   body.Status && body.Data.Status == "success",
		Reference:   body.Data.Reference,
		AmountMinor: body.Data.Amount,
		Currency:    body.Data.Currency,
		Raw:         raw,
	}, nil
}
