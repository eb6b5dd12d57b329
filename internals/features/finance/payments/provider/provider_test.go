package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaystackVerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ATS-20260101-120000-DEADBEEF", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "success", "reference": "ATS-20260101-120000-DEADBEEF", "amount": 500000, "currency": "NGN"}
		}`))
	}))
	defer srv.Close()

	p := &Paystack{SecretKey: "sk_test_abc", BaseURL: srv.URL, HTTP: srv.Client()}
	assert.Equal(t, "paystack", p.Name())
	res, err := p.Verify(context.Background(), "ATS-20260101-120000-DEADBEEF")
	require.NoError(t, err)
	assert.True(t, res.Confirmed)
	assert.Equal(t, "ATS-20260101-120000-DEADBEEF", res.Reference)
	assert.Equal(t, int64(500000), res.AmountMinor)
	assert.Equal(t, "NGN", res.Currency)
}

func TestPaystackVerifyFailedCharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": true, "data": {"status": "failed", "amount": 500000}}`))
	}))
	defer srv.Close()

	p := &Paystack{SecretKey: "sk_test_abc", BaseURL: srv.URL, HTTP: srv.Client()}
	res, err := p.Verify(context.Background(), "REF")
	require.NoError(t, err)
	assert.False(t, res.Confirmed, "data.status != success must not confirm")
}

func TestPaystackVerifyNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	}))
	defer srv.Close()

	p := &Paystack{SecretKey: "sk_test_abc", BaseURL: srv.URL, HTTP: srv.Client()}
	res, err := p.Verify(context.Background(), "UNKNOWN")
	require.NoError(t, err)
	assert.False(t, res.Confirmed)
	assert.Equal(t, "Transaction reference not found", res.Raw["message"])
}

func TestPaystackMissingSecretKey(t *testing.T) {
	p := &Paystack{HTTP: defaultHTTPClient()}
	_, err := p.Verify(context.Background(), "REF")
	require.Error(t, err)
}

func TestFlutterwaveVerifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/verify_by_reference", r.URL.Path)
		assert.Equal(t, "ATS-20260101-120000-DEADBEEF", r.URL.Query().Get("tx_ref"))
		assert.Equal(t, "Bearer flw_sk_abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "success",
			"message": "Transaction fetched successfully",
			"data": {"status": "successful", "tx_ref": "ATS-20260101-120000-DEADBEEF", "flw_ref": "FLW-MOCK-1", "amount": 5000, "currency": "NGN"}
		}`))
	}))
	defer srv.Close()

	f := &Flutterwave{SecretKey: "flw_sk_abc", BaseURL: srv.URL, HTTP: srv.Client()}
	assert.Equal(t, "flutterwave", f.Name())
	res, err := f.Verify(context.Background(), "ATS-20260101-120000-DEADBEEF")
	require.NoError(t, err)
	assert.True(t, res.Confirmed)
	assert.Equal(t, "ATS-20260101-120000-DEADBEEF", res.Reference)
	assert.Equal(t, int64(500000), res.AmountMinor, "naira converted to kobo")
	assert.Equal(t, "NGN", res.Currency)
}

func TestFlutterwaveBothStatusesRequired(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"top-level error", `{"status": "error", "data": {"status": "successful"}}`},
		{"nested pending", `{"status": "success", "data": {"status": "pending"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			f := &Flutterwave{SecretKey: "flw_sk_abc", BaseURL: srv.URL, HTTP: srv.Client()}
			res, err := f.Verify(context.Background(), "REF")
			require.NoError(t, err)
			assert.False(t, res.Confirmed)
		})
	}
}

func TestFlutterwaveDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	f := &Flutterwave{SecretKey: "flw_sk_abc", BaseURL: srv.URL, HTTP: srv.Client()}
	_, err := f.Verify(context.Background(), "REF")
	require.Error(t, err)
}
