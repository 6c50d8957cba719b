package payu

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestHashDeterministic(t *testing.T) {
	first, err := RequestHash("key", "txn123", "800.00", "Order", "Asha", "asha@mail.com", "salt")
	require.NoError(t, err)

	second, err := RequestHash("key", "txn123", "800.00", "Order", "Asha", "asha@mail.com", "salt")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, first, 128) // sha512 hex
}

func TestRequestHashChangesWithAnyField(t *testing.T) {
	base, err := RequestHash("key", "txn123", "100.00", "Order", "Asha", "asha@mail.com", "salt")
	require.NoError(t, err)

	changed, err := RequestHash("key", "txn123", "100.01", "Order", "Asha", "asha@mail.com", "salt")
	require.NoError(t, err)
	require.NotEqual(t, base, changed)

	changed, err = RequestHash("key", "txn124", "100.00", "Order", "Asha", "asha@mail.com", "salt")
	require.NoError(t, err)
	require.NotEqual(t, base, changed)

	changed, err = RequestHash("key", "txn123", "100.00", "Order", "Asha", "asha@mail.com", "other")
	require.NoError(t, err)
	require.NotEqual(t, base, changed)
}

func TestRequestHashRejectsMissingFields(t *testing.T) {
	_, err := RequestHash("key", "txn123", "100.00", "Order", "", "asha@mail.com", "salt")
	require.Error(t, err)

	_, err = RequestHash("key", "txn123", "100.00", "Order", "Asha", "asha@mail.com", "")
	require.Error(t, err)

	_, err = RequestHash("key", "txn123", "   ", "Order", "Asha", "asha@mail.com", "salt")
	require.Error(t, err)
}

func TestNewTxnID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTxnID()
		require.Len(t, id, 20)
		require.NotContains(t, id, "-")
		require.False(t, seen[id], "txn id repeated: %s", id)
		seen[id] = true
	}
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "800.00", FormatAmount(800))
	require.Equal(t, "99.90", FormatAmount(99.9))
	require.Equal(t, "0.10", FormatAmount(0.1))
}

func testConfig() Config {
	return Config{
		Key:        "merchantkey",
		Salt:       "merchantsalt",
		BaseURL:    "https://pay.example.com/_payment",
		SuccessURL: "https://shop.example.com/payment/success",
		FailureURL: "https://shop.example.com/payment/failure",
	}
}

func TestBuildRequest(t *testing.T) {
	cfg := testConfig()

	fields, err := cfg.BuildRequest(RequestParams{
		TxnID:       "abcdef1234567890abcd",
		Amount:      "800.00",
		ProductInfo: "Order",
		FirstName:   "Asha",
		Email:       "asha@mail.com",
		Phone:       "9876543210",
	})
	require.NoError(t, err)

	require.Equal(t, cfg.BaseURL, fields["action"])
	require.Equal(t, cfg.Key, fields["key"])
	require.Equal(t, "abcdef1234567890abcd", fields["txnid"])
	require.Equal(t, "800.00", fields["amount"])
	require.Equal(t, cfg.SuccessURL, fields["surl"])
	require.Equal(t, cfg.FailureURL, fields["furl"])

	expected, err := RequestHash(cfg.Key, "abcdef1234567890abcd", "800.00", "Order", "Asha", "asha@mail.com", cfg.Salt)
	require.NoError(t, err)
	require.Equal(t, expected, fields["hash"])
}

func TestBuildRequestNoPartialMapOnError(t *testing.T) {
	cfg := testConfig()

	fields, err := cfg.BuildRequest(RequestParams{
		TxnID:       "abcdef1234567890abcd",
		Amount:      "800.00",
		ProductInfo: "Order",
		FirstName:   "Asha",
		Email:       "", // signer must reject
		Phone:       "9876543210",
	})
	require.Error(t, err)
	require.Nil(t, fields)
}

func callbackForm(cfg Config, status, txnid, amount string) url.Values {
	form := url.Values{}
	form.Set("txnid", txnid)
	form.Set("amount", amount)
	form.Set("productinfo", "Order")
	form.Set("firstname", "Asha")
	form.Set("email", "asha@mail.com")
	form.Set("status", status)
	form.Set("hash", ResponseHash(cfg.Salt, status, "asha@mail.com", "Asha", "Order", amount, txnid, cfg.Key))
	return form
}

func TestVerifyResponse(t *testing.T) {
	cfg := testConfig()

	form := callbackForm(cfg, "success", "txn123", "800.00")
	require.NoError(t, cfg.VerifyResponse(form))

	// Failure outcomes verify too, as long as the gateway signed them
	form = callbackForm(cfg, "failure", "txn123", "800.00")
	require.NoError(t, cfg.VerifyResponse(form))
}

func TestVerifyResponseRejectsTampering(t *testing.T) {
	cfg := testConfig()

	// Amount changed after signing
	form := callbackForm(cfg, "success", "txn123", "800.00")
	form.Set("amount", "1.00")
	require.Error(t, cfg.VerifyResponse(form))

	// Status flipped after signing
	form = callbackForm(cfg, "failure", "txn123", "800.00")
	form.Set("status", "success")
	require.Error(t, cfg.VerifyResponse(form))

	// Hash forged outright
	form = callbackForm(cfg, "success", "txn123", "800.00")
	form.Set("hash", "deadbeef")
	require.Error(t, cfg.VerifyResponse(form))

	// Hash absent
	form = callbackForm(cfg, "success", "txn123", "800.00")
	form.Del("hash")
	require.Error(t, cfg.VerifyResponse(form))
}
