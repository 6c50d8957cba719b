package payu

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// The gateway signs a fixed, pipe-delimited field tuple. Ten reserved
// fields (udf1..udf5 plus five spares) sit between email and salt; this
// integration leaves all of them empty, but they must still appear in
// the hash string or the digest will not match the gateway's.
const reservedFields = 10

const txnIDLength = 20

// Config holds the merchant credentials and endpoints. Loaded
// server-side only; the salt must never reach the browser.
type Config struct {
	Key        string
	Salt       string
	BaseURL    string // hosted checkout page the form posts to
	SuccessURL string // surl registered with the gateway
	FailureURL string // furl registered with the gateway
}

// LoadConfig reads the merchant configuration from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{
		Key:        os.Getenv("PAYU_KEY"),
		Salt:       os.Getenv("PAYU_SALT"),
		BaseURL:    os.Getenv("PAYU_BASE_URL"),
		SuccessURL: os.Getenv("PAYU_SUCCESS_URL"),
		FailureURL: os.Getenv("PAYU_FAILURE_URL"),
	}
	if cfg.Key == "" || cfg.Salt == "" || cfg.BaseURL == "" || cfg.SuccessURL == "" || cfg.FailureURL == "" {
		return Config{}, fmt.Errorf("payu configuration missing")
	}
	return cfg, nil
}

// FormatAmount renders an amount exactly as it is signed: two-decimal
// fixed point. The same string must be used on both sides of the hash.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// NewTxnID returns a fresh transaction id: a dashless UUID trimmed to
// twenty characters, unique per checkout attempt.
func NewTxnID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:txnIDLength]
}

// RequestHash computes the request signature:
//
//	sha512(key|txnid|amount|productinfo|firstname|email|<10 empty>|salt)
//
// Every named field must be non-empty; hashing an accidentally blank
// field would produce a validly-shaped but wrong signature, so reject
// up front instead.
func RequestHash(key, txnid, amount, productinfo, firstname, email, salt string) (string, error) {
	fields := map[string]string{
		"key":         key,
		"txnid":       txnid,
		"amount":      amount,
		"productinfo": productinfo,
		"firstname":   firstname,
		"email":       email,
		"salt":        salt,
	}
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			return "", fmt.Errorf("payu: missing required field %q", name)
		}
	}

	parts := []string{key, txnid, amount, productinfo, firstname, email}
	for i := 0; i < reservedFields; i++ {
		parts = append(parts, "")
	}
	parts = append(parts, salt)

	sum := sha512.Sum512([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:]), nil
}

// ResponseHash computes the digest the gateway sends with its callback:
// the request tuple mirrored, with the transaction status inserted
// after the salt.
func ResponseHash(salt, status, email, firstname, productinfo, amount, txnid, key string) string {
	parts := []string{salt, status}
	for i := 0; i < reservedFields; i++ {
		parts = append(parts, "")
	}
	parts = append(parts, email, firstname, productinfo, amount, txnid, key)

	sum := sha512.Sum512([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// VerifyResponse recomputes the expected digest from the posted form
// and compares it to the hash the gateway supplied. The claimed status
// is part of the signed tuple, so a tampered outcome fails here too.
func (c Config) VerifyResponse(form url.Values) error {
	provided := form.Get("hash")
	if provided == "" {
		return fmt.Errorf("payu: callback missing hash")
	}

	expected := ResponseHash(
		c.Salt,
		form.Get("status"),
		form.Get("email"),
		form.Get("firstname"),
		form.Get("productinfo"),
		form.Get("amount"),
		form.Get("txnid"),
		c.Key,
	)
	if !strings.EqualFold(expected, provided) {
		return fmt.Errorf("payu: response hash mismatch for txnid %s", form.Get("txnid"))
	}
	return nil
}

// RequestParams is one checkout attempt's worth of buyer and amount
// fields, ready to be signed.
type RequestParams struct {
	TxnID       string
	Amount      string // already formatted via FormatAmount
	ProductInfo string
	FirstName   string
	Email       string
	Phone       string
}

// BuildRequest assembles the complete field set the hosted page
// expects, signature included. Field names match the gateway contract
// exactly since the hash is computed over them. Returns nothing usable
// on error: a half-built form must never be submitted.
func (c Config) BuildRequest(p RequestParams) (map[string]string, error) {
	hash, err := RequestHash(c.Key, p.TxnID, p.Amount, p.ProductInfo, p.FirstName, p.Email, c.Salt)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"action":      c.BaseURL,
		"key":         c.Key,
		"txnid":       p.TxnID,
		"amount":      p.Amount,
		"productinfo": p.ProductInfo,
		"firstname":   p.FirstName,
		"email":       p.Email,
		"phone":       p.Phone,
		"surl":        c.SuccessURL,
		"furl":        c.FailureURL,
		"hash":        hash,
	}, nil
}
