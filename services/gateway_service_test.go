package services

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"hotel-reservation-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway() *GatewayService {
	return NewGatewayService(config.GatewayConfig{
		BaseURL:   "https://sandbox.gateway.example/pay",
		Secret:    "super-secret",
		Version:   "2.1.0",
		Currency:  "THB",
		ReturnURL: "http://localhost:8080/api/payments/return",
	})
}

func paramsFromURL(t *testing.T, raw string) map[string]string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	out := make(map[string]string)
	for k, vs := range u.Query() {
		out[k] = vs[0]
	}
	return out
}

func TestBuildPaymentURLShape(t *testing.T) {
	g := testGateway()
	now := time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)

	raw := g.BuildPaymentURL(42, 1350000, "Booking BK-TEST1234", "203.0.113.7", now)
	assert.True(t, strings.HasPrefix(raw, g.Cfg.BaseURL+"?"))

	params := paramsFromURL(t, raw)
	assert.Equal(t, "42", params[gwFieldTxnRef])
	assert.Equal(t, "135000000", params[gwFieldAmount]) // gateway unit is x100
	assert.Equal(t, "pay", params[gwFieldCommand])
	assert.Equal(t, "2.1.0", params[gwFieldVersion])
	assert.Equal(t, "20260501103000", params[gwFieldCreateDate])
	assert.NotEmpty(t, params[hashField])
}

func TestSignatureRoundTrip(t *testing.T) {
	g := testGateway()
	raw := g.BuildPaymentURL(42, 1350000, "Booking BK-TEST1234", "203.0.113.7", time.Now())

	out, err := g.VerifyCallback(paramsFromURL(t, raw))
	require.NoError(t, err)
	assert.Equal(t, uint(42), out.BookingID)
	assert.Equal(t, "42", out.TxnRef)
	// outbound request carries no response code, so it cannot read as success
	assert.False(t, out.Success)
}

func TestVerifyCallbackDetectsTampering(t *testing.T) {
	g := testGateway()
	raw := g.BuildPaymentURL(42, 1350000, "Booking BK-TEST1234", "203.0.113.7", time.Now())

	params := paramsFromURL(t, raw)
	params[gwFieldAmount] = "100" // pay less than signed

	_, err := g.VerifyCallback(params)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifyCallbackRejectsMissingOrForgedHash(t *testing.T) {
	g := testGateway()
	raw := g.BuildPaymentURL(42, 1350000, "Booking BK-TEST1234", "203.0.113.7", time.Now())
	params := paramsFromURL(t, raw)

	forged := make(map[string]string, len(params))
	for k, v := range params {
		forged[k] = v
	}
	forged[hashField] = strings.Repeat("ab", 64)
	_, err := g.VerifyCallback(forged)
	assert.ErrorIs(t, err, ErrSignatureMismatch)

	delete(params, hashField)
	_, err = g.VerifyCallback(params)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifyCallbackWrongSecretFails(t *testing.T) {
	g := testGateway()
	raw := g.BuildPaymentURL(42, 1350000, "Booking BK-TEST1234", "203.0.113.7", time.Now())

	other := NewGatewayService(config.GatewayConfig{Secret: "different-secret"})
	_, err := other.VerifyCallback(paramsFromURL(t, raw))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

// signedCallback builds a gateway-style callback with response fields, signed
// with the service's own canonicalization.
func signedCallback(g *GatewayService, bookingID, respCode, txnStatus string) map[string]string {
	params := map[string]string{
		gwFieldTxnRef:       bookingID,
		gwFieldResponseCode: respCode,
		gwFieldTxnStatus:    txnStatus,
		gwFieldAmount:       "135000000",
	}
	params[hashField] = signPayload(canonicalizeParams(params), g.Cfg.Secret)
	return params
}

func TestVerifyCallbackOutcomeMapping(t *testing.T) {
	g := testGateway()

	out, err := g.VerifyCallback(signedCallback(g, "7", "00", "00"))
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, uint(7), out.BookingID)

	out, err = g.VerifyCallback(signedCallback(g, "7", "24", "00"))
	require.NoError(t, err)
	assert.False(t, out.Success)

	_, err = g.VerifyCallback(signedCallback(g, "not-a-number", "00", "00"))
	assert.Error(t, err)
}

func TestCanonicalizeParamsIsSortedAndEncoded(t *testing.T) {
	canonical := canonicalizeParams(map[string]string{
		"b_key": "two words",
		"a_key": "x&y",
		"empty": "",
	})
	// empty values dropped, keys sorted, spaces as +, & escaped
	assert.Equal(t, "a_key=x%26y&b_key=two+words", canonical)
}
