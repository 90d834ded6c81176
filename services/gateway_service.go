// services/gateway_service.go
package services

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"hotel-reservation-backend/config"
)

// Gateway parameter names. The signature travels as hashField and is never
// part of the signed payload.
const (
	gwFieldVersion    = "gw_version"
	gwFieldCommand    = "gw_command"
	gwFieldAmount     = "gw_amount"
	gwFieldCurrency   = "gw_currency"
	gwFieldTxnRef     = "gw_txn_ref"
	gwFieldOrderInfo  = "gw_order_info"
	gwFieldCreateDate = "gw_create_date"
	gwFieldIPAddr     = "gw_ip_addr"
	gwFieldReturnURL  = "gw_return_url"

	gwFieldResponseCode = "gw_response_code"
	gwFieldTxnStatus    = "gw_txn_status"

	hashField = "gw_secure_hash"

	gwCommandPay = "pay"

	// GatewaySuccessCode is the gateway's documented success response code.
	GatewaySuccessCode = "00"
)

// CallbackOutcome is a verified, parsed inbound callback.
type CallbackOutcome struct {
	BookingID    uint
	TxnRef       string
	ResponseCode string
	TxnStatus    string
	Success      bool
	Params       map[string]string
}

// GatewayService builds signed redirect URLs and verifies signed callbacks.
// Both directions are pure local computation; there is no network round-trip.
type GatewayService struct {
	Cfg config.GatewayConfig
}

func NewGatewayService(cfg config.GatewayConfig) *GatewayService {
	return &GatewayService{Cfg: cfg}
}

// BuildPaymentURL constructs the signed redirect URL for a booking. The amount
// is converted to the gateway's unit (amount x100 of the minor unit, per its
// contract), the booking id is the transaction reference.
func (g *GatewayService) BuildPaymentURL(bookingID uint, amount int64, orderInfo, clientIP string, now time.Time) string {
	params := map[string]string{
		gwFieldVersion:    g.Cfg.Version,
		gwFieldCommand:    gwCommandPay,
		gwFieldAmount:     strconv.FormatInt(amount*100, 10),
		gwFieldCurrency:   g.Cfg.Currency,
		gwFieldTxnRef:     strconv.FormatUint(uint64(bookingID), 10),
		gwFieldOrderInfo:  orderInfo,
		gwFieldCreateDate: now.Format("20060102150405"),
		gwFieldIPAddr:     clientIP,
		gwFieldReturnURL:  g.Cfg.ReturnURL,
	}

	canonical := canonicalizeParams(params)
	sig := signPayload(canonical, g.Cfg.Secret)
	return g.Cfg.BaseURL + "?" + canonical + "&" + hashField + "=" + sig
}

// VerifyCallback strips the signature, re-canonicalizes the remaining
// parameters and compares HMACs in constant time. On mismatch nothing is
// mutated anywhere; on match the typed outcome is returned.
func (g *GatewayService) VerifyCallback(params map[string]string) (*CallbackOutcome, error) {
	their := strings.TrimSpace(params[hashField])
	if their == "" {
		return nil, ErrSignatureMismatch
	}

	rest := make(map[string]string, len(params))
	for k, v := range params {
		if k == hashField {
			continue
		}
		rest[k] = v
	}

	ours := signPayload(canonicalizeParams(rest), g.Cfg.Secret)
	if !hmac.Equal([]byte(ours), []byte(strings.ToLower(their))) {
		return nil, ErrSignatureMismatch
	}

	ref := rest[gwFieldTxnRef]
	id, err := strconv.ParseUint(ref, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("callback txn ref %q is not a booking id: %w", ref, err)
	}

	code := rest[gwFieldResponseCode]
	status := rest[gwFieldTxnStatus]
	return &CallbackOutcome{
		BookingID:    uint(id),
		TxnRef:       ref,
		ResponseCode: code,
		TxnStatus:    status,
		Success:      code == GatewaySuccessCode && status == GatewaySuccessCode,
		Params:       rest,
	}, nil
}

// canonicalizeParams percent-encodes every key and value, sorts by encoded key
// and joins k=v pairs with &. url.QueryEscape already emits + for spaces,
// which is the encoding the gateway signs.
func canonicalizeParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	encoded := make(map[string]string, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		ek := url.QueryEscape(k)
		keys = append(keys, ek)
		encoded[ek] = url.QueryEscape(v)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(encoded[k])
	}
	return sb.String()
}

func signPayload(payload, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
