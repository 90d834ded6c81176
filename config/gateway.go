package config

// GatewayConfig holds the payment gateway settings. The secret is shared with
// the gateway and signs every outbound request and inbound callback.
type GatewayConfig struct {
	BaseURL   string
	Secret    string
	Version   string
	Currency  string
	ReturnURL string
}

func LoadGatewayConfig() GatewayConfig {
	return GatewayConfig{
		BaseURL:   envOrDefault("GATEWAY_BASE_URL", "https://sandbox.gateway.example/pay"),
		Secret:    envOrDefault("GATEWAY_SECRET", ""),
		Version:   envOrDefault("GATEWAY_VERSION", "2.1.0"),
		Currency:  envOrDefault("GATEWAY_CURRENCY", "THB"),
		ReturnURL: envOrDefault("GATEWAY_RETURN_URL", "http://localhost:8080/api/payments/return"),
	}
}

// JWTSecret is the key the external identity provider signs tokens with.
func JWTSecret() string {
	return envOrDefault("JWT_SECRET", "")
}
