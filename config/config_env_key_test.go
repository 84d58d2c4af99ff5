package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"checkout": map[string]any{
			"deliveryFee":  "3.99",
			"paymentDelay": "1s",
		},
		"tracking": map[string]any{
			"maxOrdersPerTick": 200,
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "CHECKOUT_DELIVERYFEE", want: "checkout.deliveryFee"},
		{envKey: "CHECKOUT_PAYMENTDELAY", want: "checkout.paymentDelay"},
		{envKey: "TRACKING_MAXORDERSPERTICK", want: "tracking.maxOrdersPerTick"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestLoadWithEnv_OverridesFromEnvironment(t *testing.T) {
	t.Setenv("CHECKOUT_DELIVERYFEE", "4.25")
	t.Setenv("TRACKING_INTERVAL", "2s")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "4.25", cfg.Checkout.DeliveryFee)
	assert.Equal(t, 2*time.Second, cfg.Tracking.Interval)
	assert.Equal(t, "0.0625", cfg.Checkout.TaxRate)
	assert.Equal(t, 10, cfg.Checkout.DiscountCodes["WELCOME20"])
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowQueryThreshold)
	assert.Equal(t, 50, cfg.Auth.SignupBonus)
	assert.Equal(t, 100, cfg.Auth.GoogleBonus)
	assert.Equal(t, "3.99", cfg.Checkout.DeliveryFee)
	assert.Equal(t, 6*time.Second, cfg.Tracking.Interval)
	assert.Equal(t, "mem://", cfg.Storage.BucketURL)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
}
