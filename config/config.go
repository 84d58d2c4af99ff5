package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	// DriverSQLite selects the embedded SQLite database.
	DriverSQLite = "sqlite"
	// DriverPostgres selects the PostgreSQL connector.
	DriverPostgres = "postgres"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Database DatabaseConfig `json:"database" yaml:"database"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// GoogleOAuth enables "Sign in with Google" when ClientID is set
	GoogleOAuth GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	Checkout *CheckoutConfig `json:"checkout" yaml:"checkout"`

	Tracking *TrackingConfig `json:"tracking" yaml:"tracking"`

	// PubSub configuration for order event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Storage configuration for uploaded avatars
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// QRCode configuration for order pickup codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

// DatabaseConfig picks the SQL driver backing every repository.
type DatabaseConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	// DSN is only used by the sqlite driver, e.g. "file:brewhouse.db?_foreign_keys=on".
	DSN         string `json:"dsn" yaml:"dsn"`
	AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`
	// SlowQueryThreshold is the elapsed time above which queries are logged at warn.
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	TokenTTL   time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
	// SimulatedDelay is the fixed wait applied to login and signup.
	SimulatedDelay time.Duration `json:"simulatedDelay" yaml:"simulatedDelay"`
	SignupBonus    int           `json:"signupBonus" yaml:"signupBonus"`
	// GoogleBonus is the starting balance of accounts created through Google sign-in.
	GoogleBonus int `json:"googleBonus" yaml:"googleBonus"`
}

// GoogleOAuthConfig holds the OAuth client whose ID tokens are accepted.
type GoogleOAuthConfig struct {
	ClientID string `json:"clientId" yaml:"clientId"`
}

// CheckoutConfig holds the pricing constants and the simulated payment delay.
type CheckoutConfig struct {
	TaxRate       string         `json:"taxRate" yaml:"taxRate"`
	DeliveryFee   string         `json:"deliveryFee" yaml:"deliveryFee"`
	DiscountCodes map[string]int `json:"discountCodes" yaml:"discountCodes"`
	PaymentDelay  time.Duration  `json:"paymentDelay" yaml:"paymentDelay"`
}

// TrackingConfig drives the order status worker.
type TrackingConfig struct {
	Enabled          bool          `json:"enabled" yaml:"enabled"`
	Interval         time.Duration `json:"interval" yaml:"interval"`
	InitialETA       int           `json:"initialEta" yaml:"initialEta"`
	ETAStepMinutes   int           `json:"etaStepMinutes" yaml:"etaStepMinutes"`
	MaxOrdersPerTick int           `json:"maxOrdersPerTick" yaml:"maxOrdersPerTick"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StorageConfig defines where avatar images are written.
type StorageConfig struct {
	// BucketURL is a gocloud.dev blob URL such as "file:///var/lib/brewhouse/avatars" or "mem://".
	BucketURL     string `json:"bucketUrl" yaml:"bucketUrl"`
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	MaxAvatarSize int    `json:"maxAvatarSize" yaml:"maxAvatarSize"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// PushToken, when set, must be sent as ?token= on the push endpoint
	PushToken string `json:"pushToken" yaml:"pushToken"`

	// VerifyOIDC requires a Google-signed OIDC bearer token on push requests
	VerifyOIDC bool `json:"verifyOidc" yaml:"verifyOidc"`

	// PushAudience overrides the expected token audience; defaults to the request URL
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`

	// PushServiceAccount, when set, must match the token's email claim
	PushServiceAccount string `json:"pushServiceAccount" yaml:"pushServiceAccount"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// CHECKOUT_DELIVERYFEE -> checkout.deliveryFee
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Case-insensitive so env overrides land on camelCase fields.
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills every optional section.
func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
	}
	if cfg.Database.Driver == DriverSQLite && cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:brewhouse.db?_foreign_keys=on"
	}
	if cfg.Database.SlowQueryThreshold == 0 {
		cfg.Database.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 10
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 30 * 24 * time.Hour
	}
	if cfg.Auth.SignupBonus == 0 {
		cfg.Auth.SignupBonus = 50
	}
	if cfg.Auth.GoogleBonus == 0 {
		cfg.Auth.GoogleBonus = 100
	}
	if cfg.Checkout == nil {
		cfg.Checkout = DefaultCheckout()
	}
	if cfg.Tracking == nil {
		cfg.Tracking = DefaultTracking()
	}
	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{BucketURL: "mem://"}
	}
	if cfg.Storage.MaxAvatarSize == 0 {
		cfg.Storage.MaxAvatarSize = 2 << 20
	}
}

// DefaultCheckout returns the storefront's stock pricing rules.
func DefaultCheckout() *CheckoutConfig {
	return &CheckoutConfig{
		TaxRate:     "0.0625",
		DeliveryFee: "3.99",
		DiscountCodes: map[string]int{
			"WELCOME20": 10,
			"CAFE10":    10,
		},
		PaymentDelay: 1500 * time.Millisecond,
	}
}

// DefaultTracking returns the demo status cadence.
func DefaultTracking() *TrackingConfig {
	return &TrackingConfig{
		Enabled:          true,
		Interval:         6 * time.Second,
		InitialETA:       15,
		ETAStepMinutes:   3,
		MaxOrdersPerTick: 200,
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
