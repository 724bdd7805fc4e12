package config

import (
	"fmt"
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/spf13/viper"

	ammtypes "github.com/Mustafa6066/Osool-sub002/x/amm/types"
)

// Config is the engine configuration, loaded from file with environment
// overrides. All amounts are integer token units; rates are decimal
// strings.
type Config struct {
	AdminAddress string

	// Settlement ledger
	MaxSupplyCap math.Int

	// Pool ledger
	Pool ammtypes.Params

	// API server
	API APIConfig
}

// APIConfig holds the HTTP server settings.
type APIConfig struct {
	Host            string
	Port            string
	CORSOrigins     []string
	RateLimitRPS    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("admin-address", "osool1admin")
	v.SetDefault("settlement.max-supply-cap", "1000000000000000")
	v.SetDefault("pool.swap-fee-rate", "0.003")
	v.SetDefault("pool.platform-fee-rate", "0.0005")
	v.SetDefault("pool.min-locked-shares", "1000")
	v.SetDefault("pool.twap-max-observations", 4096)
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", "5000")
	v.SetDefault("api.cors-origins", []string{"http://localhost:3000"})
	v.SetDefault("api.rate-limit-rps", 100)
	v.SetDefault("api.read-timeout", "15s")
	v.SetDefault("api.write-timeout", "15s")
	v.SetDefault("api.shutdown-timeout", "10s")
}

// Load reads the config file at path (optional) and applies OSOOL_*
// environment overrides.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("OSOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		AdminAddress: v.GetString("admin-address"),
		API: APIConfig{
			Host:            v.GetString("api.host"),
			Port:            v.GetString("api.port"),
			CORSOrigins:     v.GetStringSlice("api.cors-origins"),
			RateLimitRPS:    v.GetInt("api.rate-limit-rps"),
			ReadTimeout:     v.GetDuration("api.read-timeout"),
			WriteTimeout:    v.GetDuration("api.write-timeout"),
			ShutdownTimeout: v.GetDuration("api.shutdown-timeout"),
		},
	}

	if cfg.AdminAddress == "" {
		return Config{}, fmt.Errorf("admin-address cannot be empty")
	}

	supplyCap, ok := math.NewIntFromString(v.GetString("settlement.max-supply-cap"))
	if !ok || !supplyCap.IsPositive() {
		return Config{}, fmt.Errorf("settlement.max-supply-cap must be a positive integer: %q",
			v.GetString("settlement.max-supply-cap"))
	}
	cfg.MaxSupplyCap = supplyCap

	swapFee, err := math.LegacyNewDecFromStr(v.GetString("pool.swap-fee-rate"))
	if err != nil {
		return Config{}, fmt.Errorf("pool.swap-fee-rate: %w", err)
	}
	platformFee, err := math.LegacyNewDecFromStr(v.GetString("pool.platform-fee-rate"))
	if err != nil {
		return Config{}, fmt.Errorf("pool.platform-fee-rate: %w", err)
	}
	minLocked, ok := math.NewIntFromString(v.GetString("pool.min-locked-shares"))
	if !ok {
		return Config{}, fmt.Errorf("pool.min-locked-shares must be an integer: %q",
			v.GetString("pool.min-locked-shares"))
	}

	cfg.Pool = ammtypes.Params{
		SwapFeeRate:         swapFee,
		PlatformFeeRate:     platformFee,
		MinLockedShares:     minLocked,
		TwapMaxObservations: v.GetInt("pool.twap-max-observations"),
	}
	if err := cfg.Pool.Validate(); err != nil {
		return Config{}, fmt.Errorf("pool params: %w", err)
	}

	return cfg, nil
}
