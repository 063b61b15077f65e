package featureflags

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// SettingsEnvPrefix prefixes every environment variable read by LoadSettings.
const SettingsEnvPrefix = "APP_FLAGS_"

// ConfigModify names the master switch making problem pattern flags modifiable.
const ConfigModify = "enableModify"

var ErrLoadingSettings = errors.New("failed to load flag settings")

// ConfigSource provides the raw configuration value for a config name
// such as "enableDbNotResponding".
type ConfigSource interface {
	Lookup(name string) (string, bool)
}

// MapSource is a ConfigSource backed by a plain map.
type MapSource map[string]string

func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Settings holds the flag configuration read from the process environment.
// Values are kept raw; interpretation happens when the catalog is built.
type Settings struct {
	Modify                 string `env:"ENABLE_MODIFY"`
	FrontendModify         string `env:"ENABLE_FRONTEND_MODIFY"`
	DBNotResponding        string `env:"ENABLE_DB_NOT_RESPONDING"`
	ErgoAggregatorSlowdown string `env:"ENABLE_ERGO_AGGREGATOR_SLOWDOWN"`
	FactoryCrisis          string `env:"ENABLE_FACTORY_CRISIS"`
	CreditCardMeltdown     string `env:"ENABLE_CREDIT_CARD_MELTDOWN"`
	HighCPUUsage           string `env:"ENABLE_HIGH_CPU_USAGE"`
	DelaySimulation        string `env:"ENABLE_DELAY_SIMULATION"`
	LargePayload           string `env:"ENABLE_LARGE_PAYLOAD"`
	UndefinedVariableError string `env:"ENABLE_UNDEFINED_VARIABLE_ERROR"`
	SessionExpiredError    string `env:"ENABLE_SESSION_EXPIRED_ERROR"`
	RateLimitError         string `env:"ENABLE_RATE_LIMIT_ERROR"`
	TimeoutError           string `env:"ENABLE_TIMEOUT_ERROR"`
}

// LoadSettings reads Settings from the environment. Any envFiles are loaded
// first with godotenv; variables already set in the process win.
func LoadSettings(envFiles ...string) (Settings, error) {
	var s Settings
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return s, errors.Join(ErrLoadingSettings, err)
		}
	}
	if err := env.ParseWithOptions(&s, env.Options{Prefix: SettingsEnvPrefix}); err != nil {
		return s, errors.Join(ErrLoadingSettings, err)
	}
	return s, nil
}

func (s Settings) Lookup(name string) (string, bool) {
	v, ok := s.values()[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ModifyEnabled reports the enableModify master switch.
func (s Settings) ModifyEnabled() bool {
	return lookupBool(s, ConfigModify)
}

func (s Settings) values() map[string]string {
	return map[string]string{
		ConfigModify:                   s.Modify,
		"enableFrontendModify":         s.FrontendModify,
		"enableDbNotResponding":        s.DBNotResponding,
		"enableErgoAggregatorSlowdown": s.ErgoAggregatorSlowdown,
		"enableFactoryCrisis":          s.FactoryCrisis,
		"enableCreditCardMeltdown":     s.CreditCardMeltdown,
		"enableHighCpuUsage":           s.HighCPUUsage,
		"enableDelaySimulation":        s.DelaySimulation,
		"enableLargePayload":           s.LargePayload,
		"enableUndefinedVariableError": s.UndefinedVariableError,
		"enableSessionExpiredError":    s.SessionExpiredError,
		"enableRateLimitError":         s.RateLimitError,
		"enableTimeoutError":           s.TimeoutError,
	}
}

// lookupBool resolves a boolean-ish config value. Missing or unparseable
// values are false so an unconfigured problem pattern stays off.
func lookupBool(src ConfigSource, name string) bool {
	if src == nil {
		return false
	}
	raw, ok := src.Lookup(name)
	if !ok {
		return false
	}
	return cast.ToBool(strings.ToLower(strings.TrimSpace(raw)))
}
