package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadConfig reads the invocation settings from the environment.  Unset or
// empty cutoff falls back to DefaultKeyAgeCutoffDays; anything that is not a
// non-negative integer is an error.
func LoadConfig(lookup LookupFunc) (Config, error) {
	cfg := Config{
		KeyAgeCutoffDays: DefaultKeyAgeCutoffDays,
		LogLevel:         LogLevelInfo,
	}

	if raw, ok := lookup(string(EnvKeyAgeCutoff)); ok && strings.TrimSpace(raw) != "" {
		cutoff, err := ParseCutoffDays(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.KeyAgeCutoffDays = cutoff
	}

	cfg.TopicArn = lookupString(lookup, EnvTopicArn)
	cfg.ReportBucket = lookupString(lookup, EnvReportBucket)
	cfg.AuditRoleArn = lookupString(lookup, EnvAuditRoleArn)

	if level := lookupString(lookup, EnvLogLevel); level != "" {
		if !IsValidLogLevel(level) {
			return Config{}, fmt.Errorf("invalid %s [%s]", EnvLogLevel, level)
		}
		cfg.LogLevel = LogLevel(strings.ToLower(level))
	}
	return cfg, nil
}

// ParseCutoffDays coerces an integer-like string to a cutoff in days.
func ParseCutoffDays(raw string) (int, error) {
	cutoff, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s [%s] : %w", EnvKeyAgeCutoff, raw, err)
	}
	if cutoff < 0 {
		return 0, fmt.Errorf("invalid %s [%s] : must not be negative", EnvKeyAgeCutoff, raw)
	}
	return cutoff, nil
}

func lookupString(lookup LookupFunc, name EnvVar) string {
	value, ok := lookup(string(name))
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
