package shared

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestLoadConfig(t *testing.T) {
	assertion := assert.New(t)

	// ####################################
	// DEFAULTS
	// ####################################
	cfg, err := LoadConfig(lookupFrom(map[string]string{}))
	assertion.NoError(err)
	assertion.Equal(DefaultKeyAgeCutoffDays, cfg.KeyAgeCutoffDays)
	assertion.Equal("", cfg.TopicArn)
	assertion.Equal("", cfg.ReportBucket)
	assertion.Equal(LogLevelInfo, cfg.LogLevel)

	cfg, err = LoadConfig(lookupFrom(map[string]string{
		string(EnvKeyAgeCutoff): "  ",
	}))
	assertion.NoError(err)
	assertion.Equal(DefaultKeyAgeCutoffDays, cfg.KeyAgeCutoffDays)

	// ####################################
	// ALL SET
	// ####################################
	cfg, err = LoadConfig(lookupFrom(map[string]string{
		string(EnvKeyAgeCutoff): "30",
		string(EnvTopicArn):     "arn:aws:sns:us-east-1:123456789012:sec-ops",
		string(EnvReportBucket): "key-sentry-reports",
		string(EnvAuditRoleArn): "arn:aws:iam::123456789012:role/key-sentry",
		string(EnvLogLevel):     "DEBUG",
	}))
	assertion.NoError(err)
	assertion.Equal(30, cfg.KeyAgeCutoffDays)
	assertion.Equal("arn:aws:sns:us-east-1:123456789012:sec-ops", cfg.TopicArn)
	assertion.Equal("key-sentry-reports", cfg.ReportBucket)
	assertion.Equal("arn:aws:iam::123456789012:role/key-sentry", cfg.AuditRoleArn)
	assertion.Equal(LogLevelDebug, cfg.LogLevel)

	cfg, err = LoadConfig(lookupFrom(map[string]string{
		string(EnvKeyAgeCutoff): "0",
	}))
	assertion.NoError(err)
	assertion.Equal(0, cfg.KeyAgeCutoffDays)

	// ####################################
	// ERRORS VALIDATION
	// ####################################
	_, err = LoadConfig(lookupFrom(map[string]string{
		string(EnvKeyAgeCutoff): "ninety",
	}))
	assertion.Error(err)

	_, err = LoadConfig(lookupFrom(map[string]string{
		string(EnvKeyAgeCutoff): "-1",
	}))
	assertion.Error(err)

	_, err = LoadConfig(lookupFrom(map[string]string{
		string(EnvLogLevel): "trace",
	}))
	assertion.Error(err)
}

func TestParseCutoffDays(t *testing.T) {
	assertion := assert.New(t)

	cutoff, err := ParseCutoffDays(" 90 ")
	assertion.NoError(err)
	assertion.Equal(90, cutoff)

	cutoff, err = ParseCutoffDays("100000")
	assertion.NoError(err)
	assertion.Equal(100000, cutoff)

	_, err = ParseCutoffDays("9.5")
	assertion.Error(err)
}

func TestIsValidTopicArn(t *testing.T) {
	assertion := assert.New(t)

	assertion.True(IsValidTopicArn("arn:aws:sns:us-east-1:123456789012:sec-ops"))
	assertion.True(IsValidTopicArn("arn:aws-us-gov:sns:us-gov-west-1:123456789012:sec_ops"))
	assertion.True(IsValidTopicArn("arn:aws:sns:eu-west-1:123456789012:sec-ops.fifo"))
	assertion.False(IsValidTopicArn(""))
	assertion.False(IsValidTopicArn("sec-ops"))
	assertion.False(IsValidTopicArn("arn:aws:sqs:us-east-1:123456789012:sec-ops"))
	assertion.False(IsValidTopicArn("arn:aws:sns:us-east-1:1234:sec-ops"))

	assertion.True(IsFifoTopic("arn:aws:sns:eu-west-1:123456789012:sec-ops.fifo"))
	assertion.False(IsFifoTopic("arn:aws:sns:eu-west-1:123456789012:sec-ops"))
}

func TestNewAuditSummary(t *testing.T) {
	assertion := assert.New(t)
	generatedAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	summary := NewAuditSummary(90, nil, generatedAt)
	assertion.NotNil(summary.Users)
	assertion.Len(summary.Users, 0)
	assertion.Equal("Found 0 Keys that are older than 90 days", summary.Message)
	assertion.Equal("List of IAM Users with Access Keys older than 90 days", summary.Description)
	assertion.Equal(90, summary.KeyAgeCutOff)
	assertion.False(summary.SnsNotification)
	assertion.Equal("2024-03-01T10:30:00Z", summary.GeneratedAt)

	summary = NewAuditSummary(45, []StaleKeyEntry{
		{UserName: "alice", KeyAgeInDays: 50},
		{UserName: "bob", KeyAgeInDays: 45},
	}, generatedAt)
	assertion.Equal("Found 2 Keys that are older than 45 days", summary.Message)

	// empty entries serialize as a list, not null
	data, err := json.Marshal(NewAuditSummary(90, nil, generatedAt))
	assertion.NoError(err)
	assertion.Contains(string(data), `"Users":[]`)
	assertion.NotContains(string(data), "NotificationError")
}
