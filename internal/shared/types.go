package shared

import (
	"fmt"
	"time"
)

type EnvVar string
type S3ObjectKey string
type LogLevel string

// CredentialRecord is an access key as reported by the identity directory.
type CredentialRecord struct {
	UserName    string    `json:"userName"`
	AccessKeyId string    `json:"accessKeyId"`
	Status      string    `json:"status"`
	CreateDate  time.Time `json:"createDate"`
}

// StaleKeyEntry is an access key that reached the cutoff age.
type StaleKeyEntry struct {
	UserName     string `json:"UserName"`
	KeyAgeInDays int    `json:"KeyAgeInDays"`
	AccessKeyId  string `json:"AccessKeyId,omitempty"`
	Status       string `json:"Status,omitempty"`
}

// AuditSummary is the result of one audit run.  Message always reports len(Users).
type AuditSummary struct {
	Users             []StaleKeyEntry `json:"Users"`
	Description       string          `json:"Description"`
	KeyAgeCutOff      int             `json:"KeyAgeCutOff"`
	Message           string          `json:"Message"`
	SnsNotification   bool            `json:"SnsNotification"`
	NotificationError string          `json:"NotificationError,omitempty"`
	AccountId         string          `json:"AccountId,omitempty"`
	GeneratedAt       string          `json:"GeneratedAt"`
}

// NewAuditSummary builds a summary for the given cutoff and entries.  The
// notification outcome starts out negative.
func NewAuditSummary(cutoffDays int, entries []StaleKeyEntry, generatedAt time.Time) AuditSummary {
	if entries == nil {
		entries = []StaleKeyEntry{}
	}
	return AuditSummary{
		Users:        entries,
		Description:  Description(cutoffDays),
		KeyAgeCutOff: cutoffDays,
		Message:      CountMessage(len(entries), cutoffDays),
		GeneratedAt:  generatedAt.UTC().Format(time.RFC3339),
	}
}

func Description(cutoffDays int) string {
	return fmt.Sprintf("List of IAM Users with Access Keys older than %d days", cutoffDays)
}

func CountMessage(count int, cutoffDays int) string {
	return fmt.Sprintf("Found %d Keys that are older than %d days", count, cutoffDays)
}

// Config holds the settings for a single invocation.
type Config struct {
	KeyAgeCutoffDays int
	TopicArn         string
	ReportBucket     string
	AuditRoleArn     string
	LogLevel         LogLevel
}
