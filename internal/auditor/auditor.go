package auditor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/iam-key-sentry/internal/directory"
	"github.com/outofoffice3/iam-key-sentry/internal/errormgr"
	"github.com/outofoffice3/iam-key-sentry/internal/exporter"
	"github.com/outofoffice3/iam-key-sentry/internal/metricmgr"
	"github.com/outofoffice3/iam-key-sentry/internal/notifier"
	"github.com/outofoffice3/iam-key-sentry/internal/shared"
)

/*

KeyAuditor is responsible for the following :

- Enumerating every iam user and their access keys
- Collecting the access keys that reached the cutoff age
- Publishing the audit summary to the security operations topic (best-effort)
- Exporting the stale keys as a csv report to s3 (best-effort, optional)

*/

type KeyAuditor interface {
	// run one audit and return its summary
	Audit(ctx context.Context, cfg shared.Config) (shared.AuditSummary, error)

	// get metric mgr
	GetMetricMgr() metricmgr.MetricMgr
	// get error mgr
	GetErrorMgr() errormgr.ErrorMgr
	// get logger
	GetLogger() logger.Logger
}

// AccountResolver resolves the account being audited.
type AccountResolver interface {
	GetAccountId(ctx context.Context) (string, error)
}

type _KeyAuditor struct {
	directory directory.Directory
	channel   notifier.Channel
	exporter  exporter.Exporter
	accounts  AccountResolver
	metricMgr metricmgr.MetricMgr
	errorMgr  errormgr.ErrorMgr
	logger    logger.Logger
	now       func() time.Time
}

type KeyAuditorInitConfig struct {
	Directory directory.Directory
	Channel   notifier.Channel
	// optional
	Exporter exporter.Exporter
	// optional
	Accounts AccountResolver
	Logger   logger.Logger
	// defaults to time.Now
	Now func() time.Time
}

// Init returns a key auditor with fresh metrics and errors.
func Init(config KeyAuditorInitConfig) KeyAuditor {
	sos := config.Logger
	if sos == nil {
		sos = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &_KeyAuditor{
		directory: config.Directory,
		channel:   config.Channel,
		exporter:  config.Exporter,
		accounts:  config.Accounts,
		metricMgr: metricmgr.Init(),
		errorMgr:  errormgr.NewErrorMgr(),
		logger:    sos,
		now:       now,
	}
}

// Audit enumerates every user and access key and flags the keys created on
// or before today minus the cutoff.  Directory errors abort the run;
// notification and export failures are recorded and swallowed.
func (a *_KeyAuditor) Audit(ctx context.Context, cfg shared.Config) (shared.AuditSummary, error) {
	sos := a.GetLogger()
	cutoffDays := cfg.KeyAgeCutoffDays
	if cutoffDays < 0 {
		return shared.AuditSummary{}, fmt.Errorf("key age cutoff must not be negative, got [%d]", cutoffDays)
	}
	if a.directory == nil {
		return shared.AuditSummary{}, fmt.Errorf("directory is not set")
	}

	now := a.now()
	entries, err := a.collectStaleKeys(ctx, today(now), cutoffDays)
	if err != nil {
		return shared.AuditSummary{}, err
	}

	summary := shared.NewAuditSummary(cutoffDays, entries, now)
	summary.AccountId = a.resolveAccountId(ctx)
	sos.Infof("%s", summary.Message)

	a.notify(ctx, cfg.TopicArn, &summary)

	if cfg.ReportBucket != "" {
		a.export(ctx, cfg.ReportBucket, summary)
	}
	return summary, nil
}

func (a *_KeyAuditor) collectStaleKeys(ctx context.Context, auditDate time.Time, cutoffDays int) ([]shared.StaleKeyEntry, error) {
	sos := a.GetLogger()
	timeLimit := auditDate.AddDate(0, 0, -cutoffDays)
	entries := []shared.StaleKeyEntry{}

	userNames, err := a.directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, userName := range userNames {
		a.metricMgr.IncrementMetric(metricmgr.TotalUsers, 1)
		records, err := a.directory.ListAccessKeys(ctx, userName)
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			a.metricMgr.IncrementMetric(metricmgr.TotalAccessKeys, 1)
			created := dateOf(record.CreateDate)
			if created.After(timeLimit) {
				continue
			}
			ageInDays := DaysBetween(created, auditDate)
			sos.Debugf("access key [%s] of user [%s] is [%d] days old", record.AccessKeyId, userName, ageInDays)
			a.metricMgr.IncrementMetric(metricmgr.TotalStaleKeys, 1)
			entries = append(entries, shared.StaleKeyEntry{
				UserName:     userName,
				KeyAgeInDays: ageInDays,
				AccessKeyId:  record.AccessKeyId,
				Status:       record.Status,
			})
		}
	}
	return entries, nil
}

// notify probes then publishes the summary.  The outcome lands on the summary.
func (a *_KeyAuditor) notify(ctx context.Context, topicArn string, summary *shared.AuditSummary) {
	sos := a.GetLogger()
	summary.SnsNotification = false
	summary.NotificationError = ""

	if a.channel == nil {
		a.notificationFailed(summary, errormgr.Probe, topicArn, "notification channel is not set")
		return
	}
	if probe := a.channel.Probe(ctx, topicArn); !probe.Ok() {
		a.notificationFailed(summary, errormgr.Probe, topicArn, probe.Reason)
		return
	}

	// serialized before the outcome is known
	payload, err := json.MarshalIndent(summary, "", "    ")
	if err != nil {
		a.notificationFailed(summary, errormgr.Publish, topicArn, err.Error())
		return
	}
	result := a.channel.Publish(ctx, topicArn, shared.NotificationSubject, string(payload))
	if !result.Ok() {
		a.notificationFailed(summary, errormgr.Publish, topicArn, result.Reason)
		return
	}
	summary.SnsNotification = true
	sos.Infof("audit summary published to [%s]", topicArn)
}

func (a *_KeyAuditor) notificationFailed(summary *shared.AuditSummary, stage errormgr.Stage, topicArn string, reason string) {
	a.GetLogger().Errorf("notification failed at [%s] : %s", stage, reason)
	a.metricMgr.IncrementMetric(metricmgr.TotalFailedNotifications, 1)
	a.errorMgr.StoreError(errormgr.Error{
		Stage:       stage,
		Destination: topicArn,
		Message:     reason,
	})
	summary.SnsNotification = false
	summary.NotificationError = reason
}

func (a *_KeyAuditor) export(ctx context.Context, bucket string, summary shared.AuditSummary) {
	if a.exporter == nil {
		a.exportFailed(bucket, "exporter is not set")
		return
	}
	if _, err := a.exporter.ExportToS3(ctx, bucket, summary); err != nil {
		a.exportFailed(bucket, err.Error())
	}
}

func (a *_KeyAuditor) exportFailed(bucket string, reason string) {
	a.GetLogger().Errorf("report export to [%s] failed : %s", bucket, reason)
	a.metricMgr.IncrementMetric(metricmgr.TotalFailedExports, 1)
	a.errorMgr.StoreError(errormgr.Error{
		Stage:       errormgr.Export,
		Destination: bucket,
		Message:     reason,
	})
}

// account id is informational, failures only get logged
func (a *_KeyAuditor) resolveAccountId(ctx context.Context) string {
	if a.accounts == nil {
		return ""
	}
	accountId, err := a.accounts.GetAccountId(ctx)
	if err != nil {
		a.GetLogger().Errorf("unable to resolve account id : %v", err)
		a.errorMgr.StoreError(errormgr.Error{
			Stage:   errormgr.Account,
			Message: err.Error(),
		})
		return ""
	}
	return accountId
}

// get metric mgr
func (a *_KeyAuditor) GetMetricMgr() metricmgr.MetricMgr {
	return a.metricMgr
}

// get error mgr
func (a *_KeyAuditor) GetErrorMgr() errormgr.ErrorMgr {
	return a.errorMgr
}

// get logger
func (a *_KeyAuditor) GetLogger() logger.Logger {
	return a.logger
}
