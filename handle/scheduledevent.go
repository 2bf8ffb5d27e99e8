package handle

import (
	"context"
	"sort"

	"github.com/aws/aws-lambda-go/events"
	"github.com/outofoffice3/iam-key-sentry/internal/auditor"
	"github.com/outofoffice3/iam-key-sentry/internal/metricmgr"
	"github.com/outofoffice3/iam-key-sentry/internal/shared"
)

// HandleScheduledEvent runs one audit for a scheduled invocation.  The event
// only gets logged.
func HandleScheduledEvent(ctx context.Context, event events.CloudWatchEvent, cfg shared.Config, keyAuditor auditor.KeyAuditor) (shared.AuditSummary, error) {
	sos := keyAuditor.GetLogger()
	sos.Debugf("scheduled event id [%s] time [%v]", event.ID, event.Time)
	sos.Infof("auditing access keys older than [%d] days", cfg.KeyAgeCutoffDays)

	summary, err := keyAuditor.Audit(ctx, cfg)
	if err != nil {
		sos.Errorf("audit failed : %v", err)
		return shared.AuditSummary{}, err
	}

	logMetrics(keyAuditor)
	for _, recovered := range keyAuditor.GetErrorMgr().GetErrors() {
		sos.Errorf("recovered error : %v", recovered)
	}
	sos.Infof("audit complete, notification sent [%v]", summary.SnsNotification)
	return summary, nil
}

func logMetrics(keyAuditor auditor.KeyAuditor) {
	sos := keyAuditor.GetLogger()
	snapshot := keyAuditor.GetMetricMgr().Snapshot()
	names := make([]string, 0, len(snapshot))
	for metric := range snapshot {
		names = append(names, string(metric))
	}
	sort.Strings(names)
	for _, name := range names {
		sos.Infof("%s [%d]", name, snapshot[metricmgr.Metric(name)])
	}
}
