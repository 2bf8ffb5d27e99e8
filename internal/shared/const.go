package shared

const (
	EnvKeyAgeCutoff EnvVar = "key_age_cutoff_in_days"
	EnvTopicArn     EnvVar = "sec_ops_topic_arn"
	EnvReportBucket EnvVar = "report_bucket_name"
	EnvAuditRoleArn EnvVar = "audit_role_arn"
	EnvLogLevel     EnvVar = "log_level"

	DefaultKeyAgeCutoffDays int = 90

	ReportFileName      S3ObjectKey = "stale-access-keys.csv"
	UnknownAccountId    string      = "unknown"
	NotificationSubject string      = "IAM Key Sentry: stale access keys"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
