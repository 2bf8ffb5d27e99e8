package metricmgr

type Metric string

const (
	TotalUsers      Metric = "totalUsers"
	TotalAccessKeys Metric = "totalAccessKeys"
	TotalStaleKeys  Metric = "totalStaleKeys"

	TotalFailedNotifications Metric = "totalFailedNotifications"
	TotalFailedExports       Metric = "totalFailedExports"
)

// AllMetrics lists every metric in reporting order.
var AllMetrics = []Metric{
	TotalUsers,
	TotalAccessKeys,
	TotalStaleKeys,
	TotalFailedNotifications,
	TotalFailedExports,
}
