package shared

import (
	"regexp"
	"strings"
)

// arn:<partition>:sns:<region>:<account>:<topic>[.fifo]
var topicArnRegex = regexp.MustCompile(`^arn:aws[a-zA-Z-]*:sns:[a-z0-9-]+:[0-9]{12}:[A-Za-z0-9_-]{1,256}(\.fifo)?$`)

// validate sns topic arn
func IsValidTopicArn(arn string) bool {
	return topicArnRegex.MatchString(arn)
}

// fifo topics need a message group id on publish
func IsFifoTopic(arn string) bool {
	return strings.HasSuffix(arn, ".fifo")
}

// validate log level
func IsValidLogLevel(level string) bool {
	switch LogLevel(strings.ToLower(level)) {
	case LogLevelDebug, LogLevelInfo:
		return true
	}
	return false
}
