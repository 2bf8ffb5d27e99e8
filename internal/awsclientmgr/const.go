package awsclientmgr

type AWSServiceName string

const (
	IAM AWSServiceName = "IAM"
	SNS AWSServiceName = "SNS"
	S3  AWSServiceName = "S3"
)
