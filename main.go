package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/iam-key-sentry/handle"
	"github.com/outofoffice3/iam-key-sentry/internal/auditor"
	"github.com/outofoffice3/iam-key-sentry/internal/awsclientmgr"
	"github.com/outofoffice3/iam-key-sentry/internal/directory"
	"github.com/outofoffice3/iam-key-sentry/internal/exporter"
	"github.com/outofoffice3/iam-key-sentry/internal/notifier"
	"github.com/outofoffice3/iam-key-sentry/internal/shared"
	"github.com/outofoffice3/iam-key-sentry/internal/writer"
)

var (
	sdkConfig aws.Config
)

func handler(ctx context.Context, event events.CloudWatchEvent) (shared.AuditSummary, error) {
	// settings are re-read on every invocation
	cfg, err := shared.LoadConfig(os.LookupEnv)
	if err != nil {
		return shared.AuditSummary{}, err
	}
	sos := newLogger(cfg.LogLevel)
	sos.Debugf("config [%+v]", cfg)

	keyAuditor, err := newKeyAuditor(cfg, sos)
	if err != nil {
		sos.Errorf("failed to create key auditor, %v", err)
		return shared.AuditSummary{}, err
	}
	return handle.HandleScheduledEvent(ctx, event, cfg, keyAuditor)
}

func newKeyAuditor(cfg shared.Config, sos logger.Logger) (auditor.KeyAuditor, error) {
	awscm, err := awsclientmgr.Init(awsclientmgr.AWSClientMgrInitConfig{
		Cfg:          sdkConfig,
		AuditRoleArn: cfg.AuditRoleArn,
		Logger:       sos,
	})
	if err != nil {
		return nil, err
	}
	iamClient, err := getClient[*iam.Client](awscm, awsclientmgr.IAM)
	if err != nil {
		return nil, err
	}
	snsClient, err := getClient[*sns.Client](awscm, awsclientmgr.SNS)
	if err != nil {
		return nil, err
	}
	s3Client, err := getClient[*s3.Client](awscm, awsclientmgr.S3)
	if err != nil {
		return nil, err
	}

	reportWriter, err := writer.Init(writer.WriterInitConfig{
		S3Client: s3Client,
	})
	if err != nil {
		return nil, err
	}
	reportExporter, err := exporter.Init(exporter.ExporterInitConfig{
		Writer: reportWriter,
		Logger: sos,
	})
	if err != nil {
		return nil, err
	}

	return auditor.Init(auditor.KeyAuditorInitConfig{
		Directory: directory.NewIAMDirectory(directory.IAMDirectoryInitConfig{
			Client: iamClient,
			Logger: sos,
		}),
		Channel: notifier.NewSNSChannel(notifier.SNSChannelInitConfig{
			Client: snsClient,
			Logger: sos,
		}),
		Exporter: reportExporter,
		Accounts: awscm,
		Logger:   sos,
	}), nil
}

// getClient fetches a client from the client mgr and checks its type.
func getClient[T any](awscm awsclientmgr.AWSClientMgr, serviceName awsclientmgr.AWSServiceName) (T, error) {
	var zero T
	client, ok := awscm.GetSDKClient(serviceName)
	if !ok {
		return zero, fmt.Errorf("[%s] client not loaded", serviceName)
	}
	typed, ok := client.(T)
	if !ok {
		return zero, fmt.Errorf("[%s] client has unexpected type [%T]", serviceName, client)
	}
	return typed, nil
}

func newLogger(level shared.LogLevel) logger.Logger {
	if level == shared.LogLevelDebug {
		return logger.NewConsoleLogger(logger.LogLevelDebug)
	}
	return logger.NewConsoleLogger(logger.LogLevelInfo)
}

func main() {
	lambda.Start(handler)
}

func init() {
	logger := logger.NewConsoleLogger(logger.LogLevelInfo)
	logger.Infof("main init started")
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Errorf("failed to load SDK config, %v", err)
		panic("failed to load sdk config")
	}
	sdkConfig = cfg
	logger.Infof("SDK config loaded for region [%s]", cfg.Region)
}
