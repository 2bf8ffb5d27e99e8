package exporter

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/iam-key-sentry/internal/shared"
	"github.com/outofoffice3/iam-key-sentry/internal/writer"
)

// Exporter writes the stale key entries of an audit summary as a csv report.
type Exporter interface {
	// export summary entries to s3, returns the object key
	ExportToS3(ctx context.Context, bucket string, summary shared.AuditSummary) (string, error)
	// get logger
	GetLogger() logger.Logger
}

type _Exporter struct {
	writer writer.Writer
	logger logger.Logger
}

type ExporterInitConfig struct {
	Writer writer.Writer
	Logger logger.Logger
}

func Init(config ExporterInitConfig) (Exporter, error) {
	if config.Writer == nil {
		return nil, errors.New("writer is not set")
	}
	sos := config.Logger
	if sos == nil {
		sos = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	return &_Exporter{
		writer: config.Writer,
		logger: sos,
	}, nil
}

// ExportToS3 uploads the report to {accountId}/{date}/stale-access-keys.csv.
func (e *_Exporter) ExportToS3(ctx context.Context, bucket string, summary shared.AuditSummary) (string, error) {
	sos := e.GetLogger()
	if bucket == "" {
		return "", errors.New("report bucket is not set")
	}
	filename := string(shared.ReportFileName)
	fullPath, err := e.writer.WriteCSV(filename, ReportHeader, ToRecords(summary))
	if err != nil {
		sos.Errorf("error writing report [%s] : %v", filename, err)
		return "", err
	}
	defer func() {
		if err := e.writer.DeleteTempFile(filename); err != nil {
			sos.Errorf("error deleting temp file [%s] : %v", fullPath, err)
		}
	}()
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", err
	}
	key, err := e.writer.ExportToS3(ctx, bucket, filename, ReportPrefix(summary), data)
	if err != nil {
		sos.Errorf("error uploading report to s3 bucket [%s] : %v", bucket, err)
		return "", err
	}
	sos.Infof("report uploaded to s3://%s/%s", bucket, key)
	return key, nil
}

// get logger
func (e *_Exporter) GetLogger() logger.Logger {
	return e.logger
}

// ToRecords converts entries to csv records in summary order.
func ToRecords(summary shared.AuditSummary) [][]string {
	records := make([][]string, 0, len(summary.Users))
	for _, entry := range summary.Users {
		records = append(records, []string{
			entry.UserName,
			entry.AccessKeyId,
			entry.Status,
			strconv.Itoa(entry.KeyAgeInDays),
		})
	}
	return records
}

// ReportPrefix is {accountId}/{yyyy-mm-dd} of the run.
func ReportPrefix(summary shared.AuditSummary) string {
	accountId := summary.AccountId
	if accountId == "" {
		accountId = shared.UnknownAccountId
	}
	date := time.Now().UTC().Format(dateLayout)
	if generatedAt, err := time.Parse(time.RFC3339, summary.GeneratedAt); err == nil {
		date = generatedAt.UTC().Format(dateLayout)
	}
	return accountId + "/" + date
}
