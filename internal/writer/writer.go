package writer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Writer writes report files to local temp storage and to s3.
type Writer interface {
	// Write data to s3 bucket, returns the full object key
	ExportToS3(ctx context.Context, bucket, key, prefix string, data []byte) (string, error)
	// Write csv file to the temp directory
	WriteCSV(filename string, header []string, records [][]string) (string, error)
	// Deletes file from the temp directory
	DeleteTempFile(filename string) error
}

// S3API is the part of the s3 client the writer needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type _Writer struct {
	s3Client S3API
	tempDir  string
}

type WriterInitConfig struct {
	S3Client S3API
	// defaults to os.TempDir(), which is /tmp on lambda
	TempDir string
}

func Init(config WriterInitConfig) (Writer, error) {
	if config.S3Client == nil {
		return nil, errors.New("s3 client is not set")
	}
	tempDir := config.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &_Writer{
		s3Client: config.S3Client,
		tempDir:  tempDir,
	}, nil
}

// DeleteTempFile deletes a file from the temp directory.
func (w *_Writer) DeleteTempFile(filename string) error {
	fullPath := filepath.Join(w.tempDir, filename)
	return os.Remove(fullPath)
}

// WriteCSV writes CSV records to a file in the temp directory.
func (w *_Writer) WriteCSV(filename string, header []string, records [][]string) (string, error) {
	fullPath := filepath.Join(w.tempDir, filename)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return "", err
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}
	writer.Flush()

	// Check for errors from the CSV writer
	if err := writer.Error(); err != nil {
		return "", err
	}
	return fullPath, nil
}

// ExportToS3 uploads data to an S3 bucket.
func (w *_Writer) ExportToS3(ctx context.Context, bucket, key, prefix string, data []byte) (string, error) {
	// s3 keys always use forward slashes
	fullKey := path.Join(prefix, key)
	_, err := w.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", err
	}
	return fullKey, nil
}
