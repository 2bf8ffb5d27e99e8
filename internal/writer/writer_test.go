package writer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
)

type fakeS3 struct {
	objects map[string][]byte
	err     error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestDeleteTempFile(t *testing.T) {
	assertion := assert.New(t)
	tempDir := t.TempDir()
	testFilename := "testfile.tmp"
	testFilePath := filepath.Join(tempDir, testFilename)
	assertion.NoError(os.WriteFile(testFilePath, []byte("test data"), 0644))

	w, err := Init(WriterInitConfig{S3Client: newFakeS3(), TempDir: tempDir})
	assertion.NoError(err)

	err = w.DeleteTempFile(testFilename)
	assertion.NoError(err)

	_, err = os.Stat(testFilePath)
	assertion.True(os.IsNotExist(err))

	assertion.Error(w.DeleteTempFile(testFilename))
}

func TestWriteCSV(t *testing.T) {
	assertion := assert.New(t)
	tempDir := t.TempDir()
	w, err := Init(WriterInitConfig{S3Client: newFakeS3(), TempDir: tempDir})
	assertion.NoError(err)

	fullPath, err := w.WriteCSV("report.csv", []string{"UserName", "KeyAgeInDays"}, [][]string{
		{"alice", "100"},
		{"bob, jr", "91"},
	})
	assertion.NoError(err)
	assertion.Equal(filepath.Join(tempDir, "report.csv"), fullPath)

	data, err := os.ReadFile(fullPath)
	assertion.NoError(err)
	assertion.Equal("UserName,KeyAgeInDays\nalice,100\n\"bob, jr\",91\n", string(data))

	_, err = w.WriteCSV(filepath.Join("missing", "report.csv"), []string{"h"}, nil)
	assertion.Error(err)
}

func TestExportToS3(t *testing.T) {
	assertion := assert.New(t)
	client := newFakeS3()
	w, err := Init(WriterInitConfig{S3Client: client})
	assertion.NoError(err)

	key, err := w.ExportToS3(context.Background(), "reports", "report.csv", "123456789012/2024-03-01", []byte("data"))
	assertion.NoError(err)
	assertion.Equal("123456789012/2024-03-01/report.csv", key)
	assertion.Equal([]byte("data"), client.objects["reports/123456789012/2024-03-01/report.csv"])

	// ####################################
	// ERRORS VALIDATION
	// ####################################
	client.err = errors.New("NoSuchBucket")
	key, err = w.ExportToS3(context.Background(), "non-existent-bucket", "report.csv", "", []byte("data"))
	assertion.Error(err)
	assertion.Empty(key)

	w, err = Init(WriterInitConfig{})
	assertion.Error(err)
	assertion.Nil(w)
}
