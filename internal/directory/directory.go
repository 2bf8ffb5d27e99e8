package directory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/iam-key-sentry/internal/shared"
)

// Directory enumerates identity users and their access keys.  Every call
// exhausts all pages before returning.
type Directory interface {
	// list all user names
	ListUsers(ctx context.Context) ([]string, error)
	// list all access keys of a user
	ListAccessKeys(ctx context.Context, userName string) ([]shared.CredentialRecord, error)
}

// IAMAPI is the part of the iam client the directory needs.
type IAMAPI interface {
	iam.ListUsersAPIClient
	iam.ListAccessKeysAPIClient
}

type _IAMDirectory struct {
	client IAMAPI
	logger logger.Logger
}

type IAMDirectoryInitConfig struct {
	Client IAMAPI
	Logger logger.Logger
}

func NewIAMDirectory(config IAMDirectoryInitConfig) Directory {
	sos := config.Logger
	if sos == nil {
		sos = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	return &_IAMDirectory{
		client: config.Client,
		logger: sos,
	}
}

// list all user names
func (d *_IAMDirectory) ListUsers(ctx context.Context) ([]string, error) {
	userNames := []string{}
	listUsersPaginator := iam.NewListUsersPaginator(d.client, &iam.ListUsersInput{})
	for listUsersPaginator.HasMorePages() {
		listUsersPage, err := listUsersPaginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing users: %w", err)
		}
		for _, user := range listUsersPage.Users {
			userNames = append(userNames, aws.ToString(user.UserName))
		}
	}
	d.logger.Debugf("listed [%d] users", len(userNames))
	return userNames, nil
}

// list all access keys of a user
func (d *_IAMDirectory) ListAccessKeys(ctx context.Context, userName string) ([]shared.CredentialRecord, error) {
	records := []shared.CredentialRecord{}
	listAccessKeysPaginator := iam.NewListAccessKeysPaginator(d.client, &iam.ListAccessKeysInput{
		UserName: aws.String(userName),
	})
	for listAccessKeysPaginator.HasMorePages() {
		listAccessKeysPage, err := listAccessKeysPaginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing access keys for user [%s]: %w", userName, err)
		}
		for _, key := range listAccessKeysPage.AccessKeyMetadata {
			records = append(records, shared.CredentialRecord{
				UserName:    userName,
				AccessKeyId: aws.ToString(key.AccessKeyId),
				Status:      string(key.Status),
				CreateDate:  aws.ToTime(key.CreateDate),
			})
		}
	}
	d.logger.Debugf("listed [%d] access keys for user [%s]", len(records), userName)
	return records, nil
}
