package awsclientmgr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/outofoffice3/common/logger"
)

type AWSClientMgr interface {
	// set aws sdk client
	SetSDKClient(name AWSServiceName, client interface{}) error
	// get aws sdk client
	GetSDKClient(name AWSServiceName) (interface{}, bool)
	// resolve the account id of the audited account
	GetAccountId(ctx context.Context) (string, error)
}

// callerIdentityAPI is the subset of the sts client used to resolve the account id.
type callerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type _AWSClientMgr struct {
	iamClient *iam.Client
	snsClient *sns.Client
	s3Client  *s3.Client
	identity  callerIdentityAPI
	accountId string
	logger    logger.Logger
}

type AWSClientMgrInitConfig struct {
	Cfg          aws.Config
	AuditRoleArn string
	Logger       logger.Logger
}

// Init builds the sdk clients from one aws config.  When an audit role is
// given, iam and sts calls for the audited account go through assumed role
// credentials; sns and s3 always use the function's own credentials.
func Init(pkgConfig AWSClientMgrInitConfig) (AWSClientMgr, error) {
	sos := pkgConfig.Logger
	if sos == nil {
		sos = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	awsclient := &_AWSClientMgr{
		logger: sos,
	}

	cfg := pkgConfig.Cfg.Copy()
	auditCfg := cfg.Copy()
	if pkgConfig.AuditRoleArn != "" {
		sos.Infof("assuming role [%s] for audit", pkgConfig.AuditRoleArn)
		creds := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), pkgConfig.AuditRoleArn)
		auditCfg.Credentials = aws.NewCredentialsCache(creds)
	}
	awsclient.identity = sts.NewFromConfig(auditCfg)

	errMsgs := []string{}
	for serviceName, client := range map[AWSServiceName]interface{}{
		SNS: sns.NewFromConfig(cfg),
		S3:  s3.NewFromConfig(cfg),
		IAM: iam.NewFromConfig(auditCfg),
	} {
		if err := awsclient.SetSDKClient(serviceName, client); err != nil {
			errMsgs = append(errMsgs, err.Error())
		}
	}
	if len(errMsgs) > 0 {
		return nil, errors.New("error loading sdk clients: " + strings.Join(errMsgs, " | "))
	}

	sos.Debugf("sdk clients loaded")
	return awsclient, nil
}

func NewAWSClientMgr(sos logger.Logger) AWSClientMgr {
	return &_AWSClientMgr{
		logger: sos,
	}
}

// set aws sdk client
func (a *_AWSClientMgr) SetSDKClient(serviceName AWSServiceName, client interface{}) error {
	if client == nil {
		return errors.New("client is nil")
	}
	switch serviceName {
	case IAM: // IAM - Identity and Access Management
		{
			clientAssert, ok := client.(*iam.Client)
			if !ok {
				return fmt.Errorf("client is not an [%s] client", serviceName)
			}
			a.iamClient = clientAssert
		}
	case SNS: // SNS - Simple Notification Service
		{
			clientAssert, ok := client.(*sns.Client)
			if !ok {
				return fmt.Errorf("client is not an [%s] client", serviceName)
			}
			a.snsClient = clientAssert
		}
	case S3: // S3 - Simple Storage Service
		{
			clientAssert, ok := client.(*s3.Client)
			if !ok {
				return fmt.Errorf("client is not an [%s] client", serviceName)
			}
			a.s3Client = clientAssert
		}
	default:
		{
			return errors.New("invalid service name")
		}
	}
	return nil
}

// get aws sdk client
func (a *_AWSClientMgr) GetSDKClient(serviceName AWSServiceName) (interface{}, bool) {
	switch serviceName {
	case IAM:
		if a.iamClient != nil {
			return a.iamClient, true
		}
	case SNS:
		if a.snsClient != nil {
			return a.snsClient, true
		}
	case S3:
		if a.s3Client != nil {
			return a.s3Client, true
		}
	default:
		{
			a.logger.Debugf("unknown service name [%s]", serviceName)
		}
	}
	return nil, false
}

// get account id, cached after the first successful call
func (a *_AWSClientMgr) GetAccountId(ctx context.Context) (string, error) {
	if a.accountId != "" {
		return a.accountId, nil
	}
	if a.identity == nil {
		return "", errors.New("sts client not set")
	}
	output, err := a.identity.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("getting caller identity: %w", err)
	}
	a.accountId = aws.ToString(output.Account)
	return a.accountId, nil
}
