package notifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/iam-key-sentry/internal/shared"
)

type Outcome string

const (
	Reachable Outcome = "REACHABLE"
	Delivered Outcome = "DELIVERED"
	Failed    Outcome = "FAILED"

	fifoMessageGroupId string = "iam-key-sentry"
)

// Result is the outcome of a probe or publish.  A successful probe is
// Reachable and a successful publish is Delivered.  Failures never surface
// as errors; Reason explains a Failed outcome.
type Result struct {
	Outcome   Outcome
	MessageId string
	Reason    string
}

func (r Result) Ok() bool {
	return r.Outcome == Reachable || r.Outcome == Delivered
}

func failed(format string, args ...interface{}) Result {
	return Result{
		Outcome: Failed,
		Reason:  fmt.Sprintf(format, args...),
	}
}

// Channel delivers messages to a notification destination on a best-effort basis.
type Channel interface {
	// check that the destination exists and is reachable
	Probe(ctx context.Context, destination string) Result
	// publish payload to destination
	Publish(ctx context.Context, destination string, subject string, payload string) Result
}

// SNSAPI is the part of the sns client the channel needs.
type SNSAPI interface {
	GetTopicAttributes(ctx context.Context, params *sns.GetTopicAttributesInput, optFns ...func(*sns.Options)) (*sns.GetTopicAttributesOutput, error)
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type _SNSChannel struct {
	client SNSAPI
	logger logger.Logger
}

type SNSChannelInitConfig struct {
	Client SNSAPI
	Logger logger.Logger
}

func NewSNSChannel(config SNSChannelInitConfig) Channel {
	sos := config.Logger
	if sos == nil {
		sos = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	return &_SNSChannel{
		client: config.Client,
		logger: sos,
	}
}

// probe topic with GetTopicAttributes
func (c *_SNSChannel) Probe(ctx context.Context, topicArn string) Result {
	if !shared.IsValidTopicArn(topicArn) {
		return failed("invalid topic arn [%s]", topicArn)
	}
	if c.client == nil {
		return failed("sns client not set")
	}
	_, err := c.client.GetTopicAttributes(ctx, &sns.GetTopicAttributesInput{
		TopicArn: aws.String(topicArn),
	})
	if err != nil {
		c.logger.Errorf("probe of topic [%s] failed : %v", topicArn, err)
		return failed("probing topic [%s]: %v", topicArn, err)
	}
	return Result{Outcome: Reachable}
}

// publish payload to topic
func (c *_SNSChannel) Publish(ctx context.Context, topicArn string, subject string, payload string) Result {
	if !shared.IsValidTopicArn(topicArn) {
		return failed("invalid topic arn [%s]", topicArn)
	}
	if c.client == nil {
		return failed("sns client not set")
	}
	input := &sns.PublishInput{
		TopicArn: aws.String(topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(payload),
	}
	if shared.IsFifoTopic(topicArn) {
		sum := sha256.Sum256([]byte(payload))
		input.MessageGroupId = aws.String(fifoMessageGroupId)
		input.MessageDeduplicationId = aws.String(hex.EncodeToString(sum[:]))
	}
	output, err := c.client.Publish(ctx, input)
	if err != nil {
		c.logger.Errorf("publish to topic [%s] failed : %v", topicArn, err)
		return failed("publishing to topic [%s]: %v", topicArn, err)
	}
	messageId := aws.ToString(output.MessageId)
	c.logger.Infof("published message [%s] to topic [%s]", messageId, topicArn)
	return Result{
		Outcome:   Delivered,
		MessageId: messageId,
	}
}
