package awscloudwatch

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/src-bin/adk/awscfg"
	"github.com/src-bin/adk/awsutil"
)

const ResourceAlreadyExistsException = "ResourceAlreadyExistsException"

// EnsureLogGroup creates the named log group, if necessary, and sets its
// retention. Creating it ahead of a Lambda function is the only way to keep
// the function's logs from being retained forever.
func EnsureLogGroup(ctx context.Context, cfg *awscfg.Config, name string, retention /* in days */ int) error {
	client := cfg.CloudWatchLogs()

	_, err := client.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil && !awsutil.ErrorCodeIs(err, ResourceAlreadyExistsException) {
		return err
	}

	_, err = client.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
		LogGroupName:    aws.String(name),
		RetentionInDays: aws.Int32(int32(retention)),
	})
	return err
}
