package client

import (
	"context"
	"time"

	"hotelbook/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// SetDynamo builds a DynamoDB client. A non-empty endpoint targets a local
// DynamoDB with static credentials.
func (c *Client) SetDynamo(log *logger.Logger, region, endpoint string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithClientLogMode(aws.LogRetries),
	)
	if err != nil {
		log.Fatal("Unable to load AWS SDK config", "error", err)
	}

	c.Dynamo = dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.Credentials = credentials.NewStaticCredentialsProvider("local", "local", "")
		}
	})
	log.Info("DynamoDB client configured", "region", region, "local_endpoint", endpoint != "")
}
