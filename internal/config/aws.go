package config

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// AWS holds the settings used to reach SES.
// Empty fields fall back to the SDK's default resolution chain.
type AWS struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Endpoint        string
}

// LoadAWS reads AWS settings from the environment. Missing values are not an
// error here; they surface when the first request is signed or sent.
func LoadAWS() AWS {
	return AWS{
		AccessKeyID:     firstEnv("ACCESS_KEY_ID_AWS", "AWS_ACCESS_KEY_ID"),
		SecretAccessKey: firstEnv("SECRET_ACCESS_KEY_AWS", "AWS_SECRET_ACCESS_KEY"),
		Region:          firstEnv("REGION_AWS", "AWS_REGION"),
		Endpoint:        os.Getenv("SES_ENDPOINT"),
	}
}

// HasStaticCredentials reports whether an explicit key pair was supplied.
func (a AWS) HasStaticCredentials() bool {
	return a.AccessKeyID != "" || a.SecretAccessKey != ""
}

// SDKConfig builds an aws.Config from the settings.
func (a AWS) SDKConfig(ctx context.Context) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if a.Region != "" {
		opts = append(opts, awsconfig.WithRegion(a.Region))
	}
	if a.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(a.AccessKeyID, a.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	return cfg, nil
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
