package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	config "github.com/campfireagency/socialpress/configs"
)

// MediaResolver turns a content item's media locator into a publicly
// reachable URL the platforms can fetch.
type MediaResolver interface {
	Resolve(ctx context.Context, locator string) (string, error)
}

// r2Locator prefixes object keys in the R2 media bucket; absolute URLs are
// passed through untouched.
const r2LocatorPrefix = "r2:"

type R2Service struct {
	config config.Config
}

func NewR2Service(cfg config.Config) *R2Service {
	return &R2Service{config: cfg}
}

func (r *R2Service) R2Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.R2.AccessKey, r.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.R2.AccountID))
	}), nil
}

// Resolve maps an r2: object key to its public bucket URL after checking the
// object exists. Anything that already looks like a URL is returned as-is.
func (r *R2Service) Resolve(ctx context.Context, locator string) (string, error) {
	if locator == "" {
		return "", nil
	}
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		return locator, nil
	}

	key := strings.TrimPrefix(locator, r2LocatorPrefix)
	if key == "" {
		return "", fmt.Errorf("empty media object key in locator %q", locator)
	}

	client, err := r.R2Client(ctx)
	if err != nil {
		return "", err
	}

	_, err = client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.config.R2.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("media object %s not found in storage", key)
	}

	return fmt.Sprintf("%s/%s", strings.TrimRight(r.config.R2.PublicBaseURL, "/"), key), nil
}
