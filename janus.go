package janus

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	internalaws "github.com/eleven-am/janus/internal/aws"
	"github.com/eleven-am/janus/internal/domain"
	"github.com/eleven-am/janus/internal/resolver"
)

// NewClient creates an EC2-backed provider client for one account and region.
// The aws.Config is injected by the caller; the library never reads credentials
// or region from the process environment.
func NewClient(cfg aws.Config, accountID, region string) EC2Client {
	return internalaws.NewClient(cfg, accountID, region)
}

// NewProviderContext creates a provider context for cross-account access.
// The roleARNPattern should contain %s as a placeholder for the account ID.
// Example: "arn:aws:iam::%s:role/EndpointZoneResolverRole"
func NewProviderContext(cfg aws.Config, roleARNPattern string) *ProviderContext {
	return internalaws.NewProviderContext(cfg, roleARNPattern)
}

// NewResolver creates an availability-zone compatibility resolver on top of a
// provider client. Use WithTimeout and WithParallelism to tune the overall
// budget and the per-service query fan-out.
func NewResolver(client EC2Client, opts ...Option) *Resolver {
	return resolver.New(client, opts...)
}

// Resolve determines, per requested endpoint service, which of the candidate
// subnets an Interface endpoint can be created in. The result carries exactly
// one entry per requested service; an entry is empty when no subnet zone
// overlaps the service's supported zones or when an existing Gateway endpoint
// for the same service makes an Interface endpoint conflicting.
func Resolve(ctx context.Context, client EC2Client, req Request, opts ...Option) (*Result, error) {
	return resolver.New(client, opts...).Resolve(ctx, req)
}

// WithTimeout sets the overall resolution budget applied when the caller's
// context carries no deadline.
func WithTimeout(d time.Duration) Option {
	return resolver.WithTimeout(d)
}

// WithParallelism bounds how many per-service queries run concurrently.
func WithParallelism(n int) Option {
	return resolver.WithParallelism(n)
}

// AttributeName converts a service name into the attribute key the
// provisioning layer reads, e.g. com.amazonaws.us-east-1.s3 ->
// ComAmazonawsUsEast1S3Subnets.
func AttributeName(serviceName string) string {
	return domain.AttributeName(serviceName)
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool { return domain.IsValidation(err) }

// IsNotFound reports whether err means the provider does not know the
// referenced VPC, subnet, or endpoint service. Not retryable.
func IsNotFound(err error) bool { return domain.IsNotFound(err) }

// IsTransient reports whether err is worth retrying as a whole operation
// after the SDK's own bounded retries were exhausted.
func IsTransient(err error) bool { return domain.IsTransient(err) }

// IsTimeout reports whether the resolution exceeded its time budget.
func IsTimeout(err error) bool { return domain.IsTimeout(err) }
