package domain

import (
	"context"
	"time"
)

type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      time.Time
}

type ClientProvider interface {
	AssumeRole(ctx context.Context, accountID string) (Credentials, error)
	GetClient(ctx context.Context, accountID string) (EC2Client, error)
}

type EC2Client interface {
	VerifyVPC(ctx context.Context, vpcID string) error
	GetSubnetZones(ctx context.Context, vpcID string, subnetIDs []string) (map[string]string, error)
	GetServiceAvailability(ctx context.Context, serviceName string) (*ServiceAvailability, error)
	GetGatewayEndpointServices(ctx context.Context, vpcID string) ([]string, error)
}
