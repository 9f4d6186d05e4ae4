package aws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/eleven-am/janus/internal/domain"
)

type credentialEntry struct {
	creds      domain.Credentials
	expiration time.Time
}

type stsAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// ProviderContext hands out per-account EC2 clients for provisioning runs that
// resolve endpoints in member accounts. Credentials come from an assumed role;
// the base config is injected, never read from the process environment.
type ProviderContext struct {
	baseConfig      aws.Config
	roleARNPattern  string
	stsClient       stsAPI
	credentialCache map[string]credentialEntry
	clientPool      map[string]*Client
	mu              sync.RWMutex
}

func NewProviderContext(cfg aws.Config, roleARNPattern string) *ProviderContext {
	if roleARNPattern == "" {
		roleARNPattern = "arn:aws:iam::%s:role/EndpointZoneResolverRole"
	}
	return &ProviderContext{
		baseConfig:      cfg,
		roleARNPattern:  roleARNPattern,
		stsClient:       sts.NewFromConfig(cfg),
		credentialCache: make(map[string]credentialEntry),
		clientPool:      make(map[string]*Client),
	}
}

func (p *ProviderContext) AssumeRole(ctx context.Context, accountID string) (domain.Credentials, error) {
	p.mu.RLock()
	entry, exists := p.credentialCache[accountID]
	p.mu.RUnlock()

	if exists && time.Now().Add(5*time.Minute).Before(entry.expiration) {
		return entry.creds, nil
	}

	roleARN := fmt.Sprintf(p.roleARNPattern, accountID)
	sessionName := fmt.Sprintf("endpoint-zone-resolver-%s", accountID)

	out, err := p.stsClient.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(sessionName),
		DurationSeconds: aws.Int32(3600),
	})
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("assume role %s: %w", roleARN, err)
	}

	creds := domain.Credentials{
		AccessKeyID:     derefString(out.Credentials.AccessKeyId),
		SecretAccessKey: derefString(out.Credentials.SecretAccessKey),
		SessionToken:    derefString(out.Credentials.SessionToken),
		Expiration:      *out.Credentials.Expiration,
	}

	p.mu.Lock()
	p.credentialCache[accountID] = credentialEntry{
		creds:      creds,
		expiration: creds.Expiration,
	}
	p.mu.Unlock()

	return creds, nil
}

func (p *ProviderContext) GetClient(ctx context.Context, accountID string) (domain.EC2Client, error) {
	p.mu.RLock()
	client, exists := p.clientPool[accountID]
	entry, hasEntry := p.credentialCache[accountID]
	p.mu.RUnlock()

	if exists && hasEntry && time.Now().Add(5*time.Minute).Before(entry.expiration) {
		return client, nil
	}

	creds, err := p.AssumeRole(ctx, accountID)
	if err != nil {
		return nil, err
	}

	cfg := p.baseConfig.Copy()
	cfg.Credentials = credentials.NewStaticCredentialsProvider(
		creds.AccessKeyID,
		creds.SecretAccessKey,
		creds.SessionToken,
	)

	client = NewClient(cfg, accountID, cfg.Region)

	p.mu.Lock()
	p.clientPool[accountID] = client
	p.mu.Unlock()

	return client, nil
}
