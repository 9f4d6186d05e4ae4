package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eleven-am/janus/internal/domain"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultParallelism = 10
)

// gateway-capable service families. An existing Gateway endpoint for one of
// these makes an Interface endpoint for the same service redundant and its
// DNS resolution ambiguous, so the service is suppressed instead.
var gatewaySuffixes = []string{".s3", ".dynamodb"}

type Resolver struct {
	client      domain.EC2Client
	timeout     time.Duration
	parallelism int
}

type Option func(*Resolver)

func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithParallelism(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

func New(client domain.EC2Client, opts ...Option) *Resolver {
	r := &Resolver{
		client:      client,
		timeout:     defaultTimeout,
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve computes, per requested service, the ordered subnets an Interface
// endpoint can attach to. All services resolve or none do: any provider
// failure aborts the whole call so the consumer never sees a partial mapping.
func (r *Resolver) Resolve(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := r.client.VerifyVPC(ctx, req.VPCID); err != nil {
		return nil, asTimeout(err)
	}

	subnets, err := r.discoverZones(ctx, req)
	if err != nil {
		return nil, asTimeout(err)
	}

	gateways, err := r.gatewayServices(ctx, req)
	if err != nil {
		return nil, asTimeout(err)
	}

	results := make([]domain.ServiceResult, len(req.ServiceNames))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for i, name := range req.ServiceNames {
		i, name := i, name
		g.Go(func() error {
			avail, err := r.client.GetServiceAvailability(gCtx, name)
			if err != nil {
				return err
			}
			results[i] = resolveService(name, avail, subnets, gateways)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, asTimeout(err)
	}

	result := &domain.Result{
		ServiceNames: append([]string(nil), req.ServiceNames...),
		Subnets:      subnets,
		Services:     make(map[string]domain.ServiceResult, len(results)),
	}
	for _, sr := range results {
		result.Services[sr.ServiceName] = sr
	}
	return result, nil
}

func validate(req domain.Request) error {
	if req.VPCID == "" {
		return &domain.ValidationError{Field: "vpcID", Reason: "must not be empty"}
	}
	if len(req.Subnets) == 0 {
		return &domain.ValidationError{Field: "subnets", Reason: "must not be empty"}
	}
	seenSubnets := make(map[string]bool, len(req.Subnets))
	for _, sn := range req.Subnets {
		if sn.ID == "" {
			return &domain.ValidationError{Field: "subnets", Reason: "subnet id must not be empty"}
		}
		if seenSubnets[sn.ID] {
			return &domain.ValidationError{Field: "subnets", Reason: fmt.Sprintf("duplicate subnet id %s", sn.ID)}
		}
		seenSubnets[sn.ID] = true
	}
	if len(req.ServiceNames) == 0 {
		return &domain.ValidationError{Field: "serviceNames", Reason: "must not be empty"}
	}
	seenServices := make(map[string]bool, len(req.ServiceNames))
	for _, name := range req.ServiceNames {
		if name == "" {
			return &domain.ValidationError{Field: "serviceNames", Reason: "service name must not be empty"}
		}
		if seenServices[name] {
			return &domain.ValidationError{Field: "serviceNames", Reason: fmt.Sprintf("duplicate service name %s", name)}
		}
		seenServices[name] = true
	}
	return nil
}

// discoverZones fills in availability zones the caller left empty, verifying
// the subnets against the provider. Zones supplied by the caller are trusted.
func (r *Resolver) discoverZones(ctx context.Context, req domain.Request) ([]domain.Subnet, error) {
	var missing []string
	for _, sn := range req.Subnets {
		if sn.AvailabilityZone == "" {
			missing = append(missing, sn.ID)
		}
	}
	if len(missing) == 0 {
		return req.Subnets, nil
	}

	zones, err := r.client.GetSubnetZones(ctx, req.VPCID, missing)
	if err != nil {
		return nil, err
	}

	subnets := make([]domain.Subnet, len(req.Subnets))
	copy(subnets, req.Subnets)
	for i := range subnets {
		if subnets[i].AvailabilityZone == "" {
			subnets[i].AvailabilityZone = zones[subnets[i].ID]
		}
	}
	return subnets, nil
}

// gatewayServices lists existing Gateway endpoints in the VPC, but only when a
// requested service could actually collide with one.
func (r *Resolver) gatewayServices(ctx context.Context, req domain.Request) (map[string]bool, error) {
	needed := false
	for _, name := range req.ServiceNames {
		if gatewayCapable(name) {
			needed = true
			break
		}
	}
	if !needed {
		return nil, nil
	}

	names, err := r.client.GetGatewayEndpointServices(ctx, req.VPCID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set, nil
}

func resolveService(name string, avail *domain.ServiceAvailability, subnets []domain.Subnet, gateways map[string]bool) domain.ServiceResult {
	if gateways[name] {
		return domain.ServiceResult{ServiceName: name, Reason: domain.ReasonGatewayConflict}
	}

	zones := make(map[string]bool, len(avail.AvailabilityZones))
	for _, zone := range avail.AvailabilityZones {
		zones[zone] = true
	}

	var ids []string
	for _, sn := range subnets {
		if zones[sn.AvailabilityZone] {
			ids = append(ids, sn.ID)
		}
	}
	if len(ids) == 0 {
		return domain.ServiceResult{ServiceName: name, Reason: domain.ReasonNoZoneOverlap}
	}
	return domain.ServiceResult{ServiceName: name, SubnetIDs: ids, Reason: domain.ReasonResolved}
}

func gatewayCapable(serviceName string) bool {
	for _, suffix := range gatewaySuffixes {
		if strings.HasSuffix(serviceName, suffix) {
			return true
		}
	}
	return false
}

// asTimeout normalizes a raw deadline expiry into the timeout error kind, so
// callers can tell "too slow" apart from "provider rejected" regardless of
// which layer observed the deadline first.
func asTimeout(err error) error {
	if domain.IsTimeout(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Err: err}
	}
	return err
}
