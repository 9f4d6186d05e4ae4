package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/eleven-am/janus/internal/domain"
)

type mockEC2Client struct {
	mu sync.Mutex

	vpcs             map[string]bool
	subnetZones      map[string]string
	services         map[string]*domain.ServiceAvailability
	gatewayEndpoints map[string][]string

	vpcErr     error
	subnetErr  error
	serviceErr map[string]error
	gatewayErr error

	blockServices bool

	vpcCalls     int
	subnetCalls  int
	serviceCalls int
	gatewayCalls int
}

func newMockEC2Client() *mockEC2Client {
	return &mockEC2Client{
		vpcs:             make(map[string]bool),
		subnetZones:      make(map[string]string),
		services:         make(map[string]*domain.ServiceAvailability),
		gatewayEndpoints: make(map[string][]string),
		serviceErr:       make(map[string]error),
	}
}

func (m *mockEC2Client) VerifyVPC(ctx context.Context, vpcID string) error {
	m.mu.Lock()
	m.vpcCalls++
	m.mu.Unlock()

	if m.vpcErr != nil {
		return m.vpcErr
	}
	if !m.vpcs[vpcID] {
		return &domain.NotFoundError{Resource: "vpc", ID: vpcID}
	}
	return nil
}

func (m *mockEC2Client) GetSubnetZones(ctx context.Context, vpcID string, subnetIDs []string) (map[string]string, error) {
	m.mu.Lock()
	m.subnetCalls++
	m.mu.Unlock()

	if m.subnetErr != nil {
		return nil, m.subnetErr
	}
	zones := make(map[string]string, len(subnetIDs))
	for _, id := range subnetIDs {
		zone, ok := m.subnetZones[id]
		if !ok {
			return nil, &domain.NotFoundError{Resource: "subnet", ID: id}
		}
		zones[id] = zone
	}
	return zones, nil
}

func (m *mockEC2Client) GetServiceAvailability(ctx context.Context, serviceName string) (*domain.ServiceAvailability, error) {
	m.mu.Lock()
	m.serviceCalls++
	m.mu.Unlock()

	if m.blockServices {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := m.serviceErr[serviceName]; err != nil {
		return nil, err
	}
	if avail, ok := m.services[serviceName]; ok {
		return avail, nil
	}
	return nil, fmt.Errorf("vpc endpoint service %s not found", serviceName)
}

func (m *mockEC2Client) GetGatewayEndpointServices(ctx context.Context, vpcID string) ([]string, error) {
	m.mu.Lock()
	m.gatewayCalls++
	m.mu.Unlock()

	if m.gatewayErr != nil {
		return nil, m.gatewayErr
	}
	return m.gatewayEndpoints[vpcID], nil
}
