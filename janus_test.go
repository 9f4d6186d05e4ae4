package janus

import (
	"context"
	"testing"
)

type staticClient struct {
	zones    map[string][]string
	gateways []string
}

func (c *staticClient) VerifyVPC(ctx context.Context, vpcID string) error {
	return nil
}

func (c *staticClient) GetSubnetZones(ctx context.Context, vpcID string, subnetIDs []string) (map[string]string, error) {
	return nil, nil
}

func (c *staticClient) GetServiceAvailability(ctx context.Context, serviceName string) (*ServiceAvailability, error) {
	return &ServiceAvailability{
		ServiceName:       serviceName,
		AvailabilityZones: c.zones[serviceName],
	}, nil
}

func (c *staticClient) GetGatewayEndpointServices(ctx context.Context, vpcID string) ([]string, error) {
	return c.gateways, nil
}

func TestResolve_EndToEnd(t *testing.T) {
	client := &staticClient{
		zones: map[string][]string{
			"com.amazonaws.us-east-1.iot.data": {"use1-az1", "use1-az2"},
			"com.amazonaws.us-east-1.s3":       {"use1-az1", "use1-az2"},
		},
		gateways: []string{"com.amazonaws.us-east-1.s3"},
	}

	req := Request{
		VPCID: "vpc-123",
		Subnets: []Subnet{
			{ID: "sn-1", AvailabilityZone: "use1-az1"},
			{ID: "sn-2", AvailabilityZone: "use1-az2"},
		},
		ServiceNames: []string{
			"com.amazonaws.us-east-1.iot.data",
			"com.amazonaws.us-east-1.s3",
		},
	}

	result, err := Resolve(context.Background(), client, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	iot := result.Services["com.amazonaws.us-east-1.iot.data"]
	if iot.JoinIDs() != "sn-1,sn-2" {
		t.Errorf("expected sn-1,sn-2 for iot data, got %q", iot.JoinIDs())
	}
	if iot.Reason != ReasonResolved {
		t.Errorf("expected reason resolved, got %s", iot.Reason)
	}

	s3 := result.Services["com.amazonaws.us-east-1.s3"]
	if len(s3.SubnetIDs) != 0 {
		t.Errorf("expected s3 suppressed by gateway endpoint, got %v", s3.SubnetIDs)
	}
	if s3.Reason != ReasonGatewayConflict {
		t.Errorf("expected reason gateway-conflict, got %s", s3.Reason)
	}

	attrs := result.Attributes()
	if attrs["ComAmazonawsUsEast1IotDataSubnets"] != "sn-1,sn-2" {
		t.Errorf("unexpected attributes: %v", attrs)
	}
	if attrs["ComAmazonawsUsEast1S3Subnets"] != "" {
		t.Errorf("expected empty attribute for suppressed service, got %v", attrs)
	}
}

func TestResolve_InvalidRequest(t *testing.T) {
	_, err := Resolve(context.Background(), &staticClient{}, Request{})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
