package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/eleven-am/janus/internal/domain"
)

func (c *Client) VerifyVPC(ctx context.Context, vpcID string) error {
	key := c.cacheKey("vpc", vpcID)
	if _, ok := c.cache.get(key); ok {
		return nil
	}
	out, err := c.ec2Client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		VpcIds: []string{vpcID},
	})
	if err != nil {
		return classify(fmt.Sprintf("describe vpc %s", vpcID), err)
	}
	if len(out.Vpcs) == 0 {
		return &domain.NotFoundError{Resource: "vpc", ID: vpcID}
	}
	c.cache.set(key, true)
	return nil
}

func (c *Client) GetSubnetZones(ctx context.Context, vpcID string, subnetIDs []string) (map[string]string, error) {
	zones := make(map[string]string, len(subnetIDs))
	var missing []string
	for _, id := range subnetIDs {
		if v, ok := c.cache.get(c.cacheKey("subnet-zone", vpcID, id)); ok {
			zones[id] = v.(string)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return zones, nil
	}

	out, err := c.ec2Client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		SubnetIds: missing,
	})
	if err != nil {
		return nil, classify(fmt.Sprintf("describe subnets %s", strings.Join(missing, ",")), err)
	}

	for i := range out.Subnets {
		sn := &out.Subnets[i]
		id := derefString(sn.SubnetId)
		zone := derefString(sn.AvailabilityZone)
		if id == "" || zone == "" {
			continue
		}
		if vpcID != "" && derefString(sn.VpcId) != vpcID {
			return nil, &domain.NotFoundError{
				Resource: "subnet",
				ID:       id,
				Err:      fmt.Errorf("subnet %s is not in vpc %s", id, vpcID),
			}
		}
		zones[id] = zone
		c.cache.set(c.cacheKey("subnet-zone", vpcID, id), zone)
	}

	for _, id := range missing {
		if _, ok := zones[id]; !ok {
			return nil, &domain.NotFoundError{Resource: "subnet", ID: id}
		}
	}
	return zones, nil
}

func (c *Client) GetServiceAvailability(ctx context.Context, serviceName string) (*domain.ServiceAvailability, error) {
	key := c.cacheKey("vpce-service", serviceName)
	if v, ok := c.cache.get(key); ok {
		return v.(*domain.ServiceAvailability), nil
	}

	out, err := c.ec2Client.DescribeVpcEndpointServices(ctx, &ec2.DescribeVpcEndpointServicesInput{
		ServiceNames: []string{serviceName},
	})
	if err != nil {
		return nil, classify(fmt.Sprintf("describe vpc endpoint service %s", serviceName), err)
	}

	data, err := toServiceAvailability(serviceName, out.ServiceDetails)
	if err != nil {
		return nil, err
	}
	c.cache.set(key, data)
	return data, nil
}

func (c *Client) GetGatewayEndpointServices(ctx context.Context, vpcID string) ([]string, error) {
	key := c.cacheKey("gateway-endpoints", vpcID)
	if v, ok := c.cache.get(key); ok {
		return v.([]string), nil
	}

	input := &ec2.DescribeVpcEndpointsInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("vpc-id"), Values: []string{vpcID}},
		},
	}
	paginator := ec2.NewDescribeVpcEndpointsPaginator(c.ec2Client, input)
	endpoints, err := CollectPages(
		ctx,
		paginator.HasMorePages,
		func(ctx context.Context) (*ec2.DescribeVpcEndpointsOutput, error) {
			return paginator.NextPage(ctx)
		},
		func(out *ec2.DescribeVpcEndpointsOutput) []ec2types.VpcEndpoint {
			return out.VpcEndpoints
		},
	)
	if err != nil {
		return nil, classify(fmt.Sprintf("describe vpc endpoints for %s", vpcID), err)
	}

	names := toGatewayServiceNames(endpoints)
	c.cache.set(key, names)
	return names, nil
}
