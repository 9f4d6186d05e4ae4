package aws

import (
	"fmt"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/eleven-am/janus/internal/domain"
)

// toServiceAvailability folds the provider's service details into a typed
// availability record. S3-style services appear twice in the response, once
// per endpoint type, so zones come from the Interface entry while the Gateway
// entry only marks the service as gateway-capable.
func toServiceAvailability(serviceName string, details []ec2types.ServiceDetail) (*domain.ServiceAvailability, error) {
	var found bool
	var zones []string
	var gateway bool

	for i := range details {
		det := &details[i]
		if derefString(det.ServiceName) != serviceName {
			continue
		}
		found = true
		if hasServiceType(det.ServiceType, ec2types.ServiceTypeGateway) {
			gateway = true
		}
		if hasServiceType(det.ServiceType, ec2types.ServiceTypeInterface) {
			zones = append(zones, det.AvailabilityZones...)
		}
	}

	if !found {
		return nil, &domain.NotFoundError{Resource: "vpc endpoint service", ID: serviceName}
	}
	if len(zones) == 0 && !gateway {
		return nil, fmt.Errorf("vpc endpoint service %s: response carries no availability zones", serviceName)
	}

	return &domain.ServiceAvailability{
		ServiceName:       serviceName,
		AvailabilityZones: zones,
		SupportsGateway:   gateway,
	}, nil
}

func hasServiceType(types []ec2types.ServiceTypeDetail, want ec2types.ServiceType) bool {
	for _, st := range types {
		if st.ServiceType == want {
			return true
		}
	}
	return false
}

func toGatewayServiceNames(endpoints []ec2types.VpcEndpoint) []string {
	var names []string
	for i := range endpoints {
		ep := &endpoints[i]
		if ep.VpcEndpointType != ec2types.VpcEndpointTypeGateway {
			continue
		}
		if name := derefString(ep.ServiceName); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
