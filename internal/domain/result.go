package domain

import "strings"

// AttributeName converts a fully-qualified service name into the attribute key
// published to the provisioning layer: com.amazonaws.us-east-1.s3 -> ComAmazonawsUsEast1S3Subnets.
func AttributeName(serviceName string) string {
	parts := strings.FieldsFunc(serviceName, func(r rune) bool {
		return r == '.' || r == '-'
	})

	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	b.WriteString("Subnets")
	return b.String()
}

func (r ServiceResult) JoinIDs() string {
	return strings.Join(r.SubnetIDs, ",")
}

// Ordered returns the per-service results in request order.
func (r *Result) Ordered() []ServiceResult {
	results := make([]ServiceResult, 0, len(r.ServiceNames))
	for _, name := range r.ServiceNames {
		results = append(results, r.Services[name])
	}
	return results
}

// OnePerZone narrows a service's usable subnets to at most one per availability
// zone, keeping the first subnet of each zone in request order. An Interface
// endpoint accepts a single subnet per zone.
func (r *Result) OnePerZone(serviceName string) []string {
	result, ok := r.Services[serviceName]
	if !ok {
		return nil
	}

	zoneBySubnet := make(map[string]string, len(r.Subnets))
	for _, sn := range r.Subnets {
		zoneBySubnet[sn.ID] = sn.AvailabilityZone
	}

	seen := make(map[string]bool, len(result.SubnetIDs))
	var ids []string
	for _, id := range result.SubnetIDs {
		zone := zoneBySubnet[id]
		if zone == "" || seen[zone] {
			continue
		}
		seen[zone] = true
		ids = append(ids, id)
	}
	return ids
}

// Attributes renders the result the way the provisioning layer consumes it:
// sanitized attribute name -> comma-joined subnet ids, one subnet per zone.
func (r *Result) Attributes() map[string]string {
	attrs := make(map[string]string, len(r.ServiceNames))
	for _, name := range r.ServiceNames {
		attrs[AttributeName(name)] = strings.Join(r.OnePerZone(name), ",")
	}
	return attrs
}
