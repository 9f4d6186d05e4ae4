package domain

type Subnet struct {
	ID               string
	AvailabilityZone string
}

type Request struct {
	VPCID        string
	Subnets      []Subnet
	ServiceNames []string
}

type ServiceAvailability struct {
	ServiceName       string
	AvailabilityZones []string
	SupportsGateway   bool
}

type Reason int

const (
	ReasonResolved Reason = iota
	ReasonGatewayConflict
	ReasonNoZoneOverlap
)

func (r Reason) String() string {
	switch r {
	case ReasonResolved:
		return "resolved"
	case ReasonGatewayConflict:
		return "gateway-conflict"
	case ReasonNoZoneOverlap:
		return "no-zone-overlap"
	default:
		return "unknown"
	}
}

type ServiceResult struct {
	ServiceName string
	SubnetIDs   []string
	Reason      Reason
}

type Result struct {
	ServiceNames []string
	Subnets      []Subnet
	Services     map[string]ServiceResult
}
