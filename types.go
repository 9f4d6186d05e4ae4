package janus

import (
	internalaws "github.com/eleven-am/janus/internal/aws"
	"github.com/eleven-am/janus/internal/domain"
	"github.com/eleven-am/janus/internal/resolver"
)

type Subnet = domain.Subnet

type Request = domain.Request

type Result = domain.Result

type ServiceResult = domain.ServiceResult

type ServiceAvailability = domain.ServiceAvailability

type Reason = domain.Reason

const (
	ReasonResolved        = domain.ReasonResolved
	ReasonGatewayConflict = domain.ReasonGatewayConflict
	ReasonNoZoneOverlap   = domain.ReasonNoZoneOverlap
)

type EC2Client = domain.EC2Client

type ClientProvider = domain.ClientProvider

type Credentials = domain.Credentials

type Resolver = resolver.Resolver

type Option = resolver.Option

type ProviderContext = internalaws.ProviderContext

type ValidationError = domain.ValidationError

type NotFoundError = domain.NotFoundError

type TransientError = domain.TransientError

type TimeoutError = domain.TimeoutError
