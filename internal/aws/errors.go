package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/eleven-am/janus/internal/domain"
)

var notFoundCodes = map[string]string{
	"InvalidVpcID.NotFound":         "vpc",
	"InvalidSubnetID.NotFound":      "subnet",
	"InvalidSubnet.NotFound":        "subnet",
	"InvalidServiceName":            "vpc endpoint service",
	"InvalidVpcEndpointId.NotFound": "vpc endpoint",
}

var transientCodes = map[string]struct{}{
	"RequestLimitExceeded": {},
	"Throttling":           {},
	"ThrottlingException":  {},
	"ServiceUnavailable":   {},
	"RequestTimeout":       {},
	"InternalError":        {},
}

// classify maps a failed describe call onto the resolver's error taxonomy.
// Anything the SDK retryer already gave up on surfaces as transient so the
// caller can retry the whole resolution.
func classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Op: op, Err: err}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if resource, ok := notFoundCodes[code]; ok {
			return &domain.NotFoundError{
				Resource: resource,
				Err:      fmt.Errorf("%s: %w", op, err),
			}
		}
		if _, ok := transientCodes[code]; ok {
			return &domain.TransientError{Op: op, Err: err}
		}
		if apiErr.ErrorFault() == smithy.FaultServer {
			return &domain.TransientError{Op: op, Err: err}
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
