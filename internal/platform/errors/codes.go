// Package errors provides structured error handling with stable reason codes.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeNotFound indicates an unknown customer, sku, order, cart, RMA, or
	// credit identifier.
	CodeNotFound Code = "NOT_FOUND"

	// CodeInvalidState indicates an operation attempted from a lifecycle
	// state that forbids it.
	CodeInvalidState Code = "INVALID_STATE"

	// CodePolicyRejected indicates the return policy evaluated to INELIGIBLE
	// for an operation that requires eligibility.
	CodePolicyRejected Code = "POLICY_REJECTED"

	// CodeConflict indicates a duplicate mutation attempt that was detected
	// and short-circuited.
	CodeConflict Code = "CONFLICT"

	// CodeInvalidArgument indicates a request payload that failed validation
	// before reaching the core.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeInsufficientStock indicates an order would drive a stock counter
	// below zero.
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
)

// GRPCCode maps reason codes to gRPC status codes so the error taxonomy
// stays stable across transports.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeNotFound:
		return codes.NotFound
	case CodeInvalidState, CodePolicyRejected:
		return codes.FailedPrecondition
	case CodeConflict, CodeInsufficientStock:
		return codes.AlreadyExists
	case CodeInvalidArgument:
		return codes.InvalidArgument
	default:
		return codes.Unknown
	}
}
