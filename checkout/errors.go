package checkout

import (
	"errors"

	"github.com/objetivatech/convergencia-empreendedora-sub000/gateway"
)

// Failure taxonomy of one orchestration run. The first two are caught before
// any network call; the gateway pair aborts the run; persistence problems are
// reported as a partial success, not through an error return.
var (
	ErrInvalidRequest     = errors.New("invalid checkout request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("incomplete card data")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrPaymentRejected    = errors.New("payment rejected by gateway")
)

// ErrorCode maps a run failure to the wire-level error_code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrPaymentRejected):
		return "payment_rejected"
	case errors.Is(err, ErrGatewayUnavailable):
		return "gateway_unavailable"
	}
	return "internal_error"
}

// wrapGatewayErr classifies a gateway client error: a structured non-2xx
// response means the gateway rejected the operation; anything else (transport
// failure, timeout, garbled body) means it was unreachable.
func wrapGatewayErr(err error) error {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return errors.Join(ErrPaymentRejected, err)
	}
	return errors.Join(ErrGatewayUnavailable, err)
}
