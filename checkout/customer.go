package checkout

import (
	"context"
	"errors"

	"github.com/objetivatech/convergencia-empreendedora-sub000/gateway"
	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
)

// resolveCustomer finds the buyer's durable identity at the gateway, creating
// it only when the email has no match. Lookup-before-create keeps repeated
// checkouts from duplicating customers; two concurrent first-time checkouts
// can still race between the two calls, and that window is accepted.
//
// Any failure here is fatal to the run as GatewayUnavailable: without a
// customer id nothing further can be charged.
func (s *Service) resolveCustomer(ctx context.Context, buyer models.Buyer) (string, error) {
	existing, err := s.Gateway.FindCustomerByEmail(ctx, buyer.Email)
	if err != nil {
		return "", errors.Join(ErrGatewayUnavailable, err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	created, err := s.Gateway.CreateCustomer(ctx, gateway.CreateCustomerRequest{
		Name:          buyer.DisplayName,
		Email:         buyer.Email,
		CpfCnpj:       buyer.CpfCnpj,
		Phone:         buyer.Phone,
		PostalCode:    buyer.PostalCode,
		AddressNumber: buyer.AddressNumber,
	})
	if err != nil {
		return "", errors.Join(ErrGatewayUnavailable, err)
	}
	return created.ID, nil
}
