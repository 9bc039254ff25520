package gateway

import (
	"context"
	"net/url"
)

// Customer is the gateway's durable record of a paying party.
type Customer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpfCnpj"`
	Phone         string `json:"phone,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	AddressNumber string `json:"addressNumber,omitempty"`
}

type CreateCustomerRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpfCnpj"`
	Phone         string `json:"phone,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	AddressNumber string `json:"addressNumber,omitempty"`
}

// FindCustomerByEmail returns the first customer matching email, or nil when
// the directory has no match.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	var list struct {
		Data []Customer `json:"data"`
	}
	path := "/customers?email=" + url.QueryEscape(email)
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}
	if len(list.Data) == 0 {
		return nil, nil
	}
	return &list.Data[0], nil
}

func (c *Client) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	customer := &Customer{}
	if err := c.post(ctx, "/customers", req, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
