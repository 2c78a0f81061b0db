package aims

import (
	"context"
	"net/http"

	"github.com/aims-ops/aims-console/internal/models"
	"github.com/aims-ops/aims-console/internal/validate"
)

// ListProviders returns a page of providers of the given type ("alert" or
// "log").
func (c *Client) ListProviders(ctx context.Context, providerType string, page, pageSize int) (models.Page[models.Provider], error) {
	if err := validate.ProviderType(providerType); err != nil {
		return models.Page[models.Provider]{}, validationError(err)
	}

	q := pageQuery(page, pageSize)
	q.Set("provider_type", providerType)
	return getJSON[models.Page[models.Provider]](ctx, c, "/providers", q)
}

// GetProvider fetches a single provider by id.
func (c *Client) GetProvider(ctx context.Context, uuid string) (models.Provider, error) {
	return getJSON[models.Provider](ctx, c, "/providers/"+uuid, nil)
}

// CreateProvider creates an empty provider profile of the given type and
// returns its id.
func (c *Client) CreateProvider(ctx context.Context, name, providerType string) (string, error) {
	if err := validate.ProviderType(providerType); err != nil {
		return "", validationError(err)
	}
	if err := validate.Struct(models.ProviderCreateRequest{Name: name}); err != nil {
		return "", validationError(err)
	}

	q := pageQuery(0, 0)
	q.Set("provider_type", providerType)
	resp, err := c.do(ctx, http.MethodPost, "/providers", q, models.ProviderCreateRequest{Name: name}, http.StatusCreated)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return locationID(resp)
}

// UpdateProvider replaces a provider's fields. Field keys must be unique
// and required values must parse according to their declared type.
func (c *Client) UpdateProvider(ctx context.Context, provider models.Provider) error {
	if err := validate.ProviderFields(provider.Fields); err != nil {
		return validationError(err)
	}

	resp, err := c.do(ctx, http.MethodPut, "/providers/"+provider.UUID, nil, provider, http.StatusOK)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// DeleteProvider removes a provider profile.
func (c *Client) DeleteProvider(ctx context.Context, uuid string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/providers/"+uuid, nil, nil, http.StatusNoContent)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
