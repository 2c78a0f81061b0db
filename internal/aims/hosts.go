package aims

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/aims-ops/aims-console/internal/models"
	"github.com/aims-ops/aims-console/internal/validate"
)

// ListHosts returns a page of host machines.
func (c *Client) ListHosts(ctx context.Context, page, pageSize int) (models.Page[models.HostMachine], error) {
	return getJSON[models.Page[models.HostMachine]](ctx, c, "/hosts", pageQuery(page, pageSize))
}

// FindHostsByHostnames looks hosts up by their hostnames. Used by the
// processor to map alert tags onto registered machines.
func (c *Client) FindHostsByHostnames(ctx context.Context, hostnames []string) (models.Page[models.HostMachine], error) {
	q := url.Values{}
	q.Set("hostnames", strings.Join(hostnames, ","))
	return getJSON[models.Page[models.HostMachine]](ctx, c, "/hosts", q)
}

// GetHost fetches a single host by id.
func (c *Client) GetHost(ctx context.Context, uuid string) (models.HostMachine, error) {
	return getJSON[models.HostMachine](ctx, c, "/hosts/"+uuid, nil)
}

// CreateHost creates a host and returns the new id, extracted from the
// Location header of the 201 response.
func (c *Client) CreateHost(ctx context.Context, req models.HostRequest) (string, error) {
	if err := validate.Host(req); err != nil {
		return "", validationError(err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/hosts", nil, req, http.StatusCreated)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return locationID(resp)
}

// UpdateHost replaces a host's details.
func (c *Client) UpdateHost(ctx context.Context, uuid string, req models.HostRequest) error {
	if err := validate.Host(req); err != nil {
		return validationError(err)
	}

	resp, err := c.do(ctx, http.MethodPut, "/hosts/"+uuid, nil, req, http.StatusOK)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// DeleteHost removes a host.
func (c *Client) DeleteHost(ctx context.Context, uuid string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/hosts/"+uuid, nil, nil, http.StatusNoContent)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
