package aims

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aims-ops/aims-console/internal/models"
	"github.com/aims-ops/aims-console/internal/validate"
)

// IncidentFilter narrows an incident listing. Nil pointer fields are
// omitted from the query entirely, matching the backend's tri-state
// handling of boolean filters.
type IncidentFilter struct {
	MyTeams  *bool
	Resolved *bool
	Hash     string
	Page     int
	PageSize int
}

func (f IncidentFilter) query() url.Values {
	q := pageQuery(f.Page, f.PageSize)
	if f.MyTeams != nil {
		q.Set("myTeams", strconv.FormatBool(*f.MyTeams))
	}
	if f.Resolved != nil {
		q.Set("resolved", strconv.FormatBool(*f.Resolved))
	}
	if f.Hash != "" {
		q.Set("hash", f.Hash)
	}
	return q
}

// ListIncidents returns a page of incidents matching the filter.
func (c *Client) ListIncidents(ctx context.Context, filter IncidentFilter) (models.Page[models.Incident], error) {
	return getJSON[models.Page[models.Incident]](ctx, c, "/incidents", filter.query())
}

// GetIncident fetches a single incident, comments included.
func (c *Client) GetIncident(ctx context.Context, uuid string) (models.Incident, error) {
	return getJSON[models.Incident](ctx, c, "/incidents/"+uuid, nil)
}

// CreateIncident raises a new incident and returns its id. Admin-only
// upstream; used by the processor.
func (c *Client) CreateIncident(ctx context.Context, req models.IncidentCreateRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", validationError(err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/incidents", nil, req, http.StatusCreated)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return locationID(resp)
}

// UpdateIncident replaces an incident's mutable fields. Resolved carries
// the state transition explicitly, in both directions.
func (c *Client) UpdateIncident(ctx context.Context, uuid string, req models.IncidentUpdateRequest) error {
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	resp, err := c.do(ctx, http.MethodPut, "/incidents/"+uuid, nil, req, http.StatusOK)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// PostComment adds a comment (1-200 characters) to an incident and
// returns the new comment id from the Location header.
func (c *Client) PostComment(ctx context.Context, incidentUUID, comment string) (string, error) {
	if err := validate.Comment(comment); err != nil {
		return "", validationError(err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/incidents/"+incidentUUID+"/comments", nil,
		models.CommentRequest{Comment: comment}, http.StatusCreated)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return locationID(resp)
}

// DeleteComment removes a comment from an incident.
func (c *Client) DeleteComment(ctx context.Context, incidentUUID, commentUUID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/incidents/"+incidentUUID+"/comments/"+commentUUID, nil, nil, http.StatusNoContent)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
