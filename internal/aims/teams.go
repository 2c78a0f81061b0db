package aims

import (
	"context"

	"github.com/aims-ops/aims-console/internal/models"
)

// ListTeams returns a page of teams.
func (c *Client) ListTeams(ctx context.Context, page, pageSize int) (models.Page[models.Team], error) {
	return getJSON[models.Page[models.Team]](ctx, c, "/teams", pageQuery(page, pageSize))
}
