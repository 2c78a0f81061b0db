package processor

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/aims-ops/aims-console/internal/aims"
	"github.com/aims-ops/aims-console/internal/models"
)

// resolveComment explains an automatic resolution on the incident itself.
const resolveComment = "Incident automatically resolved due to inactivity"

// RunResolve closes incidents with no activity for the configured window.
// The explanatory comment is posted first; if the resolve update then
// fails, the comment is removed again so the incident is left untouched.
func (p *Processor) RunResolve(ctx context.Context) error {
	log.Info().Msg("Scanning for incidents to resolve")

	unresolved := false
	var incidents models.Page[models.Incident]
	err := p.call(ctx, func(ctx context.Context) error {
		var err error
		incidents, err = p.backend.ListIncidents(ctx, aims.IncidentFilter{Resolved: &unresolved, PageSize: 100})
		return err
	})
	if err != nil {
		return err
	}

	for _, incident := range incidents.Data {
		if p.now().Sub(incident.LastActivity()) <= p.cfg.ResolveAfter {
			continue
		}
		p.resolveIncident(ctx, incident)
	}
	return nil
}

func (p *Processor) resolveIncident(ctx context.Context, incident models.Incident) {
	log.Info().Str("incident", incident.UUID).Msg("Resolving inactive incident")

	var commentID string
	err := p.call(ctx, func(ctx context.Context) error {
		var err error
		commentID, err = p.backend.PostComment(ctx, incident.UUID, resolveComment)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("incident", incident.UUID).Msg("Failed to post resolution comment")
		return
	}

	req := models.IncidentUpdateRequest{
		Summary:         incident.Summary,
		Description:     incident.Description,
		HostsAffected:   hostUUIDs(incident.HostsAffected),
		ResolutionTeams: incidentTeamUUIDs(incident.ResolutionTeams),
		Resolved:        true,
	}
	err = p.call(ctx, func(ctx context.Context) error {
		return p.backend.UpdateIncident(ctx, incident.UUID, req)
	})
	if err != nil {
		log.Error().Err(err).Str("incident", incident.UUID).Msg("Failed to resolve incident, removing comment")
		rollbackErr := p.call(ctx, func(ctx context.Context) error {
			return p.backend.DeleteComment(ctx, incident.UUID, commentID)
		})
		if rollbackErr != nil {
			log.Error().Err(rollbackErr).
				Str("incident", incident.UUID).
				Str("comment", commentID).
				Msg("Failed to remove resolution comment")
		}
		return
	}

	log.Info().Str("incident", incident.UUID).Msg("Incident resolved")
	p.record("incident.resolved", "info", incident.Summary, &incident.UUID)
}

func incidentTeamUUIDs(teams []models.Team) []string {
	out := make([]string, len(teams))
	for i, t := range teams {
		out[i] = t.UUID
	}
	return out
}
