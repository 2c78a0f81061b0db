package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aims-ops/aims-console/internal/aims"
	"github.com/aims-ops/aims-console/internal/models"
)

// netOpsTeamName is the team pulled in whenever an alert looks
// network-related.
const netOpsTeamName = "NetOps"

// RunCheck scans every enabled log provider for unhandled alerts and
// raises incidents for the ones not seen before.
func (p *Processor) RunCheck(ctx context.Context) error {
	var logProviders, alertProviders models.Page[models.Provider]
	err := p.call(ctx, func(ctx context.Context) error {
		var err error
		if logProviders, err = p.backend.ListProviders(ctx, models.ProviderTypeLog, 1, 100); err != nil {
			return err
		}
		alertProviders, err = p.backend.ListProviders(ctx, models.ProviderTypeAlert, 1, 100)
		return err
	})
	if err != nil {
		return err
	}

	for _, provider := range logProviders.Data {
		if !provider.Enabled() {
			log.Info().Str("provider", provider.Name).Msg("Provider is disabled, skipping")
			continue
		}

		source, ok := p.sources[strings.ToLower(provider.Name)]
		if !ok {
			log.Warn().Str("provider", provider.Name).Msg("No alert source registered for provider, skipping")
			continue
		}

		log.Info().Str("provider", provider.Name).Msg("Scanning provider for unhandled alerts")
		alerts, err := source.UnresolvedAlerts(ctx, provider)
		if err != nil {
			log.Error().Err(err).Str("provider", provider.Name).Msg("Provider scan failed")
			continue
		}

		for _, alert := range alerts {
			if err := p.handleAlert(ctx, alert, alertProviders.Data); err != nil {
				log.Error().Err(err).Str("alert", alert.ID).Msg("Failed to handle alert")
			}
		}
	}
	return nil
}

// handleAlert raises an incident for the alert unless one with the same
// hash already exists.
func (p *Processor) handleAlert(ctx context.Context, alert Alert, alertProviders []models.Provider) error {
	var existing models.Page[models.Incident]
	err := p.call(ctx, func(ctx context.Context) error {
		var err error
		existing, err = p.backend.ListIncidents(ctx, aims.IncidentFilter{Hash: alert.Hash})
		return err
	})
	if err != nil {
		return err
	}
	if len(existing.Data) > 0 {
		log.Debug().Str("alert", alert.ID).Msg("Incident already exists for alert")
		return nil
	}

	if len(alert.Hostnames) == 0 {
		log.Warn().Str("alert", alert.ID).Msg("Alert carries no hostnames, skipping")
		return nil
	}

	var hosts models.Page[models.HostMachine]
	err = p.call(ctx, func(ctx context.Context) error {
		var err error
		hosts, err = p.backend.FindHostsByHostnames(ctx, alert.Hostnames)
		return err
	})
	if err != nil {
		return err
	}
	if len(hosts.Data) == 0 {
		log.Warn().Str("alert", alert.ID).Msg("No registered hosts match the alert, skipping")
		return nil
	}

	var teams models.Page[models.Team]
	err = p.call(ctx, func(ctx context.Context) error {
		var err error
		teams, err = p.backend.ListTeams(ctx, 1, 1000)
		return err
	})
	if err != nil {
		return err
	}

	req := models.IncidentCreateRequest{
		Summary:         truncate(alert.Title, 100),
		Description:     truncate(fmt.Sprintf("%s\n%s\n%s", alert.Title, alert.Culprit, alert.RootCause), 500),
		HostsAffected:   hostUUIDs(hosts.Data),
		ResolutionTeams: resolutionTeams(alert, hosts.Data, teams.Data),
		Hash:            alert.Hash,
	}

	var incidentID string
	err = p.call(ctx, func(ctx context.Context) error {
		var err error
		incidentID, err = p.backend.CreateIncident(ctx, req)
		return err
	})
	if err != nil {
		return err
	}

	log.Info().Str("incident", incidentID).Str("alert", alert.ID).Msg("Incident raised")
	p.record("incident.created", "warn", req.Summary, &incidentID)
	p.alerter.NotifyIncidentCreated(ctx, alertProviders, incidentID, req.Summary)
	return nil
}

// resolutionTeams picks who gets the incident: the owning teams of the
// affected hosts unless the error came from a dependency, plus NetOps
// for anything that smells like a network problem. Falls back to the
// host teams so the list is never empty.
func resolutionTeams(alert Alert, hosts []models.HostMachine, teams []models.Team) []string {
	var out []string
	if !alert.FromDependency {
		out = append(out, teamUUIDs(hosts)...)
	}
	if strings.Contains(strings.ToLower(alert.Title), "net") {
		for _, team := range teams {
			if team.Name == netOpsTeamName {
				out = append(out, team.UUID)
			}
		}
	}
	if len(out) == 0 {
		out = teamUUIDs(hosts)
	}
	return dedupe(out)
}

func hostUUIDs(hosts []models.HostMachine) []string {
	out := make([]string, len(hosts))
	for i, h := range hosts {
		out[i] = h.UUID
	}
	return out
}

func teamUUIDs(hosts []models.HostMachine) []string {
	out := make([]string, len(hosts))
	for i, h := range hosts {
		out[i] = h.Team.UUID
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Cut on a rune boundary so multi-byte titles stay valid UTF-8.
	end := 0
	for i := range s {
		if i > max {
			break
		}
		end = i
	}
	return s[:end]
}
