// Package processor runs the background automation jobs: scanning log
// providers for new unhandled errors and raising incidents for them, and
// resolving incidents that have gone quiet.
package processor

import (
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/aims-ops/aims-console/internal/aims"
	"github.com/aims-ops/aims-console/internal/config"
	"github.com/aims-ops/aims-console/internal/models"
	"github.com/aims-ops/aims-console/internal/services"
)

// Backend is the slice of the API client the processor depends on.
// *aims.Client satisfies it.
type Backend interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	ListProviders(ctx context.Context, providerType string, page, pageSize int) (models.Page[models.Provider], error)
	ListIncidents(ctx context.Context, filter aims.IncidentFilter) (models.Page[models.Incident], error)
	FindHostsByHostnames(ctx context.Context, hostnames []string) (models.Page[models.HostMachine], error)
	ListTeams(ctx context.Context, page, pageSize int) (models.Page[models.Team], error)
	CreateIncident(ctx context.Context, req models.IncidentCreateRequest) (string, error)
	UpdateIncident(ctx context.Context, uuid string, req models.IncidentUpdateRequest) error
	PostComment(ctx context.Context, incidentUUID, comment string) (string, error)
	DeleteComment(ctx context.Context, incidentUUID, commentUUID string) error
}

// Alert is one unhandled error condition reported by a log provider.
type Alert struct {
	ID             string
	Title          string
	Culprit        string
	Hostnames      []string
	Hash           string
	FromDependency bool
	RootCause      string
}

// AlertSource scans one kind of log provider for unresolved alerts.
type AlertSource interface {
	Name() string
	UnresolvedAlerts(ctx context.Context, provider models.Provider) ([]Alert, error)
}

// Processor owns the cron schedule for the checker and resolver jobs.
// It authenticates as a service account and re-logs-in transparently
// when its token expires.
type Processor struct {
	backend Backend
	events  services.EventServiceProvider
	alerter *Alerter
	sources map[string]AlertSource
	cfg     config.ProcessorConfig
	cron    *cron.Cron
	now     func() time.Time
}

// New creates a processor with the default alert sources registered.
func New(backend Backend, events services.EventServiceProvider, cfg config.ProcessorConfig) *Processor {
	return &Processor{
		backend: backend,
		events:  events,
		alerter: NewAlerter(),
		sources: map[string]AlertSource{
			"sentry": NewSentrySource(),
		},
		cfg: cfg,
		now: time.Now,
	}
}

// RegisterSource adds or replaces an alert source. The key is the
// lower-cased provider name it answers to.
func (p *Processor) RegisterSource(source AlertSource) {
	p.sources[strings.ToLower(source.Name())] = source
}

// Run schedules the checker and resolver jobs and starts the cron loop.
func (p *Processor) Run() error {
	c := cron.New()
	if _, err := c.AddFunc(p.cfg.CheckSchedule, func() {
		if err := p.RunCheck(context.Background()); err != nil {
			log.Error().Err(err).Msg("Incident check run failed")
		}
	}); err != nil {
		return err
	}
	if _, err := c.AddFunc(p.cfg.ResolveSchedule, func() {
		if err := p.RunResolve(context.Background()); err != nil {
			log.Error().Err(err).Msg("Incident resolve run failed")
		}
	}); err != nil {
		return err
	}

	p.cron = c
	c.Start()
	log.Info().
		Str("check_schedule", p.cfg.CheckSchedule).
		Str("resolve_schedule", p.cfg.ResolveSchedule).
		Msg("Processor started")
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (p *Processor) Stop() {
	if p.cron != nil {
		<-p.cron.Stop().Done()
	}
	log.Info().Msg("Processor stopped")
}

// call runs one backend operation, logging in again and retrying once if
// the service account's token has expired.
func (p *Processor) call(ctx context.Context, fn func(context.Context) error) error {
	err := fn(ctx)
	if !aims.IsAuth(err) {
		return err
	}

	log.Info().Msg("Processor token expired, logging in again")
	if _, lerr := p.backend.Login(ctx, p.cfg.Email, p.cfg.Password); lerr != nil {
		return lerr
	}
	return fn(ctx)
}

func (p *Processor) record(eventType, level, message string, incidentID *string) {
	if p.events == nil {
		return
	}
	if err := p.events.Record(eventType, level, message, incidentID); err != nil {
		log.Warn().Err(err).Msg("Failed to record activity event")
	}
}
