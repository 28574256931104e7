package monitoring

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/kilianp07/socest/config"
	coremon "github.com/kilianp07/socest/core/monitoring"
	"github.com/kilianp07/socest/core/soc"
)

const recoverFlush = 2 * time.Second

// NewSentryMonitor returns a Monitor reporting to the Sentry project of
// cfg.DSN. Events carry the battery model and the configured tags. An
// empty DSN yields a NopMonitor.
func NewSentryMonitor(cfg config.SentryConfig, batteryModel string) (coremon.Monitor, error) {
	return newSentryMonitor(cfg, batteryModel, nil)
}

func newSentryMonitor(cfg config.SentryConfig, batteryModel string, beforeSend func(*sentry.Event, *sentry.EventHint) *sentry.Event) (coremon.Monitor, error) {
	if cfg.DSN == "" {
		return coremon.NopMonitor{}, nil
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate,
		Release:          cfg.Release,
		BeforeSend:       beforeSend,
	})
	if err != nil {
		return nil, err
	}
	scope := sentry.NewScope()
	scope.SetTags(cfg.Tags)
	if batteryModel != "" {
		scope.SetTag("battery_model", batteryModel)
	}
	return &sentryMonitor{hub: sentry.NewHub(client, scope)}, nil
}

// sentryMonitor reports through its own hub so several monitors never
// share the global Sentry client.
type sentryMonitor struct {
	hub *sentry.Hub
}

func (s *sentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		// undefined estimates are bad input, not crashes
		if errors.Is(err, soc.ErrUndefinedInterpolation) {
			scope.SetLevel(sentry.LevelWarning)
		}
		s.hub.CaptureException(err)
	})
}

func (s *sentryMonitor) Recover() {
	if r := recover(); r != nil {
		s.hub.Recover(r)
		s.hub.Flush(recoverFlush)
		panic(r)
	}
}

func (s *sentryMonitor) Flush(timeout time.Duration) { s.hub.Flush(timeout) }
