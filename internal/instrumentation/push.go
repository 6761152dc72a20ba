package instrumentation

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the provider's Prometheus metrics to the configured Pushgateway.
// It is a no-op when no Pushgateway is configured or instrumentation is off.
func (p *Provider) Push(ctx context.Context) error {
	if !p.enabled || p.config.PushgatewayURL == "" {
		return nil
	}
	if p.registry == nil {
		return fmt.Errorf("pushgateway requires the prometheus metrics exporter")
	}

	job := p.config.PushJob
	if job == "" {
		job = p.config.ServiceName
	}

	pusher := push.New(p.config.PushgatewayURL, job).Gatherer(p.registry)

	instance := p.config.ServiceInstanceID
	if instance == "" {
		instance, _ = os.Hostname()
	}
	if instance != "" {
		pusher = pusher.Grouping("instance", instance)
	}

	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", p.config.PushgatewayURL, err)
	}

	return nil
}
