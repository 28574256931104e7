package metrics

import (
	"context"
	"sync"

	coremetrics "github.com/kilianp07/socest/core/metrics"
	"github.com/kilianp07/socest/infra/logger"
	"github.com/kilianp07/socest/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records every event in
// the sink. It stops when the context is canceled or the bus is closed; the
// returned WaitGroup completes once the collector has exited.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[coremetrics.EstimateEvent], sink coremetrics.MetricsSink, log logger.Logger) *sync.WaitGroup {
	var wg sync.WaitGroup
	if bus == nil || sink == nil {
		return &wg
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := sink.RecordEstimate(ev); err != nil {
					log.Warnf("record estimate: %v", err)
				}
			}
		}
	}()
	return &wg
}
