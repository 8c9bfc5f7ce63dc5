package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"showcase/internal/domain"
	"showcase/internal/eventbus"
	"showcase/internal/logging"
)

// ErrLoadInProgress is returned when a load is requested while one is
// running. The request is queued and runs once the current load finishes.
var ErrLoadInProgress = errors.New("load already in progress")

// CatalogLoader reads the example pool from a directory
type CatalogLoader interface {
	Load(ctx context.Context, dir string) ([]domain.Example, error)
}

// DiscoveryService reloads the catalog and publishes the result
type DiscoveryService interface {
	StartLoad(ctx context.Context, dir string) error
	StopLoad()
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	loader     CatalogLoader
	log        *zerolog.Logger
	mu         sync.Mutex
	isLoading  bool
	pending    string // requested while loading
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a discovery service that reloads the catalog
// whenever the examples directory changes.
func NewDiscoveryService(bus eventbus.EventBus, loader CatalogLoader) DiscoveryService {
	ds := &discoveryService{
		bus:    bus,
		loader: loader,
		log:    logging.Logger("discovery"),
	}

	bus.Subscribe(eventbus.EventCatalogChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CatalogChangedEvent); ok {
			if err := ds.StartLoad(context.Background(), event.Dir); errors.Is(err, ErrLoadInProgress) {
				ds.log.Debug().Str("dir", event.Dir).Msg("reload queued")
			}
		}
	})

	return ds
}

// StartLoad loads dir in the background and publishes CatalogLoadedEvent,
// or ErrorEvent when the directory holds a broken example.
func (ds *discoveryService) StartLoad(ctx context.Context, dir string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.isLoading {
		ds.pending = dir
		return ErrLoadInProgress
	}
	ds.launch(ctx, dir)
	return nil
}

// launch starts a background load. ds.mu must be held.
func (ds *discoveryService) launch(ctx context.Context, dir string) {
	loadCtx, cancel := context.WithCancel(ctx)
	ds.isLoading = true
	ds.cancelFunc = cancel
	ds.wg.Add(1)
	go ds.load(ctx, loadCtx, cancel, dir)
}

func (ds *discoveryService) load(parent, ctx context.Context, cancel context.CancelFunc, dir string) {
	defer ds.wg.Done()

	examples, err := ds.loader.Load(ctx, dir)
	stopped := ctx.Err() != nil
	cancel()

	switch {
	case errors.Is(err, context.Canceled):
	case err != nil:
		ds.log.Error().Err(err).Str("dir", dir).Msg("failed to reload catalog")
		ds.bus.Publish(eventbus.ErrorEvent{
			Message: fmt.Sprintf("Failed to reload %s", dir),
			Err:     err,
		})
	default:
		ds.bus.Publish(eventbus.CatalogLoadedEvent{Examples: examples})
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.isLoading = false
	ds.cancelFunc = nil
	next := ds.pending
	ds.pending = ""
	if next != "" && !stopped {
		ds.launch(parent, next)
	}
}

// StopLoad cancels any running load, drops a queued one and waits
func (ds *discoveryService) StopLoad() {
	ds.mu.Lock()
	ds.pending = ""
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}
