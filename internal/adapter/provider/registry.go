package provider

import (
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/liquicity/transferd/internal/adapter/bridge"
	"github.com/liquicity/transferd/internal/domain"
	"github.com/liquicity/transferd/internal/usecase"
)

// Backend implementation identities. Jurisdictions map onto these; two
// jurisdictions sharing an identity share one live provider instance.
const (
	BackendTreasury    = "treasury"
	BackendCardNetwork = "cardnetwork"
)

// jurisdictionBackends is the static jurisdiction -> backend mapping.
var jurisdictionBackends = map[string]string{
	"US": BackendTreasury,
	"CA": BackendTreasury,
	"GB": BackendCardNetwork,
	"EU": BackendCardNetwork,
	"DE": BackendCardNetwork,
	"FR": BackendCardNetwork,
	"MX": BackendCardNetwork,
	"BR": BackendCardNetwork,
}

// Config holds credentials and settings for all backends plus the
// bridge gateway.
type Config struct {
	Treasury    TreasuryConfig
	CardNetwork CardNetworkConfig
	Bridge      bridge.Config
}

// Registry resolves jurisdictions to fiat payment backends. It caches
// one instance per backend implementation, not per jurisdiction, so
// jurisdictions sharing a backend share connection state. The bridge
// gateway is a process-wide singleton constructed on first use.
type Registry struct {
	cfg    Config
	logger zerolog.Logger

	mu             sync.RWMutex
	byJurisdiction map[string]usecase.Provider
	byBackend      map[string]usecase.Provider

	bridgeMu sync.Mutex
	bridge   usecase.BridgeProvider

	// factories are swappable for tests.
	factories     map[string]func() (usecase.Provider, error)
	bridgeFactory func() (usecase.BridgeProvider, error)
}

// NewRegistry creates a registry with the standard backend factories.
func NewRegistry(cfg Config, logger zerolog.Logger) *Registry {
	r := &Registry{
		cfg:            cfg,
		logger:         logger,
		byJurisdiction: make(map[string]usecase.Provider),
		byBackend:      make(map[string]usecase.Provider),
	}
	r.factories = map[string]func() (usecase.Provider, error){
		BackendTreasury:    func() (usecase.Provider, error) { return NewTreasuryProvider(cfg.Treasury) },
		BackendCardNetwork: func() (usecase.Provider, error) { return NewCardNetworkProvider(cfg.CardNetwork) },
	}
	r.bridgeFactory = func() (usecase.BridgeProvider, error) {
		return bridge.NewGateway(cfg.Bridge, logger), nil
	}

	return r
}

// NewRegistryWithFactories creates a registry with injected backend
// construction, used by tests to count instantiations.
func NewRegistryWithFactories(factories map[string]func() (usecase.Provider, error), bridgeFactory func() (usecase.BridgeProvider, error), logger zerolog.Logger) *Registry {
	return &Registry{
		logger:         logger,
		byJurisdiction: make(map[string]usecase.Provider),
		byBackend:      make(map[string]usecase.Provider),
		factories:      factories,
		bridgeFactory:  bridgeFactory,
	}
}

// Resolve returns the provider for a jurisdiction, constructing the
// backend on first use. Codes are case-insensitive.
func (r *Registry) Resolve(jurisdiction string) (usecase.Provider, error) {
	code := strings.ToUpper(strings.TrimSpace(jurisdiction))

	r.mu.RLock()
	if p, ok := r.byJurisdiction[code]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	r.mu.RUnlock()

	backend, ok := jurisdictionBackends[code]
	if !ok {
		return nil, &domain.UnsupportedJurisdictionError{Code: code}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check: another caller may have resolved this code while we
	// waited for the write lock.
	if p, ok := r.byJurisdiction[code]; ok {
		return p, nil
	}

	// Reuse the backend's live instance if another jurisdiction already
	// constructed it.
	if p, ok := r.byBackend[backend]; ok {
		r.byJurisdiction[code] = p
		return p, nil
	}

	factory, ok := r.factories[backend]
	if !ok {
		return nil, &domain.UnsupportedJurisdictionError{Code: code}
	}

	p, err := factory()
	if err != nil {
		return nil, &domain.ProviderInitError{Backend: backend, Err: err}
	}

	r.byBackend[backend] = p
	r.byJurisdiction[code] = p
	r.logger.Info().
		Str("backend", backend).
		Str("jurisdiction", code).
		Msg("payment provider initialized")

	return p, nil
}

// ResolveBridge returns the process-wide bridge gateway, constructing
// it on first call. One gateway serves all cross-border flows.
func (r *Registry) ResolveBridge() (usecase.BridgeProvider, error) {
	r.bridgeMu.Lock()
	defer r.bridgeMu.Unlock()

	if r.bridge != nil {
		return r.bridge, nil
	}

	b, err := r.bridgeFactory()
	if err != nil {
		return nil, err
	}

	r.bridge = b
	r.logger.Info().Msg("bridge gateway initialized")

	return b, nil
}

// Jurisdictions lists the configured jurisdiction codes.
func (r *Registry) Jurisdictions() []string {
	codes := make([]string, 0, len(jurisdictionBackends))
	for code := range jurisdictionBackends {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
