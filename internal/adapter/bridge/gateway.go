package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/liquicity/transferd/internal/domain"
)

// Mock-mode transaction id prefixes, one per operation, so tests can
// assert which path executed.
const (
	MockOnrampPrefix  = "bridge_onramp_"
	MockOfframpPrefix = "bridge_offramp_"
)

// chainNetworks resolves human-readable chain names to bridge network
// identifiers.
var chainNetworks = map[string]string{
	"ethereum": "eip155:1",
	"polygon":  "eip155:137",
	"arbitrum": "eip155:42161",
	"base":     "eip155:8453",
	"optimism": "eip155:10",
}

// liquidityPools resolves (network, currency) to a pool identifier.
// Not every currency has a pool on every network.
var liquidityPools = map[string]map[string]string{
	"eip155:1": {
		"USDC": "pool:eth:usdc",
		"USDT": "pool:eth:usdt",
		"ETH":  "pool:eth:weth",
	},
	"eip155:137": {
		"USDC": "pool:polygon:usdc",
		"USDT": "pool:polygon:usdt",
	},
	"eip155:42161": {
		"USDC": "pool:arbitrum:usdc",
		"ETH":  "pool:arbitrum:weth",
	},
	"eip155:8453": {
		"USDC": "pool:base:usdc",
	},
	"eip155:10": {
		"USDC": "pool:optimism:usdc",
	},
}

// offrampCounterparties maps a network to the exchange account that
// receives bridge-asset value and executes fiat withdrawals.
var offrampCounterparties = map[string]string{
	"eip155:1":     "exchange:kraken:main",
	"eip155:137":   "exchange:kraken:polygon",
	"eip155:42161": "exchange:kraken:arbitrum",
}

// Config holds bridge gateway settings, delivered via environment
// configuration.
type Config struct {
	// RPCEndpoints maps network identifiers to RPC URLs.
	RPCEndpoints map[string]string
	SigningKey   string
	SlippageBps  int
	// MockMode forces deterministic results with no external calls.
	MockMode bool
	// SettlementDelay is the expected off-ramp fiat settlement horizon.
	SettlementDelay time.Duration
	Timeout         time.Duration
}

// Gateway is the process-wide liquidity-bridge client. Construction
// never fails; a gateway missing its signing credential reports
// ErrGatewayNotReady before any swap is attempted, not mid-call.
type Gateway struct {
	cfg    Config
	client *http.Client
	logger zerolog.Logger
	ready  bool
}

// NewGateway creates the gateway.
func NewGateway(cfg Config, logger zerolog.Logger) *Gateway {
	if cfg.SettlementDelay == 0 {
		cfg.SettlementDelay = 24 * time.Hour
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	ready := cfg.SigningKey != ""
	if !ready && !cfg.MockMode {
		logger.Warn().Msg("bridge gateway constructed without signing credential; swaps will be rejected")
	}

	return &Gateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		ready:  ready,
	}
}

// Onramp converts fiat value into the bridge asset on the source chain
// and routes it toward the destination chain. Either returns a result
// or fails; it never silently drops.
func (g *Gateway) Onramp(ctx context.Context, amount decimal.Decimal, currency, srcChain, dstChain, recipient string) (*domain.BridgeResult, error) {
	srcNetwork, err := resolveNetwork(srcChain)
	if err != nil {
		return nil, err
	}
	dstNetwork, err := resolveNetwork(dstChain)
	if err != nil {
		return nil, err
	}

	srcPool, err := resolvePool(srcNetwork, currency)
	if err != nil {
		return nil, err
	}
	dstPool, err := resolvePool(dstNetwork, currency)
	if err != nil {
		return nil, err
	}

	// Scale to the asset's native precision via the currency-keyed
	// table; 6-decimal stable assets and 18-decimal native assets must
	// never be told apart by magnitude.
	baseUnits, err := domain.NormalizeAmount(currency, amount)
	if err != nil {
		return nil, err
	}

	if g.cfg.MockMode {
		return &domain.BridgeResult{
			TxID:      MockOnrampPrefix + uuid.NewString(),
			Status:    domain.StepCompleted,
			SettledAt: time.Now().UTC(),
		}, nil
	}

	if !g.ready {
		return nil, domain.ErrGatewayNotReady
	}

	txID, err := g.swap(ctx, srcNetwork, swapRequest{
		FromPool:    srcPool,
		ToPool:      dstPool,
		ToNetwork:   dstNetwork,
		Amount:      baseUnits.String(),
		Recipient:   recipient,
		SlippageBps: g.cfg.SlippageBps,
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info().
		Str("tx_id", txID).
		Str("src_network", srcNetwork).
		Str("dst_network", dstNetwork).
		Str("amount", amount.String()).
		Str("currency", currency).
		Msg("bridge onramp executed")

	return &domain.BridgeResult{
		TxID:      txID,
		Status:    domain.StepCompleted,
		SettledAt: time.Now().UTC(),
	}, nil
}

// Offramp converts bridge-asset value back to fiat in two phases:
// transfer to the chain's exchange counterparty, then a fiat withdrawal
// to the bank account. The returned id is a composite of both phase
// receipts, and SettledAt is the expected settlement horizon - a
// completed-looking result means "accepted for settlement", not "funds
// delivered".
func (g *Gateway) Offramp(ctx context.Context, amount decimal.Decimal, currency, chain, bankAccountID string) (*domain.BridgeResult, error) {
	network, err := resolveNetwork(chain)
	if err != nil {
		return nil, err
	}

	counterparty, ok := offrampCounterparties[network]
	if !ok {
		return nil, &domain.NoOfframpRouteError{Chain: chain}
	}

	if _, err := resolvePool(network, currency); err != nil {
		return nil, err
	}

	baseUnits, err := domain.NormalizeAmount(currency, amount)
	if err != nil {
		return nil, err
	}

	settledAt := time.Now().UTC().Add(g.cfg.SettlementDelay)

	if g.cfg.MockMode {
		return &domain.BridgeResult{
			TxID:      ComposeOfframpID(MockOfframpPrefix+uuid.NewString(), "withdrawal_"+uuid.NewString()),
			Status:    domain.StepCompleted,
			SettledAt: settledAt,
		}, nil
	}

	if !g.ready {
		return nil, domain.ErrGatewayNotReady
	}

	transferID, err := g.exchangeTransfer(ctx, network, counterparty, baseUnits.String())
	if err != nil {
		return nil, err
	}

	withdrawalID, err := g.fiatWithdrawal(ctx, network, counterparty, amount.String(), currency, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("exchange transfer %s succeeded but withdrawal failed: %w", transferID, err)
	}

	g.logger.Info().
		Str("transfer_id", transferID).
		Str("withdrawal_id", withdrawalID).
		Str("network", network).
		Str("bank_account", bankAccountID).
		Msg("bridge offramp accepted for settlement")

	return &domain.BridgeResult{
		TxID:      ComposeOfframpID(transferID, withdrawalID),
		Status:    domain.StepCompleted,
		SettledAt: settledAt,
	}, nil
}

// ComposeOfframpID joins the two off-ramp phase receipts into one id.
func ComposeOfframpID(transferID, withdrawalID string) string {
	return transferID + ":" + withdrawalID
}

// SplitOfframpID recovers either phase's receipt from a composite id.
func SplitOfframpID(id string) (transferID, withdrawalID string, ok bool) {
	transferID, withdrawalID, ok = strings.Cut(id, ":")
	return
}

func resolveNetwork(chain string) (string, error) {
	network, ok := chainNetworks[strings.ToLower(strings.TrimSpace(chain))]
	if !ok {
		return "", &domain.UnsupportedChainError{Chain: chain}
	}
	return network, nil
}

func resolvePool(network, currency string) (string, error) {
	pools, ok := liquidityPools[network]
	if !ok {
		return "", &domain.UnsupportedCurrencyError{Network: network, Currency: currency}
	}
	pool, ok := pools[strings.ToUpper(currency)]
	if !ok {
		return "", &domain.UnsupportedCurrencyError{Network: network, Currency: currency}
	}
	return pool, nil
}

type swapRequest struct {
	FromPool    string `json:"from_pool"`
	ToPool      string `json:"to_pool"`
	ToNetwork   string `json:"to_network"`
	Amount      string `json:"amount"`
	Recipient   string `json:"recipient"`
	SlippageBps int    `json:"slippage_bps"`
}

type swapResponse struct {
	TxHash string `json:"tx_hash"`
}

func (g *Gateway) swap(ctx context.Context, network string, payload swapRequest) (string, error) {
	var result swapResponse
	if err := g.post(ctx, network, "/swap", payload, &result); err != nil {
		return "", err
	}
	return result.TxHash, nil
}

func (g *Gateway) exchangeTransfer(ctx context.Context, network, counterparty, amount string) (string, error) {
	var result swapResponse
	err := g.post(ctx, network, "/transfer", map[string]string{
		"counterparty": counterparty,
		"amount":       amount,
	}, &result)
	if err != nil {
		return "", err
	}
	return result.TxHash, nil
}

func (g *Gateway) fiatWithdrawal(ctx context.Context, network, counterparty, amount, currency, bankAccountID string) (string, error) {
	var result struct {
		WithdrawalID string `json:"withdrawal_id"`
	}
	err := g.post(ctx, network, "/withdraw", map[string]string{
		"counterparty": counterparty,
		"amount":       amount,
		"currency":     currency,
		"bank_account": bankAccountID,
	}, &result)
	if err != nil {
		return "", err
	}
	return result.WithdrawalID, nil
}

func (g *Gateway) post(ctx context.Context, network, path string, payload, result any) error {
	endpoint, ok := g.cfg.RPCEndpoints[network]
	if !ok {
		return fmt.Errorf("no rpc endpoint configured for network %q", network)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.SigningKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("bridge call %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("bridge call %s rejected: status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
