package domain

import (
	"errors"
	"fmt"
)

var (
	// Request errors
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrMissingUser   = errors.New("user id is required")

	// Transfer errors
	ErrTransferNotFound = errors.New("transfer not found")
	ErrUnknownStatus    = errors.New("unknown transfer status")

	// Bridge errors
	ErrGatewayNotReady = errors.New("bridge gateway is not initialized")
)

// UnsupportedJurisdictionError means a country code has no configured
// fiat payment backend.
type UnsupportedJurisdictionError struct {
	Code string
}

func (e *UnsupportedJurisdictionError) Error() string {
	return fmt.Sprintf("no payment backend configured for jurisdiction %q", e.Code)
}

// ProviderInitError wraps a failure to construct a fiat payment backend.
// A provider that fails to initialize is never returned half-built.
type ProviderInitError struct {
	Backend string
	Err     error
}

func (e *ProviderInitError) Error() string {
	return fmt.Sprintf("provider %q failed to initialize: %v", e.Backend, e.Err)
}

func (e *ProviderInitError) Unwrap() error { return e.Err }

// UnsupportedChainError means a human-readable chain name has no bridge
// network mapping.
type UnsupportedChainError struct {
	Chain string
}

func (e *UnsupportedChainError) Error() string {
	return fmt.Sprintf("no bridge network mapping for chain %q", e.Chain)
}

// UnsupportedCurrencyError means the resolved network has no liquidity
// pool for the currency.
type UnsupportedCurrencyError struct {
	Network  string
	Currency string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("no liquidity pool for %s on network %q", e.Currency, e.Network)
}

// NoOfframpRouteError means no exchange counterparty is configured for
// the chain, so bridge-asset value cannot be converted back to fiat.
type NoOfframpRouteError struct {
	Chain string
}

func (e *NoOfframpRouteError) Error() string {
	return fmt.Sprintf("no off-ramp counterparty configured for chain %q", e.Chain)
}
