// Package wallet adapts a wallet capability (connect, disconnect, current
// public key) for the handlers and CLI.
package wallet

import (
	"context"
	"errors"
	"os"

	"solana-token-tracker/internal/config"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrNotInstalled is returned by the absent provider
	ErrNotInstalled = errors.New("wallet provider is not installed")
	// ErrNotConnected is returned when disconnecting a wallet that is not connected
	ErrNotConnected = errors.New("wallet is not connected")
)

// Provider is a wallet capability. Connect and Disconnect block until the
// wallet answers; PublicKey returns nil while disconnected.
type Provider interface {
	Name() string
	Installed() bool
	Connect(ctx context.Context) (solana.PublicKey, error)
	Disconnect(ctx context.Context) error
	PublicKey() *solana.PublicKey
}

type absentProvider struct{}

// Absent returns the provider used when no wallet was detected
func Absent() Provider {
	return absentProvider{}
}

func (absentProvider) Name() string    { return "none" }
func (absentProvider) Installed() bool { return false }

func (absentProvider) Connect(ctx context.Context) (solana.PublicKey, error) {
	return solana.PublicKey{}, ErrNotInstalled
}

func (absentProvider) Disconnect(ctx context.Context) error {
	return ErrNotInstalled
}

func (absentProvider) PublicKey() *solana.PublicKey {
	return nil
}

// Detect selects the wallet provider once at startup. A keypair file on disk
// counts as an installed wallet; anything else yields Absent.
func Detect(cfg *config.WalletConfig) Provider {
	if cfg == nil || cfg.KeypairPath == "" {
		return Absent()
	}

	info, err := os.Stat(cfg.KeypairPath)
	if err != nil || info.IsDir() {
		return Absent()
	}

	return NewKeypairProvider(cfg.KeypairPath)
}
