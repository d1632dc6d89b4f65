package wallet

import (
	"context"
	"errors"
	"sync"

	"solana-token-tracker/pkg/logger"

	"go.uber.org/zap"
)

// State is the displayed wallet connection state
type State struct {
	Provider   string `json:"provider"`
	Installed  bool   `json:"installed"`
	Connected  bool   `json:"connected"`
	PublicKey  string `json:"publicKey,omitempty"`
	ShortKey   string `json:"shortKey,omitempty"`
	Error      string `json:"error,omitempty"`
	InstallURL string `json:"installUrl,omitempty"`
}

// Session mirrors a provider's connection state. Each action is awaited to
// completion before the state changes; failures are kept as a message and
// never retried.
type Session struct {
	provider   Provider
	installURL string

	mu    sync.Mutex
	state State
}

// NewSession reflects the provider's current connection state
func NewSession(provider Provider, installURL string) *Session {
	if provider == nil {
		provider = Absent()
	}

	s := &Session{
		provider:   provider,
		installURL: installURL,
		state: State{
			Provider:  provider.Name(),
			Installed: provider.Installed(),
		},
	}
	if !provider.Installed() {
		s.state.InstallURL = installURL
	}
	if key := provider.PublicKey(); key != nil {
		s.setConnected(key.String())
	}
	return s
}

// State returns a copy of the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connect asks the provider for its public key
func (s *Session) Connect(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.provider.Installed() {
		s.state.Error = "Wallet is not installed"
		return s.state, ErrNotInstalled
	}

	s.state.Error = ""
	key, err := s.provider.Connect(ctx)
	if err != nil {
		logger.GetLogger().WithContext(ctx).Warn("Wallet connection failed",
			zap.String("provider", s.provider.Name()),
			zap.Error(err),
		)
		s.state.Error = "Failed to connect to wallet"
		return s.state, err
	}

	s.setConnected(key.String())
	return s.state, nil
}

// Disconnect releases the connection
func (s *Session) Disconnect(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.provider.Installed() {
		return s.state, ErrNotInstalled
	}

	if err := s.provider.Disconnect(ctx); err != nil && !errors.Is(err, ErrNotConnected) {
		logger.GetLogger().WithContext(ctx).Warn("Wallet disconnection failed",
			zap.String("provider", s.provider.Name()),
			zap.Error(err),
		)
		s.state.Error = "Failed to disconnect from wallet"
		return s.state, err
	}

	s.state.Connected = false
	s.state.PublicKey = ""
	s.state.ShortKey = ""
	s.state.Error = ""
	return s.state, nil
}

func (s *Session) setConnected(publicKey string) {
	s.state.Connected = true
	s.state.PublicKey = publicKey
	s.state.ShortKey = ShortenAddress(publicKey)
}

// ShortenAddress renders an address as its first and last four characters
func ShortenAddress(address string) string {
	if len(address) <= 8 {
		return address
	}
	return address[:4] + "..." + address[len(address)-4:]
}
