package services

import (
	"context"
	"fmt"

	"solana-token-tracker/internal/config"

	"github.com/gagliardetto/solana-go/rpc"
)

// SolanaClient wraps the Solana RPC client used for status reporting
type SolanaClient struct {
	client *rpc.Client
	config *config.RPCConfig
}

// NewSolanaClient returns nil when no RPC endpoint is configured
func NewSolanaClient(cfg *config.RPCConfig) *SolanaClient {
	if cfg.Endpoint == "" {
		return nil
	}

	return &SolanaClient{
		client: rpc.New(cfg.Endpoint),
		config: cfg,
	}
}

// IsHealthy checks if the RPC endpoint is responsive
func (s *SolanaClient) IsHealthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	// The latest blockhash is cheap and available on every RPC node
	if _, err := s.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized); err != nil {
		return fmt.Errorf("RPC health check failed: %w", err)
	}

	return nil
}
