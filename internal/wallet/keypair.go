package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// KeypairProvider is a wallet backed by a solana-keygen JSON file. The file is
// read on every Connect so a replaced key is picked up.
type KeypairProvider struct {
	path string

	mu        sync.RWMutex
	publicKey *solana.PublicKey
}

// NewKeypairProvider creates a provider for the keygen file at path
func NewKeypairProvider(path string) *KeypairProvider {
	return &KeypairProvider{path: path}
}

func (p *KeypairProvider) Name() string    { return "keypair" }
func (p *KeypairProvider) Installed() bool { return true }

// Connect loads the keypair and exposes its public key
func (p *KeypairProvider) Connect(ctx context.Context) (solana.PublicKey, error) {
	if err := ctx.Err(); err != nil {
		return solana.PublicKey{}, err
	}

	privateKey, err := solana.PrivateKeyFromSolanaKeygenFile(p.path)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("load keypair %s: %w", p.path, err)
	}
	publicKey := privateKey.PublicKey()

	p.mu.Lock()
	p.publicKey = &publicKey
	p.mu.Unlock()

	return publicKey, nil
}

// Disconnect forgets the public key
func (p *KeypairProvider) Disconnect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.publicKey == nil {
		return ErrNotConnected
	}
	p.publicKey = nil
	return nil
}

func (p *KeypairProvider) PublicKey() *solana.PublicKey {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.publicKey == nil {
		return nil
	}
	key := *p.publicKey
	return &key
}
