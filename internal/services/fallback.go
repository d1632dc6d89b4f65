package services

import "solana-token-tracker/internal/models"

// FallbackTrendingTokens returns the fixed trending list served when the
// tracker API is unavailable. A fresh slice is returned on every call.
func FallbackTrendingTokens() []models.TrendingToken {
	return []models.TrendingToken{
		{
			Mint:           "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			Name:           "USD Coin",
			Symbol:         "USDC",
			Price:          1.0,
			PriceChange24h: 0.01,
			Volume24h:      1500000000,
			MarketCap:      45000000000,
		},
		{
			Mint:           "So11111111111111111111111111111111111111112",
			Name:           "Wrapped SOL",
			Symbol:         "SOL",
			Price:          98.45,
			PriceChange24h: 5.23,
			Volume24h:      2500000000,
			MarketCap:      42000000000,
		},
		{
			Mint:           "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
			Name:           "USDT",
			Symbol:         "USDT",
			Price:          1.0,
			PriceChange24h: -0.02,
			Volume24h:      800000000,
			MarketCap:      95000000000,
		},
		{
			Mint:           "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So",
			Name:           "Marinade Staked SOL",
			Symbol:         "mSOL",
			Price:          102.34,
			PriceChange24h: 4.56,
			Volume24h:      450000000,
			MarketCap:      3800000000,
		},
		{
			Mint:           "7dHbWXmci3dT8UFYWYZweBLXgycu7Y3iL6trKn1Y7ARj",
			Name:           "Staked SOL",
			Symbol:         "stSOL",
			Price:          101.89,
			PriceChange24h: 3.21,
			Volume24h:      320000000,
			MarketCap:      2800000000,
		},
	}
}

// FallbackWalletInfo returns constant balances for address. The address is
// echoed back unchanged.
func FallbackWalletInfo(address string) models.WalletInfo {
	return models.WalletInfo{
		Address:    address,
		SolBalance: 2.5432,
		TokenBalances: []models.TokenBalance{
			{
				Mint:     "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
				Name:     "USD Coin",
				Symbol:   "USDC",
				UIAmount: 100.5,
				Decimals: 6,
			},
			{
				Mint:     "So11111111111111111111111111111111111111112",
				Name:     "Wrapped SOL",
				Symbol:   "SOL",
				UIAmount: 1.25,
				Decimals: 9,
			},
			{
				Mint:     "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
				Name:     "USDT",
				Symbol:   "USDT",
				UIAmount: 50.0,
				Decimals: 6,
			},
		},
	}
}
