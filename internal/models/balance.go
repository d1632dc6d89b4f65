package models

import (
	"github.com/shopspring/decimal"
)

// TrendingToken represents a token in the trending list
type TrendingToken struct {
	Mint           string  `json:"mint"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	Price          float64 `json:"price"`
	PriceChange24h float64 `json:"priceChange24h"`
	Volume24h      float64 `json:"volume24h"`
	MarketCap      float64 `json:"marketCap"`
}

// TokenBalance represents an SPL token holding of a wallet.
// UIAmount is already scaled by Decimals.
type TokenBalance struct {
	Mint     string  `json:"mint"`
	Name     string  `json:"name,omitempty"`
	Symbol   string  `json:"symbol,omitempty"`
	UIAmount float64 `json:"uiAmount"`
	Decimals int     `json:"decimals"`
}

// RawAmount returns the unscaled integer balance, uiAmount * 10^decimals
func (b TokenBalance) RawAmount() decimal.Decimal {
	return decimal.NewFromFloat(b.UIAmount).Shift(int32(b.Decimals)).Round(0)
}

// UIAmountFromRaw scales a raw integer balance down by 10^decimals
func UIAmountFromRaw(raw decimal.Decimal, decimals int) float64 {
	ui, _ := raw.Shift(-int32(decimals)).Float64()
	return ui
}

// WalletInfo represents the SOL balance and token holdings of a wallet
type WalletInfo struct {
	Address       string         `json:"address"`
	SolBalance    float64        `json:"solBalance"`
	TokenBalances []TokenBalance `json:"tokenBalances"`
}
