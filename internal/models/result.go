package models

// Source tells whether data came from the remote API or the fallback set
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// FallbackReason explains why fallback data was served
type FallbackReason string

const (
	ReasonNone          FallbackReason = ""
	ReasonNotConfigured FallbackReason = "not_configured"
	ReasonHTTPStatus    FallbackReason = "http_status"
	ReasonTransport     FallbackReason = "transport"
	ReasonTimeout       FallbackReason = "timeout"
	ReasonDecode        FallbackReason = "decode"
	ReasonEmptyResponse FallbackReason = "empty_response"
)

// Result carries fetched data tagged with where it came from
type Result[T any] struct {
	Data           T              `json:"data"`
	Source         Source         `json:"source"`
	FallbackReason FallbackReason `json:"fallbackReason,omitempty"`
	Cause          error          `json:"-"`
}

// Live wraps data returned by the remote API
func Live[T any](data T) *Result[T] {
	return &Result[T]{Data: data, Source: SourceLive}
}

// Fallback wraps placeholder data with the reason it was used
func Fallback[T any](data T, reason FallbackReason, cause error) *Result[T] {
	return &Result[T]{
		Data:           data,
		Source:         SourceFallback,
		FallbackReason: reason,
		Cause:          cause,
	}
}

// IsFallback reports whether the data is placeholder data
func (r *Result[T]) IsFallback() bool {
	return r.Source == SourceFallback
}

// TrendingTokensResponse is the API response for the trending list
type TrendingTokensResponse struct {
	Tokens         []TrendingToken `json:"tokens"`
	Source         Source          `json:"source"`
	FallbackReason FallbackReason  `json:"fallbackReason,omitempty"`
}

// WalletInfoResponse is the API response for a wallet lookup
type WalletInfoResponse struct {
	Wallet         WalletInfo     `json:"wallet"`
	Source         Source         `json:"source"`
	FallbackReason FallbackReason `json:"fallbackReason,omitempty"`
}

// WalletAddressURI binds the address path segment of wallet routes
type WalletAddressURI struct {
	Address string `uri:"address" binding:"required,solana_address"`
}
