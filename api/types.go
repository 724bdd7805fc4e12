package api

import (
	ammtypes "github.com/Mustafa6066/Osool-sub002/x/amm/types"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// PoolResponse is the wire view of a pool. Integer amounts are strings so
// clients never lose precision to JSON numbers.
type PoolResponse struct {
	AssetID               string `json:"asset_id"`
	TokenReserve          string `json:"token_reserve"`
	SettlementReserve     string `json:"settlement_reserve"`
	TotalShares           string `json:"total_shares"`
	PlatformFeeToken      string `json:"platform_fee_token"`
	PlatformFeeSettlement string `json:"platform_fee_settlement"`
	SpotPrice             string `json:"spot_price"`
	Active                bool   `json:"active"`
	CreatedAt             int64  `json:"created_at"`
}

func newPoolResponse(p ammtypes.Pool) PoolResponse {
	return PoolResponse{
		AssetID:               p.AssetID,
		TokenReserve:          p.TokenReserve.String(),
		SettlementReserve:     p.SettlementReserve.String(),
		TotalShares:           p.TotalShares.String(),
		PlatformFeeToken:      p.PlatformFeeToken.String(),
		PlatformFeeSettlement: p.PlatformFeeSettlement.String(),
		SpotPrice:             p.SpotPrice().String(),
		Active:                p.Active,
		CreatedAt:             p.CreatedAt,
	}
}

// QuoteResponse is the wire view of a swap quote.
type QuoteResponse struct {
	AssetID   string `json:"asset_id"`
	Direction string `json:"direction"`
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
}

// PositionResponse is the wire view of a liquidity position.
type PositionResponse struct {
	Owner                    string `json:"owner"`
	AssetID                  string `json:"asset_id"`
	Shares                   string `json:"shares"`
	InitialTokenDeposit      string `json:"initial_token_deposit"`
	InitialSettlementDeposit string `json:"initial_settlement_deposit"`
}

func newPositionResponse(p ammtypes.Position) PositionResponse {
	return PositionResponse{
		Owner:                    p.Owner,
		AssetID:                  p.AssetID,
		Shares:                   p.Shares.String(),
		InitialTokenDeposit:      p.InitialTokenDeposit.String(),
		InitialSettlementDeposit: p.InitialSettlementDeposit.String(),
	}
}
