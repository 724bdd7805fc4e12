package api

import (
	"errors"
	"net/http"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	ammtypes "github.com/Mustafa6066/Osool-sub002/x/amm/types"
	assetstypes "github.com/Mustafa6066/Osool-sub002/x/assets/types"
	settlementtypes "github.com/Mustafa6066/Osool-sub002/x/settlement/types"
)

func (s *Server) handleListPools(c *gin.Context) {
	pools := s.amm.GetPools()
	out := make([]PoolResponse, 0, len(pools))
	for _, p := range pools {
		out = append(out, newPoolResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"pools": out})
}

func (s *Server) handleGetPool(c *gin.Context) {
	pool, err := s.amm.GetPool(c.Param("asset"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPoolResponse(pool))
}

func (s *Server) handleQuote(c *gin.Context) {
	assetID := c.Param("asset")
	direction := ammtypes.Direction(c.Query("direction"))
	amountIn, ok := math.NewIntFromString(c.Query("amount"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be an integer"})
		return
	}

	out, err := s.amm.Quote(assetID, direction, amountIn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, QuoteResponse{
		AssetID:   assetID,
		Direction: string(direction),
		AmountIn:  amountIn.String(),
		AmountOut: out.String(),
	})
}

func (s *Server) handleSpotPrice(c *gin.Context) {
	assetID := c.Param("asset")
	spot, err := s.amm.SpotPrice(assetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset_id": assetID, "spot_price": spot.String()})
}

func (s *Server) handleTWAP(c *gin.Context) {
	assetID := c.Param("asset")
	window, err := cast.ToInt64E(c.Query("window"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "window must be an integer number of seconds"})
		return
	}

	twap, err := s.amm.TWAP(assetID, window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asset_id": assetID,
		"window":   window,
		"twap":     twap.String(),
	})
}

func (s *Server) handleListPositions(c *gin.Context) {
	positions, err := s.amm.GetPositions(c.Param("asset"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]PositionResponse, 0, len(positions))
	for _, p := range positions {
		out = append(out, newPositionResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"positions": out})
}

func (s *Server) handleGetPosition(c *gin.Context) {
	pos, err := s.amm.GetPosition(c.Param("asset"), c.Param("owner"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPositionResponse(pos))
}

func (s *Server) handleSettlementSupply(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total_supply":   s.settlement.TotalSupply().String(),
		"max_supply_cap": s.settlement.MaxSupplyCap().String(),
	})
}

func (s *Server) handleSettlementAccount(c *gin.Context) {
	account, err := s.settlement.Account(c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"owner":       account.Owner,
		"balance":     account.Balance.String(),
		"blacklisted": account.Blacklisted,
	})
}

func (s *Server) handleGetAsset(c *gin.Context) {
	asset, err := s.assets.Asset(c.Param("asset"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           asset.ID,
		"name":         asset.Name,
		"total_supply": asset.TotalSupply.String(),
	})
}

func (s *Server) handleAssetBalance(c *gin.Context) {
	assetID := c.Param("asset")
	if _, err := s.assets.Asset(assetID); err != nil {
		respondError(c, err)
		return
	}
	addr := c.Param("address")
	c.JSON(http.StatusOK, gin.H{
		"asset_id": assetID,
		"address":  addr,
		"balance":  s.assets.Balance(assetID, addr).String(),
	})
}

// respondError maps keeper errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ammtypes.ErrPoolNotFound),
		errors.Is(err, ammtypes.ErrInsufficientShares),
		errors.Is(err, assetstypes.ErrAssetNotFound),
		errors.Is(err, settlementtypes.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ammtypes.ErrInvalidInput),
		errors.Is(err, ammtypes.ErrInvalidDirection),
		errors.Is(err, ammtypes.ErrInsufficientHistory):
		status = http.StatusBadRequest
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
