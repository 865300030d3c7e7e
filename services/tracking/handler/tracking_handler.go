package handler

import (
	"context"
	"fmt"
	"net/http"

	"bid-reconciler/internal/models"
	tracking "bid-reconciler/internal/trackingService"
	"bid-reconciler/services/tracking/helpers"
	"bid-reconciler/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=tracking_handler.go -destination=mock_tracking_handler.go -package=handler

type TrackingServiceInterface interface {
	LogBid(ctx context.Context, in tracking.LogBidInput) (models.Bid, error)
	ListBidsByCompany(ctx context.Context, companyID string, page, limit int) ([]models.Bid, int, error)
	CheckBid(ctx context.Context, bidID string) (models.Bid, error)
	Health(ctx context.Context) (models.Health, error)
	Stats(ctx context.Context) (models.BidStats, error)
}

type TrackingHandler struct {
	service TrackingServiceInterface
}

func NewTrackingHandler(service TrackingServiceInterface) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// LogBidHandler handles POST /bids
func (h *TrackingHandler) LogBidHandler(c *gin.Context) {
	var req helpers.LogBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LogBidHandler", err)
		return
	}

	bid, err := h.service.LogBid(c.Request.Context(), tracking.LogBidInput{
		UserID:         req.UserID,
		CompanyID:      req.CompanyID,
		Auction:        models.AuctionSource(req.Auction),
		LotNumber:      req.LotNumber,
		VIN:            req.VIN,
		BidAmount:      req.BidAmount,
		BidType:        req.BidType,
		IsPreBid:       req.IsPreBid,
		AuctionDate:    req.AuctionDate,
		AuctionEndTime: req.AuctionEndTime,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("LogBidHandler: failed to log bid", map[string]any{
			"handler":    "LogBidHandler",
			"company_id": req.CompanyID,
			"lot_number": req.LotNumber,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid logged successfully")
	helpers.LogSuccess("LogBidHandler", "bid logged successfully", map[string]any{
		"bid_id":     bid.ID,
		"company_id": bid.CompanyID,
		"lot_number": bid.LotNumber,
		"auction":    bid.Auction,
		"amount":     bid.BidAmount,
	})
}

// ListCompanyBidsHandler handles GET /companies/:company_id/bids
func (h *TrackingHandler) ListCompanyBidsHandler(c *gin.Context) {
	companyID := c.Param("company_id")
	page, limit := helpers.ParsePagination(c, tracking.DefaultPageSize, tracking.MaxPageSize)

	bids, total, err := h.service.ListBidsByCompany(c.Request.Context(), companyID, page, limit)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListCompanyBidsHandler: error retrieving bids", map[string]any{"company_id": companyID, "error": err.Error()})
		return
	}

	utils.JSONPage(c, http.StatusOK, helpers.NewBidResponses(bids), total, page, limit, "bids retrieved successfully")
	helpers.LogSuccess("ListCompanyBidsHandler", "bids retrieved successfully", map[string]any{
		"company_id": companyID,
		"count":      len(bids),
		"total":      total,
	})
}

// CheckBidHandler handles POST /scraper/check/:bid_id
func (h *TrackingHandler) CheckBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")

	bid, err := h.service.CheckBid(c.Request.Context(), bidID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CheckBidHandler: bid check failed", map[string]any{"bid_id": bidID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "bid check completed")
	helpers.LogSuccess("CheckBidHandler", "bid check completed", map[string]any{
		"bid_id": bid.ID,
		"status": bid.Status,
	})
}

// HealthHandler handles GET /scraper/health
func (h *TrackingHandler) HealthHandler(c *gin.Context) {
	health, err := h.service.Health(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("HealthHandler: health query failed", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, health, "reconciliation health")
}

// StatsHandler handles GET /scraper/stats
func (h *TrackingHandler) StatsHandler(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("StatsHandler: stats query failed", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, stats, "reconciliation stats")
}
