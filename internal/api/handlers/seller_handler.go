package handlers

import (
	"net/http"
	"strconv"
	"time"

	domain "seller-service/internal/domain/seller"
	serviceInterfaces "seller-service/internal/interfaces/service"
	"seller-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// SellerHandler handles seller-related HTTP requests
type SellerHandler struct {
	sellerService    serviceInterfaces.SellerService
	analyticsService serviceInterfaces.AnalyticsService
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(sellerService serviceInterfaces.SellerService, analyticsService serviceInterfaces.AnalyticsService) *SellerHandler {
	return &SellerHandler{
		sellerService:    sellerService,
		analyticsService: analyticsService,
	}
}

// statusForKind maps domain error kinds to HTTP status codes
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrKindNotFound:
		return http.StatusNotFound
	case domain.ErrKindConflict, domain.ErrKindHasDependents:
		return http.StatusConflict
	case domain.ErrKindAccountSuspended:
		return http.StatusForbidden
	case domain.ErrKindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case domain.ErrKindInvalidState, domain.ErrKindMissingFields,
		domain.ErrKindMissingReason, domain.ErrKindInvalidRange,
		domain.ErrKindInvalidUser:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, message string, err error) {
	if domainErr, ok := domain.AsError(err); ok {
		c.JSON(statusForKind(domainErr.Kind), APIResponse{
			Success: false,
			Message: message,
			Errors:  domainErr,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Message: message,
		Errors:  err.Error(),
	})
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid " + name + " format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// Register handles POST /api/v1/sellers
func (h *SellerHandler) Register(c *gin.Context) {
	var req domain.RegisterSellerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		validationErrors := validator.FormatValidationError(err)
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validationErrors,
		})
		return
	}

	seller, err := h.sellerService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Registration failed", err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Seller registered successfully",
		Data:    seller,
	})
}

// GetSeller handles GET /api/v1/sellers/:id
func (h *SellerHandler) GetSeller(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	seller, err := h.sellerService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to retrieve seller", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    seller,
	})
}

// GetSellerByUser handles GET /api/v1/sellers/user/:user_id
func (h *SellerHandler) GetSellerByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	seller, err := h.sellerService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to retrieve seller", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    seller,
	})
}

// ListSellers handles GET /api/v1/sellers
func (h *SellerHandler) ListSellers(c *gin.Context) {
	filters := &domain.Filters{
		Search:   c.Query("search"),
		SortBy:   c.Query("sort_by"),
		SortDesc: c.Query("sort_dir") == "desc",
	}

	if status := c.Query("status"); status != "" {
		sellerStatus := domain.SellerStatus(status)
		filters.Status = &sellerStatus
	}
	if verification := c.Query("verification_status"); verification != "" {
		verificationStatus := domain.VerificationStatus(verification)
		filters.VerificationStatus = &verificationStatus
	}
	if minRating := c.Query("min_rating"); minRating != "" {
		rating, err := strconv.ParseFloat(minRating, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, APIResponse{
				Success: false,
				Message: "Invalid min_rating format",
			})
			return
		}
		filters.MinRating = &rating
	}
	if limit := c.Query("limit"); limit != "" {
		filters.Limit, _ = strconv.Atoi(limit)
	}
	if offset := c.Query("offset"); offset != "" {
		filters.Offset, _ = strconv.Atoi(offset)
	}

	response, err := h.sellerService.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, "Failed to list sellers", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    response,
	})
}

// ListPendingVerification handles GET /api/v1/sellers/pending-verification
func (h *SellerHandler) ListPendingVerification(c *gin.Context) {
	sellers, err := h.sellerService.ListPendingVerification(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to list pending verifications", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"sellers": sellers},
	})
}

// GetStats handles GET /api/v1/sellers/stats
func (h *SellerHandler) GetStats(c *gin.Context) {
	stats, err := h.sellerService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to compute seller stats", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    stats,
	})
}

// UpdateProfile handles PUT /api/v1/sellers/:id
func (h *SellerHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		validationErrors := validator.FormatValidationError(err)
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validationErrors,
		})
		return
	}

	seller, err := h.sellerService.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, "Failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Profile updated successfully",
		Data:    seller,
	})
}

// UpdateBanking handles PUT /api/v1/sellers/:id/banking
func (h *SellerHandler) UpdateBanking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateBankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		validationErrors := validator.FormatValidationError(err)
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validationErrors,
		})
		return
	}

	seller, err := h.sellerService.UpdateBankingInfo(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, "Failed to update banking information", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Banking information updated successfully",
		Data:    seller.BankingInfo(),
	})
}

// SubmitForVerification handles POST /api/v1/sellers/:id/submit-verification
func (h *SellerHandler) SubmitForVerification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	seller, err := h.sellerService.SubmitForVerification(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to submit for verification", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Seller submitted for verification",
		Data:    seller,
	})
}

// Approve handles POST /api/v1/sellers/:id/approve
func (h *SellerHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req domain.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		validationErrors := validator.FormatValidationError(err)
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validationErrors,
		})
		return
	}

	seller, err := h.sellerService.Approve(c.Request.Context(), id, req.AdminID)
	if err != nil {
		respondError(c, "Failed to approve seller", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Seller approved successfully",
		Data:    seller,
	})
}

// Reject handles POST /api/v1/sellers/:id/reject
func (h *SellerHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req domain.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	seller, err := h.sellerService.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		respondError(c, "Failed to reject seller", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Seller rejected",
		Data:    seller,
	})
}

// Suspend handles POST /api/v1/sellers/:id/suspend
func (h *SellerHandler) Suspend(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req domain.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	seller, err := h.sellerService.Suspend(c.Request.Context(), id, req.Reason)
	if err != nil {
		respondError(c, "Failed to suspend seller", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Seller suspended",
		Data:    seller,
	})
}

// Reactivate handles POST /api/v1/sellers/:id/reactivate
func (h *SellerHandler) Reactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	seller, err := h.sellerService.Reactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to reactivate seller", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Seller reactivated",
		Data:    seller,
	})
}

// DeleteSeller handles DELETE /api/v1/sellers/:id
func (h *SellerHandler) DeleteSeller(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.sellerService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete seller", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Seller deleted successfully",
	})
}

// IncrementProducts handles POST /api/v1/sellers/:id/products/increment
func (h *SellerHandler) IncrementProducts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	seller, err := h.sellerService.IncrementProductCount(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to increment product count", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    seller,
	})
}

// DecrementProducts handles POST /api/v1/sellers/:id/products/decrement
func (h *SellerHandler) DecrementProducts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	seller, err := h.sellerService.DecrementProductCount(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to decrement product count", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    seller,
	})
}

// RecordSale handles POST /api/v1/sellers/:id/sales
func (h *SellerHandler) RecordSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req domain.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	seller, err := h.sellerService.RecordSale(c.Request.Context(), id, req.Amount)
	if err != nil {
		respondError(c, "Failed to record sale", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Sale recorded successfully",
		Data:    seller,
	})
}

// UpdateRating handles POST /api/v1/sellers/:id/rating
func (h *SellerHandler) UpdateRating(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	seller, err := h.sellerService.UpdateRating(c.Request.Context(), id, req.Rating, req.TotalReviews)
	if err != nil {
		respondError(c, "Failed to update rating", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Rating updated successfully",
		Data:    seller,
	})
}

// GetAnalytics handles GET /api/v1/sellers/:id/analytics
func (h *SellerHandler) GetAnalytics(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	period := serviceInterfaces.AnalyticsPeriod(c.DefaultQuery("period", string(serviceInterfaces.PeriodMonth)))

	var customStart, customEnd *time.Time
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, APIResponse{
				Success: false,
				Message: "Invalid start_date format, expected RFC3339",
			})
			return
		}
		customStart = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, APIResponse{
				Success: false,
				Message: "Invalid end_date format, expected RFC3339",
			})
			return
		}
		customEnd = &end
	}

	analytics, err := h.analyticsService.SellerAnalytics(c.Request.Context(), id, period, customStart, customEnd)
	if err != nil {
		respondError(c, "Failed to build seller analytics", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    analytics,
	})
}
