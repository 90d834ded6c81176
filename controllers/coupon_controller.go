// controllers/coupon_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotel-reservation-backend/models"
	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CouponController struct {
	DB        *gorm.DB
	CouponSvc *services.CouponService
}

func NewCouponController(db *gorm.DB, svc *services.CouponService) *CouponController {
	return &CouponController{DB: db, CouponSvc: svc}
}

type CreateCouponRequest struct {
	Code          string     `json:"code" binding:"required"`
	DiscountType  string     `json:"discount_type" binding:"required"`
	DiscountValue int64      `json:"discount_value" binding:"required"`
	StartAt       *time.Time `json:"start_at"`
	EndAt         *time.Time `json:"end_at"`
	MinAmount     *int64     `json:"min_amount"`
	MaxUses       *int       `json:"max_uses"`
	Active        *bool      `json:"active"`
}

func (ctrl *CouponController) GetCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := ctrl.DB.Order("code ASC").Find(&coupons).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, coupons)
}

func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	typ := strings.ToLower(strings.TrimSpace(req.DiscountType))
	if typ != models.DiscountTypePercent && typ != models.DiscountTypeFixed {
		utils.JSONError(c, http.StatusBadRequest, "discount_type must be percent or fixed")
		return
	}
	if req.DiscountValue <= 0 || (typ == models.DiscountTypePercent && req.DiscountValue > 100) {
		utils.JSONError(c, http.StatusBadRequest, "invalid discount_value")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	coupon := models.Coupon{
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType:  typ,
		DiscountValue: req.DiscountValue,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		MinAmount:     req.MinAmount,
		MaxUses:       req.MaxUses,
		Active:        active,
	}
	if err := ctrl.DB.Create(&coupon).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, coupon)
}

func (ctrl *CouponController) DeleteCoupon(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	res := ctrl.DB.Where("code = ?", code).Delete(&models.Coupon{})
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, services.ErrCouponNotFound.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": code})
}

// PreviewCoupon GET /api/coupons/:code/preview?amount= — validates without
// consuming a use, for checkout previews.
func (ctrl *CouponController) PreviewCoupon(c *gin.Context) {
	amount, err := parseAmount(c.Query("amount"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid amount")
		return
	}

	coupon, err := ctrl.CouponSvc.Validate(c.Param("code"), amount, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrCouponNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, coupon)
}

func parseAmount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
