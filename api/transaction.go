package api

import (
	"errors"
	"time"

	"relieffund/database"
	"relieffund/middleware"
	"relieffund/models"
	"relieffund/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 商户收款处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建商户收款处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// CreateTransactionRequest 确认收款请求
type CreateTransactionRequest struct {
	BeneficiaryCode string  `json:"beneficiary_code" binding:"required" example:"BNF-2024-0001"`
	Category        string  `json:"category" binding:"required" example:"食品"`
	Amount          float64 `json:"amount" binding:"required,gt=0" example:"99.50"`
}

// Create 确认收款（创建交易）
// @Summary 商户确认收款
// @Description 商户为受助人记录一笔消费。校验商户与受助人均已批准、属于同一项目、商户经营该类别，并执行类别剩余额度与受助人总限额检查。创建后交易不可修改。
// @Tags 商户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "收款信息"
// @Success 200 {object} Response{data=models.Transaction} "收款成功"
// @Failure 400 {object} Response "参数错误或超出额度"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "商户未批准或不可经营该类别"
// @Failure 404 {object} Response "受助人不存在"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 商户档案
	var vendor models.Vendor
	if err := database.DB.Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		NotFound(c, "当前账号未关联商户档案")
		return
	}
	if vendor.Status != models.VendorStatusApproved {
		Forbidden(c, "商户尚未批准，不可收款")
		return
	}
	if !vendor.ServesCategory(req.Category) {
		Forbidden(c, "商户未被授权经营该类别")
		return
	}

	// 受助人
	var beneficiary models.Beneficiary
	if err := database.DB.Where("beneficiary_code = ?", req.BeneficiaryCode).First(&beneficiary).Error; err != nil {
		NotFound(c, "受助人不存在")
		return
	}
	if beneficiary.Status != models.BeneficiaryStatusApproved {
		Forbidden(c, "受助人尚未批准或已暂停，不可消费")
		return
	}
	if beneficiary.CampaignID != vendor.CampaignID {
		Forbidden(c, "受助人与商户不属于同一援助项目")
		return
	}

	// 项目与额度校验
	var campaign models.Campaign
	if err := database.DB.First(&campaign, beneficiary.CampaignID).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询项目失败"))
		return
	}

	var txs []models.Transaction
	if err := database.DB.Where("beneficiary_id = ?", beneficiary.ID).Find(&txs).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询交易记录失败"))
		return
	}
	spentByCategory, totalSpent := service.AggregateSpending(txs)

	if err := service.CheckPurchase(&campaign, spentByCategory, totalSpent, req.Category, req.Amount); err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotActive):
			Forbidden(c, err.Error())
		default:
			BadRequest(c, err.Error())
		}
		return
	}

	tx := models.Transaction{
		BeneficiaryID:   beneficiary.ID,
		VendorID:        vendor.ID,
		Category:        req.Category,
		Amount:          req.Amount,
		Status:          models.TransactionStatusPaid,
		TransactionTime: time.Now(),
	}
	if err := database.DB.Create(&tx).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建交易失败"))
		return
	}

	SuccessWithMessage(c, "收款成功", tx)
}

// VendorTransactionListRequest 商户收款记录列表请求
type VendorTransactionListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	Category  string `form:"category" example:"食品"`
	StartTime string `form:"start_time" example:"2024-01-01"`
	EndTime   string `form:"end_time" example:"2024-12-31"`
}

// List 获取商户收款记录
// @Summary 获取商户收款记录
// @Description 分页获取当前商户收到的交易，按时间倒序，支持类别和时间范围筛选
// @Tags 商户
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param category query string false "类别筛选"
// @Param start_time query string false "开始时间 (2024-01-01)"
// @Param end_time query string false "结束时间 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "当前账号未关联商户档案"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var vendor models.Vendor
	if err := database.DB.Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		NotFound(c, "当前账号未关联商户档案")
		return
	}

	var req VendorTransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Transaction{}).Where("vendor_id = ?", vendor.ID)
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.StartTime != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.StartTime, time.Local); err == nil {
			query = query.Where("transaction_time >= ?", t)
		}
	}
	if req.EndTime != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.EndTime, time.Local); err == nil {
			// 包含结束日期当天
			t = t.Add(24*time.Hour - time.Second)
			query = query.Where("transaction_time <= ?", t)
		}
	}

	var total int64
	query.Count(&total)

	var txs []models.Transaction
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("transaction_time DESC").Offset(offset).Limit(req.PageSize).Find(&txs).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     txs,
	})
}
