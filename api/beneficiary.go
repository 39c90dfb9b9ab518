package api

import (
	"time"

	"relieffund/database"
	"relieffund/middleware"
	"relieffund/models"
	"relieffund/service"

	"github.com/gin-gonic/gin"
)

// BeneficiaryHandler 受助人端处理器
type BeneficiaryHandler struct{}

// NewBeneficiaryHandler 创建受助人端处理器
func NewBeneficiaryHandler() *BeneficiaryHandler {
	return &BeneficiaryHandler{}
}

// BeneficiaryInfo 仪表盘中的受助人信息
type BeneficiaryInfo struct {
	ID              uint   `json:"id"`
	BeneficiaryCode string `json:"beneficiary_code"`
	Status          string `json:"status"`
	FullName        string `json:"full_name"`
}

// CampaignInfo 仪表盘中的项目信息
type CampaignInfo struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// DashboardResponse 受助人仪表盘响应
type DashboardResponse struct {
	Beneficiary  BeneficiaryInfo       `json:"beneficiary"`
	Campaign     CampaignInfo          `json:"campaign"`
	Approver     string                `json:"approver"`
	ApprovalDate *time.Time            `json:"approval_date"`
	Categories   []string              `json:"categories"`
	Stores       []string              `json:"stores"`
	TotalLimit   float64               `json:"total_limit"`
	TotalSpent   float64               `json:"total_spent"`
	Balances     []service.Balance     `json:"balances"`
	History      []service.HistoryItem `json:"history"`
}

// GetDashboard 获取受助人仪表盘
// @Summary 获取受助人仪表盘
// @Description 返回当前受助人的项目信息、各类别余额、总额度使用情况和最近 10 笔交易。余额按限额映射的键集合计算，剩余额度恒不为负。
// @Tags 受助人
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=DashboardResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "当前账号未关联受助人档案"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/beneficiary/dashboard [get]
func (h *BeneficiaryHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	// 受助人档案：未关联时按 404 处理，不返回部分数据
	var beneficiary models.Beneficiary
	if err := database.DB.Where("user_id = ?", userID).First(&beneficiary).Error; err != nil {
		NotFound(c, "当前账号未关联受助人档案")
		return
	}

	// 项目可能已被删除或配置损坏：按"元数据为空"降级，不报错
	var campaign *models.Campaign
	var loaded models.Campaign
	if err := database.DB.First(&loaded, beneficiary.CampaignID).Error; err == nil {
		campaign = &loaded
	}
	categories, limits := service.CampaignLimits(campaign)

	// 审批机构名称
	var approver string
	if campaign != nil {
		var org models.Organisation
		if err := database.DB.First(&org, campaign.OrganisationID).Error; err == nil {
			approver = org.Name
		}
	}

	// 已批准商户列表
	var stores []string
	if campaign != nil {
		database.DB.Model(&models.Vendor{}).
			Where("campaign_id = ? AND status = ?", campaign.ID, models.VendorStatusApproved).
			Order("store_name ASC").
			Pluck("store_name", &stores)
	}

	// 全量交易（倒序）：汇总用全部，历史截取前 10 条
	var txs []models.Transaction
	if err := database.DB.Preload("Vendor").
		Where("beneficiary_id = ?", beneficiary.ID).
		Order("transaction_time DESC").
		Find(&txs).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询交易记录失败"))
		return
	}

	spentByCategory, totalSpent := service.AggregateSpending(txs)
	balances := service.ComputeBalances(categories, limits, spentByCategory)

	resp := DashboardResponse{
		Beneficiary: BeneficiaryInfo{
			ID:              beneficiary.ID,
			BeneficiaryCode: beneficiary.BeneficiaryCode,
			Status:          beneficiary.Status,
			FullName:        beneficiary.FullName,
		},
		Approver:     approver,
		ApprovalDate: beneficiary.ApprovalTime(),
		Categories:   categories,
		Stores:       stores,
		TotalSpent:   totalSpent,
		Balances:     balances,
		History:      service.BuildHistory(txs, 10),
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	if resp.Stores == nil {
		resp.Stores = []string{}
	}
	if campaign != nil {
		resp.Campaign = CampaignInfo{
			ID:       campaign.ID,
			Name:     campaign.Name,
			Location: campaign.Location,
			Status:   campaign.Status,
		}
		resp.TotalLimit = campaign.BeneficiaryCap
	}

	Success(c, resp)
}

// TransactionListRequest 交易历史列表请求
type TransactionListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"10"`
	Category string `form:"category" example:"食品"`
}

// ListTransactions 获取受助人交易历史
// @Summary 获取受助人交易历史
// @Description 分页获取当前受助人的交易记录，按时间倒序，支持类别筛选
// @Tags 受助人
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param category query string false "类别筛选"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "当前账号未关联受助人档案"
// @Router /api/v1/beneficiary/transactions [get]
func (h *BeneficiaryHandler) ListTransactions(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var beneficiary models.Beneficiary
	if err := database.DB.Where("user_id = ?", userID).First(&beneficiary).Error; err != nil {
		NotFound(c, "当前账号未关联受助人档案")
		return
	}

	var req TransactionListRequest
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

	query := database.DB.Model(&models.Transaction{}).Where("beneficiary_id = ?", beneficiary.ID)
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
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
