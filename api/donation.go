package api

import (
	"log"

	"relieffund/config"
	"relieffund/database"
	"relieffund/middleware"
	"relieffund/models"
	"relieffund/service"

	"github.com/gin-gonic/gin"
)

// DonationHandler 捐赠处理器
type DonationHandler struct {
	emailService *service.EmailService
}

// NewDonationHandler 创建捐赠处理器
func NewDonationHandler(cfg *config.Config) *DonationHandler {
	return &DonationHandler{
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// CreateDonationRequest 捐赠请求
type CreateDonationRequest struct {
	CampaignID uint    `json:"campaign_id" binding:"required" example:"1"`
	Amount     float64 `json:"amount" binding:"required,gt=0" example:"100"`
	Message    string  `json:"message" binding:"omitempty,max=255" example:"一点心意"`
}

// Create 创建捐赠
// @Summary 向援助项目捐赠
// @Description 向进行中的援助项目捐赠，成功后向捐赠人邮箱发送回执（邮件服务启用时）
// @Tags 捐赠
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDonationRequest true "捐赠信息"
// @Success 200 {object} Response{data=models.Donation} "捐赠成功"
// @Failure 400 {object} Response "参数错误或项目不可捐赠"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "项目不存在"
// @Router /api/v1/donations [post]
func (h *DonationHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var campaign models.Campaign
	if err := database.DB.First(&campaign, req.CampaignID).Error; err != nil {
		NotFound(c, "项目不存在")
		return
	}
	if campaign.Status != models.CampaignStatusActive {
		BadRequest(c, "项目已暂停或结束，暂不可捐赠")
		return
	}

	donation := models.Donation{
		UserID:     userID,
		CampaignID: campaign.ID,
		Amount:     req.Amount,
		Message:    req.Message,
	}
	if err := database.DB.Create(&donation).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建捐赠记录失败"))
		return
	}

	// 回执邮件失败不影响捐赠结果
	var user models.User
	if err := database.DB.First(&user, userID).Error; err == nil && user.Email != "" {
		if err := h.emailService.SendDonationReceiptEmail(user.Email, user.Username, campaign.Name, req.Amount); err != nil {
			log.Printf("发送捐赠回执失败: %v", err)
		}
	}

	SuccessWithMessage(c, "感谢您的捐赠", donation)
}

// List 获取捐赠记录
// @Summary 获取我的捐赠记录
// @Description 分页获取当前捐赠人的捐赠记录，按时间倒序
// @Tags 捐赠
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} Response{data=PageResponse{list=[]models.Donation}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/donations [get]
func (h *DonationHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	page := 1
	pageSize := 10
	var req struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&req); err == nil {
		if req.Page > 0 {
			page = req.Page
		}
		if req.PageSize > 0 && req.PageSize <= 100 {
			pageSize = req.PageSize
		}
	}

	query := database.DB.Model(&models.Donation{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var donations []models.Donation
	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&donations).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		List:     donations,
	})
}
