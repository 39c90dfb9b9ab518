package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"relieffund/adminauth"
	"relieffund/config"
	"relieffund/database"
	"relieffund/models"
	"relieffund/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

func setAdminCookie(c *gin.Context, name, value string, maxAge int, httpOnly bool) {
	secure, sameSite := getCookieOptions()
	c.SetCookieData(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: httpOnly,
		SameSite: sameSite,
	})
}

// setSignedAdminCookie 设置签名后的敏感 Cookie，防止客户端篡改
func setSignedAdminCookie(c *gin.Context, name, value string, maxAge int, httpOnly bool) {
	setAdminCookie(c, name, adminauth.SignCookieValue(value), maxAge, httpOnly)
}

// AdminHandler 后台管理处理器
type AdminHandler struct {
	cfg          *config.Config
	emailService *service.EmailService
}

// NewAdminHandler 创建后台管理处理器
func NewAdminHandler(cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		cfg:          cfg,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// getCurrentUser 获取当前登录用户信息（校验 Cookie 签名，防止篡改越权）
func getCurrentUser(c *gin.Context) (*models.User, error) {
	userID, err := adminauth.GetVerifiedAdminUserID(c)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AdminLoginRequest 后台登录请求（支持用户名或邮箱）
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"` // 可为用户名或邮箱
	Password string `json:"password" binding:"required"`
}

// AdminLogin 后台登录（使用 session/cookie 方式）
// @Summary 后台登录
// @Description 管理员或总部使用用户名和密码登录，登录成功后设置签名 Cookie。只有状态为 active 且角色为 admin/hq 的用户可以登录后台。
// @Tags 后台管理
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "登录信息"
// @Success 200 {object} map[string]interface{} "登录成功，返回用户信息"
// @Failure 400 {object} map[string]interface{} "请求参数错误"
// @Failure 401 {object} map[string]interface{} "用户名或密码错误"
// @Failure 403 {object} map[string]interface{} "账号已锁定或无后台权限"
// @Router /admin/login [post]
func (h *AdminHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误"})
		return
	}

	// 查找用户（支持用户名或邮箱）
	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "用户名或密码错误"})
		return
	}

	// 仅正常用户可登录
	if user.Status != models.UserStatusActive {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "账号已锁定，请联系管理员解锁"})
		return
	}

	// 仅管理员和总部可登录后台
	if !user.IsBackofficeRole() {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "该账号无后台权限"})
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "用户名或密码错误"})
		return
	}

	// 设置 Cookie（admin_user_id 使用签名防篡改）
	setSignedAdminCookie(c, "admin_user_id", fmt.Sprintf("%d", user.ID), 86400, true)
	setAdminCookie(c, "admin_username", user.Username, 86400, false)
	setAdminCookie(c, "admin_role", user.Role, 86400, false)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "登录成功",
		"data": gin.H{
			"user_id":  user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// AdminLogout 后台登出
// @Summary 后台登出
// @Description 清除登录 Cookie
// @Tags 后台管理
// @Produce json
// @Success 200 {object} map[string]interface{} "登出成功"
// @Router /admin/logout [post]
func (h *AdminHandler) AdminLogout(c *gin.Context) {
	setAdminCookie(c, "admin_user_id", "", -1, true)
	setAdminCookie(c, "admin_username", "", -1, false)
	setAdminCookie(c, "admin_role", "", -1, false)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "已登出"})
}

// GetCurrentUserInfo 获取当前登录用户信息
// @Summary 获取当前登录用户信息
// @Tags 后台管理
// @Produce json
// @Success 200 {object} map[string]interface{} "获取成功"
// @Failure 401 {object} map[string]interface{} "未登录"
// @Router /admin/current-user [get]
func (h *AdminHandler) GetCurrentUserInfo(c *gin.Context) {
	user, err := getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "未登录"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
			"status":   user.Status,
		},
	})
}

// OrganisationCreateRequest 创建机构请求
type OrganisationCreateRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Region       string `json:"region" binding:"omitempty,max=100"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

// CreateOrganisation 创建机构
// @Summary 创建运营机构
// @Description 创建运营机构，归属当前登录管理员
// @Tags 后台管理-机构
// @Accept json
// @Produce json
// @Param request body OrganisationCreateRequest true "机构信息"
// @Success 200 {object} map[string]interface{} "创建成功"
// @Failure 400 {object} map[string]interface{} "参数错误或名称已存在"
// @Failure 401 {object} map[string]interface{} "未登录"
// @Router /admin/organisations [post]
func (h *AdminHandler) CreateOrganisation(c *gin.Context) {
	currentUser, err := getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "未登录"})
		return
	}

	var req OrganisationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error()})
		return
	}

	var existing models.Organisation
	if err := database.DB.Where("name = ?", strings.TrimSpace(req.Name)).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "机构名称已存在"})
		return
	}

	org := models.Organisation{
		Name:         strings.TrimSpace(req.Name),
		Region:       req.Region,
		ContactEmail: req.ContactEmail,
		AdminUserID:  currentUser.ID,
	}
	if err := database.DB.Create(&org).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "创建失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "创建成功", "data": org})
}

// ListOrganisations 获取机构列表
// @Summary 获取运营机构列表
// @Tags 后台管理-机构
// @Produce json
// @Success 200 {object} map[string]interface{} "获取成功"
// @Router /admin/organisations [get]
func (h *AdminHandler) ListOrganisations(c *gin.Context) {
	var list []models.Organisation
	if err := database.DB.Order("id ASC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "查询失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// OnboardBeneficiaryRequest 受助人开通请求
type OnboardBeneficiaryRequest struct {
	FullName   string `json:"full_name" binding:"required,min=1,max=100"`
	Username   string `json:"username" binding:"required,min=3,max=50"`
	Password   string `json:"password" binding:"required,min=6,max=50"`
	Email      string `json:"email" binding:"omitempty,email"`
	CampaignID uint   `json:"campaign_id" binding:"required"`
}

// generateBeneficiaryCode 生成受助人编号，如 BNF-2024-0001
func generateBeneficiaryCode() string {
	var count int64
	database.DB.Model(&models.Beneficiary{}).Unscoped().Count(&count)
	return fmt.Sprintf("BNF-%d-%04d", time.Now().Year(), count+1)
}

// OnboardBeneficiary 受助人开通
// @Summary 开通受助人
// @Description 创建受助人登录账号和档案，初始状态为 pending，需审批通过后才可消费。受助人终生归属一个项目。
// @Tags 后台管理-受助人
// @Accept json
// @Produce json
// @Param request body OnboardBeneficiaryRequest true "受助人信息"
// @Success 200 {object} map[string]interface{} "开通成功"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /admin/beneficiaries [post]
func (h *AdminHandler) OnboardBeneficiary(c *gin.Context) {
	var req OnboardBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error()})
		return
	}

	var campaign models.Campaign
	if err := database.DB.First(&campaign, req.CampaignID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "项目不存在"})
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "用户名已存在"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "密码加密失败"})
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hashed),
		Email:    req.Email,
		Role:     models.RoleBeneficiary,
		Status:   models.UserStatusActive,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "创建用户失败: " + err.Error()})
		return
	}

	beneficiary := models.Beneficiary{
		BeneficiaryCode: generateBeneficiaryCode(),
		FullName:        strings.TrimSpace(req.FullName),
		UserID:          user.ID,
		CampaignID:      campaign.ID,
		Status:          models.BeneficiaryStatusPending,
	}
	beneficiary.AppendActivity(models.BeneficiaryActionCreated, "后台开通")
	if err := database.DB.Create(&beneficiary).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "创建受助人档案失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "开通成功", "data": beneficiary})
}

// ListBeneficiaries 获取受助人列表
// @Summary 获取受助人列表
// @Description 获取受助人列表，支持按项目、状态和姓名筛选
// @Tags 后台管理-受助人
// @Produce json
// @Param campaign_id query int false "项目ID"
// @Param status query string false "状态 pending/approved/suspended"
// @Param name query string false "姓名（模糊匹配）"
// @Success 200 {object} map[string]interface{} "获取成功"
// @Router /admin/beneficiaries [get]
func (h *AdminHandler) ListBeneficiaries(c *gin.Context) {
	query := database.DB.Model(&models.Beneficiary{})
	if cid := c.Query("campaign_id"); cid != "" {
		if id, err := strconv.ParseUint(cid, 10, 32); err == nil {
			query = query.Where("campaign_id = ?", uint(id))
		}
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		query = query.Where("full_name LIKE ?", "%"+escapeLikeValue(name)+"%")
	}

	var list []models.Beneficiary
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "查询失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// BeneficiaryStatusRequest 受助人状态变更请求
type BeneficiaryStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=approved suspended"`
	Details string `json:"details" binding:"omitempty,max=255"`
}

// UpdateBeneficiaryStatus 审批/暂停受助人
// @Summary 审批或暂停受助人
// @Description 将受助人状态变更为 approved 或 suspended，并追加操作日志。批准时向受助人邮箱发送通知（邮件服务启用时）。
// @Tags 后台管理-受助人
// @Accept json
// @Produce json
// @Param id path int true "受助人ID"
// @Param request body BeneficiaryStatusRequest true "目标状态"
// @Success 200 {object} map[string]interface{} "变更成功"
// @Failure 404 {object} map[string]interface{} "受助人不存在"
// @Router /admin/beneficiaries/{id}/status [put]
func (h *AdminHandler) UpdateBeneficiaryStatus(c *gin.Context) {
	currentUser, err := getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "未登录"})
		return
	}

	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "无效的ID"})
		return
	}

	var beneficiary models.Beneficiary
	if err := database.DB.First(&beneficiary, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "受助人不存在"})
		return
	}

	var req BeneficiaryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error()})
		return
	}

	action := models.BeneficiaryActionApproved
	if req.Status == models.BeneficiaryStatusSuspended {
		action = models.BeneficiaryActionSuspended
	}
	details := req.Details
	if details == "" {
		details = "操作人: " + currentUser.Username
	}
	beneficiary.Status = req.Status
	beneficiary.AppendActivity(action, details)

	if err := database.DB.Model(&beneficiary).
		Updates(map[string]interface{}{"status": beneficiary.Status, "activity_log": beneficiary.ActivityLog}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "变更失败: " + err.Error()})
		return
	}

	// 批准通知邮件，失败不影响审批结果
	if req.Status == models.BeneficiaryStatusApproved {
		var user models.User
		if err := database.DB.First(&user, beneficiary.UserID).Error; err == nil && user.Email != "" {
			var campaign models.Campaign
			var org models.Organisation
			database.DB.First(&campaign, beneficiary.CampaignID)
			database.DB.First(&org, campaign.OrganisationID)
			if err := h.emailService.SendBeneficiaryApprovedEmail(user.Email, beneficiary.FullName, campaign.Name, org.Name); err != nil {
				log.Printf("发送审批通知失败: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "变更成功", "data": beneficiary})
}

// OnboardVendorRequest 商户开通请求
type OnboardVendorRequest struct {
	StoreName  string   `json:"store_name" binding:"required,min=1,max=100"`
	Username   string   `json:"username" binding:"required,min=3,max=50"`
	Password   string   `json:"password" binding:"required,min=6,max=50"`
	Email      string   `json:"email" binding:"omitempty,email"`
	CampaignID uint     `json:"campaign_id" binding:"required"`
	Categories []string `json:"categories"` // 可经营类别，空表示全类别
}

// OnboardVendor 商户开通
// @Summary 开通商户
// @Description 创建商户登录账号和档案，初始状态为 pending，需审批通过后才可收款
// @Tags 后台管理-商户
// @Accept json
// @Produce json
// @Param request body OnboardVendorRequest true "商户信息"
// @Success 200 {object} map[string]interface{} "开通成功"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /admin/vendors [post]
func (h *AdminHandler) OnboardVendor(c *gin.Context) {
	var req OnboardVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error()})
		return
	}

	var campaign models.Campaign
	if err := database.DB.First(&campaign, req.CampaignID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "项目不存在"})
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "用户名已存在"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "密码加密失败"})
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hashed),
		Email:    req.Email,
		Role:     models.RoleVendor,
		Status:   models.UserStatusActive,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "创建用户失败: " + err.Error()})
		return
	}

	vendor := models.Vendor{
		StoreName:  strings.TrimSpace(req.StoreName),
		UserID:     user.ID,
		CampaignID: campaign.ID,
		Status:     models.VendorStatusPending,
		Categories: req.Categories,
	}
	if err := database.DB.Create(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "创建商户档案失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "开通成功", "data": vendor})
}

// ListVendors 获取商户列表
// @Summary 获取商户列表
// @Description 获取商户列表，支持按项目、状态和店名筛选
// @Tags 后台管理-商户
// @Produce json
// @Param campaign_id query int false "项目ID"
// @Param status query string false "状态 pending/approved/suspended"
// @Param name query string false "店名（模糊匹配）"
// @Success 200 {object} map[string]interface{} "获取成功"
// @Router /admin/vendors [get]
func (h *AdminHandler) ListVendors(c *gin.Context) {
	query := database.DB.Model(&models.Vendor{})
	if cid := c.Query("campaign_id"); cid != "" {
		if id, err := strconv.ParseUint(cid, 10, 32); err == nil {
			query = query.Where("campaign_id = ?", uint(id))
		}
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		query = query.Where("store_name LIKE ?", "%"+escapeLikeValue(name)+"%")
	}

	var list []models.Vendor
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "查询失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// VendorStatusRequest 商户状态变更请求
type VendorStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved suspended"`
}

// UpdateVendorStatus 审批/暂停商户
// @Summary 审批或暂停商户
// @Tags 后台管理-商户
// @Accept json
// @Produce json
// @Param id path int true "商户ID"
// @Param request body VendorStatusRequest true "目标状态"
// @Success 200 {object} map[string]interface{} "变更成功"
// @Failure 404 {object} map[string]interface{} "商户不存在"
// @Router /admin/vendors/{id}/status [put]
func (h *AdminHandler) UpdateVendorStatus(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "无效的ID"})
		return
	}

	var vendor models.Vendor
	if err := database.DB.First(&vendor, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "商户不存在"})
		return
	}

	var req VendorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error()})
		return
	}

	if err := database.DB.Model(&vendor).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "变更失败: " + err.Error()})
		return
	}
	database.DB.First(&vendor, vendor.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "变更成功", "data": vendor})
}

// GetStatistics 获取总部统计
// @Summary 获取总部统计
// @Description 总部仪表盘数据：项目/受助人/商户数量、捐赠总额、发放总额及按项目和类别的发放分布
// @Tags 后台管理-统计
// @Produce json
// @Success 200 {object} map[string]interface{} "获取成功"
// @Failure 401 {object} map[string]interface{} "未登录"
// @Router /admin/statistics [get]
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	var campaignCount, beneficiaryCount, vendorCount int64
	database.DB.Model(&models.Campaign{}).Count(&campaignCount)
	database.DB.Model(&models.Beneficiary{}).Count(&beneficiaryCount)
	database.DB.Model(&models.Vendor{}).Count(&vendorCount)

	var totalDonated, totalDisbursed float64
	database.DB.Model(&models.Donation{}).Select("COALESCE(SUM(amount), 0)").Scan(&totalDonated)
	database.DB.Model(&models.Transaction{}).Select("COALESCE(SUM(amount), 0)").Scan(&totalDisbursed)

	// 按项目统计发放金额
	type CampaignStat struct {
		CampaignID uint    `json:"campaign_id"`
		Name       string  `json:"name"`
		Total      float64 `json:"total"`
		Count      int64   `json:"count"`
	}
	var campaignStats []CampaignStat
	database.DB.Model(&models.Transaction{}).
		Select("beneficiaries.campaign_id, campaigns.name, SUM(transactions.amount) as total, COUNT(*) as count").
		Joins("LEFT JOIN beneficiaries ON transactions.beneficiary_id = beneficiaries.id").
		Joins("LEFT JOIN campaigns ON beneficiaries.campaign_id = campaigns.id").
		Group("beneficiaries.campaign_id, campaigns.name").
		Order("total DESC").
		Scan(&campaignStats)

	// 按类别统计发放金额
	type CategoryStat struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
		Count    int64   `json:"count"`
	}
	var categoryStats []CategoryStat
	database.DB.Model(&models.Transaction{}).
		Select("category, SUM(amount) as total, COUNT(*) as count").
		Group("category").
		Order("total DESC").
		Scan(&categoryStats)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"campaign_count":    campaignCount,
			"beneficiary_count": beneficiaryCount,
			"vendor_count":      vendorCount,
			"total_donated":     totalDonated,
			"total_disbursed":   totalDisbursed,
			"campaign_stats":    campaignStats,
			"category_stats":    categoryStats,
		},
	})
}

// ExportExcel 导出 Excel
// @Summary 导出交易记录为Excel
// @Description 根据时间范围导出全部交易记录为Excel文件，含受助人和商户信息
// @Tags 后台管理-导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start_time query string true "开始时间 (YYYY-MM-DD)"
// @Param end_time query string true "结束时间 (YYYY-MM-DD)"
// @Success 200 {file} file "Excel文件"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Failure 401 {object} map[string]interface{} "未登录"
// @Router /admin/export/excel [get]
func (h *AdminHandler) ExportExcel(c *gin.Context) {
	startTime := c.Query("start_time")
	endTime := c.Query("end_time")

	if startTime == "" || endTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "请提供开始时间和结束时间"})
		return
	}

	start, err := time.ParseInLocation("2006-01-02", startTime, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "开始时间格式错误"})
		return
	}

	end, err := time.ParseInLocation("2006-01-02", endTime, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "结束时间格式错误"})
		return
	}
	end = end.Add(24*time.Hour - time.Second)

	// 查询数据
	type TransactionRow struct {
		models.Transaction
		BeneficiaryCode string
		FullName        string
		StoreName       string
	}

	var rows []TransactionRow
	database.DB.Model(&models.Transaction{}).
		Select("transactions.*, beneficiaries.beneficiary_code, beneficiaries.full_name, vendors.store_name").
		Joins("LEFT JOIN beneficiaries ON transactions.beneficiary_id = beneficiaries.id").
		Joins("LEFT JOIN vendors ON transactions.vendor_id = vendors.id").
		Where("transactions.transaction_time >= ? AND transactions.transaction_time <= ?", start, end).
		Order("transactions.transaction_time DESC").
		Scan(&rows)

	// 创建 Excel 文件
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "交易记录"
	f.SetSheetName("Sheet1", sheetName)

	// 设置表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 15)
	f.SetColWidth(sheetName, "D", "D", 20)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 12)
	f.SetColWidth(sheetName, "G", "G", 20)

	// 写入表头
	headers := []string{"ID", "受助人编号", "受助人", "商户", "类别", "金额", "交易时间"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	var totalAmount float64
	for i, row := range rows {
		r := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", r), row.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", r), row.BeneficiaryCode)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", r), row.FullName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", r), row.StoreName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", r), row.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", r), row.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", r), row.TransactionTime.Format("2006-01-02 15:04:05"))

		// 设置数据样式
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", r), fmt.Sprintf("G%d", r), dataStyle)
		totalAmount += row.Amount
	}

	// 添加汇总行
	summaryRow := len(rows) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("E%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", summaryRow), totalAmount)
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", summaryRow), fmt.Sprintf("共 %d 条记录", len(rows)))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), summaryStyle)

	// 设置响应头
	filename := fmt.Sprintf("交易记录_%s_%s.xlsx", startTime, endTime)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	// 写入响应
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "生成 Excel 失败"})
		return
	}
}
