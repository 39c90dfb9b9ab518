package api

import (
	"net/http"
	"strconv"
	"strings"

	"relieffund/database"
	"relieffund/models"

	"github.com/gin-gonic/gin"
)

// CampaignHandler 援助项目处理器
type CampaignHandler struct{}

// NewCampaignHandler 创建援助项目处理器
func NewCampaignHandler() *CampaignHandler {
	return &CampaignHandler{}
}

// ListActive 获取进行中的项目列表（App 端，供捐赠人浏览）
// @Summary 获取进行中的援助项目
// @Description 获取所有进行中的援助项目及已筹集金额
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) ListActive(c *gin.Context) {
	var campaigns []models.Campaign
	if err := database.DB.Where("status = ?", models.CampaignStatusActive).
		Order("created_at DESC").Find(&campaigns).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	// 各项目已筹集金额
	type raisedRow struct {
		CampaignID uint
		Total      float64
	}
	var rows []raisedRow
	database.DB.Model(&models.Donation{}).
		Select("campaign_id, COALESCE(SUM(amount), 0) as total").
		Group("campaign_id").
		Scan(&rows)
	raised := make(map[uint]float64, len(rows))
	for _, r := range rows {
		raised[r.CampaignID] = r.Total
	}

	type campaignItem struct {
		models.Campaign
		Raised float64 `json:"raised"`
	}
	list := make([]campaignItem, 0, len(campaigns))
	for _, cp := range campaigns {
		list = append(list, campaignItem{Campaign: cp, Raised: raised[cp.ID]})
	}

	Success(c, list)
}

// CampaignCreateRequest 创建项目请求
type CampaignCreateRequest struct {
	Name              string             `json:"name" binding:"required,min=1,max=100"`
	Location          string             `json:"location" binding:"omitempty,max=100"`
	OrganisationID    uint               `json:"organisation_id" binding:"required"`
	Categories        []string           `json:"categories"`
	CategoryMaxLimits map[string]float64 `json:"category_max_limits"`
	BeneficiaryCap    float64            `json:"beneficiary_cap" binding:"omitempty,gte=0"`
}

// CampaignUpdateRequest 更新项目请求
type CampaignUpdateRequest struct {
	Name              *string             `json:"name" binding:"omitempty,min=1,max=100"`
	Location          *string             `json:"location" binding:"omitempty,max=100"`
	Categories        *[]string           `json:"categories"`
	CategoryMaxLimits *map[string]float64 `json:"category_max_limits"`
	BeneficiaryCap    *float64            `json:"beneficiary_cap" binding:"omitempty,gte=0"`
}

// validateCategoriesExist 校验类别均存在于类别目录
func validateCategoriesExist(categories []string) (string, bool) {
	for _, name := range categories {
		name = strings.TrimSpace(name)
		if name == "" {
			return "", false
		}
		var cat models.Category
		if err := database.DB.Where("name = ?", name).First(&cat).Error; err != nil {
			return name, false
		}
	}
	return "", true
}

// List 获取项目列表（后台）
// @Summary 获取援助项目列表
// @Description 获取全部援助项目，支持按名称模糊搜索和状态筛选
// @Tags 后台管理-项目
// @Produce json
// @Param name query string false "项目名称（模糊匹配）"
// @Param status query string false "状态筛选 active/paused/closed"
// @Success 200 {object} map[string]interface{} "获取成功"
// @Router /admin/campaigns [get]
func (h *CampaignHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.Campaign{})
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		query = query.Where("name LIKE ?", "%"+escapeLikeValue(name)+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var list []models.Campaign
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "查询失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// Get 获取单个项目（后台）
// @Summary 获取援助项目详情
// @Tags 后台管理-项目
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} map[string]interface{} "获取成功"
// @Failure 404 {object} map[string]interface{} "项目不存在"
// @Router /admin/campaigns/{id} [get]
func (h *CampaignHandler) Get(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "无效的ID"})
		return
	}
	var campaign models.Campaign
	if err := database.DB.First(&campaign, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "项目不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": campaign})
}

// Create 创建项目（后台）
// @Summary 创建援助项目
// @Description 创建新的援助项目。启用的类别必须已存在于类别目录；限额映射的键不强制要求与类别列表一致。
// @Tags 后台管理-项目
// @Accept json
// @Produce json
// @Param request body CampaignCreateRequest true "项目信息"
// @Success 200 {object} map[string]interface{} "创建成功"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /admin/campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	var req CampaignCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error()})
		return
	}

	var org models.Organisation
	if err := database.DB.First(&org, req.OrganisationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "机构不存在"})
		return
	}

	if bad, ok := validateCategoriesExist(req.Categories); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "类别不存在或为空: " + bad})
		return
	}

	campaign := models.Campaign{
		Name:              strings.TrimSpace(req.Name),
		Location:          req.Location,
		Status:            models.CampaignStatusActive,
		Categories:        req.Categories,
		CategoryMaxLimits: req.CategoryMaxLimits,
		BeneficiaryCap:    req.BeneficiaryCap,
		OrganisationID:    org.ID,
	}
	if err := database.DB.Create(&campaign).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "创建失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "创建成功", "data": campaign})
}

// Update 更新项目（后台）
// @Summary 更新援助项目
// @Description 更新项目名称、地点、类别列表、限额映射和受助人总限额
// @Tags 后台管理-项目
// @Accept json
// @Produce json
// @Param id path int true "项目ID"
// @Param request body CampaignUpdateRequest true "更新的项目信息"
// @Success 200 {object} map[string]interface{} "更新成功"
// @Failure 404 {object} map[string]interface{} "项目不存在"
// @Router /admin/campaigns/{id} [put]
func (h *CampaignHandler) Update(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "无效的ID"})
		return
	}

	var campaign models.Campaign
	if err := database.DB.First(&campaign, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "项目不存在"})
		return
	}

	var req CampaignUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "名称不能为空"})
			return
		}
		updates["name"] = name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Categories != nil {
		if bad, ok := validateCategoriesExist(*req.Categories); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "类别不存在或为空: " + bad})
			return
		}
		updates["categories"] = models.StringList(*req.Categories)
	}
	if req.CategoryMaxLimits != nil {
		updates["category_max_limits"] = models.AmountMap(*req.CategoryMaxLimits)
	}
	if req.BeneficiaryCap != nil {
		updates["beneficiary_cap"] = *req.BeneficiaryCap
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "无需更新"})
		return
	}

	if err := database.DB.Model(&campaign).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "更新失败: " + err.Error()})
		return
	}
	database.DB.First(&campaign, campaign.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "更新成功", "data": campaign})
}

// CampaignStatusRequest 项目状态变更请求
type CampaignStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active paused closed"`
}

// UpdateStatus 变更项目状态（后台）
// @Summary 变更援助项目状态
// @Description 暂停、结束或重新启用项目。项目不会被删除，仅做状态流转；已结束的项目不可重新启用。
// @Tags 后台管理-项目
// @Accept json
// @Produce json
// @Param id path int true "项目ID"
// @Param request body CampaignStatusRequest true "目标状态"
// @Success 200 {object} map[string]interface{} "变更成功"
// @Failure 400 {object} map[string]interface{} "非法状态流转"
// @Failure 404 {object} map[string]interface{} "项目不存在"
// @Router /admin/campaigns/{id}/status [put]
func (h *CampaignHandler) UpdateStatus(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "无效的ID"})
		return
	}

	var campaign models.Campaign
	if err := database.DB.First(&campaign, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "项目不存在"})
		return
	}

	var req CampaignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error()})
		return
	}

	// 已结束的项目不可重新启用
	if campaign.Status == models.CampaignStatusClosed && req.Status != models.CampaignStatusClosed {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "项目已结束，不可变更状态"})
		return
	}

	if err := database.DB.Model(&campaign).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "变更失败: " + err.Error()})
		return
	}
	database.DB.First(&campaign, campaign.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "变更成功", "data": campaign})
}
