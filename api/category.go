package api

import (
	"net/http"
	"strconv"
	"strings"

	"relieffund/database"
	"relieffund/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 类别目录管理
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

type CategoryCreateRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Sort  int    `json:"sort"`
	Color string `json:"color" binding:"omitempty,max=20"` // 颜色代码，如 #ef4444
}

type CategoryUpdateRequest struct {
	Name  string  `json:"name" binding:"omitempty,min=1,max=50"`
	Sort  *int    `json:"sort"`
	Color *string `json:"color" binding:"omitempty,max=20"`
}

// GetCategories 获取类别目录（App 端，无需登录）
// @Summary 获取类别目录
// @Description 获取全部可用类别，按排序字段升序排列
// @Tags 项目
// @Produce json
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var list []models.Category
	if err := database.DB.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// List 列出所有类别（后台，不包含软删除）
// @Summary 获取类别目录列表
// @Description 获取类别目录，支持按名称模糊搜索
// @Tags 后台管理-类别目录
// @Produce json
// @Param name query string false "类别名称（模糊匹配）"
// @Success 200 {object} map[string]interface{} "获取成功，返回类别列表"
// @Router /admin/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.Category{})
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		query = query.Where("name LIKE ?", "%"+escapeLikeValue(name)+"%")
	}
	var list []models.Category
	if err := query.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "查询失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// Create 创建类别
// @Summary 创建类别
// @Description 在类别目录中新增类别，支持设置名称、排序和颜色
// @Tags 后台管理-类别目录
// @Accept json
// @Produce json
// @Param request body CategoryCreateRequest true "类别信息"
// @Success 200 {object} map[string]interface{} "创建成功"
// @Failure 400 {object} map[string]interface{} "参数错误或类别名称已存在"
// @Router /admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "名称不能为空"})
		return
	}

	// 唯一性
	var existing models.Category
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "类别名称已存在"})
		return
	}

	color := req.Color
	if color == "" {
		color = "#64748b" // 默认灰色
	}
	cat := models.Category{Name: req.Name, Sort: req.Sort, Color: color}
	if err := database.DB.Create(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "创建失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "创建成功", "data": cat})
}

// Update 更新类别
// @Summary 更新类别
// @Description 更新类别目录中的指定类别
// @Tags 后台管理-类别目录
// @Accept json
// @Produce json
// @Param id path int true "类别ID"
// @Param request body CategoryUpdateRequest true "更新的类别信息"
// @Success 200 {object} map[string]interface{} "更新成功"
// @Failure 400 {object} map[string]interface{} "参数错误或类别名称已存在"
// @Failure 404 {object} map[string]interface{} "类别不存在"
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "无效的ID"})
		return
	}

	var cat models.Category
	if err := database.DB.First(&cat, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "类别不存在"})
		return
	}

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数错误: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "名称不能为空"})
			return
		}
		var existing models.Category
		if err := database.DB.Where("name = ? AND id != ?", req.Name, cat.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "类别名称已存在"})
			return
		}
		updates["name"] = req.Name
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if req.Color != nil {
		color := *req.Color
		if color == "" {
			color = "#64748b" // 默认灰色
		}
		updates["color"] = color
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "无需更新"})
		return
	}

	if err := database.DB.Model(&cat).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "更新失败: " + err.Error()})
		return
	}
	database.DB.First(&cat, cat.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "更新成功", "data": cat})
}

// Delete 软删除类别
// @Summary 删除类别
// @Description 软删除类别目录中的指定类别。已配置到项目中的类别标签不受影响。
// @Tags 后台管理-类别目录
// @Produce json
// @Param id path int true "类别ID"
// @Success 200 {object} map[string]interface{} "删除成功"
// @Failure 400 {object} map[string]interface{} "无效的ID"
// @Failure 404 {object} map[string]interface{} "类别不存在"
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "无效的ID"})
		return
	}
	var cat models.Category
	if err := database.DB.First(&cat, uint(id64)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "类别不存在"})
		return
	}
	if err := database.DB.Delete(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "删除失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "删除成功"})
}
