package api

import (
	"net/http"
	"strings"

	"donation/models"
	"donation/store"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 项目分类
type CategoryHandler struct {
	store store.CategoryStore
}

func NewCategoryHandler(s store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{store: s}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Relief"`
}

// List 列出所有分类
// @Summary 获取分类列表
// @Tags 分类
// @Produce json
// @Success 200 {array} models.Category "获取成功"
// @Failure 500 {object} ErrorResponse "查询失败"
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		StoreError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create 创建分类
// @Summary 创建分类
// @Tags 分类
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "分类信息"
// @Success 200 {object} models.Category "创建成功"
// @Failure 400 {object} ErrorResponse "参数错误或名称已存在"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	name, ok := bindCategory(c)
	if !ok {
		return
	}
	cat, err := h.store.CreateCategory(c.Request.Context(), &models.Category{Name: name})
	if err != nil {
		StoreError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// Update 重命名分类
// @Summary 更新分类
// @Tags 分类
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Param request body CategoryRequest true "分类信息"
// @Success 200 {object} models.Category "更新成功"
// @Failure 400 {object} ErrorResponse "参数错误或名称已存在"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	name, ok := bindCategory(c)
	if !ok {
		return
	}
	cat, err := h.store.UpdateCategory(c.Request.Context(), id, &models.Category{Name: name})
	if err != nil {
		StoreError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, cat)
}

func bindCategory(c *gin.Context) (string, bool) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return "", false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		BadRequest(c, "name is required")
		return "", false
	}
	return name, true
}
