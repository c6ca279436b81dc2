package api

import (
	"net/http"
	"strings"

	"donation/models"
	"donation/store"

	"github.com/gin-gonic/gin"
)

// ProjectHandler 募捐项目
type ProjectHandler struct {
	store store.ProjectStore
}

func NewProjectHandler(s store.ProjectStore) *ProjectHandler {
	return &ProjectHandler{store: s}
}

type ProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"Flood Relief"`
	CategoryID  uint   `json:"category_id" binding:"required" example:"1"`
	Description string `json:"description" example:"Emergency supplies for flood victims"`
}

func (r ProjectRequest) toModel() *models.Project {
	return &models.Project{
		Name:        strings.TrimSpace(r.Name),
		CategoryID:  r.CategoryID,
		Description: r.Description,
	}
}

// List 列出所有项目
// @Summary 获取项目列表
// @Description 返回项目及所属分类名称
// @Tags 项目
// @Produce json
// @Success 200 {array} models.Project "获取成功"
// @Failure 500 {object} ErrorResponse "查询失败"
// @Router /api/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.store.ListProjects(c.Request.Context())
	if err != nil {
		StoreError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create 创建项目
// @Summary 创建项目
// @Tags 项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProjectRequest true "项目信息"
// @Success 200 {object} models.Project "创建成功"
// @Failure 400 {object} ErrorResponse "参数错误或分类不存在"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	p, ok := bindProject(c)
	if !ok {
		return
	}
	created, err := h.store.CreateProject(c.Request.Context(), p)
	if err != nil {
		StoreError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusOK, created)
}

// Update 更新项目
// @Summary 更新项目
// @Tags 项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body ProjectRequest true "项目信息"
// @Success 200 {object} models.Project "更新成功"
// @Failure 400 {object} ErrorResponse "参数错误或分类不存在"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, ok := bindProject(c)
	if !ok {
		return
	}
	updated, err := h.store.UpdateProject(c.Request.Context(), id, p)
	if err != nil {
		StoreError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func bindProject(c *gin.Context) (*models.Project, bool) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return nil, false
	}
	p := req.toModel()
	if p.Name == "" {
		BadRequest(c, "name is required")
		return nil, false
	}
	return p, true
}
