// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hackathon-idea-api/internal/application/ideation"
	"hackathon-idea-api/internal/domain/entity"
	"hackathon-idea-api/internal/interfaces/http/dto"
	"hackathon-idea-api/pkg/logger"
)

// IdeaGenerator 创意生成流程
type IdeaGenerator interface {
	Generate(ctx context.Context, req *entity.IdeaRequest) ([]json.RawMessage, error)
}

// IdeaHandler 创意生成处理器
type IdeaHandler struct {
	ideas IdeaGenerator
}

// NewIdeaHandler 创建创意生成处理器
func NewIdeaHandler(ideas IdeaGenerator) *IdeaHandler {
	return &IdeaHandler{ideas: ideas}
}

// GenerateIdeas 生成黑客松项目创意
// @Summary 生成项目创意
// @Description 根据主题、时长、水平与技术栈生成至少 10 个项目创意
// @Tags Ideas
// @Accept json
// @Produce json
// @Param body body dto.GenerateIdeasRequest true "生成参数"
// @Success 200 {object} dto.GenerateIdeasResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate-ideas [post]
func (h *IdeaHandler) GenerateIdeas(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug(ctx, "invalid generate ideas request", "error", err.Error())
		dto.ValidationFailed(c, err)
		return
	}

	ideas, err := h.ideas.Generate(ctx, req.ToEntity())
	if err != nil {
		logger.Error(ctx, "error generating ideas", err)
		dto.InternalError(c, FailureDetail(err))
		return
	}

	c.JSON(http.StatusOK, dto.GenerateIdeasResponse{Ideas: ideas})
}

// FailureDetail 生成统一的失败提示
func FailureDetail(err error) string {
	return fmt.Sprintf("Failed to generate ideas: %s. Please try again with more specific parameters.", ideation.Describe(err))
}
