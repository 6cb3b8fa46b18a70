package dto

import (
	"encoding/json"

	"hackathon-idea-api/internal/domain/entity"
)

// GenerateIdeasRequest 生成创意请求。
// 字段使用指针以区分缺失与零值：空字符串与 false 均为合法输入。
type GenerateIdeasRequest struct {
	Context         *string `json:"context" binding:"required"`
	TimeLimit       *string `json:"time_limit" binding:"required"`
	HackathonLevel  *string `json:"hackathon_level" binding:"required"`
	DifficultyLevel *string `json:"difficulty_level" binding:"required"`
	TechStack       *string `json:"tech_stack" binding:"required"`
	AIMLNeeded      *bool   `json:"ai_ml_needed" binding:"required"`
}

// ToEntity 转换为领域请求，调用前需已通过校验
func (r *GenerateIdeasRequest) ToEntity() *entity.IdeaRequest {
	return &entity.IdeaRequest{
		Context:         deref(r.Context),
		TimeLimit:       deref(r.TimeLimit),
		HackathonLevel:  deref(r.HackathonLevel),
		DifficultyLevel: deref(r.DifficultyLevel),
		TechStack:       deref(r.TechStack),
		AIMLNeeded:      r.AIMLNeeded != nil && *r.AIMLNeeded,
	}
}

// GenerateIdeasResponse 生成创意响应，元素保持模型原样输出
type GenerateIdeasResponse struct {
	Ideas []json.RawMessage `json:"ideas"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
