// Package entity 定义领域实体
package entity

// IdeaRequest 黑客松创意生成请求（单次请求生命周期内有效）
type IdeaRequest struct {
	Context         string
	TimeLimit       string
	HackathonLevel  string
	DifficultyLevel string
	TechStack       string
	AIMLNeeded      bool
}

// 创新程度（仅作提示，不做程序校验）
const (
	InnovationLow    = "Low"
	InnovationMedium = "Medium"
	InnovationHigh   = "High"
)

// Idea 单条项目创意。
// 服务端不会按此结构校验模型输出，模型返回的元素原样透传给调用方。
type Idea struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	TimeEstimate    string   `json:"time_estimate"`
	TechStack       string   `json:"tech_stack"`
	InnovationLevel string   `json:"innovation_level"`
	PotentialImpact string   `json:"potential_impact"`
	KeyFeatures     []string `json:"key_features"`
}

// ExampleIdea 提示词中用于锚定输出格式的示例
var ExampleIdea = Idea{
	Name:            "EcoRoute Optimizer",
	Description:     "A carbon-footprint aware navigation system that suggests the most eco-friendly routes for vehicles while considering time constraints.",
	TimeEstimate:    "40-50 hours",
	TechStack:       "React Native, Python Flask, Mapbox API",
	InnovationLevel: InnovationHigh,
	PotentialImpact: "Reduces carbon emissions for daily commuters and logistics companies",
	KeyFeatures: []string{
		"Real-time traffic and emissions data integration",
		"Personalized eco-routing preferences",
		"Carbon savings dashboard",
		"Multi-modal transportation options",
	},
}
