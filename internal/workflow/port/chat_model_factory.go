package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

// ChatModelFactory 定义工作流层对 LLM ChatModel 的最小依赖（port）。
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}

// TextGenerator 文本生成服务边界：输入完整提示词，返回模型原始文本。
// 实现只负责一次同步调用，不做重试与超时控制。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextGeneratorFunc 适配普通函数为 TextGenerator
type TextGeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate 实现 TextGenerator
func (f TextGeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
