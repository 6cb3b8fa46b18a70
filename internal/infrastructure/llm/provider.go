// Package llm 提供文本生成服务的具体实现
package llm

import (
	"fmt"

	"hackathon-idea-api/internal/config"
	workflowport "hackathon-idea-api/internal/workflow/port"
)

// NewTextGenerator 根据默认提供商配置创建文本生成器。
// 返回的 cleanup 用于释放底层客户端。
func NewTextGenerator(cfg *config.LLMConfig) (workflowport.TextGenerator, func(), error) {
	name, providerCfg, ok := cfg.Provider()
	if !ok {
		return nil, nil, fmt.Errorf("provider %q not found in LLM config", name)
	}

	switch providerCfg.Kind {
	case config.ProviderKindGenAI, "":
		gen := NewGeminiGenerator(name, providerCfg)
		return gen, func() { _ = gen.Close() }, nil
	case config.ProviderKindOpenAI:
		gen := NewEinoGenerator(NewEinoFactory(cfg), name, providerCfg.Model)
		return gen, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported llm provider kind %q for %s", providerCfg.Kind, name)
	}
}
