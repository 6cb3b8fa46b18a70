package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	llmctx "hackathon-idea-api/internal/domain/service"
	workflowport "hackathon-idea-api/internal/workflow/port"
)

// EinoGenerator 通过 Eino chain 调用 OpenAI 兼容的 ChatModel。
// 在 chain 中调用可以让全局 callbacks 记录指标与追踪。
type EinoGenerator struct {
	factory  workflowport.ChatModelFactory
	provider string
	model    string

	chainOnce sync.Once
	chain     compose.Runnable[string, *schema.Message]
	chainErr  error
}

// NewEinoGenerator 创建 Eino 文本生成器
func NewEinoGenerator(factory workflowport.ChatModelFactory, provider, model string) *EinoGenerator {
	return &EinoGenerator{
		factory:  factory,
		provider: provider,
		model:    model,
	}
}

// Generate 实现 workflowport.TextGenerator
func (g *EinoGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.factory == nil {
		return "", fmt.Errorf("llm factory not configured")
	}

	chain, err := g.getChain()
	if err != nil {
		return "", err
	}

	ctx = llmctx.WithModel(llmctx.WithProvider(ctx, g.provider), g.model)
	outMsg, err := chain.Invoke(ctx, prompt)
	if err != nil {
		return "", err
	}
	if outMsg == nil {
		return "", fmt.Errorf("empty llm response")
	}
	return outMsg.Content, nil
}

func (g *EinoGenerator) getChain() (compose.Runnable[string, *schema.Message], error) {
	g.chainOnce.Do(func() {
		g.chain, g.chainErr = g.buildChain(context.Background())
	})
	return g.chain, g.chainErr
}

func (g *EinoGenerator) buildChain(ctx context.Context) (compose.Runnable[string, *schema.Message], error) {
	chain := compose.NewChain[string, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, prompt string) ([]*schema.Message, error) {
			return []*schema.Message{schema.UserMessage(prompt)}, nil
		}),
		compose.WithNodeName("generate_ideas.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, msgs []*schema.Message) (*schema.Message, error) {
			chatModel, err := g.factory.Get(ctx, g.provider)
			if err != nil {
				return nil, err
			}
			return chatModel.Generate(ctx, msgs)
		}),
		compose.WithNodeName("generate_ideas.llm"),
	)

	return chain.Compile(ctx)
}
