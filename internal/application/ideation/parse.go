package ideation

import (
	"encoding/json"
	"strings"

	apperrors "hackathon-idea-api/pkg/errors"
)

// MinIdeas 一次生成至少需要的创意条数
const MinIdeas = 10

const (
	jsonFenceOpen = "```json"
	fence         = "```"
)

// StripFences 去除模型输出外层的 markdown 代码围栏。
// 只做精确的前后缀匹配：```json ... ``` 或 ``` ... ```，其余输入仅去除首尾空白。
// 围栏内部内容不做任何校验。
func StripFences(text string) string {
	s := strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(s, jsonFenceOpen) && strings.HasSuffix(s, fence):
		return strings.TrimSpace(cut(s, len(jsonFenceOpen), len(fence)))
	case strings.HasPrefix(s, fence) && strings.HasSuffix(s, fence):
		return strings.TrimSpace(cut(s, len(fence), len(fence)))
	default:
		return s
	}
}

// cut 去掉头部 head 与尾部 tail 个字节；前后缀重叠时结果为空
func cut(s string, head, tail int) string {
	if len(s) < head+tail {
		return ""
	}
	return s[head : len(s)-tail]
}

// ParseIdeas 将模型输出解析为创意数组。
// 元素按原样（原始 JSON 字节、原有顺序）返回，不做逐项结构校验。
// 顶层必须是数组：对象或字符串即使键数、长度不少于 MinIdeas 也按解析失败处理。
func ParseIdeas(raw string) ([]json.RawMessage, error) {
	text := StripFences(raw)

	var ideas []json.RawMessage
	if err := json.Unmarshal([]byte(text), &ideas); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeParseFailed, "invalid JSON in model response").
			WithDetail(raw)
	}

	if len(ideas) < MinIdeas {
		return nil, apperrors.Newf(apperrors.CodeInsufficientResults,
			"not enough ideas generated (got %d, need at least %d)", len(ideas), MinIdeas).
			WithDetail(raw)
	}

	return ideas, nil
}
