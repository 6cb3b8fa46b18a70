// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse 错误响应结构，与 {"detail": "..."} 约定一致
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationIssue 单个请求校验问题
type ValidationIssue struct {
	Type string `json:"type"`
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
}

// ValidationErrorResponse 请求校验失败响应 (422)
type ValidationErrorResponse struct {
	Detail []ValidationIssue `json:"detail"`
}

// Error 返回错误响应
func Error(c *gin.Context, httpCode int, detail string) {
	c.JSON(httpCode, ErrorResponse{Detail: detail})
}

// InternalError 返回 500 错误
func InternalError(c *gin.Context, detail string) {
	Error(c, http.StatusInternalServerError, detail)
}

// ValidationFailed 将请求绑定错误转换为 422 响应
func ValidationFailed(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
		Detail: ValidationIssues(err),
	})
}

// ValidationIssues 将绑定/解码错误展开为逐字段的问题列表
func ValidationIssues(err error) []ValidationIssue {
	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.As(err, &fieldErrs):
		issues := make([]ValidationIssue, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			issues = append(issues, fieldIssue(fe))
		}
		return issues
	case errors.As(err, &typeErr):
		return []ValidationIssue{{
			Type: typeName(typeErr.Type.Kind().String()) + "_type",
			Loc:  []any{"body", typeErr.Field},
			Msg:  "Input should be a valid " + typeName(typeErr.Type.Kind().String()),
		}}
	case errors.As(err, &syntaxErr):
		return []ValidationIssue{{
			Type: "json_invalid",
			Loc:  []any{"body", syntaxErr.Offset},
			Msg:  "JSON decode error",
		}}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return []ValidationIssue{{
			Type: "json_invalid",
			Loc:  []any{"body"},
			Msg:  "JSON decode error",
		}}
	case errors.Is(err, io.EOF):
		return []ValidationIssue{{
			Type: "missing",
			Loc:  []any{"body"},
			Msg:  "Field required",
		}}
	default:
		return []ValidationIssue{{
			Type: "value_error",
			Loc:  []any{"body"},
			Msg:  err.Error(),
		}}
	}
}

func fieldIssue(fe validator.FieldError) ValidationIssue {
	if fe.Tag() == "required" {
		return ValidationIssue{
			Type: "missing",
			Loc:  []any{"body", fe.Field()},
			Msg:  "Field required",
		}
	}
	return ValidationIssue{
		Type: "value_error",
		Loc:  []any{"body", fe.Field()},
		Msg:  fe.Error(),
	}
}

// typeName 将 Go 类型名映射为调用方熟悉的 JSON 类型名
func typeName(kind string) string {
	switch kind {
	case "bool":
		return "boolean"
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return "integer"
	case "float32", "float64":
		return "number"
	case "ptr":
		return "value"
	default:
		return kind
	}
}
