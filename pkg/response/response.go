package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/pkg/logger"
)

const (
	CodeOK         = 0
	CodeBadRequest = 400
	CodeNotFound   = 404
	CodeInternal   = 500
)

// Response 统一响应体；Template 标识页面（posts/index 等）
type Response struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Template string `json:"template,omitempty"`
	Data     any    `json:"data,omitempty"`
}

// Encode 渲染页面响应体，供缓存直接复用
func Encode(template string, data any) ([]byte, error) {
	return json.Marshal(Response{Code: CodeOK, Message: "success", Template: template, Data: data})
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Data: data})
}

// Page 渲染页面
func Page(c *gin.Context, template string, data any) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Template: template, Data: data})
}

// Raw 输出已编码的页面
func Raw(c *gin.Context, body []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: CodeBadRequest, Message: msg})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{Code: CodeNotFound, Message: "not found", Template: "core/404"})
}

func InternalError(c *gin.Context, err error) {
	logger.Error("internal error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Response{Code: CodeInternal, Message: "internal server error"})
}

// Redirect 302 跳转
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
