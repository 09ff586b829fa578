/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-11-03 11:33:48
 * @LastEditTime: 2026-08-10 23:05:17
 * @LastEditors: 安知鱼
 */
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 是站内接口统一的API返回结构体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// WPError 是 wp/v2 兼容接口的错误返回结构体。
// 错误码为稳定的机器可读字符串，HTTP 状态码同时出现在 data.status 中。
type WPError struct {
	ErrCode string      `json:"code"`
	Message string      `json:"message"`
	Data    WPErrorData `json:"data"`
}

type WPErrorData struct {
	Status int `json:"status"`
}

// FailWP 以 wp/v2 兼容格式输出错误响应。
func FailWP(c *gin.Context, code string, message string, status int) {
	c.JSON(status, WPError{
		ErrCode: code,
		Message: message,
		Data:    WPErrorData{Status: status},
	})
}
