/*
 * @Description: 带稳定错误码的请求级错误
 * @Author: 安知鱼
 * @Date: 2025-11-03 11:02:36
 * @LastEditTime: 2026-07-02 16:45:10
 * @LastEditors: 安知鱼
 */
package model

import "fmt"

// RequestError 是校验管线中产生的、需要原样透传给客户端的错误。
// Code 是稳定的机器可读错误码，Status 是对应的 HTTP 状态码。
// 管线中任何一环返回 RequestError 都会使请求短路。
type RequestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewRequestError 构造一个请求级错误。
func NewRequestError(code, message string, status int) *RequestError {
	return &RequestError{Code: code, Message: message, Status: status}
}
