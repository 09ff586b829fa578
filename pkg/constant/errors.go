/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-11-03 11:10:08
 * @LastEditTime: 2026-04-18 20:33:12
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到，可以由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")
)
