/*
 * @Description: 随机字符串工具，目前用于生成临时 JWT 密钥。
 * @Author: 安知鱼
 * @Date: 2026-06-15 12:25:50
 * @LastEditTime: 2026-08-20 10:14:33
 * @LastEditors: 安知鱼
 */
package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateRandomString 返回指定长度的随机字符串，字符集为 Base64 URL 安全字符。
// 熵来自 crypto/rand，每个输出字符背后至少有 6 bit 随机量。
func GenerateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("随机字符串长度必须为正数: %d", length)
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("读取随机源失败: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:length], nil
}
