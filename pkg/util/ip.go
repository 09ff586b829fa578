// pkg/util/ip.go
package util

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealClientIP 获取客户端真实IP地址
// 优先级：X-Forwarded-For > X-Real-IP > CF-Connecting-IP > True-Client-IP > RemoteAddr
func GetRealClientIP(c *gin.Context) string {
	// X-Forwarded-For 可能包含多个IP，格式：client, proxy1, proxy2，取第一个
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if ips := strings.Split(xff, ","); len(ips) > 0 {
			clientIP := strings.TrimSpace(ips[0])
			if ip := net.ParseIP(clientIP); ip != nil {
				return clientIP
			}
		}
	}

	for _, header := range []string{"X-Real-IP", "CF-Connecting-IP", "True-Client-IP"} {
		if v := strings.TrimSpace(c.GetHeader(header)); v != "" {
			if ip := net.ParseIP(v); ip != nil {
				return v
			}
		}
	}

	// Gin 内置的 ClientIP 会回退到 RemoteAddr
	return c.ClientIP()
}

// IsValidIP 验证IP地址是否有效
func IsValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// SanitizeCommentIP 清洗评论记录的来源IP。
// 无法解析的值一律落回 127.0.0.1，保证入库字段始终是合法地址。
func SanitizeCommentIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "127.0.0.1"
	}
	return parsed.String()
}
