/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-11-03 12:01:40
 * @LastEditTime: 2025-11-03 12:02:11
 * @LastEditors: 安知鱼
 */
package auth

import "github.com/golang-jwt/jwt/v5"

// ClaimsKey 是用于在 gin.Context 中存储和检索整个用户信息结构体的键。
const ClaimsKey = "user_claims"

// CustomClaims 定义了 JWT 的自定义 Claims 结构体
type CustomClaims struct {
	UserID      uint `json:"user_id"`       // 用户数据库ID
	UserGroupID uint `json:"user_group_id"` // 用户组ID
	jwt.RegisteredClaims
}
