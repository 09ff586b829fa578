/*
 * @Description: 用户领域模型
 * @Author: 安知鱼
 * @Date: 2025-11-03 10:35:47
 * @LastEditTime: 2026-05-09 19:12:23
 * @LastEditors: 安知鱼
 */
package model

import "time"

// 用户组常量。1 号用户组固定为管理员组，站点初始化时写入。
const (
	GroupIDAdmin uint = 1
	GroupIDUser  uint = 2
)

// 用户状态常量定义了用户的几种不同状态
const (
	UserStatusActive   = 1
	UserStatusInactive = 2
	UserStatusBanned   = 3
)

type User struct {
	ID          uint       `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Username    string     `json:"username"`
	Nickname    string     `json:"nickname"`
	Email       string     `json:"email"`
	Website     string     `json:"website"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	UserGroupID uint       `json:"userGroupID"`
	Status      int        `json:"status"`
}

// DisplayName 返回评论署名时使用的名称，昵称为空时退回用户名。
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}

// CanModerate 判断用户是否具备评论管理权限。
// 管理员组的评论跳过全部准入检查，直接发布。
func (u *User) CanModerate() bool {
	return u.UserGroupID == GroupIDAdmin
}
