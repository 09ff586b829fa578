package configdef

import (
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
)

// Definition 定义了单个配置项的所有属性。
type Definition struct {
	Key      constant.SettingKey
	Value    string
	Comment  string
	IsPublic bool
}

// AllSettings 是我们系统中所有配置项的"单一事实来源"
var AllSettings = []Definition{
	// --- 站点基础配置 ---
	{Key: constant.KeyAppName, Value: "安和鱼评论", Comment: "应用名称", IsPublic: true},
	{Key: constant.KeySiteURL, Value: "http://localhost:8091", Comment: "站点URL，用于拼接响应中的链接", IsPublic: true},
	{Key: constant.KeyAppVersion, Value: "1.0.0", Comment: "应用版本", IsPublic: true},
	{Key: constant.KeyGravatarURL, Value: "https://cravatar.cn/", Comment: "Gravatar 服务器地址", IsPublic: true},
	{Key: constant.KeyDefaultGravatarType, Value: "mp", Comment: "默认 Gravatar 头像类型", IsPublic: true},
	{Key: constant.KeyShowAvatars, Value: "true", Comment: "是否在评论响应中携带头像地址", IsPublic: true},

	// --- REST 接口配置 ---
	{Key: constant.KeyAPINamespace, Value: "wp/v2", Comment: "REST 接口命名空间", IsPublic: true},
	{Key: constant.KeyAPIRouteBase, Value: "comments", Comment: "评论接口的路由基", IsPublic: true},

	// --- 评论准入配置 ---
	{Key: constant.KeyCommentRequireNameEmail, Value: "true", Comment: "匿名评论是否必须填写昵称和邮箱", IsPublic: true},
	{Key: constant.KeyCommentValidationMode, Value: "full", Comment: "校验模式：full 为完整管线，minimal 仅保留存在性与长度检查", IsPublic: false},
	{Key: constant.KeyCommentAllowEmpty, Value: "false", Comment: "是否允许空内容评论", IsPublic: false},
	{Key: constant.KeyCommentModerateAll, Value: "false", Comment: "所有评论先进入待审核", IsPublic: false},
	{Key: constant.KeyCommentPreviouslyApproved, Value: "true", Comment: "作者曾有通过审核的评论时自动放行", IsPublic: false},
	{Key: constant.KeyCommentModerationWords, Value: "", Comment: "命中后转入待审核的词表，每行一个", IsPublic: false},
	{Key: constant.KeyCommentDisallowedWords, Value: "", Comment: "命中后直接进回收站的词表，每行一个", IsPublic: false},
	{Key: constant.KeyCommentFloodInterval, Value: "15", Comment: "同一作者两次评论的最小间隔（秒）", IsPublic: false},
	{Key: constant.KeyCommentLimitPerMinute, Value: "10", Comment: "单IP每分钟最多提交的评论数，0 为不限制", IsPublic: false},

	// --- 评论清理配置 ---
	{Key: constant.KeyCommentTrashRetentionDays, Value: "30", Comment: "回收站评论的保留天数，到期物理删除", IsPublic: false},

	// --- 通知配置 ---
	{Key: constant.KeyCommentNotifyDB, Value: "true", Comment: "新评论进入待审核时是否通知管理员", IsPublic: false},
	{Key: constant.KeyPushooChannel, Value: "", Comment: "通知渠道名称，留空则只写日志", IsPublic: false},
	{Key: constant.KeyPushooURL, Value: "", Comment: "通知推送地址", IsPublic: false},
}
