/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-11-03 11:14:22
 * @LastEditTime: 2026-08-02 09:27:41
 * @LastEditors: 安知鱼
 */
package constant

// SettingKey 为所有在应用中使用的配置键定义了类型安全的常量。
type SettingKey string

// String 方便地将 SettingKey 转换为 string 类型。
func (k SettingKey) String() string {
	return string(k)
}

const (
	// --- 站点基础配置 (可暴露给前端) ---
	KeyAppName             SettingKey = "APP_NAME"
	KeySiteURL             SettingKey = "SITE_URL"
	KeyAppVersion          SettingKey = "APP_VERSION"
	KeyGravatarURL         SettingKey = "GRAVATAR_URL"
	KeyDefaultGravatarType SettingKey = "DEFAULT_GRAVATAR_TYPE"
	KeyShowAvatars         SettingKey = "SHOW_AVATARS"

	// --- REST 接口配置 ---
	KeyAPINamespace SettingKey = "API_NAMESPACE"
	KeyAPIRouteBase SettingKey = "API_ROUTE_BASE"

	// --- 评论准入配置 ---
	KeyCommentRequireNameEmail   SettingKey = "COMMENT_REQUIRE_NAME_EMAIL"
	KeyCommentValidationMode     SettingKey = "COMMENT_VALIDATION_MODE"
	KeyCommentAllowEmpty         SettingKey = "COMMENT_ALLOW_EMPTY"
	KeyCommentModerateAll        SettingKey = "COMMENT_MODERATE_ALL"
	KeyCommentPreviouslyApproved SettingKey = "COMMENT_PREVIOUSLY_APPROVED"
	KeyCommentModerationWords    SettingKey = "COMMENT_MODERATION_WORDS"
	KeyCommentDisallowedWords    SettingKey = "COMMENT_DISALLOWED_WORDS"
	KeyCommentFloodInterval      SettingKey = "COMMENT_FLOOD_INTERVAL"
	KeyCommentLimitPerMinute     SettingKey = "COMMENT_LIMIT_PER_MINUTE"

	// --- 评论清理配置 ---
	KeyCommentTrashRetentionDays SettingKey = "COMMENT_TRASH_RETENTION_DAYS"

	// --- 通知配置 ---
	KeyPushooChannel   SettingKey = "PUSHOO_CHANNEL"
	KeyPushooURL       SettingKey = "PUSHOO_URL"
	KeyCommentNotifyDB SettingKey = "COMMENT_NOTIFY_ADMIN"
)
