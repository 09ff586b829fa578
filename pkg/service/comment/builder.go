/*
 * @Description: 评论响应构建器（字段投影、上下文可见性、链接）
 * @Author: 安知鱼
 * @Date: 2025-11-04 14:30:27
 * @LastEditTime: 2026-08-23 11:09:36
 * @LastEditors: 安知鱼
 */
package comment

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/parser"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/setting"
)

// 响应上下文。可见字段依次递增：embed ⊂ view ⊂ edit。
const (
	ContextEmbed = "embed"
	ContextView  = "view"
	ContextEdit  = "edit"
)

// 每个上下文可见的顶级字段
var contextFields = map[string]map[string]bool{
	ContextEmbed: {
		"id": true, "parent": true, "author": true, "author_name": true,
		"author_url": true, "author_avatar_urls": true, "date": true,
		"content": true, "link": true, "type": true,
	},
	ContextView: {
		"id": true, "post": true, "parent": true, "author": true,
		"author_name": true, "author_url": true, "author_avatar_urls": true,
		"date": true, "date_gmt": true, "content": true, "link": true,
		"status": true, "type": true,
	},
	ContextEdit: {
		"id": true, "post": true, "parent": true, "author": true,
		"author_name": true, "author_email": true, "author_url": true,
		"author_ip": true, "author_user_agent": true, "author_avatar_urls": true,
		"date": true, "date_gmt": true, "content": true, "link": true,
		"status": true, "type": true,
	},
}

// FieldAccessor 为响应追加自定义顶级字段，构建时注册。
type FieldAccessor func(ctx context.Context, c *model.Comment) (interface{}, error)

// BuildOptions 控制单次响应构建。
type BuildOptions struct {
	// Fields 来自 _fields 参数，空表示不投影
	Fields []string
	// Context 为 embed/view/edit 之一，空按 view 处理
	Context string
	// WithLinks 控制是否附带 _links 对象
	WithLinks bool
}

// Builder 把领域模型渲染为 WordPress 兼容的响应表示。
type Builder struct {
	settingSvc  setting.SettingService
	parserSvc   *parser.Service
	commentRepo repository.CommentRepository
	extraFields map[string]FieldAccessor
}

// NewBuilder 是响应构建器的构造函数。extraFields 可为 nil。
func NewBuilder(
	settingSvc setting.SettingService,
	parserSvc *parser.Service,
	commentRepo repository.CommentRepository,
	extraFields map[string]FieldAccessor,
) *Builder {
	return &Builder{
		settingSvc:  settingSvc,
		parserSvc:   parserSvc,
		commentRepo: commentRepo,
		extraFields: extraFields,
	}
}

// MapStatus 把库内审核状态映射为接口层状态。
// 未知值原样透传，带状态语义的插件可以注入自己的取值。
func MapStatus(approved string) string {
	switch approved {
	case model.ApprovedPending, "hold":
		return "hold"
	case model.ApprovedApproved, "approve":
		return "approved"
	default:
		return approved
	}
}

// Build 按上下文和字段投影生成响应表示。
// 投影只作用于顶级字段；_links 在投影之后再附加。
func (b *Builder) Build(ctx context.Context, c *model.Comment, opts BuildOptions) (map[string]interface{}, error) {
	reqContext := opts.Context
	if reqContext == "" {
		reqContext = ContextView
	}
	visible, ok := contextFields[reqContext]
	if !ok {
		visible = contextFields[ContextView]
	}

	rendered, err := b.parserSvc.Render(c.Content)
	if err != nil {
		return nil, fmt.Errorf("渲染评论 %d 内容失败: %w", c.ID, err)
	}

	content := map[string]interface{}{
		"rendered": rendered,
		"raw":      c.Content,
	}

	full := map[string]interface{}{
		"id":                c.ID,
		"post":              c.PostID,
		"parent":            c.ParentID,
		"author":            c.UserID,
		"author_name":       c.Author.Name,
		"author_email":      c.Author.Email,
		"author_url":        c.Author.URL,
		"author_ip":         c.Author.IP,
		"author_user_agent": c.Author.UserAgent,
		"date":              c.Date.Format("2006-01-02T15:04:05"),
		"date_gmt":          c.DateGMT.UTC().Format("2006-01-02T15:04:05"),
		"content":           content,
		"link":              b.commentLink(c),
		"status":            MapStatus(c.Approved),
		"type":              c.Type,
	}

	if b.settingSvc.GetBool(constant.KeyShowAvatars.String()) {
		full["author_avatar_urls"] = b.avatarURLs(c.Author.Email)
	}

	for name, accessor := range b.extraFields {
		value, err := accessor(ctx, c)
		if err != nil {
			log.Printf("【WARN】自定义响应字段 %s 构建失败: %v", name, err)
			continue
		}
		full[name] = value
	}

	// 先按上下文裁剪，再按 _fields 投影
	result := make(map[string]interface{})
	for key, value := range full {
		if !visible[key] && b.extraFields[key] == nil {
			continue
		}
		result[key] = value
	}

	if len(opts.Fields) > 0 {
		projected := make(map[string]interface{})
		for _, field := range opts.Fields {
			field = strings.TrimSpace(field)
			if value, ok := result[field]; ok {
				projected[field] = value
			}
		}
		result = projected
	}

	if opts.WithLinks {
		result["_links"] = b.links(ctx, c)
	}

	return result, nil
}

// SelfLink 生成评论的规范地址，也用于 Location 头
func (b *Builder) SelfLink(c *model.Comment) string {
	return fmt.Sprintf("%s/%d", b.collectionURL(), c.ID)
}

func (b *Builder) links(ctx context.Context, c *model.Comment) map[string]interface{} {
	namespaceURL := b.namespaceURL()
	collection := b.collectionURL()
	links := map[string]interface{}{
		"self":       []map[string]interface{}{{"href": b.SelfLink(c)}},
		"collection": []map[string]interface{}{{"href": collection}},
		"up":         []map[string]interface{}{{"href": fmt.Sprintf("%s/posts/%d", namespaceURL, c.PostID), "post_type": "post"}},
	}
	if c.UserID > 0 {
		links["author"] = []map[string]interface{}{
			{"href": fmt.Sprintf("%s/users/%d", namespaceURL, c.UserID), "embeddable": true},
		}
	}
	if c.ParentID > 0 {
		links["in-reply-to"] = []map[string]interface{}{
			{"href": fmt.Sprintf("%s/%d", collection, c.ParentID), "embeddable": true},
		}
	}
	if n, err := b.commentRepo.CountChildren(ctx, c.ID); err != nil {
		log.Printf("【WARN】统计评论 %d 的子评论失败: %v", c.ID, err)
	} else if n > 0 {
		links["children"] = []map[string]interface{}{
			{"href": fmt.Sprintf("%s?parent=%d", collection, c.ID), "embeddable": true},
		}
	}
	return links
}

// namespaceURL 拼出 REST 命名空间地址，如 https://example.com/api/wp/v2
func (b *Builder) namespaceURL() string {
	namespace := strings.Trim(b.settingSvc.Get(constant.KeyAPINamespace.String()), "/")
	if namespace == "" {
		namespace = "wp/v2"
	}
	return b.siteURL() + "/api/" + namespace
}

func (b *Builder) collectionURL() string {
	base := strings.Trim(b.settingSvc.Get(constant.KeyAPIRouteBase.String()), "/")
	if base == "" {
		base = "comments"
	}
	return b.namespaceURL() + "/" + base
}

// avatarURLs 生成 24/48/96 三档 Gravatar 地址
func (b *Builder) avatarURLs(email string) map[string]string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	hashHex := hex.EncodeToString(hash[:])

	base := strings.TrimSuffix(b.settingSvc.Get(constant.KeyGravatarURL.String()), "/")
	defaultType := b.settingSvc.Get(constant.KeyDefaultGravatarType.String())

	urls := make(map[string]string, 3)
	for _, size := range []int{24, 48, 96} {
		urls[fmt.Sprintf("%d", size)] = fmt.Sprintf("%s/avatar/%s?s=%d&d=%s", base, hashHex, size, defaultType)
	}
	return urls
}

func (b *Builder) commentLink(c *model.Comment) string {
	return fmt.Sprintf("%s/posts/%d#comment-%d", b.siteURL(), c.PostID, c.ID)
}

func (b *Builder) siteURL() string {
	return strings.TrimSuffix(b.settingSvc.Get(constant.KeySiteURL.String()), "/")
}
