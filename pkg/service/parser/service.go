// pkg/service/parser/service.go
package parser

import (
	"bytes"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// 缓存配置常量
const (
	// 缓存容量：最多缓存 500 条渲染结果
	cacheCapacity = 500
	// 缓存 TTL：30 分钟
	cacheTTL = 30 * time.Minute
)

// Service 负责把评论的 Markdown 原文渲染为安全的 HTML。
// 渲染分两步：goldmark 渲染，bluemonday 过滤，顺序不可颠倒。
type Service struct {
	mdParser goldmark.Markdown
	policy   *bluemonday.Policy

	// 缓存：避免重复渲染相同内容
	htmlCache *LRUCache
}

// NewService 创建一个新的解析服务实例
func NewService() *Service {
	mdParser := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, extension.Linkify, extension.Strikethrough,
		),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)

	// 评论是不可信的用户输入，UGC 策略之外只放开少量展示属性
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span")
	policy.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	policy.AllowAttrs("target", "rel").OnElements("a")
	policy.RequireNoFollowOnLinks(true)

	return &Service{
		mdParser:  mdParser,
		policy:    policy,
		htmlCache: NewLRUCache(cacheCapacity, cacheTTL),
	}
}

// Render 将 Markdown 渲染为净化后的 HTML
func (s *Service) Render(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}

	key := computeCacheKey(markdown)
	if cached, ok := s.htmlCache.Get(key); ok {
		return cached, nil
	}

	var buf bytes.Buffer
	if err := s.mdParser.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown 渲染失败: %w", err)
	}

	safe := s.policy.Sanitize(buf.String())
	s.htmlCache.Set(key, safe)
	return safe, nil
}

// SanitizeHTML 只做净化，不做 Markdown 渲染，用于透传已是 HTML 的内容
func (s *Service) SanitizeHTML(html string) string {
	return s.policy.Sanitize(html)
}
