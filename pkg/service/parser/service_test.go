package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	svc := NewService()

	t.Run("Markdown基本语法", func(t *testing.T) {
		html, err := svc.Render("**加粗** 和 [链接](https://example.com)")
		require.NoError(t, err)
		assert.Contains(t, html, "<strong>加粗</strong>")
		assert.Contains(t, html, `href="https://example.com"`)
		assert.Contains(t, html, `rel="nofollow"`)
	})

	t.Run("GFM删除线", func(t *testing.T) {
		html, err := svc.Render("~~划掉~~")
		require.NoError(t, err)
		assert.Contains(t, html, "<del>划掉</del>")
	})

	t.Run("脚本标签被剥除", func(t *testing.T) {
		html, err := svc.Render("你好 <script>alert(1)</script>")
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "你好")
	})

	t.Run("内联事件属性被剥除", func(t *testing.T) {
		html, err := svc.Render(`<img src="x.png" onerror="alert(1)">`)
		require.NoError(t, err)
		assert.NotContains(t, html, "onerror")
	})

	t.Run("javascript协议链接被净化", func(t *testing.T) {
		html, err := svc.Render(`[点我](javascript:alert(1))`)
		require.NoError(t, err)
		assert.NotContains(t, html, "javascript:")
	})

	t.Run("空内容", func(t *testing.T) {
		html, err := svc.Render("")
		require.NoError(t, err)
		assert.Empty(t, html)
	})

	t.Run("相同内容命中缓存", func(t *testing.T) {
		first, err := svc.Render("# 缓存测试")
		require.NoError(t, err)
		second, err := svc.Render("# 缓存测试")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestSanitizeHTML(t *testing.T) {
	svc := NewService()

	assert.Equal(t, "<p>你好</p>", svc.SanitizeHTML("<p>你好</p>"))
	assert.NotContains(t, svc.SanitizeHTML(`<iframe src="https://evil.example.com"></iframe>`), "iframe")
}

func TestLRUCache(t *testing.T) {
	t.Run("容量淘汰最旧条目", func(t *testing.T) {
		cache := NewLRUCache(2, time.Minute)
		cache.Set("a", "1")
		cache.Set("b", "2")
		cache.Set("c", "3")

		_, ok := cache.Get("a")
		assert.False(t, ok, "最旧的条目应被淘汰")

		v, ok := cache.Get("c")
		require.True(t, ok)
		assert.Equal(t, "3", v)
	})

	t.Run("访问刷新淘汰顺序", func(t *testing.T) {
		cache := NewLRUCache(2, time.Minute)
		cache.Set("a", "1")
		cache.Set("b", "2")
		cache.Get("a")
		cache.Set("c", "3")

		_, ok := cache.Get("a")
		assert.True(t, ok, "刚访问过的条目不应被淘汰")
		_, ok = cache.Get("b")
		assert.False(t, ok)
	})

	t.Run("过期条目不可见", func(t *testing.T) {
		cache := NewLRUCache(10, time.Nanosecond)
		cache.Set("a", "1")
		time.Sleep(time.Millisecond)

		_, ok := cache.Get("a")
		assert.False(t, ok)
	})
}
