// pkg/handler/comment/dto/dto.go
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexID 是一个宽容的整型字段：接受 JSON 数字或数字字符串，
// 并记录字段是否在请求体中出现过（区分"缺失"和"零值"）。
type FlexID struct {
	Value uint
	Set   bool
}

func (f *FlexID) UnmarshalJSON(data []byte) error {
	f.Set = true
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return fmt.Errorf("字段值 %v 不是合法的ID", v)
		}
		f.Value = uint(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("字段值 %q 不是合法的ID", v)
		}
		f.Value = uint(n)
	default:
		return fmt.Errorf("字段类型 %T 不是合法的ID", raw)
	}
	return nil
}

func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// ContentField 兼容两种写法：扁平字符串 "content": "..."，
// 或 WordPress 风格的对象 "content": {"raw": "..."}。
type ContentField struct {
	Raw string
	Set bool
}

func (c *ContentField) UnmarshalJSON(data []byte) error {
	c.Set = true
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &c.Raw)
	}

	var obj struct {
		Raw string `json:"raw"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("content 字段格式不正确: %w", err)
	}
	c.Raw = obj.Raw
	return nil
}

// CreateRequest 定义了创建评论的API请求体，字段名与 WordPress REST 评论接口对齐。
type CreateRequest struct {
	// 客户端不允许指定评论ID；该字段只用于拒绝携带它的请求
	ID FlexID `json:"id"`

	// 评论所属的文章ID，必填
	Post FlexID `json:"post"`

	// 父评论ID，回复时填写
	Parent FlexID `json:"parent"`

	// 以指定注册用户身份发表评论时的用户ID
	Author FlexID `json:"author"`

	// 匿名评论者的昵称、邮箱、网址
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	AuthorURL   string `json:"author_url"`

	// 仅管理员可覆盖的来源信息
	AuthorIP        string `json:"author_ip"`
	AuthorUserAgent string `json:"author_user_agent"`

	// 评论内容，接受字符串或 {raw} 对象
	Content ContentField `json:"content"`

	// 可选的发表时间，RFC3339 或 "2006-01-02 15:04:05"
	Date    string `json:"date"`
	DateGMT string `json:"date_gmt"`

	// 评论类型，目前仅允许 comment
	Type string `json:"type"`

	// 仅管理员可用的初始状态覆盖
	Status string `json:"status"`
}
