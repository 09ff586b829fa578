package comment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-comment-api/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/response"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/comment"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/parser"
)

type memSettings struct {
	values map[string]string
}

func newMemSettings() *memSettings {
	return &memSettings{values: map[string]string{
		constant.KeySiteURL.String():                 "https://blog.example.com",
		constant.KeyGravatarURL.String():             "https://cravatar.cn/",
		constant.KeyDefaultGravatarType.String():     "mp",
		constant.KeyShowAvatars.String():             "true",
		constant.KeyCommentRequireNameEmail.String(): "true",
	}}
}

func (m *memSettings) LoadAllSettings(ctx context.Context) error { return nil }
func (m *memSettings) Get(key string) string                     { return m.values[key] }
func (m *memSettings) GetBool(key string) bool {
	b, _ := strconv.ParseBool(m.values[key])
	return b
}
func (m *memSettings) GetInt(key string) int {
	n, _ := strconv.Atoi(m.values[key])
	return n
}
func (m *memSettings) GetLines(key string) []string {
	var lines []string
	for _, line := range strings.Split(m.values[key], "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
func (m *memSettings) GetSiteConfig() map[string]string { return nil }
func (m *memSettings) UpdateSettings(ctx context.Context, settingsToUpdate map[string]string) error {
	for k, v := range settingsToUpdate {
		m.values[k] = v
	}
	return nil
}

type memPostRepo struct {
	posts map[uint]*model.Post
}

func (m *memPostRepo) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	if p, ok := m.posts[id]; ok {
		return p, nil
	}
	return nil, constant.ErrNotFound
}

type memUserRepo struct {
	users map[uint]*model.User
}

func (m *memUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, constant.ErrNotFound
}

type memCommentRepo struct {
	comments map[uint]*model.Comment
	nextID   uint
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: make(map[uint]*model.Comment), nextID: 1}
}

func (m *memCommentRepo) Create(ctx context.Context, prepared *model.PreparedComment) (*model.Comment, error) {
	c := &model.Comment{
		ID:       m.nextID,
		PostID:   prepared.PostID,
		ParentID: prepared.ParentID,
		UserID:   prepared.UserID,
		Author:   prepared.Author,
		Content:  prepared.Content,
		Type:     prepared.Type,
		Approved: prepared.Approved,
		Date:     prepared.Date,
		DateGMT:  prepared.DateGMT,
	}
	m.comments[c.ID] = c
	m.nextID++
	return c, nil
}

func (m *memCommentRepo) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	if c, ok := m.comments[id]; ok {
		return c, nil
	}
	return nil, constant.ErrNotFound
}

func (m *memCommentRepo) UpdateStatus(ctx context.Context, id uint, approved string) (*model.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, constant.ErrNotFound
	}
	c.Approved = approved
	return c, nil
}

func (m *memCommentRepo) CountChildren(ctx context.Context, parentID uint) (int64, error) {
	return 0, nil
}

func (m *memCommentRepo) CountDuplicates(ctx context.Context, probe repository.DuplicateProbe) (int64, error) {
	return 0, nil
}

func (m *memCommentRepo) LastCommentTime(ctx context.Context, authorEmail, authorName string) (*time.Time, error) {
	return nil, nil
}

func (m *memCommentRepo) HasApprovedAuthor(ctx context.Context, authorEmail, authorName string) (bool, error) {
	return false, nil
}

func (m *memCommentRepo) DeleteTrashBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type approveAll struct{}

func (approveAll) Decide(ctx context.Context, prepared *model.PreparedComment, privileged bool) (string, *model.RequestError) {
	return model.ApprovedApproved, nil
}
func (approveAll) RecordAccepted(ctx context.Context, prepared *model.PreparedComment) {}
func (approveAll) AllowsEmptyContent() bool                                            { return false }

// newTestRouter 组装一个带内存依赖的最小路由。claims 非 nil 时模拟已登录请求。
func newTestRouter(claims *auth.CustomClaims) (*gin.Engine, *memCommentRepo) {
	gin.SetMode(gin.TestMode)

	settings := newMemSettings()
	commentRepo := newMemCommentRepo()
	postRepo := &memPostRepo{posts: map[uint]*model.Post{
		5: {ID: 5, Type: "post", Status: model.PostStatusPublish, CommentStatus: model.CommentStatusOpen},
	}}
	userRepo := &memUserRepo{users: map[uint]*model.User{
		1: {ID: 1, Username: "admin", Email: "admin@example.com", UserGroupID: model.GroupIDAdmin},
	}}

	svc := comment.NewService(postRepo, commentRepo, userRepo, settings, approveAll{}, comment.Hooks{})
	builder := comment.NewBuilder(settings, parser.NewService(), commentRepo, nil)
	handler := NewHandler(svc, builder)

	engine := gin.New()
	group := engine.Group("/api/wp/v2/comments")
	if claims != nil {
		group.Use(func(c *gin.Context) {
			c.Set(auth.ClaimsKey, claims)
			c.Next()
		})
	}
	group.POST("/create", handler.Create)
	group.GET("/:id", handler.Get)
	return engine, commentRepo
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent/1.0")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是合法 JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

func decodeWPError(t *testing.T, w *httptest.ResponseRecorder) response.WPError {
	t.Helper()
	var wpErr response.WPError
	if err := json.Unmarshal(w.Body.Bytes(), &wpErr); err != nil {
		t.Fatalf("错误响应解析失败: %v\n%s", err, w.Body.String())
	}
	return wpErr
}

func TestCreateEndpoint_Success(t *testing.T) {
	engine, _ := newTestRouter(nil)

	w := doJSON(t, engine, http.MethodPost, "/api/wp/v2/comments/create",
		`{"post": 5, "author_name": "访客甲", "author_email": "guest@example.com", "content": "你好"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("HTTP状态 = %d, 期望 201\n%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "https://blog.example.com/api/wp/v2/comments/1" {
		t.Errorf("Location = %q", loc)
	}

	body := decodeBody(t, w)
	if body["id"] != float64(1) {
		t.Errorf("id = %v, 期望 1", body["id"])
	}
	if body["status"] != "approved" {
		t.Errorf("status = %v", body["status"])
	}
	if _, ok := body["author_email"]; ok {
		t.Error("匿名创建的默认响应不应暴露邮箱")
	}
	if content, ok := body["content"].(map[string]interface{}); !ok || content["raw"] != "你好" {
		t.Errorf("content.raw = %v, 默认上下文也应返回原文", body["content"])
	}
	if _, ok := body["_links"]; !ok {
		t.Error("默认响应应附带 _links")
	}
}

// 未授权请求者显式要求 edit 上下文时整个请求应被拒绝，评论不落库。
func TestCreateEndpoint_EditContextRequiresPrivilege(t *testing.T) {
	engine, repo := newTestRouter(nil)

	w := doJSON(t, engine, http.MethodPost, "/api/wp/v2/comments/create?context=edit",
		`{"post": 5, "author_name": "访客甲", "author_email": "guest@example.com", "content": "你好"}`)

	if w.Code != http.StatusForbidden {
		t.Fatalf("HTTP状态 = %d, 期望 403\n%s", w.Code, w.Body.String())
	}
	wpErr := decodeWPError(t, w)
	if wpErr.ErrCode != "rest_forbidden_context" {
		t.Errorf("错误码 = %q, 期望 rest_forbidden_context", wpErr.ErrCode)
	}
	if len(repo.comments) != 0 {
		t.Error("被拒绝的请求不应创建评论")
	}
}

func TestCreateEndpoint_StringIDsAndObjectContent(t *testing.T) {
	engine, _ := newTestRouter(nil)

	w := doJSON(t, engine, http.MethodPost, "/api/wp/v2/comments/create",
		`{"post": "5", "author_name": "访客乙", "author_email": "b@example.com", "content": {"raw": "# 标题"}}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("HTTP状态 = %d, 期望兼容字符串ID与对象内容\n%s", w.Code, w.Body.String())
	}
}

func TestCreateEndpoint_InvalidJSON(t *testing.T) {
	engine, _ := newTestRouter(nil)

	w := doJSON(t, engine, http.MethodPost, "/api/wp/v2/comments/create", `{"post": 5,`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("HTTP状态 = %d, 期望 400", w.Code)
	}
	wpErr := decodeWPError(t, w)
	if wpErr.ErrCode != "rest_invalid_json" {
		t.Errorf("错误码 = %q", wpErr.ErrCode)
	}
}

func TestCreateEndpoint_WPErrorShape(t *testing.T) {
	engine, _ := newTestRouter(nil)

	// 文章不存在，走管线内的拒绝路径
	w := doJSON(t, engine, http.MethodPost, "/api/wp/v2/comments/create",
		`{"post": 999, "author_name": "访客", "author_email": "g@example.com", "content": "你好"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("HTTP状态 = %d, 期望 404", w.Code)
	}
	wpErr := decodeWPError(t, w)
	if wpErr.ErrCode != "rest_post_invalid_id" {
		t.Errorf("错误码 = %q", wpErr.ErrCode)
	}
	if wpErr.Message == "" {
		t.Error("错误响应应携带提示信息")
	}
	if wpErr.Data.Status != http.StatusNotFound {
		t.Errorf("data.status = %d, 期望与HTTP状态一致", wpErr.Data.Status)
	}
}

func TestCreateEndpoint_AdminDefaultsToEditContext(t *testing.T) {
	engine, _ := newTestRouter(&auth.CustomClaims{UserID: 1, UserGroupID: model.GroupIDAdmin})

	w := doJSON(t, engine, http.MethodPost, "/api/wp/v2/comments/create",
		`{"post": 5, "content": "管理员评论"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("HTTP状态 = %d\n%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if _, ok := body["author_email"]; !ok {
		t.Error("管理员创建的默认响应应使用 edit 上下文")
	}
	content, _ := body["content"].(map[string]interface{})
	if content["raw"] != "管理员评论" {
		t.Errorf("content.raw = %v", content["raw"])
	}
}

func TestCreateEndpoint_FieldsProjection(t *testing.T) {
	engine, _ := newTestRouter(nil)

	w := doJSON(t, engine, http.MethodPost, "/api/wp/v2/comments/create?_fields=id,link",
		`{"post": 5, "author_name": "访客", "author_email": "g@example.com", "content": "你好"}`)

	if w.Code != http.StatusCreated {
		t.Fatal(w.Body.String())
	}
	body := decodeBody(t, w)
	if len(body) != 2 {
		t.Errorf("投影后字段数 = %d, 期望只剩 id 和 link: %v", len(body), body)
	}
	if _, ok := body["_links"]; ok {
		t.Error("_fields 未请求 _links 时不应返回链接")
	}
}

func TestCreateEndpoint_FieldsProjectionKeepsRequestedLinks(t *testing.T) {
	engine, _ := newTestRouter(nil)

	w := doJSON(t, engine, http.MethodPost, "/api/wp/v2/comments/create?_fields=id,_links",
		`{"post": 5, "author_name": "访客", "author_email": "g@example.com", "content": "你好"}`)

	body := decodeBody(t, w)
	if _, ok := body["_links"]; !ok {
		t.Error("_fields 中包含 _links 时应保留链接")
	}
}

func TestGetEndpoint(t *testing.T) {
	engine, repo := newTestRouter(nil)
	seeded, err := repo.Create(context.Background(), &model.PreparedComment{
		PostID: 5, Content: "你好", Type: model.TypeComment, Approved: model.ApprovedApproved,
		Author: model.Author{Name: "访客", Email: "g@example.com", IP: "203.0.113.9"},
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("默认view上下文", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/api/wp/v2/comments/1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("HTTP状态 = %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["id"] != float64(seeded.ID) {
			t.Errorf("id = %v", body["id"])
		}
		if _, ok := body["author_ip"]; ok {
			t.Error("view 上下文不应暴露IP")
		}
	})

	t.Run("匿名请求edit上下文被拒", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/api/wp/v2/comments/1?context=edit", "")
		if w.Code != http.StatusForbidden {
			t.Fatalf("HTTP状态 = %d, 期望 403", w.Code)
		}
		wpErr := decodeWPError(t, w)
		if wpErr.ErrCode != "rest_forbidden_context" {
			t.Errorf("错误码 = %q", wpErr.ErrCode)
		}
	})

	t.Run("评论不存在", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/api/wp/v2/comments/999", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("HTTP状态 = %d, 期望 404", w.Code)
		}
		wpErr := decodeWPError(t, w)
		if wpErr.ErrCode != "rest_comment_invalid_id" {
			t.Errorf("错误码 = %q", wpErr.ErrCode)
		}
	})

	t.Run("非法ID", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/api/wp/v2/comments/abc", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("HTTP状态 = %d, 期望 404", w.Code)
		}
	})
}

func TestGetEndpoint_AdminEditContext(t *testing.T) {
	engine, repo := newTestRouter(&auth.CustomClaims{UserID: 1, UserGroupID: model.GroupIDAdmin})
	if _, err := repo.Create(context.Background(), &model.PreparedComment{
		PostID: 5, Content: "你好", Type: model.TypeComment, Approved: model.ApprovedApproved,
		Author: model.Author{Name: "访客", Email: "g@example.com", IP: "203.0.113.9"},
	}); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, engine, http.MethodGet, "/api/wp/v2/comments/1?context=edit", "")
	if w.Code != http.StatusOK {
		t.Fatalf("HTTP状态 = %d\n%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["author_ip"] != "203.0.113.9" {
		t.Errorf("author_ip = %v, 管理员应看到来源IP", body["author_ip"])
	}
}
