package comment

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
)

// fakeSettings 是测试用的内存配置服务
type fakeSettings struct {
	values map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: map[string]string{
		constant.KeySiteURL.String():                 "https://blog.example.com",
		constant.KeyGravatarURL.String():             "https://cravatar.cn/",
		constant.KeyDefaultGravatarType.String():     "mp",
		constant.KeyShowAvatars.String():             "true",
		constant.KeyCommentRequireNameEmail.String(): "true",
		constant.KeyCommentValidationMode.String():   "full",
	}}
}

func (f *fakeSettings) set(key constant.SettingKey, value string) {
	f.values[key.String()] = value
}

func (f *fakeSettings) LoadAllSettings(ctx context.Context) error { return nil }
func (f *fakeSettings) Get(key string) string                     { return f.values[key] }
func (f *fakeSettings) GetBool(key string) bool {
	b, _ := strconv.ParseBool(f.values[key])
	return b
}
func (f *fakeSettings) GetInt(key string) int {
	n, _ := strconv.Atoi(f.values[key])
	return n
}
func (f *fakeSettings) GetLines(key string) []string {
	var lines []string
	for _, line := range strings.Split(f.values[key], "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
func (f *fakeSettings) GetSiteConfig() map[string]string { return nil }
func (f *fakeSettings) UpdateSettings(ctx context.Context, settingsToUpdate map[string]string) error {
	for k, v := range settingsToUpdate {
		f.values[k] = v
	}
	return nil
}

// fakePostRepo 按ID返回预置的文章
type fakePostRepo struct {
	posts map[uint]*model.Post
}

func (f *fakePostRepo) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return nil, constant.ErrNotFound
}

// fakeUserRepo 按ID返回预置的用户
type fakeUserRepo struct {
	users map[uint]*model.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, constant.ErrNotFound
}

// fakeCommentRepo 是内存版的评论仓储
type fakeCommentRepo struct {
	comments  map[uint]*model.Comment
	nextID    uint
	createErr error
	children  map[uint]int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[uint]*model.Comment),
		nextID:   1,
		children: make(map[uint]int64),
	}
}

func (f *fakeCommentRepo) Create(ctx context.Context, prepared *model.PreparedComment) (*model.Comment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c := &model.Comment{
		ID:       f.nextID,
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
	f.comments[c.ID] = c
	f.nextID++
	return c, nil
}

func (f *fakeCommentRepo) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	if c, ok := f.comments[id]; ok {
		return c, nil
	}
	return nil, constant.ErrNotFound
}

func (f *fakeCommentRepo) UpdateStatus(ctx context.Context, id uint, approved string) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, constant.ErrNotFound
	}
	c.Approved = approved
	return c, nil
}

func (f *fakeCommentRepo) CountChildren(ctx context.Context, parentID uint) (int64, error) {
	return f.children[parentID], nil
}

func (f *fakeCommentRepo) CountDuplicates(ctx context.Context, probe repository.DuplicateProbe) (int64, error) {
	return 0, nil
}

func (f *fakeCommentRepo) LastCommentTime(ctx context.Context, authorEmail, authorName string) (*time.Time, error) {
	return nil, nil
}

func (f *fakeCommentRepo) HasApprovedAuthor(ctx context.Context, authorEmail, authorName string) (bool, error) {
	return false, nil
}

func (f *fakeCommentRepo) DeleteTrashBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// stubAdmission 返回固定的准入决策
type stubAdmission struct {
	approved    string
	rejection   *model.RequestError
	allowsEmpty bool
	recorded    int
}

func (s *stubAdmission) Decide(ctx context.Context, prepared *model.PreparedComment, privileged bool) (string, *model.RequestError) {
	if s.rejection != nil {
		return "", s.rejection
	}
	if s.approved == "" {
		return model.ApprovedApproved, nil
	}
	return s.approved, nil
}

func (s *stubAdmission) RecordAccepted(ctx context.Context, prepared *model.PreparedComment) {
	s.recorded++
}

func (s *stubAdmission) AllowsEmptyContent() bool { return s.allowsEmpty }

// requireRequestError 断言错误是携带指定错误码的拒绝
func requireRequestError(t *testing.T, err error, code string) *model.RequestError {
	t.Helper()
	if err == nil {
		t.Fatalf("期望错误码 %s，实际没有错误", code)
	}
	var reqErr *model.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("期望 *model.RequestError，实际是 %T: %v", err, err)
	}
	if reqErr.Code != code {
		t.Fatalf("期望错误码 %s，实际是 %s", code, reqErr.Code)
	}
	return reqErr
}
