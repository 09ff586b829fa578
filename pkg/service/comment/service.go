/*
 * @Description: 评论创建校验管线
 * @Author: 安知鱼
 * @Date: 2025-11-04 10:05:33
 * @LastEditTime: 2026-08-21 22:37:50
 * @LastEditors: 安知鱼
 */
package comment

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-comment-api/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/handler/comment/dto"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/util"
)

// WordPress 数据表的字段长度上限（字节）
const (
	maxAuthorLen      = 245
	maxAuthorEmailLen = 100
	maxAuthorURLLen   = 200
	maxContentLen     = 65525
)

// 校验模式。minimal 跳过文章状态与评论开关检查，用于迁移导入等宽松场景。
const (
	ValidationModeFull    = "full"
	ValidationModeMinimal = "minimal"
)

// AdmissionPolicy 是准入决策的消费方接口，由 admission 包实现。
// 返回的 approved 是最终写库的审核状态。
type AdmissionPolicy interface {
	Decide(ctx context.Context, prepared *model.PreparedComment, privileged bool) (string, *model.RequestError)
	// RecordAccepted 在评论成功写库后调用，记录灌水检测的时间起点
	RecordAccepted(ctx context.Context, prepared *model.PreparedComment)
	AllowsEmptyContent() bool
}

// RequestEnv 携带从传输层提取的请求环境信息。
type RequestEnv struct {
	IP        string
	UserAgent string
}

// Service 实现评论创建的有序校验管线：任何一环拒绝即短路，
// 全部通过后产出 PreparedComment 并写库。
type Service struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	settingSvc  setting.SettingService
	admission   AdmissionPolicy
	hooks       Hooks
}

// NewService 是评论服务的构造函数
func NewService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	settingSvc setting.SettingService,
	admission AdmissionPolicy,
	hooks Hooks,
) *Service {
	return &Service{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		settingSvc:  settingSvc,
		admission:   admission,
		hooks:       hooks,
	}
}

// Get 按ID获取单条评论
func (s *Service) Get(ctx context.Context, id uint) (*model.Comment, error) {
	cmt, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			return nil, errCommentNotFound()
		}
		return nil, err
	}
	return cmt, nil
}

// Create 执行完整的创建管线。
// 拒绝以 *model.RequestError 返回，基础设施故障以普通 error 返回。
func (s *Service) Create(ctx context.Context, req *dto.CreateRequest, env RequestEnv, claims *auth.CustomClaims) (*model.Comment, error) {
	// 1. 已存在的评论不能重复创建；0 或空串视同未携带
	if req.ID.Set && req.ID.Value > 0 {
		return nil, errCommentExists()
	}

	// 2. 评论必须归属一篇文章
	if !req.Post.Set || req.Post.Value == 0 {
		return nil, errPostIDRequired()
	}

	// 3. 文章存在性、评论开关、发布状态
	post, err := s.postRepo.FindByID(ctx, req.Post.Value)
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			return nil, errPostInvalidID()
		}
		return nil, err
	}
	if post.Type != "post" && post.Type != "page" {
		return nil, errPostInvalidID()
	}
	if s.validationMode() == ValidationModeFull {
		if !post.CommentsOpen() {
			return nil, errCommentsClosed()
		}
		if !post.IsPublished() {
			return nil, errPostNotPublished()
		}
	}

	// 4. 父评论必须存在且属于同一篇文章
	var parentID uint
	if req.Parent.Set && req.Parent.Value > 0 {
		parent, err := s.commentRepo.FindByID(ctx, req.Parent.Value)
		if err != nil {
			if errors.Is(err, constant.ErrNotFound) {
				return nil, errParentInvalidID()
			}
			return nil, err
		}
		if parent.PostID != post.ID {
			return nil, errParentPostMismatch()
		}
		parentID = parent.ID
	}

	// 5. 类型检查
	if req.Type != "" && req.Type != model.TypeComment {
		return nil, errInvalidCommentType()
	}

	// 6. 作者身份解析
	author, user, rejection := s.resolveAuthor(ctx, req, claims)
	if rejection != nil {
		return nil, rejection
	}
	privileged := user != nil && user.CanModerate()

	// 7. 字段提取
	content := strings.TrimSpace(req.Content.Raw)

	ip := util.SanitizeCommentIP(env.IP)
	if req.AuthorIP != "" && privileged && util.IsValidIP(req.AuthorIP) {
		ip = req.AuthorIP
	}
	author.IP = ip

	if req.AuthorUserAgent != "" {
		author.UserAgent = req.AuthorUserAgent
	} else {
		author.UserAgent = env.UserAgent
	}

	date, dateGMT := s.resolveDates(req)

	// 8. 空内容检查
	if content == "" && !s.admission.AllowsEmptyContent() {
		return nil, errContentInvalid()
	}

	var userID uint
	if user != nil {
		userID = user.ID
	}
	prepared := &model.PreparedComment{
		PostID:   post.ID,
		ParentID: parentID,
		UserID:   userID,
		Author:   author,
		Content:  content,
		Type:     model.TypeComment,
		Date:     date,
		DateGMT:  dateGMT,
	}

	// 11. 匿名评论的昵称与邮箱要求
	if userID == 0 && s.settingSvc.GetBool(constant.KeyCommentRequireNameEmail.String()) {
		if prepared.Author.Name == "" || !isValidEmail(prepared.Author.Email) {
			return nil, errAuthorDataRequired()
		}
	}

	// 12. 字段长度检查
	if rejection := checkFieldLengths(prepared); rejection != nil {
		return nil, rejection
	}

	// 13. 前置扩展点
	if rejection := s.hooks.runPreprocess(ctx, prepared); rejection != nil {
		return nil, rejection
	}

	// 14. 准入决策
	approved, rejection := s.admission.Decide(ctx, prepared, privileged)
	if rejection != nil {
		return nil, rejection
	}
	prepared.Approved = approved

	if rejection := s.hooks.runPreInsert(ctx, prepared); rejection != nil {
		return nil, rejection
	}

	// 15. 写库
	created, err := s.commentRepo.Create(ctx, prepared)
	if err != nil {
		log.Printf("【WARN】评论写入失败: %v", err)
		return nil, errCreateFailed()
	}
	s.admission.RecordAccepted(ctx, prepared)

	// 16. 管理员可以携带 status 参数覆盖初始状态
	if req.Status != "" && privileged {
		if target, ok := normalizeStatusParam(req.Status); ok && target != created.Approved {
			updated, err := s.commentRepo.UpdateStatus(ctx, created.ID, target)
			if err != nil {
				log.Printf("【WARN】评论 %d 初始状态覆盖失败: %v", created.ID, err)
			} else {
				created = updated
			}
		}
	}

	s.hooks.runPostInsert(ctx, created)

	return created, nil
}

// resolveAuthor 解析评论作者：登录用户回填资料，匿名用户使用请求体字段。
func (s *Service) resolveAuthor(ctx context.Context, req *dto.CreateRequest, claims *auth.CustomClaims) (model.Author, *model.User, *model.RequestError) {
	author := model.Author{
		Name:  strings.TrimSpace(req.AuthorName),
		Email: strings.TrimSpace(req.AuthorEmail),
		URL:   strings.TrimSpace(req.AuthorURL),
	}

	var currentUser *model.User
	if claims != nil {
		u, err := s.userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			return author, nil, errAuthorInvalid()
		}
		currentUser = u
	}

	targetUser := currentUser

	// 显式指定 author 时，匿名请求直接拒绝；已登录用户只能指定自己，管理员不受限
	if req.Author.Set && req.Author.Value > 0 {
		if currentUser == nil {
			return author, nil, errLoginRequired()
		}
		if req.Author.Value != currentUser.ID {
			if !currentUser.CanModerate() {
				return author, nil, errAuthorInvalid()
			}
			u, err := s.userRepo.FindByID(ctx, req.Author.Value)
			if err != nil {
				return author, nil, errAuthorInvalid()
			}
			targetUser = u
		}
	}

	// 登录评论缺失的署名字段从用户资料回填
	if targetUser != nil {
		if author.Name == "" {
			author.Name = targetUser.DisplayName()
		}
		if author.Email == "" {
			author.Email = targetUser.Email
		}
		if author.URL == "" {
			author.URL = targetUser.Website
		}
	}

	return author, targetUser, nil
}

// resolveDates 解析可选的 date/date_gmt，两者都缺失时使用当前时间。
// 无法解析的值按未提供处理。
func (s *Service) resolveDates(req *dto.CreateRequest) (time.Time, time.Time) {
	if req.Date != "" {
		if t, ok := parseWPDate(req.Date, time.Local); ok {
			return t, t.UTC()
		}
	}
	if req.DateGMT != "" {
		if t, ok := parseWPDate(req.DateGMT, time.UTC); ok {
			return t.Local(), t.UTC()
		}
	}
	now := time.Now()
	return now, now.UTC()
}

func (s *Service) validationMode() string {
	if s.settingSvc.Get(constant.KeyCommentValidationMode.String()) == ValidationModeMinimal {
		return ValidationModeMinimal
	}
	return ValidationModeFull
}

func parseWPDate(value string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", value, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func checkFieldLengths(prepared *model.PreparedComment) *model.RequestError {
	if len(prepared.Author.Name) > maxAuthorLen {
		return errAuthorTooLong()
	}
	if len(prepared.Author.Email) > maxAuthorEmailLen {
		return errAuthorEmailTooLong()
	}
	if len(prepared.Author.URL) > maxAuthorURLLen {
		return errAuthorURLTooLong()
	}
	if len(prepared.Content) > maxContentLen {
		return errContentTooLong()
	}
	return nil
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// normalizeStatusParam 把请求中的 status 参数归一化为库内状态值。
// 不认识的值返回 ok=false，按未提供处理。
func normalizeStatusParam(status string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approve", "approved", "1":
		return model.ApprovedApproved, true
	case "hold", "0":
		return model.ApprovedPending, true
	case "spam":
		return model.ApprovedSpam, true
	case "trash":
		return model.ApprovedTrash, true
	default:
		return "", false
	}
}
