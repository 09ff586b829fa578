/*
 * @Description: 评论准入决策（灌水、查重、词表审核）
 * @Author: 安知鱼
 * @Date: 2025-11-04 16:12:55
 * @LastEditTime: 2026-08-24 20:51:02
 * @LastEditors: 安知鱼
 */
package admission

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/constant"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/utility"
)

// Service 决定一条已通过字段校验的评论能否入库，以及入库时的初始状态。
// 决策顺序固定：灌水检测、查重、词表审核。
type Service struct {
	commentRepo repository.CommentRepository
	settingSvc  setting.SettingService
	cacheSvc    utility.CacheService
}

// NewService 是准入服务的构造函数
func NewService(
	commentRepo repository.CommentRepository,
	settingSvc setting.SettingService,
	cacheSvc utility.CacheService,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		settingSvc:  settingSvc,
		cacheSvc:    cacheSvc,
	}
}

// AllowsEmptyContent 是否允许空内容评论
func (s *Service) AllowsEmptyContent() bool {
	return s.settingSvc.GetBool(constant.KeyCommentAllowEmpty.String())
}

// Decide 返回评论的初始审核状态，或一个使请求短路的拒绝错误。
// 管理员评论跳过全部闸门直接发布。
func (s *Service) Decide(ctx context.Context, prepared *model.PreparedComment, privileged bool) (string, *model.RequestError) {
	if privileged {
		return model.ApprovedApproved, nil
	}

	if rejection := s.checkFlood(ctx, prepared); rejection != nil {
		return "", rejection
	}

	if rejection := s.checkDuplicate(ctx, prepared); rejection != nil {
		return "", rejection
	}

	return s.moderate(ctx, prepared), nil
}

// RecordAccepted 在评论成功写库后记录本次评论时间，作为下一次灌水检测的起点。
// 只有真正入库的评论才会开启灌水窗口，被拒绝或写库失败的请求不计入。
func (s *Service) RecordAccepted(ctx context.Context, prepared *model.PreparedComment) {
	s.recordCommentTime(ctx, prepared)
}

// checkFlood 限制同一身份两次评论的最小间隔。
// 先查缓存，缓存未命中时退回数据库里最近一条评论的时间。
func (s *Service) checkFlood(ctx context.Context, prepared *model.PreparedComment) *model.RequestError {
	interval := s.settingSvc.GetInt(constant.KeyCommentFloodInterval.String())
	if interval <= 0 {
		return nil
	}

	key := s.floodKey(prepared)
	if raw, err := s.cacheSvc.Get(ctx, key); err == nil && raw != "" {
		if last, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if time.Since(time.Unix(last, 0)) < time.Duration(interval)*time.Second {
				return errFlood()
			}
		}
	}

	last, err := s.commentRepo.LastCommentTime(ctx, prepared.Author.Email, prepared.Author.Name)
	if err != nil {
		log.Printf("【WARN】查询作者最近评论时间失败: %v", err)
		return nil
	}
	if last != nil && time.Since(*last) < time.Duration(interval)*time.Second {
		return errFlood()
	}
	return nil
}

// checkDuplicate 同一文章同一父级下，同一作者不允许提交完全相同的内容
func (s *Service) checkDuplicate(ctx context.Context, prepared *model.PreparedComment) *model.RequestError {
	count, err := s.commentRepo.CountDuplicates(ctx, repository.DuplicateProbe{
		PostID:      prepared.PostID,
		ParentID:    prepared.ParentID,
		AuthorName:  prepared.Author.Name,
		AuthorEmail: prepared.Author.Email,
		Content:     prepared.Content,
	})
	if err != nil {
		log.Printf("【WARN】重复评论检测失败: %v", err)
		return nil
	}
	if count > 0 {
		return errDuplicate()
	}
	return nil
}

// moderate 决定初始审核状态：
// 违禁词命中 → 回收站；审核词命中或全量审核开启 → 待审核；
// 曾有通过审核的评论 → 直接发布；默认直接发布。
func (s *Service) moderate(ctx context.Context, prepared *model.PreparedComment) string {
	if s.matchWords(prepared, s.settingSvc.GetLines(constant.KeyCommentDisallowedWords.String())) {
		return model.ApprovedTrash
	}

	if s.settingSvc.GetBool(constant.KeyCommentModerateAll.String()) {
		return model.ApprovedPending
	}

	if s.matchWords(prepared, s.settingSvc.GetLines(constant.KeyCommentModerationWords.String())) {
		return model.ApprovedPending
	}

	if s.settingSvc.GetBool(constant.KeyCommentPreviouslyApproved.String()) {
		ok, err := s.commentRepo.HasApprovedAuthor(ctx, prepared.Author.Email, prepared.Author.Name)
		if err != nil {
			log.Printf("【WARN】查询作者历史审核记录失败: %v", err)
			return model.ApprovedPending
		}
		if !ok {
			return model.ApprovedPending
		}
	}

	return model.ApprovedApproved
}

// matchWords 在评论的全部可见字段上做大小写不敏感的子串匹配
func (s *Service) matchWords(prepared *model.PreparedComment, words []string) bool {
	if len(words) == 0 {
		return false
	}
	haystack := strings.ToLower(strings.Join([]string{
		prepared.Author.Name,
		prepared.Author.Email,
		prepared.Author.URL,
		prepared.Author.IP,
		prepared.Author.UserAgent,
		prepared.Content,
	}, "\n"))
	for _, word := range words {
		if strings.Contains(haystack, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

func (s *Service) recordCommentTime(ctx context.Context, prepared *model.PreparedComment) {
	interval := s.settingSvc.GetInt(constant.KeyCommentFloodInterval.String())
	if interval <= 0 {
		return
	}
	key := s.floodKey(prepared)
	ttl := time.Duration(interval) * time.Second
	if err := s.cacheSvc.Set(ctx, key, strconv.FormatInt(time.Now().Unix(), 10), ttl); err != nil {
		log.Printf("【WARN】写入灌水检测缓存失败: %v", err)
	}
}

// floodKey 以邮箱为第一身份，匿名且无邮箱时退化为IP
func (s *Service) floodKey(prepared *model.PreparedComment) string {
	identity := strings.ToLower(strings.TrimSpace(prepared.Author.Email))
	if identity == "" {
		identity = prepared.Author.IP
	}
	return fmt.Sprintf("comment:flood:%s", identity)
}

func errFlood() *model.RequestError {
	return model.NewRequestError("comment_flood", "你评论的速度太快了，请稍后再试。", http.StatusBadRequest)
}

func errDuplicate() *model.RequestError {
	return model.NewRequestError("comment_duplicate", "检测到重复评论，你可能已经说过这句话了。", http.StatusConflict)
}
