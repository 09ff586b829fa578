// pkg/handler/comment/handler.go
package comment

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/anzhiyu-c/anheyu-comment-api/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/handler/comment/dto"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/response"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/comment"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/util"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc     *comment.Service
	builder *comment.Builder
}

func NewHandler(svc *comment.Service, builder *comment.Builder) *Handler {
	return &Handler{svc: svc, builder: builder}
}

// Create
// @Summary      创建评论
// @Description  以 WordPress REST 兼容的语义创建一条评论。支持匿名评论和登录评论。
// @Tags         评论
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateRequest true "评论内容"
// @Param        _fields query string false "逗号分隔的响应字段投影"
// @Param        context query string false "响应上下文" Enums(view, embed, edit) default(view)
// @Success      201 {object} map[string]interface{} "创建成功，返回评论表示"
// @Failure      400 {object} response.WPError "请求参数错误"
// @Failure      403 {object} response.WPError "评论已关闭、文章未发布或无权使用 edit 上下文"
// @Failure      404 {object} response.WPError "文章或父评论不存在"
// @Failure      409 {object} response.WPError "重复评论"
// @Router       /wp/v2/comments/create [post]
func (h *Handler) Create(c *gin.Context) {
	var req dto.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWP(c, "rest_invalid_json", "请求体不是合法的 JSON。", http.StatusBadRequest)
		return
	}

	claims := currentClaims(c)
	privileged := claims != nil && claims.UserGroupID == model.GroupIDAdmin

	opts := buildOptions(c)
	if opts.Context == comment.ContextEdit && !privileged {
		response.FailWP(c, comment.CodeForbiddenContext, "抱歉，你无权使用 edit 上下文。", http.StatusForbidden)
		return
	}
	// 创建响应默认使用请求者能看到的最全上下文
	if c.Query("context") == "" && privileged {
		opts.Context = comment.ContextEdit
	}

	env := comment.RequestEnv{
		IP:        util.GetRealClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	}

	created, err := h.svc.Create(c.Request.Context(), &req, env, claims)
	if err != nil {
		writeError(c, err)
		return
	}

	body, err := h.builder.Build(c.Request.Context(), created, opts)
	if err != nil {
		log.Printf("【WARN】评论 %d 响应构建失败: %v", created.ID, err)
		response.FailWP(c, "rest_comment_failed_create", "评论已创建，但响应构建失败。", http.StatusInternalServerError)
		return
	}

	c.Header("Location", h.builder.SelfLink(created))
	c.JSON(http.StatusCreated, body)
}

// Get
// @Summary      获取单条评论
// @Description  按ID获取评论的规范表示。context=edit 需要管理员权限。
// @Tags         评论
// @Produce      json
// @Param        id path int true "评论ID"
// @Param        _fields query string false "逗号分隔的响应字段投影"
// @Param        context query string false "响应上下文" Enums(view, embed, edit) default(view)
// @Success      200 {object} map[string]interface{} "评论表示"
// @Failure      403 {object} response.WPError "无权使用 edit 上下文"
// @Failure      404 {object} response.WPError "评论不存在"
// @Router       /wp/v2/comments/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.FailWP(c, comment.CodeCommentNotFound, "无效的评论 ID。", http.StatusNotFound)
		return
	}

	claims := currentClaims(c)
	privileged := claims != nil && claims.UserGroupID == model.GroupIDAdmin

	opts := buildOptions(c)
	if opts.Context == comment.ContextEdit && !privileged {
		response.FailWP(c, comment.CodeForbiddenContext, "抱歉，你无权以 edit 上下文查看此评论。", http.StatusForbidden)
		return
	}

	cmt, err := h.svc.Get(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	body, err := h.builder.Build(c.Request.Context(), cmt, opts)
	if err != nil {
		log.Printf("【WARN】评论 %d 响应构建失败: %v", cmt.ID, err)
		response.FailWP(c, "rest_internal_error", "响应构建失败。", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, body)
}

// buildOptions 从查询参数提取 _fields 和 context
func buildOptions(c *gin.Context) comment.BuildOptions {
	opts := comment.BuildOptions{
		Context:   comment.ContextView,
		WithLinks: true,
	}

	switch c.Query("context") {
	case comment.ContextEmbed:
		opts.Context = comment.ContextEmbed
	case comment.ContextEdit:
		opts.Context = comment.ContextEdit
	}

	if fields := c.Query("_fields"); fields != "" {
		opts.Fields = strings.Split(fields, ",")
		// 显式投影时链接只在请求了 _links 时返回
		opts.WithLinks = false
		for _, f := range opts.Fields {
			if strings.TrimSpace(f) == "_links" {
				opts.WithLinks = true
				break
			}
		}
	}

	return opts
}

func currentClaims(c *gin.Context) *auth.CustomClaims {
	raw, exists := c.Get(auth.ClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := raw.(*auth.CustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// writeError 把服务层错误翻译为 WP 兼容的错误响应
func writeError(c *gin.Context, err error) {
	var reqErr *model.RequestError
	if errors.As(err, &reqErr) {
		response.FailWP(c, reqErr.Code, reqErr.Message, reqErr.Status)
		return
	}
	log.Printf("【WARN】评论接口内部错误: %v", err)
	response.FailWP(c, "rest_internal_error", "服务器内部错误。", http.StatusInternalServerError)
}
