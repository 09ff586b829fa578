/*
 * @Description: 评论创建管线的拒绝错误定义
 * @Author: 安知鱼
 * @Date: 2025-11-04 09:12:30
 * @LastEditTime: 2026-08-05 10:44:19
 * @LastEditors: 安知鱼
 */
package comment

import (
	"net/http"

	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
)

// 稳定的机器可读错误码。客户端按码分支，文案只做展示。
const (
	CodeCommentExists           = "rest_comment_exists"
	CodePostIDRequired          = "rest_post_id_data_required"
	CodePostInvalidID           = "rest_post_invalid_id"
	CodeCommentsClosed          = "rest_comments_status_closed"
	CodePostNotPublished        = "rest_post_status_not_publish"
	CodeParentInvalidID         = "rest_parent_invalid_id"
	CodeParentPostMismatch      = "rest_post_mismatch_parent_post_id"
	CodeInvalidCommentType      = "rest_invalid_comment_type"
	CodeAuthorInvalid           = "rest_comment_author_invalid"
	CodeLoginRequired           = "rest_comment_login_required"
	CodeContentInvalid          = "rest_comment_content_invalid"
	CodeAuthorDataRequired      = "rest_comment_author_data_required"
	CodeAuthorTooLong           = "comment_author_column_length"
	CodeAuthorEmailTooLong      = "comment_author_email_column_length"
	CodeAuthorURLTooLong        = "comment_author_url_column_length"
	CodeContentTooLong          = "comment_content_column_length"
	CodeDuplicate               = "comment_duplicate"
	CodeFlood                   = "comment_flood"
	CodeCreateFailed            = "rest_comment_failed_create"
	CodeForbiddenContext        = "rest_forbidden_context"
	CodeCommentNotFound         = "rest_comment_invalid_id"
)

func errCommentExists() *model.RequestError {
	return model.NewRequestError(CodeCommentExists, "无法创建已存在的评论。", http.StatusBadRequest)
}

func errPostIDRequired() *model.RequestError {
	return model.NewRequestError(CodePostIDRequired, "创建评论时必须指定所属文章。", http.StatusBadRequest)
}

func errPostInvalidID() *model.RequestError {
	return model.NewRequestError(CodePostInvalidID, "无效的文章 ID。", http.StatusNotFound)
}

func errCommentsClosed() *model.RequestError {
	return model.NewRequestError(CodeCommentsClosed, "抱歉，这篇文章已关闭评论。", http.StatusForbidden)
}

func errPostNotPublished() *model.RequestError {
	return model.NewRequestError(CodePostNotPublished, "抱歉，不能对未发布的文章发表评论。", http.StatusForbidden)
}

func errParentInvalidID() *model.RequestError {
	return model.NewRequestError(CodeParentInvalidID, "无效的父评论 ID。", http.StatusNotFound)
}

func errParentPostMismatch() *model.RequestError {
	return model.NewRequestError(CodeParentPostMismatch, "父评论不属于该文章。", http.StatusBadRequest)
}

func errInvalidCommentType() *model.RequestError {
	return model.NewRequestError(CodeInvalidCommentType, "目前仅支持创建 comment 类型的评论。", http.StatusBadRequest)
}

func errAuthorInvalid() *model.RequestError {
	return model.NewRequestError(CodeAuthorInvalid, "评论作者无效。", http.StatusBadRequest)
}

func errLoginRequired() *model.RequestError {
	return model.NewRequestError(CodeLoginRequired, "抱歉，你必须登录后才能以指定用户的身份发表评论。", http.StatusUnauthorized)
}

func errContentInvalid() *model.RequestError {
	return model.NewRequestError(CodeContentInvalid, "无效的评论内容。", http.StatusBadRequest)
}

func errAuthorDataRequired() *model.RequestError {
	return model.NewRequestError(CodeAuthorDataRequired, "发表评论需要填写有效的昵称和邮箱。", http.StatusBadRequest)
}

func errAuthorTooLong() *model.RequestError {
	return model.NewRequestError(CodeAuthorTooLong, "你的昵称太长了。", http.StatusBadRequest)
}

func errAuthorEmailTooLong() *model.RequestError {
	return model.NewRequestError(CodeAuthorEmailTooLong, "你的邮箱地址太长了。", http.StatusBadRequest)
}

func errAuthorURLTooLong() *model.RequestError {
	return model.NewRequestError(CodeAuthorURLTooLong, "你的网址太长了。", http.StatusBadRequest)
}

func errContentTooLong() *model.RequestError {
	return model.NewRequestError(CodeContentTooLong, "你的评论太长了。", http.StatusBadRequest)
}

func errCreateFailed() *model.RequestError {
	return model.NewRequestError(CodeCreateFailed, "评论无法创建，请稍后再试。", http.StatusInternalServerError)
}

func errCommentNotFound() *model.RequestError {
	return model.NewRequestError(CodeCommentNotFound, "无效的评论 ID。", http.StatusNotFound)
}
