package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sessions"
	"go.uber.org/zap"

	"TandaXN/internal/middleware"
	"TandaXN/internal/model/dto"
	"TandaXN/internal/pending"
	"TandaXN/internal/service"
	"TandaXN/pkg/errors"
	"TandaXN/pkg/logger"
	"TandaXN/pkg/response"
)

// ResolveInvite 解析邀请链接。不要求登录：未注册用户点开链接时
// 前端先调这里拿到预览数据，再决定跳注册还是直接 join。
// 不是本应用的链接返回 data=null，不报错。
// GET /v1/invites/resolve?url=...
func ResolveInvite(ctx context.Context, c *app.RequestContext) {
	var req dto.ResolveInviteRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	response.Success(ctx, c, service.Invite().Resolve(req.URL))
}

// CreateShareLink 生成当前用户的邀请链接（web + app 两种）
// POST /v1/invites/share-link
func CreateShareLink(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.ShareLinkRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Invite().BuildShareLink(ctx, userID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}

// StashPendingInvite 把邀请暂存到会话里（未登录用户跳注册前调用）。
// 覆盖写：一个会话最多一条未决邀请。
// PUT /v1/invites/pending
func StashPendingInvite(ctx context.Context, c *app.RequestContext) {
	var inv dto.InviteData
	if err := c.BindAndValidate(&inv); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if inv.Kind != "circle" && inv.Kind != "community" || inv.ID == "" {
		response.Error(ctx, c, errors.InviteInvalid)
		return
	}

	store := pending.NewStore(sessions.Default(c))
	if err := store.Set(inv); err != nil {
		logger.Logger.Error("Failed to stash pending invite", zap.Error(err))
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.PendingInviteData{Invite: &inv})
}

// GetPendingInvite 取回会话里暂存的邀请，没有时 data.invite 为 null
// GET /v1/invites/pending
func GetPendingInvite(ctx context.Context, c *app.RequestContext) {
	store := pending.NewStore(sessions.Default(c))
	inv, err := store.Get()
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.PendingInviteData{Invite: inv})
}

// DeclinePendingInvite 用户明确拒绝邀请，清空槽位
// DELETE /v1/invites/pending
func DeclinePendingInvite(ctx context.Context, c *app.RequestContext) {
	store := pending.NewStore(sessions.Default(c))
	if err := store.Clear(); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// AcceptInvite 接受邀请。请求体里带了邀请参数就用它（深链直达），
// 否则回退会话里的 pending invite（注册回流）。join 成功后槽位清空，
// join 失败时槽位保留，用户可以重试。
// POST /v1/invites/accept
func AcceptInvite(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserIDInt64(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.AcceptInviteRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	slot := pending.NewStore(sessions.Default(c))

	data, err := service.Invite().AcceptFromRequest(ctx, userID, req.Invite, slot)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, data)
}
