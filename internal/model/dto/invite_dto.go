package dto

import (
	"TandaXN/pkg/invitelink"
)

// InviteData 邀请的 JSON 表示。可选数值字段用指针表达"确定的数值或缺失"，
// 解码边界之外不再传松散的字符串。
type InviteData struct {
	Kind               string   `json:"kind"` // circle | community
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Icon               string   `json:"icon"`
	InvitedByUserID    string   `json:"invited_by_user_id"`
	InviterDisplayName string   `json:"inviter_display_name"`
	ContributionAmount *float64 `json:"contribution_amount,omitempty"`
	Frequency          string   `json:"frequency,omitempty"`
	MemberCount        *int     `json:"member_count,omitempty"`
}

// InviteFromLink 从解码结果构造 DTO
func InviteFromLink(inv invitelink.Invite) InviteData {
	return InviteData{
		Kind:               string(inv.Kind),
		ID:                 inv.ID,
		Name:               inv.Name,
		Icon:               inv.Icon,
		InvitedByUserID:    inv.InvitedBy,
		InviterDisplayName: inv.InviterName,
		ContributionAmount: inv.Contribution,
		Frequency:          inv.Frequency,
		MemberCount:        inv.Members,
	}
}

// ToLink 转回编解码器使用的结构
func (d InviteData) ToLink() invitelink.Invite {
	return invitelink.Invite{
		Kind:         invitelink.Kind(d.Kind),
		ID:           d.ID,
		Name:         d.Name,
		Icon:         d.Icon,
		InvitedBy:    d.InvitedByUserID,
		InviterName:  d.InviterDisplayName,
		Contribution: d.ContributionAmount,
		Frequency:    d.Frequency,
		Members:      d.MemberCount,
	}
}

// ResolveInviteRequest 解析链接请求
type ResolveInviteRequest struct {
	URL string `query:"url" json:"url"`
}

// ShareLinkRequest 生成分享链接请求，inviter 信息取自当前登录用户
type ShareLinkRequest struct {
	Kind               string   `json:"kind" vd:"$=='circle'||$=='community'"`
	ID                 string   `json:"id" vd:"len($)>0"`
	Name               string   `json:"name"`
	Icon               string   `json:"icon"`
	ContributionAmount *float64 `json:"contribution_amount,omitempty"`
	Frequency          string   `json:"frequency,omitempty"`
	MemberCount        *int     `json:"member_count,omitempty"`
}

// ShareLinkData 生成的分享链接
type ShareLinkData struct {
	WebURL string `json:"web_url"`
	AppURL string `json:"app_url"`
}

// AcceptInviteRequest 接受邀请。导航直接带来的邀请参数优先，
// 否则回退到会话里的 pending invite。
type AcceptInviteRequest struct {
	Invite *InviteData `json:"invite,omitempty"`
}

// AcceptInviteData 接受邀请的结果
type AcceptInviteData struct {
	Kind          string `json:"kind"`
	TargetID      string `json:"target_id"`
	StepCompleted bool   `json:"step_completed"` // join_circle 步骤是否在本次更新中完成
}

// PendingInviteData 会话中暂存的邀请（可能为空）
type PendingInviteData struct {
	Invite *InviteData `json:"invite"`
}
