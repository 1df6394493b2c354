package model

// InviteAcceptedMessage 邀请被接受后发布的事件，worker 消费后累加推荐计数
type InviteAcceptedMessage struct {
	MessageID  string `json:"message_id"`
	Kind       string `json:"kind"` // circle | community
	TargetID   string `json:"target_id"`
	InviterID  string `json:"inviter_id"`
	InviteeID  string `json:"invitee_id"`
	AcceptedAt string `json:"accepted_at"` // RFC3339
}
