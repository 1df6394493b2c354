package model

import "time"

// SuggestedCommunity 推荐社区条目，MatchScore 取值 0~100
type SuggestedCommunity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Reason      string `json:"reason"`
	MemberCount int    `json:"member_count"`
	Category    string `json:"category"`
	MatchScore  int    `json:"match_score"`
}

// CircleMembership 圈子成员关系，join 动作落这张表
type CircleMembership struct {
	BaseModel
	UserID     int64  `gorm:"not null;index;uniqueIndex:idx_circle_member,priority:1" json:"user_id"` // public_id
	CircleID   string `gorm:"type:varchar(64);not null;uniqueIndex:idx_circle_member,priority:2" json:"circle_id"`
	CircleName string `gorm:"type:varchar(128);not null;default:''" json:"circle_name"`
	JoinedVia  string `gorm:"type:varchar(16);not null;default:'invite'" json:"joined_via"`
	InvitedBy  string `gorm:"type:varchar(64);not null;default:''" json:"invited_by"`
}

func (CircleMembership) TableName() string {
	return "circle_memberships"
}

// CommunityMembership 社区成员关系
type CommunityMembership struct {
	BaseModel
	UserID        int64  `gorm:"not null;index;uniqueIndex:idx_community_member,priority:1" json:"user_id"`
	CommunityID   string `gorm:"type:varchar(64);not null;uniqueIndex:idx_community_member,priority:2" json:"community_id"`
	CommunityName string `gorm:"type:varchar(128);not null;default:''" json:"community_name"`
	JoinedVia     string `gorm:"type:varchar(16);not null;default:'invite'" json:"joined_via"`
	InvitedBy     string `gorm:"type:varchar(64);not null;default:''" json:"invited_by"`
}

func (CommunityMembership) TableName() string {
	return "community_memberships"
}

// ReferralStat 邀请人的推荐计数，worker 消费 invite.accepted 后累加
type ReferralStat struct {
	BaseModel
	UserID         int64      `gorm:"uniqueIndex;not null" json:"user_id"` // 邀请人 public_id
	AcceptedCount  int        `gorm:"not null;default:0" json:"accepted_count"`
	LastAcceptedAt *time.Time `json:"last_accepted_at"`
}

func (ReferralStat) TableName() string {
	return "referral_stats"
}
