package model

// 引导流程的三类记录：步骤、资料字段、提示气泡。
// 每个登录用户一份，首次使用时从默认种子创建，completed/shown 只能单调地
// false -> true（完整重置除外）。

// OnboardingStep 引导步骤
type OnboardingStep struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	TargetAction string `json:"target_action"`
	Completed    bool   `json:"completed"`
	Order        int    `json:"order"` // 全序，种子内唯一
}

// ProfileField 资料完善字段
type ProfileField struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Completed    bool   `json:"completed"`
	Required     bool   `json:"required"` // 运行时不变
	TargetScreen string `json:"target_screen"`
}

// TooltipRecord 提示气泡
type TooltipRecord struct {
	ID        string `json:"id"`
	TargetRef string `json:"target_ref"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Position  string `json:"position"`
	Screen    string `json:"screen"`
	Shown     bool   `json:"shown"`
	Order     int    `json:"order"`
}

// OnboardingRecord 持久化到 KV 存储的引导记录（steps + profile fields 一起存）
type OnboardingRecord struct {
	Steps         []OnboardingStep `json:"steps"`
	ProfileFields []ProfileField   `json:"profile_fields"`
}

// StepCompleteProfile 是资料字段级联规则指向的步骤 id：
// 所有 required 字段完成后该步骤被强制完成
const StepCompleteProfile = "complete_profile"

// DefaultOnboardingSteps 步骤默认种子
func DefaultOnboardingSteps() []OnboardingStep {
	return []OnboardingStep{
		{
			ID:           StepCompleteProfile,
			Title:        "Complete your profile",
			Description:  "Add your name, email and phone so circle members know who you are",
			TargetAction: "open_profile",
			Order:        1,
		},
		{
			ID:           "join_circle",
			Title:        "Join your first savings circle",
			Description:  "Accept an invite or start a circle with family back home",
			TargetAction: "open_circles",
			Order:        2,
		},
		{
			ID:           "explore_communities",
			Title:        "Find your community",
			Description:  "Connect with savers from your diaspora community",
			TargetAction: "open_communities",
			Order:        3,
		},
		{
			ID:           "invite_friends",
			Title:        "Invite friends and family",
			Description:  "Share your invite link and earn rewards when friends join",
			TargetAction: "open_share",
			Order:        4,
		},
	}
}

// DefaultProfileFields 资料字段默认种子，3 个必填 + 5 个选填
func DefaultProfileFields() []ProfileField {
	return []ProfileField{
		{ID: "full_name", Label: "Full name", Required: true, TargetScreen: "EditProfile"},
		{ID: "email", Label: "Email address", Required: true, TargetScreen: "EditProfile"},
		{ID: "phone", Label: "Phone number", Required: true, TargetScreen: "Verification"},
		{ID: "avatar", Label: "Profile photo", Required: false, TargetScreen: "EditProfile"},
		{ID: "country", Label: "Home country", Required: false, TargetScreen: "EditProfile"},
		{ID: "language", Label: "Preferred language", Required: false, TargetScreen: "Settings"},
		{ID: "occupation", Label: "Occupation", Required: false, TargetScreen: "EditProfile"},
		{ID: "savings_goal", Label: "Monthly savings goal", Required: false, TargetScreen: "Goals"},
	}
}

// DefaultTooltips 提示气泡默认种子
func DefaultTooltips() []TooltipRecord {
	return []TooltipRecord{
		{
			ID:        "dashboard_balance",
			TargetRef: "balance-card",
			Title:     "Your balance",
			Message:   "Track what you've saved across all your circles here",
			Position:  "bottom",
			Screen:    "Dashboard",
			Order:     1,
		},
		{
			ID:        "dashboard_quick_send",
			TargetRef: "quick-send-button",
			Title:     "Send money home",
			Message:   "Tap here to send money to family in one step",
			Position:  "bottom",
			Screen:    "Dashboard",
			Order:     2,
		},
		{
			ID:        "circles_overview",
			TargetRef: "circles-list",
			Title:     "Savings circles",
			Message:   "Your circles and their payout rotations live here",
			Position:  "top",
			Screen:    "Circles",
			Order:     3,
		},
		{
			ID:        "community_feed",
			TargetRef: "community-tab",
			Title:     "Communities",
			Message:   "Join communities from your region to find trusted circles",
			Position:  "top",
			Screen:    "Communities",
			Order:     4,
		},
		{
			ID:        "rewards_intro",
			TargetRef: "rewards-badge",
			Title:     "Earn rewards",
			Message:   "Invite friends to earn rewards points",
			Position:  "left",
			Screen:    "Rewards",
			Order:     5,
		},
	}
}

// ValidRecord 校验持久化记录的形状，不合法时整体回退默认种子（不做部分合并）
func ValidRecord(rec *OnboardingRecord) bool {
	if rec == nil || len(rec.Steps) == 0 || len(rec.ProfileFields) == 0 {
		return false
	}

	orders := make(map[int]struct{}, len(rec.Steps))
	for _, s := range rec.Steps {
		if s.ID == "" {
			return false
		}
		if _, dup := orders[s.Order]; dup {
			return false
		}
		orders[s.Order] = struct{}{}
	}

	for _, f := range rec.ProfileFields {
		if f.ID == "" {
			return false
		}
	}

	return true
}

// ValidTooltips 校验提示气泡记录的形状
func ValidTooltips(tips []TooltipRecord) bool {
	if len(tips) == 0 {
		return false
	}

	orders := make(map[int]struct{}, len(tips))
	for _, t := range tips {
		if t.ID == "" {
			return false
		}
		if _, dup := orders[t.Order]; dup {
			return false
		}
		orders[t.Order] = struct{}{}
	}

	return true
}
