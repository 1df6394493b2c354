package queue

// 邀请事件走 topic exchange，worker 端独占一个队列消费
const (
	EventsExchange     = "events.topic"
	InviteAcceptedKey  = "invite.accepted"
	ReferralQueueName  = "referral.invite_accepted"
	ReferralConsumerID = "referral-worker"
)
