// Package pending 实现会话级的 pending invite 单槽存储。
// 未登录用户打开邀请时先 Set 再跳转注册，注册回来的落地页 Get 取回，
// join 成功或用户明确拒绝后 Clear 恰好一次。认证失败/中断不清除，
// 下次尝试邀请仍然可用。
package pending

import (
	"encoding/json"
	"fmt"

	"TandaXN/internal/model/dto"
)

const sessionKey = "pending_invite"

// Session 是 hertz-contrib/sessions Session 接口中本包用到的子集
type Session interface {
	Get(key interface{}) interface{}
	Set(key interface{}, val interface{})
	Delete(key interface{})
	Save() error
}

// Store 单槽存储：最多一条未决邀请，新写入静默覆盖旧值（last-write-wins，无队列）
type Store struct {
	session Session
}

func NewStore(session Session) *Store {
	return &Store{session: session}
}

// Set 暂存邀请，覆盖之前的值
func (s *Store) Set(inv dto.InviteData) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to marshal pending invite: %w", err)
	}

	s.session.Set(sessionKey, string(data))
	if err := s.session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Get 取回暂存的邀请，没有时返回 nil
func (s *Store) Get() (*dto.InviteData, error) {
	v := s.session.Get(sessionKey)
	if v == nil {
		return nil, nil
	}

	raw, ok := v.(string)
	if !ok {
		return nil, nil
	}

	var inv dto.InviteData
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending invite: %w", err)
	}

	return &inv, nil
}

// Clear 清空槽位。消费（join 成功）或明确拒绝后调用恰好一次，
// 无关导航不要调用，否则邀请会错误地消失。
func (s *Store) Clear() error {
	s.session.Delete(sessionKey)
	if err := s.session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
