// Package invitelink 实现圈子/社区邀请链接的编解码。
// App 自定义 scheme 和注册的公网域名共享同一套路径语法：
//
//	<origin>/invite/circle/<id>?name=&emoji=&inviter=&inviterName=[&contribution=][&frequency=][&members=]
//	<origin>/invite/community/<id>?name=&icon=&inviter=&inviterName=[&members=]
package invitelink

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Kind 邀请目标类型
type Kind string

const (
	KindCircle    Kind = "circle"
	KindCommunity Kind = "community"
)

// Invite 一条解码后的邀请。可选数值字段要么是确定的数值要么缺失，
// 解析失败一律按缺失处理，不产生错误。
type Invite struct {
	Kind        Kind
	ID          string
	Name        string
	Icon        string // circle 链接里叫 emoji，community 链接里叫 icon
	InvitedBy   string
	InviterName string

	// 仅 circle 邀请携带
	Contribution *float64
	Frequency    string

	Members *int
}

// Codec 在结构化邀请和 URL 之间转换
type Codec struct {
	appScheme   string
	shareOrigin string
	webHosts    map[string]struct{}
}

// New 创建编解码器。webOrigins 是注册的公网域名（如 https://tandaxn.com），
// 其它域名的链接一律视为"不属于我们"返回 nil。
func New(appScheme, shareOrigin string, webOrigins []string) *Codec {
	hosts := make(map[string]struct{}, len(webOrigins))
	for _, origin := range webOrigins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			hosts[strings.ToLower(u.Host)] = struct{}{}
		}
	}

	return &Codec{
		appScheme:   strings.ToLower(appScheme),
		shareOrigin: strings.TrimRight(shareOrigin, "/"),
		webHosts:    hosts,
	}
}

// ShareURL 生成对外分享用的公网链接
func (c *Codec) ShareURL(inv Invite) string {
	return c.encode(c.shareOrigin, inv)
}

// AppURL 生成 app 内部 scheme 链接
func (c *Codec) AppURL(inv Invite) string {
	return c.encode(c.appScheme+":/", inv)
}

func (c *Codec) encode(origin string, inv Invite) string {
	var sb strings.Builder
	sb.WriteString(origin)
	sb.WriteString("/invite/")
	sb.WriteString(string(inv.Kind))
	sb.WriteString("/")
	sb.WriteString(url.PathEscape(inv.ID))

	q := url.Values{}
	q.Set("name", inv.Name)
	if inv.Kind == KindCircle {
		q.Set("emoji", inv.Icon)
	} else {
		q.Set("icon", inv.Icon)
	}
	q.Set("inviter", inv.InvitedBy)
	q.Set("inviterName", inv.InviterName)

	// 缺失的可选参数完全不出现在 query string 中
	if inv.Kind == KindCircle {
		if inv.Contribution != nil {
			q.Set("contribution", strconv.FormatFloat(*inv.Contribution, 'f', -1, 64))
		}
		if inv.Frequency != "" {
			q.Set("frequency", inv.Frequency)
		}
	}
	if inv.Members != nil {
		q.Set("members", strconv.Itoa(*inv.Members))
	}

	sb.WriteString("?")
	sb.WriteString(q.Encode())

	return sb.String()
}

// Decode 解析邀请链接。任何不匹配 invite/circle/:id 或 invite/community/:id
// 语法的 URL 返回 nil 而不是错误，调用方按"不属于我们的深链"继续正常路由。
func (c *Codec) Decode(raw string) *Invite {
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}

	var segments []string
	switch {
	case strings.EqualFold(u.Scheme, c.appScheme):
		// scheme 链接形如 tandaxn://invite/circle/abc，第一段落在 Host 里
		segments = splitPath(u.Host + u.Path)
	case u.Scheme == "https" || u.Scheme == "http":
		if _, ok := c.webHosts[strings.ToLower(u.Host)]; !ok {
			return nil
		}
		segments = splitPath(u.Path)
	default:
		return nil
	}

	if len(segments) != 3 || segments[0] != "invite" {
		return nil
	}

	kind := Kind(segments[1])
	if kind != KindCircle && kind != KindCommunity {
		return nil
	}

	id, err := url.PathUnescape(segments[2])
	if err != nil || id == "" {
		return nil
	}

	q := u.Query()
	inv := &Invite{
		Kind:        kind,
		ID:          id,
		Name:        q.Get("name"),
		InvitedBy:   q.Get("inviter"),
		InviterName: q.Get("inviterName"),
		Members:     parseOptionalInt(q.Get("members")),
	}

	if kind == KindCircle {
		inv.Icon = q.Get("emoji")
		inv.Contribution = parseOptionalFloat(q.Get("contribution"))
		inv.Frequency = q.Get("frequency")
	} else {
		inv.Icon = q.Get("icon")
	}

	return inv
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// 数值参数宽松解析：非数值或缺失一律视为字段缺失，不产生运行时错误
func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
