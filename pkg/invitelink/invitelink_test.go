package invitelink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec() *Codec {
	return New("tandaxn", "https://tandaxn.com", []string{
		"https://tandaxn.com",
		"https://www.tandaxn.com",
	})
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestDecodeCircleWebLink(t *testing.T) {
	c := newTestCodec()

	inv := c.Decode("https://tandaxn.com/invite/circle/abc123?name=Family%20Fund&emoji=%F0%9F%92%B0&inviter=u1&inviterName=Amara&contribution=50&frequency=weekly&members=8")
	require.NotNil(t, inv)

	assert.Equal(t, KindCircle, inv.Kind)
	assert.Equal(t, "abc123", inv.ID)
	assert.Equal(t, "Family Fund", inv.Name)
	assert.Equal(t, "💰", inv.Icon)
	assert.Equal(t, "u1", inv.InvitedBy)
	assert.Equal(t, "Amara", inv.InviterName)
	require.NotNil(t, inv.Contribution)
	assert.Equal(t, 50.0, *inv.Contribution)
	assert.Equal(t, "weekly", inv.Frequency)
	require.NotNil(t, inv.Members)
	assert.Equal(t, 8, *inv.Members)
}

func TestDecodeAppSchemeLink(t *testing.T) {
	c := newTestCodec()

	inv := c.Decode("tandaxn://invite/community/naija-sf?name=Naija%20Bay%20Area&icon=%F0%9F%87%B3%F0%9F%87%AC&inviter=u9&inviterName=Chidi&members=120")
	require.NotNil(t, inv)

	assert.Equal(t, KindCommunity, inv.Kind)
	assert.Equal(t, "naija-sf", inv.ID)
	assert.Equal(t, "Naija Bay Area", inv.Name)
	assert.Equal(t, "🇳🇬", inv.Icon)
	require.NotNil(t, inv.Members)
	assert.Equal(t, 120, *inv.Members)
}

func TestDecodeRejectsForeignURLs(t *testing.T) {
	c := newTestCodec()

	cases := []struct {
		name string
		url  string
	}{
		{"unregistered host", "https://evil.example.com/invite/circle/abc?name=x"},
		{"wrong scheme", "ftp://tandaxn.com/invite/circle/abc"},
		{"not an invite path", "https://tandaxn.com/rewards"},
		{"unknown kind", "https://tandaxn.com/invite/wallet/abc"},
		{"missing id", "https://tandaxn.com/invite/circle/"},
		{"extra segment", "https://tandaxn.com/invite/circle/abc/extra"},
		{"garbage", "::not a url::"},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, c.Decode(tc.url))
		})
	}
}

func TestDecodePermissiveNumerics(t *testing.T) {
	c := newTestCodec()

	inv := c.Decode("https://tandaxn.com/invite/circle/abc?name=Fund&emoji=x&inviter=u1&inviterName=A&contribution=fifty&members=")
	require.NotNil(t, inv)

	// 非数值或缺失 → 字段缺失，而不是错误
	assert.Nil(t, inv.Contribution)
	assert.Nil(t, inv.Members)

	inv = c.Decode("https://tandaxn.com/invite/circle/abc?name=Fund&emoji=x&inviter=u1&inviterName=A&contribution=NaN")
	require.NotNil(t, inv)
	assert.Nil(t, inv.Contribution)
}

func TestRoundTrip(t *testing.T) {
	c := newTestCodec()

	cases := []struct {
		name string
		inv  Invite
	}{
		{
			"circle with all optionals",
			Invite{
				Kind: KindCircle, ID: "abc123", Name: "Family Fund", Icon: "💰",
				InvitedBy: "u1", InviterName: "Amara",
				Contribution: floatPtr(50), Frequency: "weekly", Members: intPtr(8),
			},
		},
		{
			"circle without optionals",
			Invite{
				Kind: KindCircle, ID: "c-77", Name: "Lagos Ajo", Icon: "🪙",
				InvitedBy: "u2", InviterName: "Bisi",
			},
		},
		{
			"circle with fractional contribution",
			Invite{
				Kind: KindCircle, ID: "c-9", Name: "Weekly", Icon: "💵",
				InvitedBy: "u3", InviterName: "Kwame",
				Contribution: floatPtr(12.5), Frequency: "biweekly",
			},
		},
		{
			"community",
			Invite{
				Kind: KindCommunity, ID: "naija-sf", Name: "Naija Bay Area", Icon: "🇳🇬",
				InvitedBy: "u9", InviterName: "Chidi", Members: intPtr(120),
			},
		},
		{
			"community without members",
			Invite{
				Kind: KindCommunity, ID: "hab-1", Name: "Habesha DMV", Icon: "🇪🇹",
				InvitedBy: "u4", InviterName: "Selam",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// 公网链接和 app scheme 链接必须解码出同一个结构
			for _, raw := range []string{c.ShareURL(tc.inv), c.AppURL(tc.inv)} {
				got := c.Decode(raw)
				require.NotNil(t, got, "url: %s", raw)
				assert.Equal(t, tc.inv, *got, "url: %s", raw)
			}
		})
	}
}

func TestEncodeOmitsAbsentOptionals(t *testing.T) {
	c := newTestCodec()

	raw := c.ShareURL(Invite{
		Kind: KindCircle, ID: "c1", Name: "Fund", Icon: "💰",
		InvitedBy: "u1", InviterName: "Amara",
	})

	// 缺失的可选参数不能以空值形式出现
	assert.False(t, strings.Contains(raw, "contribution"))
	assert.False(t, strings.Contains(raw, "frequency"))
	assert.False(t, strings.Contains(raw, "members"))
	assert.True(t, strings.Contains(raw, "name=Fund"))
}

func TestDecodeSecondaryOrigin(t *testing.T) {
	c := newTestCodec()

	inv := c.Decode("https://www.tandaxn.com/invite/circle/abc?name=Fund&emoji=x&inviter=u1&inviterName=A")
	require.NotNil(t, inv)
	assert.Equal(t, "abc", inv.ID)
}
