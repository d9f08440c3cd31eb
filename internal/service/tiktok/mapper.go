package tiktok

import (
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/constants"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
	"github.com/loaihabb/tiktok-profile-bot-go/pkg/errors"
)

// userKeys are the user object keys MapProfile reads.
var userKeys = []string{"nickname", "uniqueId", "avatarMedium", "signature", "region", "verified", "privateAccount"}

// MapProfile walks the payload along the user-detail path into a fully
// defaulted record. Missing or mistyped nodes at any depth resolve to
// defaults; a user object without any known field yields NO_SUCH_ACCOUNT.
func MapProfile(p *Payload) (*domain.ProfileRecord, error) {
	path := constants.PayloadPath
	info := objectAt(p.Root(), path.Root, path.UserDetail, path.UserInfo)
	user := objectAt(info, path.User)
	stats := objectAt(info, path.Stats)

	if !hasAnyKey(user, userKeys) {
		return nil, errors.NewNoSuchAccountError()
	}

	return &domain.ProfileRecord{
		DisplayName:    stringAt(user, "nickname", domain.UnknownText),
		Handle:         stringAt(user, "uniqueId", domain.UnknownText),
		AvatarURL:      stringAt(user, "avatarMedium", domain.UnknownText),
		BioText:        stringAt(user, "signature", domain.UnknownText),
		RegionCode:     stringAt(user, "region", domain.UnknownText),
		Verified:       boolAt(user, "verified", false),
		IsPrivate:      boolAt(user, "privateAccount", false),
		FollowingCount: intAt(stats, "followingCount", domain.UnknownCount),
		FollowerCount:  intAt(stats, "followerCount", domain.UnknownCount),
		VideoCount:     intAt(stats, "videoCount", domain.UnknownCount),
		LikeCount:      intAt(stats, "heartCount", domain.UnknownCount),
	}, nil
}

// objectAt follows keys from node. Any absent or non-object step resolves
// to an empty object, so the result is never nil.
func objectAt(node any, keys ...string) map[string]any {
	cur, _ := node.(map[string]any)
	for _, key := range keys {
		next, _ := cur[key].(map[string]any)
		cur = next
	}
	if cur == nil {
		return map[string]any{}
	}
	return cur
}

func hasAnyKey(obj map[string]any, keys []string) bool {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			return true
		}
	}
	return false
}

func stringAt(obj map[string]any, key, def string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return def
}

func boolAt(obj map[string]any, key string, def bool) bool {
	if b, ok := obj[key].(bool); ok {
		return b
	}
	return def
}

// intAt reads a non-negative count. Negative values, values outside the
// int64 range and non-numbers resolve to def.
func intAt(obj map[string]any, key string, def int64) int64 {
	var n int64
	switch v := obj[key].(type) {
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, so >= rejects it
		if math.IsNaN(v) || v < 0 || v >= math.MaxInt64 {
			return def
		}
		n = int64(v)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return def
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return def
		}
		n = parsed
	default:
		return def
	}
	if n < 0 {
		return def
	}
	return n
}
