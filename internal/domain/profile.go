package domain

// Placeholder values used when the source page omits a field.
const (
	UnknownText  = "Unknown"
	UnknownCount = 0
)

// ProfileRecord is the normalized TikTok profile. Every field is populated,
// falling back to the defaults above when the page omits it.
type ProfileRecord struct {
	DisplayName    string `json:"display_name"`
	Handle         string `json:"handle"`
	AvatarURL      string `json:"avatar_url"`
	BioText        string `json:"bio_text"`
	RegionCode     string `json:"region_code"`
	Verified       bool   `json:"verified"`
	FollowingCount int64  `json:"following_count"`
	FollowerCount  int64  `json:"follower_count"`
	VideoCount     int64  `json:"video_count"`
	LikeCount      int64  `json:"like_count"`
	IsPrivate      bool   `json:"is_private"`
}

// NewDefaultProfileRecord returns a record with every field at its default.
func NewDefaultProfileRecord() *ProfileRecord {
	return &ProfileRecord{
		DisplayName:    UnknownText,
		Handle:         UnknownText,
		AvatarURL:      UnknownText,
		BioText:        UnknownText,
		RegionCode:     UnknownText,
		FollowingCount: UnknownCount,
		FollowerCount:  UnknownCount,
		VideoCount:     UnknownCount,
		LikeCount:      UnknownCount,
	}
}

// RegionDisplay is the presentational name and flag for a region code.
type RegionDisplay struct {
	Name string
	Flag string
}
