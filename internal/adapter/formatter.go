package adapter

import (
	"strings"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
	"github.com/loaihabb/tiktok-profile-bot-go/pkg/errors"
)

// Reply texts for lookup failures.
const (
	MsgInvalidHandle   = "Please send a TikTok username."
	MsgNetworkError    = "Failed to reach TikTok. Please try again later."
	MsgNotFound        = "This account cannot be found."
	MsgExtraction      = "Data extraction failed."
	MsgNoSuchAccount   = "Error processing user info."
	MsgFormatFailure   = "Error formatting response."
	MsgUnexpectedError = "Something went wrong."
)

// RegionResolver maps a region code to its display name and flag.
type RegionResolver func(code string) domain.RegionDisplay

// ResponseFormatter formats bot responses
type ResponseFormatter struct {
	prefix      string
	plainLookup bool
	region      RegionResolver
}

// NewResponseFormatter creates a new ResponseFormatter
func NewResponseFormatter(prefix string, plainLookup bool, region RegionResolver) *ResponseFormatter {
	if strings.TrimSpace(prefix) == "" {
		prefix = "!"
	}
	return &ResponseFormatter{prefix: prefix, plainLookup: plainLookup, region: region}
}

type profileView struct {
	Record *domain.ProfileRecord
	Region domain.RegionDisplay
}

// FormatProfile renders the ten-line profile summary.
func (f *ResponseFormatter) FormatProfile(record *domain.ProfileRecord) string {
	if record == nil {
		return MsgNoSuchAccount
	}

	view := profileView{Record: record, Region: domain.RegionDisplay{Name: domain.UnknownText, Flag: "🌐"}}
	if f.region != nil {
		view.Region = f.region(record.RegionCode)
	}

	text, err := executeFormatterTemplate("profile", view)
	if err != nil {
		return MsgFormatFailure
	}
	return text
}

// FormatLookupError converts a lookup failure into reply text.
func (f *ResponseFormatter) FormatLookupError(err error) string {
	switch errors.CodeOf(err) {
	case errors.CodeInvalidHandle:
		return MsgInvalidHandle
	case errors.CodeNetwork:
		return MsgNetworkError
	case errors.CodeNotFound:
		return MsgNotFound
	case errors.CodeExtraction:
		return MsgExtraction
	case errors.CodeNoSuchAccount:
		return MsgNoSuchAccount
	default:
		return MsgUnexpectedError
	}
}

// FormatLookup renders either the profile or the failure message.
func (f *ResponseFormatter) FormatLookup(record *domain.ProfileRecord, err error) string {
	if err != nil {
		return f.FormatLookupError(err)
	}
	return f.FormatProfile(record)
}

// FormatHelp formats help message
func (f *ResponseFormatter) FormatHelp() string {
	text, err := executeFormatterTemplate("help", struct {
		Prefix      string
		PlainLookup bool
	}{f.prefix, f.plainLookup})
	if err != nil {
		return MsgFormatFailure
	}
	return text
}
