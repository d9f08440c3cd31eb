package tiktok

import (
	stderrors "errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/constants"
	"github.com/loaihabb/tiktok-profile-bot-go/pkg/errors"
)

var errEmptyPayload = stderrors.New("data element is empty")

var dataElementSelector = `script[id="` + constants.TikTokConfig.DataElementID + `"]`

// Payload is the decoded rehydration state: a generic tree of maps, slices
// and scalars as produced by json.Unmarshal into any.
type Payload struct {
	root any
}

// NewPayload wraps an already decoded tree.
func NewPayload(root any) *Payload {
	return &Payload{root: root}
}

// Root returns the decoded JSON value.
func (p *Payload) Root() any {
	if p == nil {
		return nil
	}
	return p.root
}

// Extract locates the rehydration script element in html and decodes its
// text as JSON. Failures are returned as *errors.ExtractionError with reason
// no-data-element or invalid-json.
func Extract(html string) (*Payload, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.NewExtractionError(errors.ReasonNoDataElement, err)
	}

	script := doc.Find(dataElementSelector).First()
	if script.Length() == 0 {
		return nil, errors.NewExtractionError(errors.ReasonNoDataElement, nil)
	}

	text := script.Text()
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewExtractionError(errors.ReasonInvalidJSON, errEmptyPayload)
	}

	var root any
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		return nil, errors.NewExtractionError(errors.ReasonInvalidJSON, err)
	}

	return &Payload{root: root}, nil
}
