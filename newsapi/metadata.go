package newsapi

import (
	"encoding/json"
	"slices"
)

// MaturityRating is the intended audience of an article.
type MaturityRating string

const (
	MaturityKids    MaturityRating = "KIDS"
	MaturityMature  MaturityRating = "MATURE"
	MaturityGeneral MaturityRating = "GENERAL"
)

// Valid reports whether r is empty or one of the known ratings.
func (r MaturityRating) Valid() bool {
	switch r {
	case "", MaturityKids, MaturityMature, MaturityGeneral:
		return true
	default:
		return false
	}
}

// Bool returns a pointer to v, for the optional fields of ArticleMetadata.
func Bool(v bool) *bool {
	return &v
}

// ArticleMetadata is the metadata sent alongside an article.
type ArticleMetadata struct {
	// IsPreview publishes the article as a preview visible only to channel
	// members. Defaults to true.
	IsPreview *bool

	// IsIssueOnly shows the article only within an issue. Defaults to
	// false.
	IsIssueOnly *bool

	IsSponsored             bool
	IsCandidateToBeFeatured bool
	IsHidden                bool
	IsPaid                  bool

	MaturityRating MaturityRating

	// AccessoryText is shown below the article excerpt in the channel view.
	AccessoryText string

	// Sections are the URLs of the sections the article is linked to.
	Sections []string
}

type metadataLinks struct {
	Sections []string `json:"sections"`
}

type metadataFields struct {
	IsPreview               bool           `json:"isPreview"`
	IsIssueOnly             bool           `json:"isIssueOnly"`
	IsSponsored             bool           `json:"isSponsored"`
	IsCandidateToBeFeatured bool           `json:"isCandidateToBeFeatured"`
	IsHidden                bool           `json:"isHidden"`
	IsPaid                  bool           `json:"isPaid"`
	MaturityRating          MaturityRating `json:"maturityRating,omitempty"`
	AccessoryText           string         `json:"accessoryText,omitempty"`
	Revision                string         `json:"revision,omitempty"`
	Links                   *metadataLinks `json:"links,omitempty"`
}

type metadataDocument struct {
	Data metadataFields `json:"data"`
}

func (m ArticleMetadata) validate() error {
	if !m.MaturityRating.Valid() {
		return validationError("unknown maturity rating %q", m.MaturityRating)
	}

	if slices.Contains(m.Sections, "") {
		return validationError("section url must not be empty")
	}

	return nil
}

// fields applies the defaults and returns the wire form.
func (m ArticleMetadata) fields(revision string) metadataFields {
	out := metadataFields{
		IsPreview:               true,
		IsSponsored:             m.IsSponsored,
		IsCandidateToBeFeatured: m.IsCandidateToBeFeatured,
		IsHidden:                m.IsHidden,
		IsPaid:                  m.IsPaid,
		MaturityRating:          m.MaturityRating,
		AccessoryText:           m.AccessoryText,
		Revision:                revision,
	}

	if m.IsPreview != nil {
		out.IsPreview = *m.IsPreview
	}

	if m.IsIssueOnly != nil {
		out.IsIssueOnly = *m.IsIssueOnly
	}

	if len(m.Sections) > 0 {
		out.Links = &metadataLinks{Sections: slices.Clone(m.Sections)}
	}

	return out
}

// marshal validates m and returns the metadata JSON document.
func (m ArticleMetadata) marshal(revision string) ([]byte, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	return json.Marshal(metadataDocument{Data: m.fields(revision)})
}
