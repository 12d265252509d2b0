package newsapi

import "time"

// Channel is a publisher's channel.
type Channel struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Name       string       `json:"name"`
	Website    string       `json:"website,omitempty"`
	ShareURL   string       `json:"shareUrl,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	ModifiedAt time.Time    `json:"modifiedAt"`
	Links      ChannelLinks `json:"links"`
}

type ChannelLinks struct {
	DefaultSection string `json:"defaultSection,omitempty"`
	Self           string `json:"self,omitempty"`
}

// Section groups articles within a channel.
type Section struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Name       string       `json:"name"`
	IsDefault  bool         `json:"isDefault"`
	ShareURL   string       `json:"shareUrl,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	ModifiedAt time.Time    `json:"modifiedAt"`
	Links      SectionLinks `json:"links"`
}

type SectionLinks struct {
	Channel string `json:"channel,omitempty"`
	Self    string `json:"self,omitempty"`
}

// Article is a published or preview article as returned by the API.
type Article struct {
	ID                      string         `json:"id"`
	Type                    string         `json:"type"`
	Title                   string         `json:"title"`
	Revision                string         `json:"revision"`
	State                   string         `json:"state,omitempty"`
	ShareURL                string         `json:"shareUrl,omitempty"`
	AccessoryText           string         `json:"accessoryText,omitempty"`
	MaturityRating          MaturityRating `json:"maturityRating,omitempty"`
	IsSponsored             bool           `json:"isSponsored"`
	IsPreview               bool           `json:"isPreview"`
	IsHidden                bool           `json:"isHidden"`
	IsCandidateToBeFeatured bool           `json:"isCandidateToBeFeatured"`
	CreatedAt               time.Time      `json:"createdAt"`
	ModifiedAt              time.Time      `json:"modifiedAt"`
	Links                   ArticleLinks   `json:"links"`
	Warnings                []ErrorDetail  `json:"warnings,omitempty"`
}

type ArticleLinks struct {
	Channel  string   `json:"channel,omitempty"`
	Sections []string `json:"sections,omitempty"`
	Self     string   `json:"self,omitempty"`
}

// ArticleList is one page of search results.
type ArticleList struct {
	Articles      []Article `json:"articles"`
	NextPageToken string    `json:"nextPageToken,omitempty"`
	Next          string    `json:"next,omitempty"`
}
