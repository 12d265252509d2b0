package newstest

import (
	"time"

	"github.com/google/uuid"
)

type channel struct {
	ID        string
	Name      string
	Website   string
	CreatedAt time.Time
}

type section struct {
	ID        string
	Name      string
	IsDefault bool
	CreatedAt time.Time
}

// StoredArticle is an article as kept by the fake server.
type StoredArticle struct {
	ID        string
	ChannelID string
	Revision  string
	Title     string

	// Metadata is the "data" object of the uploaded metadata part.
	Metadata map[string]any

	// Parts are the parts of the latest upload, in order.
	Parts []Part

	CreatedAt  time.Time
	ModifiedAt time.Time
}

type store struct {
	baseURL  string
	channel  channel
	sections []section
	articles map[string]*StoredArticle
	order    []string
}

func newStore(baseURL string) *store {
	now := time.Now().UTC().Truncate(time.Second)

	return &store{
		baseURL: baseURL,
		channel: channel{
			ID:        uuid.NewString(),
			Name:      "Test Channel",
			Website:   "https://example.com",
			CreatedAt: now,
		},
		sections: []section{{
			ID:        uuid.NewString(),
			Name:      "Main",
			IsDefault: true,
			CreatedAt: now,
		}},
		articles: make(map[string]*StoredArticle),
	}
}

func (st *store) section(id string) (section, bool) {
	for _, s := range st.sections {
		if s.ID == id {
			return s, true
		}
	}

	return section{}, false
}

func (st *store) sectionURL(id string) string {
	return st.baseURL + "/sections/" + id
}

// sectionsOf returns the section URLs an article is linked to, defaulting
// to the default section.
func (st *store) sectionsOf(a *StoredArticle) []string {
	if links, ok := a.Metadata["links"].(map[string]any); ok {
		if raw, ok := links["sections"].([]any); ok && len(raw) > 0 {
			out := make([]string, 0, len(raw))
			for _, v := range raw {
				if s, ok := v.(string); ok {
					out = append(out, s)
				}
			}

			return out
		}
	}

	return []string{st.sectionURL(st.sections[0].ID)}
}

func (st *store) channelDocument() map[string]any {
	return map[string]any{
		"id":         st.channel.ID,
		"type":       "channel",
		"name":       st.channel.Name,
		"website":    st.channel.Website,
		"createdAt":  st.channel.CreatedAt,
		"modifiedAt": st.channel.CreatedAt,
		"links": map[string]any{
			"defaultSection": st.sectionURL(st.sections[0].ID),
			"self":           st.baseURL + "/channels/" + st.channel.ID,
		},
	}
}

func (st *store) sectionDocument(s section) map[string]any {
	return map[string]any{
		"id":         s.ID,
		"type":       "section",
		"name":       s.Name,
		"isDefault":  s.IsDefault,
		"createdAt":  s.CreatedAt,
		"modifiedAt": s.CreatedAt,
		"links": map[string]any{
			"channel": st.baseURL + "/channels/" + st.channel.ID,
			"self":    st.sectionURL(s.ID),
		},
	}
}

func (st *store) articleDocument(a *StoredArticle) map[string]any {
	doc := map[string]any{
		"id":         a.ID,
		"type":       "article",
		"title":      a.Title,
		"revision":   a.Revision,
		"state":      "PROCESSING",
		"shareUrl":   "https://apple.news/" + a.ID,
		"createdAt":  a.CreatedAt,
		"modifiedAt": a.ModifiedAt,
		"links": map[string]any{
			"channel":  st.baseURL + "/channels/" + a.ChannelID,
			"sections": st.sectionsOf(a),
			"self":     st.baseURL + "/articles/" + a.ID,
		},
	}

	for _, key := range []string{"isPreview", "isSponsored", "isHidden", "isCandidateToBeFeatured", "maturityRating", "accessoryText"} {
		if v, ok := a.Metadata[key]; ok {
			doc[key] = v
		}
	}

	return doc
}
