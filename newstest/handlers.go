package newstest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vitalvas/newsapi/hhmac"
)

var allowedFileTypes = []string{"application/octet-stream", "image/jpeg", "image/png", "image/gif"}

func (s *Server) handleReadChannel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if chi.URLParam(r, "channelID") != s.store.channel.ID {
		writeErrors(w, http.StatusNotFound, errorDetail{Code: "NOT_FOUND", KeyPath: []any{"channelId"}})
		return
	}

	writeData(w, http.StatusOK, s.store.channelDocument())
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if chi.URLParam(r, "channelID") != s.store.channel.ID {
		writeErrors(w, http.StatusNotFound, errorDetail{Code: "NOT_FOUND", KeyPath: []any{"channelId"}})
		return
	}

	docs := make([]map[string]any, 0, len(s.store.sections))
	for _, sec := range s.store.sections {
		docs = append(docs, s.store.sectionDocument(sec))
	}

	writeData(w, http.StatusOK, docs)
}

func (s *Server) handleReadSection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.store.section(chi.URLParam(r, "sectionID"))
	if !ok {
		writeErrors(w, http.StatusNotFound, errorDetail{Code: "NOT_FOUND", KeyPath: []any{"sectionId"}})
		return
	}

	writeData(w, http.StatusOK, s.store.sectionDocument(sec))
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	upload, detail := s.parseArticleUpload(r)
	if detail != nil {
		writeErrors(w, http.StatusBadRequest, *detail)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if chi.URLParam(r, "channelID") != s.store.channel.ID {
		writeErrors(w, http.StatusNotFound, errorDetail{Code: "NOT_FOUND", KeyPath: []any{"channelId"}})
		return
	}

	now := time.Now().UTC().Truncate(time.Second)
	a := &StoredArticle{
		ID:         uuid.NewString(),
		ChannelID:  s.store.channel.ID,
		Revision:   uuid.NewString(),
		Title:      upload.title,
		Metadata:   upload.metadata,
		Parts:      upload.parts,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	s.store.articles[a.ID] = a
	s.store.order = append(s.store.order, a.ID)

	writeData(w, http.StatusCreated, s.store.articleDocument(a))
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	upload, detail := s.parseArticleUpload(r)
	if detail != nil {
		writeErrors(w, http.StatusBadRequest, *detail)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.store.articles[chi.URLParam(r, "articleID")]
	if !ok {
		writeErrors(w, http.StatusNotFound, errorDetail{Code: "NOT_FOUND", KeyPath: []any{"articleId"}})
		return
	}

	if revision, _ := upload.metadata["revision"].(string); revision != a.Revision {
		writeErrors(w, http.StatusConflict, errorDetail{
			Code:    "WRONG_REVISION",
			KeyPath: []any{"data", "revision"},
			Value:   revision,
		})
		return
	}

	a.Title = upload.title
	a.Metadata = upload.metadata
	a.Parts = upload.parts
	a.Revision = uuid.NewString()
	a.ModifiedAt = time.Now().UTC().Truncate(time.Second)

	writeData(w, http.StatusOK, s.store.articleDocument(a))
}

func (s *Server) handleReadArticle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.store.articles[chi.URLParam(r, "articleID")]
	if !ok {
		writeErrors(w, http.StatusNotFound, errorDetail{Code: "NOT_FOUND", KeyPath: []any{"articleId"}})
		return
	}

	writeData(w, http.StatusOK, s.store.articleDocument(a))
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "articleID")
	if _, ok := s.store.articles[id]; !ok {
		writeErrors(w, http.StatusNotFound, errorDetail{Code: "NOT_FOUND", KeyPath: []any{"articleId"}})
		return
	}

	delete(s.store.articles, id)
	s.store.order = slices.DeleteFunc(s.store.order, func(v string) bool { return v == id })

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearchArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var from, to time.Time
	for name, dst := range map[string]*time.Time{"fromDate": &from, "toDate": &to} {
		if v := q.Get(name); v != "" {
			t, err := hhmac.ParseDate(v)
			if err != nil {
				writeErrors(w, http.StatusBadRequest, errorDetail{Code: "INVALID_DATE", KeyPath: []any{name}, Value: v})
				return
			}
			*dst = t
		}
	}

	pageSize := 20
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeErrors(w, http.StatusBadRequest, errorDetail{Code: "INVALID_PAGE_SIZE", Value: v})
			return
		}
		pageSize = n
	}

	offset := 0
	if v := q.Get("pageToken"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeErrors(w, http.StatusBadRequest, errorDetail{Code: "INVALID_PAGE_TOKEN", Value: v})
			return
		}
		offset = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	channelID := chi.URLParam(r, "channelID")
	sectionID := chi.URLParam(r, "sectionID")

	switch {
	case channelID != "" && channelID != s.store.channel.ID:
		writeErrors(w, http.StatusNotFound, errorDetail{Code: "NOT_FOUND", KeyPath: []any{"channelId"}})
		return
	case sectionID != "":
		if _, ok := s.store.section(sectionID); !ok {
			writeErrors(w, http.StatusNotFound, errorDetail{Code: "NOT_FOUND", KeyPath: []any{"sectionId"}})
			return
		}
	}

	ids := slices.Clone(s.store.order)
	if q.Get("sortDir") != "ASC" {
		slices.Reverse(ids)
	}

	var matched []map[string]any
	for _, id := range ids {
		a := s.store.articles[id]

		if sectionID != "" && !slices.Contains(s.store.sectionsOf(a), s.store.sectionURL(sectionID)) {
			continue
		}

		if !from.IsZero() && a.CreatedAt.Before(from) {
			continue
		}

		if !to.IsZero() && a.CreatedAt.After(to) {
			continue
		}

		matched = append(matched, s.store.articleDocument(a))
	}

	page := []map[string]any{}
	if offset < len(matched) {
		page = matched[offset:min(offset+pageSize, len(matched))]
	}

	resp := map[string]any{"data": page}
	if next := offset + pageSize; next < len(matched) {
		token := strconv.Itoa(next)
		resp["meta"] = map[string]any{"nextPageToken": token}
		resp["links"] = map[string]any{"next": s.store.baseURL + r.URL.Path + "?pageToken=" + token}
	}

	writeJSON(w, http.StatusOK, resp)
}

type articleUpload struct {
	title    string
	metadata map[string]any
	parts    []Part
}

// parseArticleUpload checks an article upload the way the API does.
func (s *Server) parseArticleUpload(r *http.Request) (articleUpload, *errorDetail) {
	body, err := readBody(r)
	if err != nil {
		return articleUpload{}, &errorDetail{Code: "INVALID_BODY", Message: err.Error()}
	}

	parts, err := ParseUpload(r.Header.Get("Content-Type"), body)
	if err != nil {
		return articleUpload{}, &errorDetail{Code: "INVALID_MULTIPART", Message: err.Error()}
	}

	if len(parts) < 2 || parts[0].Name != "article.json" || parts[1].Name != "metadata" {
		return articleUpload{}, &errorDetail{Code: "MISSING", Message: "article.json and metadata must lead the upload"}
	}

	for _, p := range parts[:2] {
		if p.ContentType != "application/json" {
			return articleUpload{}, &errorDetail{Code: "INVALID_TYPE", KeyPath: []any{p.Name}, Value: p.ContentType}
		}
	}

	for i, p := range parts[2:] {
		if want := fmt.Sprintf("file%d", i); p.Name != want || p.Filename == "" {
			return articleUpload{}, &errorDetail{Code: "INVALID_PART", KeyPath: []any{p.Name}, Message: "want " + want}
		}

		if !slices.Contains(allowedFileTypes, p.ContentType) {
			return articleUpload{}, &errorDetail{Code: "INVALID_TYPE", KeyPath: []any{p.Name}, Value: p.ContentType}
		}
	}

	var article struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(parts[0].Data, &article); err != nil {
		return articleUpload{}, &errorDetail{Code: "INVALID_DOCUMENT", Message: err.Error()}
	}

	var metadata struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(parts[1].Data, &metadata); err != nil || metadata.Data == nil {
		return articleUpload{}, &errorDetail{Code: "INVALID_METADATA", KeyPath: []any{"data"}}
	}

	return articleUpload{title: article.Title, metadata: metadata.Data, parts: parts}, nil
}
