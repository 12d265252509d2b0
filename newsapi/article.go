package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vitalvas/newsapi/formdata"
	"github.com/vitalvas/newsapi/hhmac"
)

// CreateArticleInput describes a new article.
type CreateArticleInput struct {
	ChannelID string

	// Article is the article document JSON.
	Article json.RawMessage

	// Files are bundled with the article, in order. Names must not be
	// "article.json" or "metadata".
	Files []formdata.File

	Metadata ArticleMetadata
}

// UpdateArticleInput describes a new revision of an existing article.
type UpdateArticleInput struct {
	ArticleID string

	// Revision must match the latest revision returned by the API.
	Revision string

	Article  json.RawMessage
	Files    []formdata.File
	Metadata ArticleMetadata
}

// SortDirection orders search results by creation date.
type SortDirection string

const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// SearchArticlesInput selects articles of a channel or of a section.
// Exactly one of ChannelID and SectionID must be set.
type SearchArticlesInput struct {
	ChannelID string
	SectionID string

	PageSize  int
	FromDate  time.Time
	ToDate    time.Time
	SortDir   SortDirection
	PageToken string
}

// CreateArticle publishes an article to a channel.
func (c *Client) CreateArticle(ctx context.Context, in CreateArticleInput) (*Article, error) {
	if in.ChannelID == "" {
		return nil, validationError("channel id is required")
	}

	body, err := encodeArticle(ctx, in.Article, in.Files, in.Metadata, "")
	if err != nil {
		return nil, err
	}

	return c.postArticle(ctx, "/channels/"+url.PathEscape(in.ChannelID)+"/articles", body)
}

// UpdateArticle uploads a new revision of an article. The revision is
// copied into the metadata.
func (c *Client) UpdateArticle(ctx context.Context, in UpdateArticleInput) (*Article, error) {
	if in.ArticleID == "" {
		return nil, validationError("article id is required")
	}

	if in.Revision == "" {
		return nil, validationError("revision is required")
	}

	body, err := encodeArticle(ctx, in.Article, in.Files, in.Metadata, in.Revision)
	if err != nil {
		return nil, err
	}

	return c.postArticle(ctx, "/articles/"+url.PathEscape(in.ArticleID), body)
}

// ReadArticle returns an article's revision, state and metadata.
func (c *Client) ReadArticle(ctx context.Context, articleID string) (*Article, error) {
	if articleID == "" {
		return nil, validationError("article id is required")
	}

	path := "/articles/" + url.PathEscape(articleID)

	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var a Article
	if err := decodeData(http.MethodGet, path, res, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// DeleteArticle removes an article from its channel.
func (c *Client) DeleteArticle(ctx context.Context, articleID string) error {
	if articleID == "" {
		return validationError("article id is required")
	}

	_, err := c.do(ctx, http.MethodDelete, "/articles/"+url.PathEscape(articleID), nil)

	return err
}

// SearchArticles lists the articles of a channel or section.
func (c *Client) SearchArticles(ctx context.Context, in SearchArticlesInput) (*ArticleList, error) {
	path, err := in.path()
	if err != nil {
		return nil, err
	}

	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	list := &ArticleList{}
	if err := decodeData(http.MethodGet, path, res, &list.Articles); err != nil {
		return nil, err
	}

	var meta struct {
		NextPageToken string `json:"nextPageToken"`
	}
	if len(res.env.Meta) > 0 {
		if err := json.Unmarshal(res.env.Meta, &meta); err != nil {
			return nil, fmt.Errorf("newsapi: GET %s: decode meta: %w", path, err)
		}
	}

	var links struct {
		Next string `json:"next"`
	}
	if len(res.env.Links) > 0 {
		if err := json.Unmarshal(res.env.Links, &links); err != nil {
			return nil, fmt.Errorf("newsapi: GET %s: decode links: %w", path, err)
		}
	}

	list.NextPageToken = meta.NextPageToken
	list.Next = links.Next

	return list, nil
}

// path builds the search endpoint. Query parameters are emitted in a
// fixed order because the query string is part of the signed path.
func (in SearchArticlesInput) path() (string, error) {
	var base string

	switch {
	case in.ChannelID != "" && in.SectionID != "":
		return "", validationError("channel id and section id are mutually exclusive")
	case in.ChannelID != "":
		base = "/channels/" + url.PathEscape(in.ChannelID) + "/articles"
	case in.SectionID != "":
		base = "/sections/" + url.PathEscape(in.SectionID) + "/articles"
	default:
		return "", validationError("channel id or section id is required")
	}

	if in.PageSize < 0 {
		return "", validationError("page size must not be negative")
	}

	switch in.SortDir {
	case "", SortAscending, SortDescending:
	default:
		return "", validationError("unknown sort direction %q", in.SortDir)
	}

	var params []string

	if in.PageSize > 0 {
		params = append(params, "pageSize="+strconv.Itoa(in.PageSize))
	}

	if !in.FromDate.IsZero() {
		params = append(params, "fromDate="+hhmac.FormatDate(in.FromDate))
	}

	if !in.ToDate.IsZero() {
		params = append(params, "toDate="+hhmac.FormatDate(in.ToDate))
	}

	if in.SortDir != "" {
		params = append(params, "sortDir="+string(in.SortDir))
	}

	if in.PageToken != "" {
		params = append(params, "pageToken="+url.QueryEscape(in.PageToken))
	}

	if len(params) == 0 {
		return base, nil
	}

	return base + "?" + strings.Join(params, "&"), nil
}

func (c *Client) postArticle(ctx context.Context, path string, body *formdata.EncodedBody) (*Article, error) {
	res, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	var a Article
	if err := decodeData(http.MethodPost, path, res, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// encodeArticle validates the upload and builds its multipart body.
// Validation failures wrap ErrValidation and happen before any file is
// read.
func encodeArticle(ctx context.Context, article json.RawMessage, files []formdata.File, meta ArticleMetadata, revision string) (*formdata.EncodedBody, error) {
	if len(bytes.TrimSpace(article)) == 0 {
		return nil, validationError("article document is required")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, article); err != nil {
		return nil, validationError("article document is not valid json: %v", err)
	}

	metadata, err := meta.marshal(revision)
	if err != nil {
		return nil, err
	}

	bundle := formdata.Bundle{
		Article:  compact.Bytes(),
		Metadata: metadata,
		Files:    files,
	}

	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return bundle.Encode(ctx)
}

// EncodeArticle builds the multipart body CreateArticle would send,
// without sending it.
func EncodeArticle(ctx context.Context, in CreateArticleInput) (*formdata.EncodedBody, error) {
	return encodeArticle(ctx, in.Article, in.Files, in.Metadata, "")
}
