package newstest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/newsapi/formdata"
	"github.com/vitalvas/newsapi/hhmac"
)

func signedClient(srv *Server) *http.Client {
	base := srv.Client().Transport.(*http.Transport).Clone()

	return &http.Client{
		Transport: hhmac.NewTransport(base, hhmac.SignConfig{Signer: srv.Signer()}),
	}
}

type response struct {
	status int
	doc    map[string]any
}

func call(t *testing.T, srv *Server, method, path string, body *formdata.EncodedBody) response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = body.Reader()
	}

	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+path, reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", body.ContentType())
	}

	resp, err := signedClient(srv).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := response{status: resp.StatusCode}

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out.doc))
	}

	return out
}

func data(t *testing.T, r response) map[string]any {
	t.Helper()

	d, ok := r.doc["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", r.doc)

	return d
}

func upload(t *testing.T, title string, revision string, files ...formdata.File) *formdata.EncodedBody {
	t.Helper()

	meta := `{"data":{"isPreview":true}}`
	if revision != "" {
		meta = `{"data":{"isPreview":true,"revision":"` + revision + `"}}`
	}

	body, err := formdata.Bundle{
		Article:  []byte(`{"title":"` + title + `"}`),
		Metadata: []byte(meta),
		Files:    files,
	}.Encode(context.Background())
	require.NoError(t, err)

	return body
}

func TestServerRejectsUnsigned(t *testing.T) {
	srv := NewServer(t)

	resp, err := srv.Client().Get(srv.URL + "/channels/" + srv.ChannelID())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, srv.Requests())
}

func TestServerChannelAndSections(t *testing.T) {
	srv := NewServer(t)

	t.Run("read channel", func(t *testing.T) {
		r := call(t, srv, http.MethodGet, "/channels/"+srv.ChannelID(), nil)
		require.Equal(t, http.StatusOK, r.status)

		d := data(t, r)
		assert.Equal(t, srv.ChannelID(), d["id"])
		assert.Equal(t, "channel", d["type"])
	})

	t.Run("unknown channel", func(t *testing.T) {
		r := call(t, srv, http.MethodGet, "/channels/nope", nil)
		assert.Equal(t, http.StatusNotFound, r.status)
		assert.NotEmpty(t, r.doc["errors"])
	})

	t.Run("list sections", func(t *testing.T) {
		r := call(t, srv, http.MethodGet, "/channels/"+srv.ChannelID()+"/sections", nil)
		require.Equal(t, http.StatusOK, r.status)

		list, ok := r.doc["data"].([]any)
		require.True(t, ok)
		require.Len(t, list, 1)
		assert.Equal(t, srv.SectionID(), list[0].(map[string]any)["id"])
	})

	t.Run("read section", func(t *testing.T) {
		r := call(t, srv, http.MethodGet, "/sections/"+srv.SectionID(), nil)
		require.Equal(t, http.StatusOK, r.status)
		assert.Equal(t, true, data(t, r)["isDefault"])
	})

	t.Run("records requests", func(t *testing.T) {
		last, ok := srv.LastRequest()
		require.True(t, ok)

		assert.Equal(t, http.MethodGet, last.Method)
		assert.Equal(t, "/sections/"+srv.SectionID(), last.RequestURI)
		assert.Equal(t, srv.APIID(), last.Authorization.KeyID)
		assert.Equal(t, "application/json", last.Header.Get("Accept"))
		assert.Len(t, srv.Requests(), 4)
	})
}

func TestServerArticleLifecycle(t *testing.T) {
	srv := NewServer(t)

	dir := t.TempDir()
	imagePath := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))

	r := call(t, srv, http.MethodPost, "/channels/"+srv.ChannelID()+"/articles",
		upload(t, "First", "", formdata.File{Name: "image.png", Path: imagePath}))
	require.Equal(t, http.StatusCreated, r.status, r.doc)

	created := data(t, r)
	id := created["id"].(string)
	revision := created["revision"].(string)
	assert.Equal(t, "First", created["title"])

	stored, ok := srv.Article(id)
	require.True(t, ok)
	require.Len(t, stored.Parts, 3)
	assert.Equal(t, "file0", stored.Parts[2].Name)
	assert.Equal(t, "image.png", stored.Parts[2].Filename)
	assert.Equal(t, "image/png", stored.Parts[2].ContentType)
	assert.Equal(t, true, stored.Metadata["isPreview"])

	t.Run("read", func(t *testing.T) {
		r := call(t, srv, http.MethodGet, "/articles/"+id, nil)
		require.Equal(t, http.StatusOK, r.status)
		assert.Equal(t, revision, data(t, r)["revision"])
	})

	t.Run("update with stale revision", func(t *testing.T) {
		r := call(t, srv, http.MethodPost, "/articles/"+id, upload(t, "Second", "stale"))
		assert.Equal(t, http.StatusConflict, r.status)
	})

	t.Run("update", func(t *testing.T) {
		r := call(t, srv, http.MethodPost, "/articles/"+id, upload(t, "Second", revision))
		require.Equal(t, http.StatusOK, r.status, r.doc)

		d := data(t, r)
		assert.Equal(t, "Second", d["title"])
		assert.NotEqual(t, revision, d["revision"])
	})

	t.Run("delete", func(t *testing.T) {
		r := call(t, srv, http.MethodDelete, "/articles/"+id, nil)
		assert.Equal(t, http.StatusNoContent, r.status)

		r = call(t, srv, http.MethodGet, "/articles/"+id, nil)
		assert.Equal(t, http.StatusNotFound, r.status)
	})
}

func TestServerRejectsBadUploads(t *testing.T) {
	srv := NewServer(t)
	path := "/channels/" + srv.ChannelID() + "/articles"

	t.Run("wrong leading part", func(t *testing.T) {
		body, err := formdata.Encode(context.Background(), []formdata.Part{
			formdata.JSONPart("metadata", "", []byte(`{"data":{}}`)),
			formdata.JSONPart("article.json", "article.json", []byte(`{}`)),
		})
		require.NoError(t, err)

		r := call(t, srv, http.MethodPost, path, body)
		assert.Equal(t, http.StatusBadRequest, r.status)
	})

	t.Run("metadata without data", func(t *testing.T) {
		body, err := formdata.Encode(context.Background(), []formdata.Part{
			formdata.JSONPart("article.json", "article.json", []byte(`{}`)),
			formdata.JSONPart("metadata", "", []byte(`{}`)),
		})
		require.NoError(t, err)

		r := call(t, srv, http.MethodPost, path, body)
		assert.Equal(t, http.StatusBadRequest, r.status)
	})

	t.Run("not multipart", func(t *testing.T) {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+path, strings.NewReader(`{}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := signedClient(srv).Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServerSearch(t *testing.T) {
	srv := NewServer(t)

	for _, title := range []string{"a", "b", "c"} {
		r := call(t, srv, http.MethodPost, "/channels/"+srv.ChannelID()+"/articles", upload(t, title, ""))
		require.Equal(t, http.StatusCreated, r.status)
	}

	titles := func(r response) []string {
		var out []string
		for _, v := range r.doc["data"].([]any) {
			out = append(out, v.(map[string]any)["title"].(string))
		}
		return out
	}

	t.Run("newest first by default", func(t *testing.T) {
		r := call(t, srv, http.MethodGet, "/channels/"+srv.ChannelID()+"/articles", nil)
		require.Equal(t, http.StatusOK, r.status)
		assert.Equal(t, []string{"c", "b", "a"}, titles(r))
		assert.Nil(t, r.doc["meta"])
	})

	t.Run("paged ascending", func(t *testing.T) {
		r := call(t, srv, http.MethodGet, "/channels/"+srv.ChannelID()+"/articles?pageSize=2&sortDir=ASC", nil)
		require.Equal(t, http.StatusOK, r.status)
		assert.Equal(t, []string{"a", "b"}, titles(r))

		token := r.doc["meta"].(map[string]any)["nextPageToken"].(string)

		r = call(t, srv, http.MethodGet, "/channels/"+srv.ChannelID()+"/articles?pageSize=2&sortDir=ASC&pageToken="+token, nil)
		require.Equal(t, http.StatusOK, r.status)
		assert.Equal(t, []string{"c"}, titles(r))
	})

	t.Run("by section", func(t *testing.T) {
		r := call(t, srv, http.MethodGet, "/sections/"+srv.SectionID()+"/articles", nil)
		require.Equal(t, http.StatusOK, r.status)
		assert.Len(t, titles(r), 3)
	})

	t.Run("invalid date", func(t *testing.T) {
		r := call(t, srv, http.MethodGet, "/channels/"+srv.ChannelID()+"/articles?fromDate=yesterday", nil)
		assert.Equal(t, http.StatusBadRequest, r.status)
	})
}

func TestServerOverride(t *testing.T) {
	srv := NewServer(t)

	srv.Override("GET /channels/"+srv.ChannelID(), func(w http.ResponseWriter, _ *http.Request) {
		writeErrors(w, http.StatusTooManyRequests, errorDetail{Code: "THROTTLED"})
	})

	r := call(t, srv, http.MethodGet, "/channels/"+srv.ChannelID(), nil)
	assert.Equal(t, http.StatusTooManyRequests, r.status)
	assert.Len(t, srv.Requests(), 1)
}

func TestServerRequestID(t *testing.T) {
	srv := NewServer(t)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/channels/"+srv.ChannelID(), nil)
	require.NoError(t, err)

	resp, err := signedClient(srv).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	id := resp.Header.Get(RequestIDHeader)
	require.NotEmpty(t, id)

	last, ok := srv.LastRequest()
	require.True(t, ok)
	assert.Equal(t, id, last.ID)
}

func TestServerRecoversFromPanics(t *testing.T) {
	srv := NewServer(t)

	srv.Override("GET /channels/"+srv.ChannelID(), func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	r := call(t, srv, http.MethodGet, "/channels/"+srv.ChannelID(), nil)
	require.Equal(t, http.StatusInternalServerError, r.status)

	errs := r.doc["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "SERVER_ERROR", errs[0].(map[string]any)["code"])
	assert.Equal(t, "boom", errs[0].(map[string]any)["message"])
}
