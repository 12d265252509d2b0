package hhmac

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifyingServer answers 200 with the received body for correctly signed
// requests and 401 otherwise.
func verifyingServer(t *testing.T, signer *Signer) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := VerifyRequest(r, VerifyConfig{Resolver: StaticResolver(signer)}); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_, _ = io.Copy(w, r.Body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestNewTransport(t *testing.T) {
	signer := newTestSigner(t)

	t.Run("private default transport", func(t *testing.T) {
		tr := NewTransport(nil, SignConfig{Signer: signer})
		require.NotNil(t, tr.base)
		assert.NotSame(t, http.DefaultTransport, tr.base)
	})

	t.Run("given base", func(t *testing.T) {
		base := &http.Transport{MaxIdleConns: 7}
		assert.Same(t, base, NewTransport(base, SignConfig{Signer: signer}).base)
	})
}

func TestTransportRoundTrip(t *testing.T) {
	signer := newTestSigner(t)
	srv := verifyingServer(t, signer)
	client := &http.Client{Transport: NewTransport(nil, SignConfig{Signer: signer})}

	t.Run("get with query", func(t *testing.T) {
		resp, err := client.Get(srv.URL + "/channels/abc/articles?pageSize=5")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("post body is signed and delivered", func(t *testing.T) {
		payload := []byte("--b\r\nContent-Type: application/json\r\n\r\n{}\r\n--b--\r\n")

		resp, err := client.Post(srv.URL+"/channels/abc/articles", "multipart/form-data; boundary=b", bytes.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		echoed, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, payload, echoed)
	})

	t.Run("caller request untouched", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/articles/1", nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Empty(t, req.Header.Get("Accept"))
	})

	t.Run("missing signer", func(t *testing.T) {
		unsigned := &http.Client{Transport: NewTransport(nil, SignConfig{})}

		_, err := unsigned.Get(srv.URL + "/channels/abc")
		assert.ErrorIs(t, err, ErrNoSigner)
	})
}

func TestTransportCloseIdleConnections(t *testing.T) {
	signer := newTestSigner(t)
	srv := verifyingServer(t, signer)

	tr := NewTransport(&http.Transport{}, SignConfig{Signer: signer})
	client := &http.Client{Transport: tr}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.NotPanics(t, tr.CloseIdleConnections)
	assert.NotPanics(t, client.CloseIdleConnections)
}
