package newsapi_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vitalvas/newsapi/newsapi"
	"github.com/vitalvas/newsapi/newstest"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

func testConfig(srv *newstest.Server) newsapi.Config {
	return newsapi.Config{
		APIID:              srv.APIID(),
		APISecret:          srv.APISecret(),
		Host:               srv.Host(),
		Port:               srv.Port(),
		InsecureSkipVerify: true,
	}
}

func newTestClient(t *testing.T, srv *newstest.Server, opts ...newsapi.Option) *newsapi.Client {
	t.Helper()

	client, err := newsapi.New(testConfig(srv), opts...)
	require.NoError(t, err)
	t.Cleanup(client.CloseIdleConnections)

	return client
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}
