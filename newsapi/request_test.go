package newsapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	t.Run("data", func(t *testing.T) {
		res, err := decodeResponse("GET", "/x", http.StatusOK, []byte(`{"data":{"id":"1"},"meta":{"nextPageToken":"t"}}`))
		require.NoError(t, err)
		require.NotNil(t, res)

		assert.JSONEq(t, `{"id":"1"}`, string(res.env.Data))
		assert.JSONEq(t, `{"nextPageToken":"t"}`, string(res.env.Meta))
	})

	t.Run("empty success", func(t *testing.T) {
		res, err := decodeResponse("DELETE", "/x", http.StatusNoContent, nil)
		assert.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("undecodable success", func(t *testing.T) {
		_, err := decodeResponse("GET", "/x", http.StatusOK, []byte(`not json`))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrRemote)
	})

	t.Run("empty errors array", func(t *testing.T) {
		res, err := decodeResponse("GET", "/x", http.StatusOK, []byte(`{"data":{},"errors":[]}`))
		require.NoError(t, err)
		assert.NotNil(t, res)
	})

	t.Run("failure status", func(t *testing.T) {
		_, err := decodeResponse("GET", "/x", http.StatusInternalServerError, []byte(`{"errors":[{"code":"SERVER_ERROR"}]}`))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "SERVER_ERROR", apiErr.Code())
	})
}

func TestDecodeData(t *testing.T) {
	var out map[string]string

	assert.ErrorIs(t, decodeData("GET", "/x", nil, &out), ErrRemote)
	assert.ErrorIs(t, decodeData("GET", "/x", &result{env: envelope{Data: []byte("null")}}, &out), ErrRemote)

	require.NoError(t, decodeData("GET", "/x", &result{env: envelope{Data: []byte(`{"a":"b"}`)}}, &out))
	assert.Equal(t, map[string]string{"a": "b"}, out)
}

func TestSearchArticlesPath(t *testing.T) {
	date := time.Date(2019, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))

	tests := []struct {
		name string
		in   SearchArticlesInput
		want string
	}{
		{
			name: "channel only",
			in:   SearchArticlesInput{ChannelID: "c1"},
			want: "/channels/c1/articles",
		},
		{
			name: "section escaped",
			in:   SearchArticlesInput{SectionID: "a/b"},
			want: "/sections/a%2Fb/articles",
		},
		{
			name: "all parameters in order",
			in: SearchArticlesInput{
				ChannelID: "c1",
				PageToken: "t+1",
				SortDir:   SortDescending,
				ToDate:    date,
				FromDate:  date,
				PageSize:  10,
			},
			want: "/channels/c1/articles?pageSize=10&fromDate=2019-01-02T02:04:05Z&toDate=2019-01-02T02:04:05Z&sortDir=DESC&pageToken=t%2B1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.path()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	invalid := []SearchArticlesInput{
		{},
		{ChannelID: "c", SectionID: "s"},
		{ChannelID: "c", PageSize: -1},
		{ChannelID: "c", SortDir: "UP"},
	}

	for _, in := range invalid {
		_, err := in.path()
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe("GET", 200, time.Second, 10) })
}

func TestMetricsUploadBytesNeedResponse(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.observe(http.MethodPost, 0, time.Millisecond, 100)
	assert.Zero(t, testutil.ToFloat64(m.uploadBytes))
	assert.InDelta(t, 1, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPost, "error")), 0)

	m.observe(http.MethodPost, http.StatusCreated, time.Millisecond, 50)
	assert.InDelta(t, 50, testutil.ToFloat64(m.uploadBytes), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPost, "201")), 0)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	cfg = Config{Timeout: -1}.withDefaults()
	assert.Zero(t, cfg.Timeout)

	assert.Equal(t, "h", hostPort("h", 0))
	assert.Equal(t, "h:8443", hostPort("h", 8443))
}
