package newsapi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/newsapi/newsapi"
	"github.com/vitalvas/newsapi/newstest"
)

func TestReadChannel(t *testing.T) {
	srv := newstest.NewServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ch, err := client.ReadChannel(ctx, srv.ChannelID())
		require.NoError(t, err)

		assert.Equal(t, srv.ChannelID(), ch.ID)
		assert.Equal(t, "channel", ch.Type)
		assert.NotEmpty(t, ch.Name)
		assert.Contains(t, ch.Links.DefaultSection, srv.SectionID())
		assert.False(t, ch.CreatedAt.IsZero())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.ReadChannel(ctx, "missing")
		require.ErrorIs(t, err, newsapi.ErrRemote)

		var apiErr *newsapi.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.True(t, apiErr.HasCode("NOT_FOUND"))
	})

	t.Run("empty id", func(t *testing.T) {
		before := len(srv.Requests())

		_, err := client.ReadChannel(ctx, "")
		assert.ErrorIs(t, err, newsapi.ErrValidation)
		assert.Len(t, srv.Requests(), before)
	})
}

func TestSections(t *testing.T) {
	srv := newstest.NewServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	sections, err := client.ListSections(ctx, srv.ChannelID())
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, srv.SectionID(), sections[0].ID)
	assert.True(t, sections[0].IsDefault)

	section, err := client.ReadSection(ctx, srv.SectionID())
	require.NoError(t, err)
	assert.Equal(t, sections[0].Name, section.Name)
	assert.Contains(t, section.Links.Channel, srv.ChannelID())

	_, err = client.ListSections(ctx, "")
	assert.ErrorIs(t, err, newsapi.ErrValidation)

	_, err = client.ReadSection(ctx, "")
	assert.ErrorIs(t, err, newsapi.ErrValidation)
}
