package newsapi

import (
	"context"
	"net/http"
	"net/url"
)

// ReadChannel returns the channel's name, website and default section.
func (c *Client) ReadChannel(ctx context.Context, channelID string) (*Channel, error) {
	if channelID == "" {
		return nil, validationError("channel id is required")
	}

	path := "/channels/" + url.PathEscape(channelID)

	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var ch Channel
	if err := decodeData(http.MethodGet, path, res, &ch); err != nil {
		return nil, err
	}

	return &ch, nil
}

// ListSections returns the sections of a channel.
func (c *Client) ListSections(ctx context.Context, channelID string) ([]Section, error) {
	if channelID == "" {
		return nil, validationError("channel id is required")
	}

	path := "/channels/" + url.PathEscape(channelID) + "/sections"

	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var sections []Section
	if err := decodeData(http.MethodGet, path, res, &sections); err != nil {
		return nil, err
	}

	return sections, nil
}

// ReadSection returns a section's name and channel, and whether it is the
// default section.
func (c *Client) ReadSection(ctx context.Context, sectionID string) (*Section, error) {
	if sectionID == "" {
		return nil, validationError("section id is required")
	}

	path := "/sections/" + url.PathEscape(sectionID)

	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var s Section
	if err := decodeData(http.MethodGet, path, res, &s); err != nil {
		return nil, err
	}

	return &s, nil
}
