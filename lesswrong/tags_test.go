package lesswrong

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tagsResponseBody = `{"data": {"tags": {"results": [
	{"_id": "t1", "name": "AI Alignment", "slug": "ai-alignment", "postCount": 120},
	{"_id": "t2", "name": "Epistemology", "slug": "epistemology", "postCount": 80}
]}}}`

func TestSearchTags(t *testing.T) {
	srv := newFakeServer(t, map[string]string{"GetTags": tagsResponseBody})
	c := newTestClient(t, srv, nil)

	tags, err := c.SearchTags(context.Background(), "alignment", 10)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "AI Alignment", tags[0].Name)
	assert.Equal(t, "ai-alignment", tags[0].Slug)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.EqualValues(t, 200, reqs[0].Variables["limit"])
}

func TestSearchTagsRespectsLimit(t *testing.T) {
	srv := newFakeServer(t, map[string]string{"GetTags": tagsResponseBody})
	c := newTestClient(t, srv, nil)

	tags, err := c.SearchTags(context.Background(), "I", 1)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "t1", tags[0].ID)
}

func TestSearchTagsNoMatch(t *testing.T) {
	srv := newFakeServer(t, map[string]string{"GetTags": tagsResponseBody})
	c := newTestClient(t, srv, nil)

	tags, err := c.SearchTags(context.Background(), "cooking", 10)
	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestTagBySlugIgnoresCase(t *testing.T) {
	srv := newFakeServer(t, map[string]string{"GetTags": tagsResponseBody})
	c := newTestClient(t, srv, nil)

	tag, err := c.TagBySlug(context.Background(), "Epistemology")
	require.NoError(t, err)
	assert.Equal(t, "t2", tag.ID)
	require.NotNil(t, tag.PostCount)
	assert.Equal(t, 80.0, *tag.PostCount)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.EqualValues(t, 500, reqs[0].Variables["limit"])
}

func TestTagBySlugNotFound(t *testing.T) {
	srv := newFakeServer(t, map[string]string{"GetTags": tagsResponseBody})
	c := newTestClient(t, srv, nil)

	_, err := c.TagBySlug(context.Background(), "cooking")
	assert.True(t, errors.Is(err, ErrNotFound))
}
