package lesswrong

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostID(t *testing.T) {
	assert.Equal(t, "pT75MFsLJArrBGkaF",
		PostID("https://www.lesswrong.com/posts/pT75MFsLJArrBGkaF/some-slug"))
	assert.Equal(t, "abc123",
		PostID("https://forum.effectivealtruism.org/posts/abc123/x"))
	assert.Equal(t, "pT75MFsLJArrBGkaF", PostID("pT75MFsLJArrBGkaF"))

	assert.Equal(t, "", PostID("simple-summary-of-ai-safety-laws-1"))
	assert.Equal(t, "", PostID("pT75MFsLJArrBGka"))   // 16 chars
	assert.Equal(t, "", PostID("pT75MFsLJArrBGkaFF")) // 18 chars
	assert.Equal(t, "", PostID("https://www.lesswrong.com/posts/noTrailingSlash"))
}

const postByIDResponse = `{"data": {"post": {"result": {
	"_id": "pT75MFsLJArrBGkaF",
	"title": "A Post",
	"slug": "a-post",
	"pageUrl": "https://www.lesswrong.com/posts/pT75MFsLJArrBGkaF/a-post",
	"postedAt": "2024-03-01T10:00:00.000Z",
	"baseScore": 42,
	"user": {"displayName": "Alice", "slug": "alice"},
	"contents": {"markdown": "# Hello"}
}}}}`

func TestPostBySlugTriesIDFirst(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"GetPostById": postByIDResponse,
	})
	c := newTestClient(t, srv, nil)

	post, err := c.PostBySlug(context.Background(), "pT75MFsLJArrBGkaF")
	require.NoError(t, err)
	assert.Equal(t, "A Post", post.Title)
	assert.Equal(t, "Alice", post.AuthorName())
	require.NotNil(t, post.Contents)
	assert.Equal(t, "# Hello", post.Contents.Markdown)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "GetPostById", reqs[0].Op)
	assert.Equal(t, "pT75MFsLJArrBGkaF", reqs[0].Variables["documentId"])
}

func TestPostByURLExtractsID(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"GetPostById": postByIDResponse,
	})
	c := newTestClient(t, srv, nil)

	_, err := c.PostBySlug(context.Background(), "https://www.lesswrong.com/posts/pT75MFsLJArrBGkaF/a-post")
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "pT75MFsLJArrBGkaF", reqs[0].Variables["documentId"])
}

const recentPostsResponse = `{"data": {"posts": {"results": [
	{"_id": "p1", "title": "First", "slug": "first", "postedAt": "2024-03-01T00:00:00Z"},
	{"_id": "p2", "title": "Second", "slug": "second", "postedAt": "2024-03-02T00:00:00Z"}
]}}}`

func TestPostBySlugScansRecentPosts(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"SearchBySlug": recentPostsResponse,
	})
	c := newTestClient(t, srv, nil)

	post, err := c.PostBySlug(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, "p2", post.ID)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "SearchBySlug", reqs[0].Op)
	assert.EqualValues(t, 1000, reqs[0].Variables["limit"])
}

func TestPostBySlugFallsBackWhenIDMissing(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"GetPostById":  `{"data": {"post": {"result": null}}}`,
		"SearchBySlug": recentPostsResponse,
	})
	c := newTestClient(t, srv, nil)

	_, err := c.PostBySlug(context.Background(), "abcdefghijklmnopq")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "GetPostById", reqs[0].Op)
	assert.Equal(t, "SearchBySlug", reqs[1].Op)
}

func TestPostBySlugNotFound(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"SearchBySlug": recentPostsResponse,
	})
	c := newTestClient(t, srv, nil)

	_, err := c.PostBySlug(context.Background(), "missing")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "post", notFound.Kind)
	assert.Equal(t, "post not found: missing", err.Error())
}

func TestSearchPosts(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"SearchPosts": recentPostsResponse,
	})
	c := newTestClient(t, srv, nil)

	posts, err := c.SearchPosts(context.Background(), "AI safety", 20)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "AI safety", reqs[0].Variables["searchQuery"])
	assert.EqualValues(t, 20, reqs[0].Variables["limit"])
}
