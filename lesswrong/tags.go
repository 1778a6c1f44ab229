package lesswrong

import (
	"context"
	"strings"
	"time"
)

// The API has no lookup or search by tag slug, so we fetch a fixed number of
// tags alphabetically and filter them here. Tags beyond these are unreachable.
const (
	tagLookupLimit = 500
	tagSearchLimit = 200
)

func (c *Client) tags(ctx context.Context, limit int) ([]Tag, error) {
	var res tagsResponse
	err := c.Query(ctx, "GetTags", map[string]interface{}{"limit": limit}, &res)
	if err != nil {
		return nil, err
	}
	return res.Tags.Results, nil
}

// TagBySlug finds a tag by slug, ignoring case
func (c *Client) TagBySlug(ctx context.Context, slug string) (*Tag, error) {
	tags, err := c.tags(ctx, tagLookupLimit)
	if err != nil {
		return nil, err
	}

	for i := range tags {
		if strings.EqualFold(tags[i].Slug, slug) {
			return &tags[i], nil
		}
	}

	return nil, &NotFoundError{Kind: "tag", Key: slug}
}

// SearchTags returns up to limit tags whose names contain query, ignoring case
func (c *Client) SearchTags(ctx context.Context, query string, limit int) ([]Tag, error) {
	tags, err := c.tags(ctx, tagSearchLimit)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matching := make([]Tag, 0)
	for _, tag := range tags {
		if len(matching) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(tag.Name), q) {
			matching = append(matching, tag)
		}
	}

	return matching, nil
}

// TagPosts fetches up to limit of the most relevant posts on a tag and then
// drops those older than since
func (c *Client) TagPosts(ctx context.Context, tagID string, since time.Time, limit int) ([]Post, error) {
	var res postsResponse
	err := c.Query(ctx, "GetTagPosts", map[string]interface{}{
		"tagId": tagID,
		"limit": limit,
	}, &res)
	if err != nil {
		return nil, err
	}

	return postsSince(res.Posts.Results, since), nil
}
