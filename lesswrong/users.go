package lesswrong

import (
	"context"
	"time"
)

// UserBySlug fetches a user by the slug that appears in their profile URL
func (c *Client) UserBySlug(ctx context.Context, slug string) (*User, error) {
	var res userResponse
	err := c.Query(ctx, "GetUser", map[string]interface{}{"slug": slug}, &res)
	if err != nil {
		return nil, err
	}

	if res.User.Result == nil {
		return nil, &NotFoundError{Kind: "user", Key: slug}
	}
	return res.User.Result, nil
}

// UserPosts fetches up to limit of a user's most recent posts and then drops
// those older than since
func (c *Client) UserPosts(ctx context.Context, userID string, since time.Time, limit int) ([]Post, error) {
	var res postsResponse
	err := c.Query(ctx, "GetUserPosts", map[string]interface{}{
		"userId": userID,
		"limit":  limit,
	}, &res)
	if err != nil {
		return nil, err
	}

	return postsSince(res.Posts.Results, since), nil
}

// UserComments fetches up to limit of a user's most recent comments and then
// drops those older than since
func (c *Client) UserComments(ctx context.Context, userID string, since time.Time, limit int) ([]Comment, error) {
	var res commentsResponse
	err := c.Query(ctx, "GetUserComments", map[string]interface{}{
		"userId": userID,
		"limit":  limit,
	}, &res)
	if err != nil {
		return nil, err
	}

	return commentsSince(res.Comments.Results, since), nil
}
