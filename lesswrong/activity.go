package lesswrong

import (
	"context"
	"time"
)

// Result caps applied by the server before any date filtering. A user or
// topic with more items than this inside the window will be truncated.
const (
	UserPostsLimit    = 50
	UserCommentsLimit = 100
	TagPostsLimit     = 50
)

// Cutoff returns the start of a window of the given number of days ending now
func (c *Client) Cutoff(days int) time.Time {
	return c.now().Add(-time.Duration(days) * 24 * time.Hour)
}

// postsSince keeps posts at or after since. A zero since keeps everything.
func postsSince(posts []Post, since time.Time) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if since.IsZero() || !p.PostedAt.Before(since) {
			out = append(out, p)
		}
	}
	return out
}

// commentsSince keeps comments at or after since. A zero since keeps everything.
func commentsSince(comments []Comment, since time.Time) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if since.IsZero() || !c.PostedAt.Before(since) {
			out = append(out, c)
		}
	}
	return out
}

// UserActivity fetches the posts and comments a user made in the last n days
func (c *Client) UserActivity(ctx context.Context, slug string, days int) (*UserActivity, error) {
	user, err := c.UserBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	since := c.Cutoff(days)

	posts, err := c.UserPosts(ctx, user.ID, since, UserPostsLimit)
	if err != nil {
		return nil, err
	}

	comments, err := c.UserComments(ctx, user.ID, since, UserCommentsLimit)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("user", slug).Int("posts", len(posts)).Int("comments", len(comments)).
		Msg("fetched user activity")

	return &UserActivity{
		Forum:     c.Forum.Key,
		User:      user,
		Posts:     posts,
		Comments:  comments,
		Since:     since,
		FetchedAt: c.now(),
	}, nil
}

// TopicActivity fetches the posts on a topic in the last n days
func (c *Client) TopicActivity(ctx context.Context, slug string, days int) (*TopicActivity, error) {
	tag, err := c.TagBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	since := c.Cutoff(days)

	posts, err := c.TagPosts(ctx, tag.ID, since, TagPostsLimit)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("topic", slug).Int("posts", len(posts)).Msg("fetched topic activity")

	return &TopicActivity{
		Forum:     c.Forum.Key,
		Topic:     tag,
		Posts:     posts,
		Since:     since,
		FetchedAt: c.now(),
	}, nil
}
