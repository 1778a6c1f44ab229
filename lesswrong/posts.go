package lesswrong

import (
	"context"
	"regexp"
	"strings"

	"github.com/alexflint/go-restructure"
)

// number of recent posts scanned when looking a post up by slug
const slugScanLimit = 1000

// postURL matches the ID segment of a post URL such as
// https://www.lesswrong.com/posts/pT75MFsLJArrBGkaF/some-slug
type postURL struct {
	_  string `/posts/`
	ID string `[a-zA-Z0-9]+`
	_  string `/`
}

var postURLPattern = restructure.MustCompile(&postURL{}, restructure.Options{})

// post IDs are 17 alphanumeric characters
var postIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{17}$`)

// PostID extracts a post ID from a URL or a bare ID. It returns an empty
// string if the identifier looks like neither.
func PostID(identifier string) string {
	var u postURL
	if postURLPattern.Find(&u, identifier) {
		return u.ID
	}
	if postIDPattern.MatchString(identifier) {
		return identifier
	}
	return ""
}

// PostBySlug fetches a post given its ID, its slug, or its URL. Lookup by ID
// is tried first. Lookup by slug only sees the most recent posts.
func (c *Client) PostBySlug(ctx context.Context, identifier string) (*Post, error) {
	if id := PostID(identifier); id != "" {
		var res postResponse
		err := c.Query(ctx, "GetPostById", map[string]interface{}{"documentId": id}, &res)
		if err != nil {
			return nil, err
		}
		if res.Post.Result != nil {
			return res.Post.Result, nil
		}
		c.log.Debug().Str("id", id).Msg("no post with this ID, falling back to slug search")
	}

	// handles both bare slugs and URLs that end in a slug
	slug := identifier[strings.LastIndex(identifier, "/")+1:]

	var res postsResponse
	err := c.Query(ctx, "SearchBySlug", map[string]interface{}{"limit": slugScanLimit}, &res)
	if err != nil {
		return nil, err
	}

	for i := range res.Posts.Results {
		if res.Posts.Results[i].Slug == slug {
			return &res.Posts.Results[i], nil
		}
	}

	return nil, &NotFoundError{Kind: "post", Key: identifier}
}

// SearchPosts runs a text search on the server
func (c *Client) SearchPosts(ctx context.Context, query string, limit int) ([]Post, error) {
	var res postsResponse
	err := c.Query(ctx, "SearchPosts", map[string]interface{}{
		"searchQuery": query,
		"limit":       limit,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Posts.Results == nil {
		return []Post{}, nil
	}
	return res.Posts.Results, nil
}
