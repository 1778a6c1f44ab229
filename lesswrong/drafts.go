package lesswrong

import (
	"context"
	"errors"
)

// CreatePostRequest holds the fields of a new draft
type CreatePostRequest struct {
	Title    string
	Content  string // markdown
	URL      string // for link posts
	Question bool
}

type originalContents struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

type postContents struct {
	OriginalContents originalContents `json:"originalContents"`
}

// createPostData is the CreatePostDataInput sent to the server
type createPostData struct {
	Title             string       `json:"title"`
	Contents          postContents `json:"contents"`
	Draft             bool         `json:"draft"`
	SubmitToFrontpage bool         `json:"submitToFrontpage"`
	URL               string       `json:"url,omitempty"`
	Question          bool         `json:"question,omitempty"`
}

func (r CreatePostRequest) data() createPostData {
	return createPostData{
		Title: r.Title,
		Contents: postContents{
			OriginalContents: originalContents{
				Type: "markdown",
				Data: r.Content,
			},
		},
		Draft:             true,
		SubmitToFrontpage: true,
		URL:               r.URL,
		Question:          r.Question,
	}
}

// CreateDraft creates an unpublished post from markdown. It requires a login
// token.
func (c *Client) CreateDraft(ctx context.Context, r CreatePostRequest) (*Draft, error) {
	var res createPostResponse
	err := c.QueryAuthenticated(ctx, "CreatePost", map[string]interface{}{"data": r.data()}, &res)
	if err != nil {
		return nil, err
	}

	if res.CreatePost.Data == nil {
		return nil, errors.New("server did not return the created post")
	}
	return res.CreatePost.Data, nil
}

// MyDrafts lists the drafts belonging to the logged-in user. It requires a
// login token.
func (c *Client) MyDrafts(ctx context.Context, limit int) ([]Draft, error) {
	var res draftsResponse
	err := c.QueryAuthenticated(ctx, "GetMyDrafts", map[string]interface{}{"limit": limit}, &res)
	if err != nil {
		return nil, err
	}
	if res.Posts.Results == nil {
		return []Draft{}, nil
	}
	return res.Posts.Results, nil
}
