package lesswrong

import "time"

// User represents a forum account
type User struct {
	ID          string   `json:"_id"`
	Username    string   `json:"username,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	Slug        string   `json:"slug"`
	Karma       *float64 `json:"karma"`
}

// Name is the display name, or the slug if there is none
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Slug
}

// Author is the abbreviated user attached to a post
type Author struct {
	DisplayName string `json:"displayName"`
	Slug        string `json:"slug"`
}

// Contents is the body of a post or comment
type Contents struct {
	Markdown             string `json:"markdown,omitempty"`
	PlaintextDescription string `json:"plaintextDescription,omitempty"`
}

// Post represents a published post
type Post struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	PageURL      string    `json:"pageUrl"`
	PostedAt     time.Time `json:"postedAt"`
	BaseScore    float64   `json:"baseScore"`
	VoteCount    float64   `json:"voteCount"`
	CommentCount float64   `json:"commentCount"`
	User         *Author   `json:"user,omitempty"`
	Contents     *Contents `json:"contents,omitempty"`
}

// AuthorName is the display name of the author, or "Unknown"
func (p *Post) AuthorName() string {
	if p.User == nil || p.User.DisplayName == "" {
		return "Unknown"
	}
	return p.User.DisplayName
}

// CommentPost identifies the post that a comment was made on
type CommentPost struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Comment represents a comment on a post
type Comment struct {
	ID        string       `json:"_id"`
	PostedAt  time.Time    `json:"postedAt"`
	PageURL   string       `json:"pageUrl"`
	BaseScore float64      `json:"baseScore"`
	VoteCount float64      `json:"voteCount"`
	Post      *CommentPost `json:"post,omitempty"`
	Contents  *Contents    `json:"contents,omitempty"`
}

// PostTitle is the title of the post this comment is on, or def
func (c *Comment) PostTitle(def string) string {
	if c.Post == nil || c.Post.Title == "" {
		return def
	}
	return c.Post.Title
}

// Tag represents a topic
type Tag struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	PostCount *float64 `json:"postCount"`
}

// Draft is the subset of post fields returned for drafts
type Draft struct {
	ID         string     `json:"_id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	PageURL    string     `json:"pageUrl"`
	Draft      bool       `json:"draft"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	ModifiedAt *time.Time `json:"modifiedAt,omitempty"`
}

// LastModified is the modification time, falling back to creation time
func (d *Draft) LastModified() *time.Time {
	if d.ModifiedAt != nil {
		return d.ModifiedAt
	}
	return d.CreatedAt
}

// UserActivity is everything a user posted within a window
type UserActivity struct {
	Forum     string    `json:"forum"`
	User      *User     `json:"user"`
	Posts     []Post    `json:"posts"`
	Comments  []Comment `json:"comments"`
	Since     time.Time `json:"since_date"`
	FetchedAt time.Time `json:"fetched_at"`
}

// TopicActivity is every post on a topic within a window
type TopicActivity struct {
	Forum     string    `json:"forum"`
	Topic     *Tag      `json:"topic"`
	Posts     []Post    `json:"posts"`
	Since     time.Time `json:"since_date"`
	FetchedAt time.Time `json:"fetched_at"`
}

// response envelopes, matching the shape of the "data" field

type userResponse struct {
	User struct {
		Result *User
	}
}

type postResponse struct {
	Post struct {
		Result *Post
	}
}

type postsResponse struct {
	Posts struct {
		Results []Post
	}
}

type commentsResponse struct {
	Comments struct {
		Results []Comment
	}
}

type tagsResponse struct {
	Tags struct {
		Results []Tag
	}
}

type draftsResponse struct {
	Posts struct {
		Results []Draft
	}
}

type createPostResponse struct {
	CreatePost struct {
		Data *Draft
	}
}
