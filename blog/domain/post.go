package domain

import (
	"time"
)

// ContentType classifies a post.
type ContentType string

const (
	ContentTypeBlog  ContentType = "blog"
	ContentTypeStory ContentType = "story"
	ContentTypeNews  ContentType = "news"
)

// Valid reports whether ct is one of the known content types.
func (ct ContentType) Valid() bool {
	switch ct {
	case ContentTypeBlog, ContentTypeStory, ContentTypeNews:
		return true
	}
	return false
}

// Post is the core content entity.
// PublishedAt is a calendar date kept in the blob's wire format (YYYY-MM-DD).
// IDs are sequential (max existing + 1) and unique across the collection.
type Post struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	ContentType ContentType `json:"contentType"`
	Excerpt     string      `json:"excerpt"`
	Content     string      `json:"content"`
	Tags        []string    `json:"tags"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	IsPublished bool        `json:"isPublished"`
	PublishedAt string      `json:"publishedAt"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Draft is an unsaved post payload submitted for create/update,
// prior to ID and timestamp assignment.
type Draft struct {
	Title       string      `json:"title"`
	ContentType ContentType `json:"contentType"`
	Excerpt     string      `json:"excerpt"`
	Content     string      `json:"content"`
	Tags        []string    `json:"tags"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	IsPublished bool        `json:"isPublished"`
}

// ListOptions configures filtering, sorting and pagination for List.
// Zero values fall back to the documented defaults.
type ListOptions struct {
	Page        int
	Limit       int
	ContentType ContentType
	IsPublished *bool
	Tag         string
	SortBy      string
	SortOrder   string
}

// Pagination describes the page window List returned.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Page is one slice of the filtered, sorted collection.
type Page struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// Stats is a pure aggregate over the current collection.
type Stats struct {
	Total     int                 `json:"total"`
	Published int                 `json:"published"`
	Drafts    int                 `json:"drafts"`
	ByType    map[ContentType]int `json:"byType"`
}
