package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/edublog/edublog/blog/domain"
	"github.com/rs/zerolog/log"
)

const (
	defaultPageLimit       = 6
	defaultSortField       = "publishedAt"
	defaultRefreshInterval = time.Minute
	dateLayout             = "2006-01-02"
)

// Authorizer gates the repository's write operations on a valid session.
type Authorizer interface {
	IsAuthenticated(ctx context.Context) bool
}

// PostRepository is the single source of truth for posts within a session.
// It holds the canonical in-memory collection, writes through to the local
// cache, mirrors to the remote blob store best-effort, and signals other
// sessions after every write. No ambient singletons: construct one per
// process and pass it down.
type PostRepository struct {
	cache  domain.LocalCache
	remote domain.BlobStore
	events domain.Broadcaster
	auth   Authorizer

	mu    sync.RWMutex
	posts []domain.Post

	remoteDown  atomic.Bool
	lastRefresh atomic.Int64 // unix nanos of the last reconciliation
	refreshGap  time.Duration

	// Lifecycle context for the peer-watch worker, cancelled by Close().
	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup
}

// NewPostRepository constructs the repository and starts the worker that
// reloads the collection when another session signals a change. Call
// Refresh once after construction to run the initial reconciliation.
func NewPostRepository(cache domain.LocalCache, remote domain.BlobStore, events domain.Broadcaster, auth Authorizer) *PostRepository {
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	r := &PostRepository{
		cache:      cache,
		remote:     remote,
		events:     events,
		auth:       auth,
		posts:      []domain.Post{},
		refreshGap: defaultRefreshInterval,
		ctx:        ctx,
		cancel:     cancel,
		wg:         &wg,
	}

	r.wg.Add(1)
	go r.watchPeers()

	return r
}

// Close stops the background worker.
func (r *PostRepository) Close() error {
	r.cancel()
	r.wg.Wait()

	return nil
}

// watchPeers reloads the in-memory collection from the local cache whenever
// another session broadcasts a change. The signal is advisory; losing one
// only delays the refresh until the next.
func (r *PostRepository) watchPeers() {
	defer r.wg.Done()

	ch, cancelSub := r.events.Subscribe()
	defer cancelSub()

	for {
		select {
		case <-r.ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			if err := r.reloadFromCache(r.ctx); err != nil {
				log.Error().Err(err).Msg("Failed to reload posts after peer change")
			}
		}
	}
}

// reloadFromCache replaces the in-memory collection with the cached blob.
func (r *PostRepository) reloadFromCache(ctx context.Context) error {
	posts, err := r.loadLocal(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.posts = posts
	r.mu.Unlock()

	return nil
}

// List returns one filtered, sorted page of the collection. A stale
// snapshot triggers an opportunistic remote refresh first; remote failure
// never surfaces here — the page is then served from the local state.
func (r *PostRepository) List(ctx context.Context, opts domain.ListOptions) (domain.Page, error) {
	r.refreshIfStale(ctx)

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = defaultSortField
	}
	ascending := strings.EqualFold(opts.SortOrder, "asc")

	r.mu.RLock()
	filtered := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if opts.ContentType != "" && p.ContentType != opts.ContentType {
			continue
		}
		if opts.IsPublished != nil && p.IsPublished != *opts.IsPublished {
			continue
		}
		if opts.Tag != "" && !hasTag(p, opts.Tag) {
			continue
		}
		filtered = append(filtered, p)
	}
	r.mu.RUnlock()

	// Stable sort: equal keys keep their pre-sort relative order.
	sort.SliceStable(filtered, func(i, j int) bool {
		c := comparePosts(filtered[i], filtered[j], sortBy)
		if ascending {
			return c < 0
		}
		return c > 0
	})

	total := len(filtered)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return domain.Page{
		Posts: filtered[start:end],
		Pagination: domain.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}, nil
}

func hasTag(p domain.Post, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// comparePosts orders a against b on the given field; string comparison is
// case-insensitive. Unknown fields fall back to the publish date.
func comparePosts(a, b domain.Post, field string) int {
	switch field {
	case "id":
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	case "title":
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		// publishedAt: YYYY-MM-DD sorts chronologically as a string.
		return strings.Compare(strings.ToLower(a.PublishedAt), strings.ToLower(b.PublishedAt))
	}
}

// GetByID returns the post with the exact id, or domain.ErrNotFound.
func (r *PostRepository) GetByID(id int64) (domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}

	return domain.Post{}, domain.ErrNotFound
}

// Create validates, sanitizes and inserts a new post at the front of the
// collection (newest first). The local cache write is the success
// criterion; the remote push afterwards is best-effort.
func (r *PostRepository) Create(ctx context.Context, draft domain.Draft) (domain.Post, error) {
	if !r.auth.IsAuthenticated(ctx) {
		return domain.Post{}, domain.ErrNotAuthorized
	}
	if err := validateDraft(draft); err != nil {
		return domain.Post{}, err
	}

	clean := sanitizeDraft(draft)
	now := time.Now().UTC()

	r.mu.Lock()
	post := domain.Post{
		ID:          r.nextIDLocked(),
		Title:       clean.Title,
		ContentType: clean.ContentType,
		Excerpt:     clean.Excerpt,
		Content:     clean.Content,
		Tags:        clean.Tags,
		ImageURL:    clean.ImageURL,
		IsPublished: clean.IsPublished,
		PublishedAt: now.Format(dateLayout),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	next := make([]domain.Post, 0, len(r.posts)+1)
	next = append(next, post)
	next = append(next, r.posts...)

	if err := r.persistLocal(ctx, next); err != nil {
		r.mu.Unlock()
		return domain.Post{}, err
	}
	r.posts = next
	snapshot := clonePosts(next)
	r.mu.Unlock()

	r.events.Notify()
	r.pushRemote(ctx, snapshot)

	return post, nil
}

// Update applies a draft to an existing post. ID and CreatedAt are
// preserved, UpdatedAt advances; an empty draft image keeps the current one.
func (r *PostRepository) Update(ctx context.Context, id int64, draft domain.Draft) (domain.Post, error) {
	if !r.auth.IsAuthenticated(ctx) {
		return domain.Post{}, domain.ErrNotAuthorized
	}
	if err := validateDraft(draft); err != nil {
		return domain.Post{}, err
	}

	clean := sanitizeDraft(draft)

	r.mu.Lock()
	idx := -1
	for i, p := range r.posts {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return domain.Post{}, domain.ErrNotFound
	}

	updated := r.posts[idx]
	updated.Title = clean.Title
	updated.ContentType = clean.ContentType
	updated.Excerpt = clean.Excerpt
	updated.Content = clean.Content
	updated.Tags = clean.Tags
	if clean.ImageURL != "" {
		updated.ImageURL = clean.ImageURL
	}
	updated.IsPublished = clean.IsPublished
	updated.UpdatedAt = time.Now().UTC()

	next := clonePosts(r.posts)
	next[idx] = updated

	if err := r.persistLocal(ctx, next); err != nil {
		r.mu.Unlock()
		return domain.Post{}, err
	}
	r.posts = next
	snapshot := clonePosts(next)
	r.mu.Unlock()

	r.events.Notify()
	r.pushRemote(ctx, snapshot)

	return updated, nil
}

// Delete removes a post, persists the shrunken collection and mirrors it.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	if !r.auth.IsAuthenticated(ctx) {
		return domain.ErrNotAuthorized
	}

	r.mu.Lock()
	idx := -1
	for i, p := range r.posts {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return domain.ErrNotFound
	}

	next := make([]domain.Post, 0, len(r.posts)-1)
	next = append(next, r.posts[:idx]...)
	next = append(next, r.posts[idx+1:]...)

	if err := r.persistLocal(ctx, next); err != nil {
		r.mu.Unlock()
		return err
	}
	r.posts = next
	snapshot := clonePosts(next)
	r.mu.Unlock()

	r.events.Notify()
	r.pushRemote(ctx, snapshot)

	return nil
}

// Stats recomputes the aggregate counts from the current collection.
func (r *PostRepository) Stats() domain.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := domain.Stats{
		ByType: map[domain.ContentType]int{
			domain.ContentTypeBlog:  0,
			domain.ContentTypeStory: 0,
			domain.ContentTypeNews:  0,
		},
	}

	for _, p := range r.posts {
		stats.Total++
		if p.IsPublished {
			stats.Published++
		} else {
			stats.Drafts++
		}
		stats.ByType[p.ContentType]++
	}

	return stats
}

// nextIDLocked implements the sequential ID strategy: max existing + 1.
// Sequential IDs cannot collide on rapid creation the way wall-clock IDs do.
// Caller must hold mu.
func (r *PostRepository) nextIDLocked() int64 {
	var max int64
	for _, p := range r.posts {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func validateDraft(draft domain.Draft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return &domain.ValidationError{Field: "title"}
	}
	if draft.ContentType == "" {
		return &domain.ValidationError{Field: "contentType"}
	}
	if !draft.ContentType.Valid() {
		return &domain.ValidationError{Field: "contentType", Reason: "must be one of blog, story, news"}
	}
	if strings.TrimSpace(draft.Excerpt) == "" {
		return &domain.ValidationError{Field: "excerpt"}
	}
	if strings.TrimSpace(draft.Content) == "" {
		return &domain.ValidationError{Field: "content"}
	}
	return nil
}

func sanitizeDraft(draft domain.Draft) domain.Draft {
	tags := make([]string, 0, len(draft.Tags))
	for _, t := range draft.Tags {
		tags = append(tags, SanitizeText(t))
	}

	return domain.Draft{
		Title:       SanitizeText(draft.Title),
		ContentType: draft.ContentType,
		Excerpt:     SanitizeText(draft.Excerpt),
		Content:     SanitizeMarkdown(draft.Content),
		Tags:        tags,
		ImageURL:    jsSchemeRe.ReplaceAllString(draft.ImageURL, "blocked:"),
		IsPublished: draft.IsPublished,
	}
}

// persistLocal writes the whole collection blob to the local cache in one
// atomic set. Caller must hold mu for writes.
func (r *PostRepository) persistLocal(ctx context.Context, posts []domain.Post) error {
	blob, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}
	if err := r.cache.Set(ctx, domain.KeyPosts, string(blob)); err != nil {
		return fmt.Errorf("failed to persist posts: %w", err)
	}
	return nil
}

// loadLocal reads the cached collection. A corrupt blob is logged and
// treated as empty rather than wedging every read path.
func (r *PostRepository) loadLocal(ctx context.Context) ([]domain.Post, error) {
	raw, ok, err := r.cache.Get(ctx, domain.KeyPosts)
	if err != nil {
		return nil, fmt.Errorf("failed to read posts from cache: %w", err)
	}
	if !ok {
		return []domain.Post{}, nil
	}

	var posts []domain.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		log.Error().Err(err).Msg("Cached post collection is corrupt; treating as empty")
		return []domain.Post{}, nil
	}
	if posts == nil {
		posts = []domain.Post{}
	}

	return posts, nil
}

func clonePosts(posts []domain.Post) []domain.Post {
	out := make([]domain.Post, len(posts))
	copy(out, posts)
	return out
}
