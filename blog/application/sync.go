package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/edublog/edublog/blog/domain"
	"github.com/rs/zerolog/log"
)

// Refresh reconciles the local cache with the remote mirror. Policy, in
// priority order:
//
//  1. If the remote already failed this session, skip it and serve local.
//  2. Remote non-empty, local empty: remote is authoritative.
//  3. Both non-empty and divergent: union by id, local wins on conflict,
//     sorted by id descending, persisted to both sides.
//  4. Remote empty or unreachable, local non-empty: local is
//     authoritative; push best-effort.
//  5. Both empty: install the bootstrap set, persist, push best-effort.
//
// Remote failure is recorded and never returned; only local cache failures
// surface. Running Refresh twice with no intervening writes is a no-op the
// second time.
func (r *PostRepository) Refresh(ctx context.Context) error {
	local, err := r.loadLocal(ctx)
	if err != nil {
		return err
	}

	var remote []domain.Post
	remoteOK := false

	if r.remoteDown.Load() {
		log.Debug().Msg("Remote store marked unavailable; serving local cache")
	} else {
		remote, err = r.remote.Load(ctx)
		if err != nil {
			r.markRemoteDown(err)
		} else {
			remoteOK = true
		}
	}

	var posts []domain.Post

	switch {
	case remoteOK && len(remote) > 0 && len(local) == 0:
		// Nothing local to defend; adopt the mirror wholesale.
		if err := r.persistLocal(ctx, remote); err != nil {
			return err
		}
		posts = remote

	case remoteOK && len(remote) > 0 && len(local) > 0:
		if samePosts(local, remote) {
			posts = local
			break
		}
		merged := mergeByID(local, remote)
		if err := r.persistLocal(ctx, merged); err != nil {
			return err
		}
		r.pushRemote(ctx, merged)
		posts = merged

	case len(local) > 0:
		posts = local
		if remoteOK {
			r.pushRemote(ctx, local)
		}

	default:
		seed := BootstrapPosts()
		if err := r.persistLocal(ctx, seed); err != nil {
			return err
		}
		if remoteOK {
			r.pushRemote(ctx, seed)
		}
		posts = seed
	}

	r.mu.Lock()
	r.posts = posts
	r.mu.Unlock()

	r.recordSync(ctx)

	return nil
}

// refreshIfStale runs Refresh when the last reconciliation is older than
// the refresh gap. Failures are logged; List never propagates them.
func (r *PostRepository) refreshIfStale(ctx context.Context) {
	last := r.lastRefresh.Load()
	if last != 0 && time.Since(time.Unix(0, last)) < r.refreshGap {
		return
	}

	if err := r.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("Opportunistic refresh failed")
	}
}

// pushRemote mirrors the collection best-effort. A failure marks the
// remote unavailable for the rest of the session and is otherwise
// invisible to the caller's success path.
func (r *PostRepository) pushRemote(ctx context.Context, posts []domain.Post) {
	if r.remoteDown.Load() {
		return
	}

	if err := r.remote.Save(ctx, posts); err != nil {
		r.markRemoteDown(err)
	}
}

func (r *PostRepository) markRemoteDown(err error) {
	if r.remoteDown.CompareAndSwap(false, true) {
		if errors.Is(err, domain.ErrRemoteUnavailable) {
			log.Warn().Err(err).Msg("Remote store unavailable; falling back to local cache for this session")
		} else {
			log.Warn().Err(err).Msg("Remote store error; falling back to local cache for this session")
		}
	}
}

// recordSync stamps the reconciliation time, in memory for the staleness
// check and in the cache for other sessions to observe.
func (r *PostRepository) recordSync(ctx context.Context) {
	now := time.Now().UTC()
	r.lastRefresh.Store(now.UnixNano())

	if err := r.cache.Set(ctx, domain.KeyLastSync, now.Format(time.RFC3339)); err != nil {
		log.Error().Err(err).Msg("Failed to record last sync time")
	}
}

// mergeByID unions two collections; for ids present in both, the local
// entry wins. The result is ordered by id descending.
func mergeByID(local, remote []domain.Post) []domain.Post {
	byID := make(map[int64]domain.Post, len(local)+len(remote))
	for _, p := range remote {
		byID[p.ID] = p
	}
	for _, p := range local {
		byID[p.ID] = p
	}

	merged := make([]domain.Post, 0, len(byID))
	for _, p := range byID {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ID > merged[j].ID
	})

	return merged
}

// samePosts compares two collections by their canonical JSON encoding.
func samePosts(a, b []domain.Post) bool {
	if len(a) != len(b) {
		return false
	}
	aj, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(aj, bj)
}
