// Package services contains application services for the postkeeper client.
// This file defines the posts sync operations: create, update, delete,
// pull (full sync from remote) and push (full save to remote).
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/postkeeper/internal/client/keyval"
	"github.com/dmitrijs2005/postkeeper/internal/client/kvstore"
	"github.com/dmitrijs2005/postkeeper/internal/client/posts"
	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/logging"
)

// PostKeyPrefix prefixes the remote key of a single post.
const PostKeyPrefix = "dnt03012001_"

// PostService composes the posts container with the remote key-value API
// and the local store.
//
// Contract:
//   - every operation sets loading on entry, clears the error on entry and
//     clears loading on exit;
//   - a failed operation stores err.Error() in the container and returns err;
//   - local mutations are applied first and are never rolled back.
type PostService interface {
	Create(ctx context.Context, title, content string) (posts.Post, error)
	Update(ctx context.Context, id, title, content string) (posts.Post, error)
	Delete(ctx context.Context, id string) error
	// Pull replaces the local collection with the one stored under key, or
	// under the last pushed key when key is empty.
	Pull(ctx context.Context, key string) ([]posts.Post, error)
	// Push writes the whole collection under a fresh key and returns it.
	Push(ctx context.Context) (string, error)
	// LoadRemotePost reads a single post by its remote key without touching
	// the container. It reports false when nothing is stored there.
	LoadRemotePost(ctx context.Context, key string) (posts.Post, bool, error)
}

type PostServiceOption func(*postService)

// WithKeyGenerators overrides the collection and single-post key generators.
func WithKeyGenerators(collection, post func() string) PostServiceOption {
	return func(s *postService) {
		s.collectionKey = collection
		s.postKey = post
	}
}

// WithClock overrides the time source used when rebuilding pulled posts.
func WithClock(now func() time.Time) PostServiceOption {
	return func(s *postService) { s.now = now }
}

type postService struct {
	store  posts.Store
	remote keyval.Client
	local  kvstore.Repository
	logger logging.Logger

	now           func() time.Time
	collectionKey func() string
	postKey       func() string
}

func NewPostService(store posts.Store, remote keyval.Client, local kvstore.Repository, logger logging.Logger, opts ...PostServiceOption) PostService {
	s := &postService{
		store:         store,
		remote:        remote,
		local:         local,
		logger:        logger,
		now:           time.Now,
		collectionKey: NewCollectionKey,
		postKey:       NewPostKey,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewCollectionKey returns a fresh key for a full-collection write:
// "dnt" followed by a number in [1, 999999] padded to at least four digits.
func NewCollectionKey() string {
	return fmt.Sprintf("dnt%04d", common.RandomIntn(1, 999999))
}

// NewPostKey returns a fresh key for a single-post write.
func NewPostKey() string {
	return PostKeyPrefix + common.RandomHash()
}

// run wraps one sync operation with the loading/error bookkeeping.
func (s *postService) run(ctx context.Context, op string, fn func() error) error {
	s.store.SetLoading(true)
	s.store.ClearError()
	defer s.store.SetLoading(false)

	if err := fn(); err != nil {
		msg := err.Error()
		s.store.SetError(&msg)
		s.logger.Error(ctx, op+" failed", "error", err)
		return err
	}
	return nil
}

func (s *postService) Create(ctx context.Context, title, content string) (posts.Post, error) {
	var created posts.Post
	err := s.run(ctx, "create post", func() error {
		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("%w: title is required", common.ErrValidation)
		}

		var st posts.State
		created, st = s.store.AddPost(title, content)

		key, err := s.pushCollection(ctx, st.Posts)
		if err != nil {
			return err
		}
		s.logger.Info(ctx, "post created", "id", created.ID, "key", key, "count", len(st.Posts))
		return nil
	})
	return created, err
}

func (s *postService) Update(ctx context.Context, id, title, content string) (posts.Post, error) {
	var updated posts.Post
	err := s.run(ctx, "update post", func() error {
		if id == "" {
			return fmt.Errorf("%w: id is required", common.ErrValidation)
		}
		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("%w: title is required", common.ErrValidation)
		}

		st := s.store.UpdatePost(id, title, content)

		var ok bool
		updated, ok = st.Find(id)
		if !ok {
			return fmt.Errorf("post %s: %w", id, common.ErrNotFound)
		}

		b, err := json.Marshal(updated.ToServer())
		if err != nil {
			return fmt.Errorf("%w: encode post: %v", common.ErrSerialization, err)
		}

		key := s.postKey()
		resp, err := s.remote.Set(ctx, key, string(b))
		if err != nil {
			return err
		}
		if resp.Status != common.StatusSuccess {
			return fmt.Errorf("failed to update post in KeyVal: %w: status %q", common.ErrTransport, resp.Status)
		}

		s.logger.Info(ctx, "post updated", "id", id, "key", key)
		return nil
	})
	return updated, err
}

func (s *postService) Delete(ctx context.Context, id string) error {
	return s.run(ctx, "delete post", func() error {
		if id == "" {
			return fmt.Errorf("%w: id is required", common.ErrValidation)
		}

		s.store.DeletePost(id)

		// Remote deletion is an overwrite with the empty value.
		resp, err := s.remote.Set(ctx, PostKeyPrefix+id, "")
		if err != nil {
			return fmt.Errorf("failed to delete post from KeyVal: %w", err)
		}
		if resp.Status != common.StatusSuccess {
			return fmt.Errorf("failed to delete post from KeyVal: %w: status %q", common.ErrTransport, resp.Status)
		}

		s.logger.Info(ctx, "post deleted", "id", id)
		return nil
	})
}

func (s *postService) Pull(ctx context.Context, key string) ([]posts.Post, error) {
	var pulled []posts.Post
	err := s.run(ctx, "pull posts", func() error {
		if key == "" {
			stored, err := s.lastCollectionKey(ctx)
			if err != nil {
				return err
			}
			key = stored
		}

		pulled = []posts.Post{}
		if key != "" {
			list, err := s.fetchCollection(ctx, key)
			if err != nil {
				return err
			}
			pulled = posts.FromServerList(list, s.now())
		}

		s.store.SyncPosts(pulled)
		s.logger.Info(ctx, "posts pulled", "key", key, "count", len(pulled))
		return nil
	})
	return pulled, err
}

func (s *postService) Push(ctx context.Context) (string, error) {
	var key string
	err := s.run(ctx, "push posts", func() error {
		var err error
		key, err = s.pushCollection(ctx, s.store.Snapshot().Posts)
		if err != nil {
			return err
		}
		s.logger.Info(ctx, "posts pushed", "key", key)
		return nil
	})
	return key, err
}

func (s *postService) LoadRemotePost(ctx context.Context, key string) (posts.Post, bool, error) {
	if key == "" {
		return posts.Post{}, false, nil
	}

	resp, err := s.remote.Get(ctx, key)
	if err != nil {
		return posts.Post{}, false, err
	}
	if resp.Status != common.StatusSuccess || resp.Val == "" {
		return posts.Post{}, false, nil
	}

	var sp posts.PostForServer
	if err := json.Unmarshal([]byte(resp.Val), &sp); err != nil {
		return posts.Post{}, false, fmt.Errorf("%w: decode post %s: %v", common.ErrSerialization, key, err)
	}
	return posts.FromServer(sp, s.now()), true, nil
}

// pushCollection writes list under a fresh key and records that key locally.
func (s *postService) pushCollection(ctx context.Context, list []posts.Post) (string, error) {
	b, err := json.Marshal(posts.ToServerList(list))
	if err != nil {
		return "", fmt.Errorf("%w: encode posts: %v", common.ErrSerialization, err)
	}

	key := s.collectionKey()
	resp, err := s.remote.Set(ctx, key, string(b))
	if err != nil {
		return "", err
	}
	if resp.Status != common.StatusSuccess {
		return "", fmt.Errorf("failed to save posts to KeyVal: %w: status %q", common.ErrTransport, resp.Status)
	}

	if err := kvstore.SetJSON(ctx, s.local, kvstore.KeyPosts, key); err != nil {
		return "", fmt.Errorf("failed to record posts key: %w", err)
	}
	return key, nil
}

func (s *postService) lastCollectionKey(ctx context.Context) (string, error) {
	var key string
	if _, err := kvstore.GetJSON(ctx, s.local, kvstore.KeyPosts, &key); err != nil {
		return "", fmt.Errorf("failed to read posts key: %w", err)
	}
	return key, nil
}

func (s *postService) fetchCollection(ctx context.Context, key string) ([]posts.PostForServer, error) {
	resp, err := s.remote.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if resp.Status != common.StatusSuccess || resp.Val == "" {
		return nil, nil
	}

	var list []posts.PostForServer
	if err := json.Unmarshal([]byte(resp.Val), &list); err != nil {
		return nil, fmt.Errorf("%w: decode posts %s: %v", common.ErrSerialization, key, err)
	}
	return list, nil
}
