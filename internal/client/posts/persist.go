package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postkeeper/internal/client/kvstore"
	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/logging"
)

// StorageName is the local store entry holding the posts snapshot.
const StorageName = "posts-storage"

// snapshotVersion is written with every snapshot; it is not checked on load.
const snapshotVersion = 0

// Persister saves and loads container snapshots.
type Persister interface {
	Save(ctx context.Context, st State) error
	// Load reports false when nothing has been saved yet.
	Load(ctx context.Context) (State, bool, error)
}

type envelope struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// KVPersister keeps the snapshot in a kvstore.Repository.
type KVPersister struct {
	repo kvstore.Repository
	name string
}

func NewKVPersister(repo kvstore.Repository) *KVPersister {
	return &KVPersister{repo: repo, name: StorageName}
}

func (p *KVPersister) Save(ctx context.Context, st State) error {
	b, err := json.Marshal(envelope{State: st, Version: snapshotVersion})
	if err != nil {
		return fmt.Errorf("%w: encode posts snapshot: %v", common.ErrSerialization, err)
	}
	if err := p.repo.Set(ctx, p.name, string(b)); err != nil {
		return fmt.Errorf("save posts snapshot: %w", err)
	}
	return nil
}

func (p *KVPersister) Load(ctx context.Context) (State, bool, error) {
	raw, ok, err := p.repo.Get(ctx, p.name)
	if err != nil {
		return State{}, false, fmt.Errorf("load posts snapshot: %w", err)
	}
	if !ok || raw == "" {
		return emptyState(), false, nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return State{}, false, fmt.Errorf("%w: decode posts snapshot: %v", common.ErrSerialization, err)
	}
	if env.State.Posts == nil {
		env.State.Posts = []Post{}
	}
	return env.State, true, nil
}

// Restore returns the persisted state, or the empty state when nothing was
// saved. A corrupt snapshot is logged and replaced by the empty state.
func Restore(ctx context.Context, p Persister, logger logging.Logger) (State, error) {
	st, ok, err := p.Load(ctx)
	if err != nil {
		if errors.Is(err, common.ErrSerialization) {
			logger.Warn(ctx, "discarding unreadable posts snapshot", "error", err)
			return emptyState(), nil
		}
		return State{}, err
	}
	if !ok {
		return emptyState(), nil
	}
	// No operation survives a restart.
	st.IsLoading = false
	logger.Debug(ctx, "posts snapshot restored", "count", len(st.Posts))
	return st, nil
}

// Bind saves every snapshot published by s through p. Save failures are
// logged; they do not affect the in-memory state. Saves keep running after
// ctx is cancelled so the final snapshots of a shutdown are still written.
func Bind(ctx context.Context, s Store, p Persister, logger logging.Logger) (unbind func()) {
	ctx = context.WithoutCancel(ctx)
	return s.Subscribe(func(st State) {
		if err := p.Save(ctx, st); err != nil {
			logger.Error(ctx, "failed to persist posts snapshot", "error", err)
		}
	})
}

// Open restores the persisted state into a new MemoryStore and binds it
// to p.
func Open(ctx context.Context, p Persister, logger logging.Logger, opts ...Option) (*MemoryStore, func(), error) {
	st, err := Restore(ctx, p, logger)
	if err != nil {
		return nil, nil, err
	}
	s := NewMemoryStore(append(opts, WithState(st))...)
	return s, Bind(ctx, s, p, logger), nil
}
