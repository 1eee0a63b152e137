package posts

import (
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/postkeeper/internal/common"
)

// Listener receives the snapshot produced by a mutation. It runs
// synchronously on the mutating goroutine and must not mutate the store.
type Listener func(State)

// Store is the posts state container.
//
// UpdatePost on an unknown id leaves the posts untouched but still clears
// the error. DeletePost is idempotent. SetError(nil) is equivalent to
// ClearError.
type Store interface {
	Snapshot() State
	Subscribe(fn Listener) (unsubscribe func())

	AddPost(title, content string) (Post, State)
	UpdatePost(id, title, content string) State
	DeletePost(id string) State
	SyncPosts(posts []Post) State
	ClearPosts() State

	SetLoading(loading bool) State
	SetError(msg *string) State
	ClearError() State
}

type Option func(*MemoryStore)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// WithIDGenerator overrides the post id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemoryStore) { s.newID = gen }
}

// WithState sets the initial state, typically the result of Restore.
func WithState(st State) Option {
	return func(s *MemoryStore) {
		if st.Posts == nil {
			st.Posts = []Post{}
		}
		s.state = st
	}
}

type subscriber struct {
	id int
	fn Listener
}

// MemoryStore is the Store implementation.
type MemoryStore struct {
	// emitMu orders mutation+notification pairs; mu guards state only, so
	// listeners may call Snapshot.
	emitMu sync.Mutex
	mu     sync.RWMutex

	state  State
	subs   []subscriber
	nextID int

	now   func() time.Time
	newID func() string
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		state: emptyState(),
		now:   time.Now,
		newID: common.RandomHash,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *MemoryStore) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *MemoryStore) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subs = slices.DeleteFunc(slices.Clone(s.subs), func(sub subscriber) bool {
				return sub.id == id
			})
		})
	}
}

// apply runs fn on a copy of the current state, publishes the result and
// notifies subscribers.
func (s *MemoryStore) apply(fn func(st *State)) State {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	next := s.state
	fn(&next)
	s.state = next
	subs := s.subs
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
	return next
}

func (s *MemoryStore) AddPost(title, content string) (Post, State) {
	var created Post
	st := s.apply(func(st *State) {
		now := s.now()
		created = Post{
			ID:        s.newID(),
			Title:     title,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		st.Posts = append(slices.Clip(st.Posts), created)
		st.Error = nil
	})
	return created, st
}

func (s *MemoryStore) UpdatePost(id, title, content string) State {
	return s.apply(func(st *State) {
		idx := slices.IndexFunc(st.Posts, func(p Post) bool { return p.ID == id })
		if idx >= 0 {
			posts := slices.Clone(st.Posts)
			p := posts[idx]
			p.Title = title
			p.Content = content
			p.UpdatedAt = s.later(p.UpdatedAt)
			posts[idx] = p
			st.Posts = posts
		}
		st.Error = nil
	})
}

// later returns the current time, nudged past prev when the clock has not
// advanced (coarse clocks, fast successive updates).
func (s *MemoryStore) later(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func (s *MemoryStore) DeletePost(id string) State {
	return s.apply(func(st *State) {
		st.Posts = slices.DeleteFunc(slices.Clone(st.Posts), func(p Post) bool { return p.ID == id })
		st.Error = nil
	})
}

func (s *MemoryStore) SyncPosts(posts []Post) State {
	return s.apply(func(st *State) {
		if posts == nil {
			st.Posts = []Post{}
		} else {
			st.Posts = slices.Clone(posts)
		}
		st.Error = nil
	})
}

func (s *MemoryStore) ClearPosts() State {
	return s.apply(func(st *State) {
		st.Posts = []Post{}
		st.Error = nil
	})
}

func (s *MemoryStore) SetLoading(loading bool) State {
	return s.apply(func(st *State) { st.IsLoading = loading })
}

func (s *MemoryStore) SetError(msg *string) State {
	if msg != nil {
		m := *msg
		msg = &m
	}
	return s.apply(func(st *State) { st.Error = msg })
}

func (s *MemoryStore) ClearError() State {
	return s.apply(func(st *State) { st.Error = nil })
}
