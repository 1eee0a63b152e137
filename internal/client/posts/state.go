package posts

// State is one immutable snapshot of the container. Posts must not be
// modified by receivers; every mutation publishes a new slice.
type State struct {
	Posts     []Post  `json:"posts"`
	IsLoading bool    `json:"isLoading"`
	Error     *string `json:"error"`
}

// Find returns the post with the given id.
func (s State) Find(id string) (Post, bool) {
	for _, p := range s.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// ErrorMessage returns the current error or "" when there is none.
func (s State) ErrorMessage() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}

func emptyState() State {
	return State{Posts: []Post{}}
}
