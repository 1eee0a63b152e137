package posts

import "time"

// Post is a user-created post as held locally.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostForServer is the wire projection of Post; timestamps are not sent.
type PostForServer struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (p Post) ToServer() PostForServer {
	return PostForServer{ID: p.ID, Title: p.Title, Content: p.Content}
}

// FromServer rebuilds a Post from its wire form. Original timestamps are
// not transmitted, so both are set to now.
func FromServer(sp PostForServer, now time.Time) Post {
	return Post{
		ID:        sp.ID,
		Title:     sp.Title,
		Content:   sp.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ToServerList(posts []Post) []PostForServer {
	out := make([]PostForServer, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ToServer())
	}
	return out
}

func FromServerList(list []PostForServer, now time.Time) []Post {
	out := make([]Post, 0, len(list))
	for _, sp := range list {
		out = append(out, FromServer(sp, now))
	}
	return out
}
