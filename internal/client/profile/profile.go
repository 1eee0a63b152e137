// Package profile fetches a random user profile from a randomuser.me
// compatible API and keeps the latest one fresh in the background.
package profile

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/logging"
	"github.com/dmitrijs2005/postkeeper/internal/netx"
)

const DefaultURL = "https://randomuser.me/api"

type Profile struct {
	Title     string
	FirstName string
	LastName  string
	Gender    string
	Age       int
	Nat       string
	Email     string
	Phone     string
	Cell      string
	Street    string
	City      string
	State     string
	Country   string
	Postcode  string
	Picture   string
}

func (p Profile) FullName() string {
	if p.Title == "" {
		return p.FirstName + " " + p.LastName
	}
	return p.Title + " " + p.FirstName + " " + p.LastName
}

// Fetcher returns one freshly generated profile.
type Fetcher interface {
	Fetch(ctx context.Context) (*Profile, error)
}

type Client struct {
	url    string
	http   *http.Client
	logger logging.Logger
}

func NewClient(url string, httpClient *http.Client, logger logging.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if httpClient == nil {
		httpClient = netx.New(netx.Config{Logger: logger})
	}
	return &Client{url: url, http: httpClient, logger: logger}
}

func (c *Client) Fetch(ctx context.Context) (*Profile, error) {
	body, err := netx.Get(ctx, c.http, c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch random user: %w", err)
	}
	return Parse(body)
}

// Parse extracts the first result of a randomuser.me response.
func Parse(body []byte) (*Profile, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: random user response is not JSON", common.ErrSerialization)
	}

	r := gjson.GetBytes(body, "results.0")
	if !r.Exists() {
		return nil, fmt.Errorf("%w: random user response has no results", common.ErrSerialization)
	}

	loc := r.Get("location")
	street := loc.Get("street.name").String()
	if n := loc.Get("street.number"); n.Exists() {
		street = n.String() + " " + street
	}

	return &Profile{
		Title:     r.Get("name.title").String(),
		FirstName: r.Get("name.first").String(),
		LastName:  r.Get("name.last").String(),
		Gender:    r.Get("gender").String(),
		Age:       int(r.Get("dob.age").Int()),
		Nat:       r.Get("nat").String(),
		Email:     r.Get("email").String(),
		Phone:     r.Get("phone").String(),
		Cell:      r.Get("cell").String(),
		Street:    street,
		City:      loc.Get("city").String(),
		State:     loc.Get("state").String(),
		Country:   loc.Get("country").String(),
		// postcode is a number for some nationalities and a string for others
		Postcode: loc.Get("postcode").String(),
		Picture:  r.Get("picture.large").String(),
	}, nil
}
