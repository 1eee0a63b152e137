package profile

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/postkeeper/internal/common"
)

const sampleResponse = `{
  "results": [{
    "gender": "female",
    "name": {"title": "Ms", "first": "Ana", "last": "Silva"},
    "location": {
      "street": {"number": 4129, "name": "Rua Sete"},
      "city": "Porto", "state": "Porto", "country": "Portugal",
      "postcode": 40123
    },
    "email": "ana.silva@example.com",
    "dob": {"date": "1990-05-01T10:00:00.000Z", "age": 35},
    "phone": "(21) 1234-5678",
    "cell": "(21) 9876-5432",
    "picture": {"large": "https://randomuser.me/api/portraits/women/1.jpg"},
    "nat": "PT"
  }],
  "info": {"seed": "abc", "results": 1, "page": 1, "version": "1.4"}
}`

func TestParse_Sample(t *testing.T) {
	p, err := Parse([]byte(sampleResponse))
	require.NoError(t, err)

	assert.Equal(t, &Profile{
		Title:     "Ms",
		FirstName: "Ana",
		LastName:  "Silva",
		Gender:    "female",
		Age:       35,
		Nat:       "PT",
		Email:     "ana.silva@example.com",
		Phone:     "(21) 1234-5678",
		Cell:      "(21) 9876-5432",
		Street:    "4129 Rua Sete",
		City:      "Porto",
		State:     "Porto",
		Country:   "Portugal",
		Postcode:  "40123",
		Picture:   "https://randomuser.me/api/portraits/women/1.jpg",
	}, p)
	assert.Equal(t, "Ms Ana Silva", p.FullName())
}

func TestParse_StringPostcode(t *testing.T) {
	p, err := Parse([]byte(`{"results":[{"location":{"postcode":"EC1A 1BB"}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "EC1A 1BB", p.Postcode)
}

func TestParse_Errors(t *testing.T) {
	for _, body := range []string{`not json`, `{"results":[]}`, `{}`} {
		_, err := Parse([]byte(body))
		require.Error(t, err, body)
		assert.True(t, errors.Is(err, common.ErrSerialization), body)
	}
}

func TestClient_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer ts.Close()

	p, err := NewClient(ts.URL, nil, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.FirstName)
}

func TestClient_Fetch_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, nil, nil).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrTransport))
	assert.Contains(t, err.Error(), "failed to fetch random user")
}
