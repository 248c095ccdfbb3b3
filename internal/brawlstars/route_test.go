package brawlstars

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoute(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		path  string
		query url.Values
		want  string
	}{
		{
			name: "default base",
			path: "/brawlers",
			want: DefaultBaseURL + "/brawlers",
		},
		{
			name: "missing slash is added",
			base: "https://example.com/v1",
			path: "events/rotation",
			want: "https://example.com/v1/events/rotation",
		},
		{
			name: "trailing slash on base",
			base: "https://example.com/v1/",
			path: "/brawlers",
			want: "https://example.com/v1/brawlers",
		},
		{
			name:  "query is encoded and sorted",
			base:  "https://example.com",
			path:  "/rankings/global/players",
			query: url.Values{"limit": {"10"}, "after": {"a b"}},
			want:  "https://example.com/rankings/global/players?after=a+b&limit=10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRoute(tt.base, tt.path, tt.query)
			assert.Equal(t, tt.want, r.URL())
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestRoute_Immutable(t *testing.T) {
	base := NewRoute("https://example.com", "/", nil)

	players := base.WithPath("/players/2PP")
	limited := players.WithQuery("limit", "5")

	assert.Equal(t, "https://example.com/", base.URL())
	assert.Equal(t, "https://example.com/players/2PP", players.URL())
	assert.Equal(t, "https://example.com/players/2PP?limit=5", limited.URL())
	assert.Equal(t, "https://example.com", limited.Base())
	assert.Equal(t, "/players/2PP", limited.Path())
}

func TestRoute_QueryOrderCanonical(t *testing.T) {
	a := NewRoute("https://example.com", "/x", nil).WithQuery("b", "2").WithQuery("a", "1")
	b := NewRoute("https://example.com", "/x", nil).WithQuery("a", "1").WithQuery("b", "2")

	assert.Equal(t, a.URL(), b.URL())
}

func TestRoute_CopiesQuery(t *testing.T) {
	q := url.Values{"limit": {"1"}}
	r := NewRoute("https://example.com", "/x", q)

	q.Set("limit", "99")

	assert.Equal(t, "https://example.com/x?limit=1", r.URL())
}
