package scrapersvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeFilterParam(t *testing.T) {
	cases := map[string]string{
		"24h": "r86400",
		"1w":  "r604800",
		"1m":  "r2592000",
		"":    "",
		"5y":  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, timeFilterParam(in))
	}
}

func TestBuildSearchURL(t *testing.T) {
	got := buildSearchURL("Software Engineer", "Remote", "24h", 2)
	assert.Contains(t, got, "keywords=Software+Engineer")
	assert.Contains(t, got, "location=Remote")
	assert.Contains(t, got, "start=50") // page 2 * listingsPerPage(25)
	assert.Contains(t, got, "f_TPR=r86400")
}

func TestBuildSearchURL_NoTimeFilter(t *testing.T) {
	got := buildSearchURL("Engineer", "NYC", "", 0)
	assert.Contains(t, got, "start=0")
	assert.NotContains(t, got, "f_TPR")
}
