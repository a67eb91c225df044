package gatewaysvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTP200Bucket(t *testing.T) {
	cases := map[int]string{
		200: "2xx",
		201: "2xx",
		301: "3xx",
		404: "4xx",
		422: "4xx",
		429: "4xx",
		500: "5xx",
		503: "5xx",
	}
	for status, want := range cases {
		assert.Equal(t, want, http200Bucket(status))
	}
}
