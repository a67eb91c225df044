package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_DisabledWithoutAPIKey(t *testing.T) {
	c := New("", time.Second)
	assert.False(t, c.Enabled())
}

func TestNew_EnabledWithAPIKey(t *testing.T) {
	c := New("sk-test-key", time.Second)
	assert.True(t, c.Enabled())
}

func TestExtractSkills_DisabledClientReturnsEmptySlice(t *testing.T) {
	c := New("", time.Second)
	skills := c.ExtractSkills(context.Background(), "Go, Kubernetes, Terraform")
	assert.Equal(t, []string{}, skills)
}

func TestExtractSkills_EmptyDescriptionReturnsEmptySlice(t *testing.T) {
	c := New("sk-test-key", time.Second)
	skills := c.ExtractSkills(context.Background(), "   ")
	assert.Equal(t, []string{}, skills)
}

func TestParseSkillsJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"bare array", `["Go", "Kubernetes"]`, []string{"Go", "Kubernetes"}},
		{"wrapped in prose", "Here are the skills: [\"Go\", \"SQL\"] hope that helps!", []string{"Go", "SQL"}},
		{"empty strings filtered", `["Go", "", "  "]`, []string{"Go"}},
		{"no brackets", "no skills found", []string{}},
		{"malformed json", `[Go, SQL]`, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseSkillsJSON(tc.in))
		})
	}
}
