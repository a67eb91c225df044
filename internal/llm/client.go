// Package llm wraps the external generative-language API used for skill
// extraction. The API itself is an explicit black box per SPEC_FULL.md §1:
// this package only adapts requests/responses, carrying no extraction logic
// of its own. Grounded on the Python original's scraper/scraper.py
// extract_skills_with_llm, which degrades to an empty skill list on any
// failure rather than aborting the job.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client extracts skills from a job description. A zero-value Client with
// no API key is valid and always returns an empty skill list — this is how
// the scraper degrades when GOOGLE_API_KEY is absent (SPEC_FULL.md §4.2
// step 2).
type Client struct {
	inner   *openai.Client
	enabled bool
	timeout time.Duration
}

// New builds a Client. If apiKey is empty, the returned Client is disabled
// and ExtractSkills always returns ([], nil) without making any request.
func New(apiKey string, timeout time.Duration) *Client {
	if strings.TrimSpace(apiKey) == "" {
		return &Client{enabled: false, timeout: timeout}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{inner: &c, enabled: true, timeout: timeout}
}

// Enabled reports whether this client will actually call the external API.
func (c *Client) Enabled() bool {
	return c.enabled
}

const skillPrompt = `Extract a JSON array of distinct technical and soft skills mentioned in the job description below. Respond with only the JSON array, nothing else.

Job description:
%s`

// ExtractSkills returns the list of skills mentioned in description, or an
// empty slice if the client is disabled or the call fails in any way
// (SPEC_FULL.md §7, error kind 4: LLM errors are swallowed, never fail the
// job).
func (c *Client) ExtractSkills(ctx context.Context, description string) []string {
	if !c.enabled || strings.TrimSpace(description) == "" {
		return []string{}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.inner.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(fmt.Sprintf(skillPrompt, description)),
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return []string{}
	}

	return parseSkillsJSON(resp.Choices[0].Message.Content)
}

// parseSkillsJSON extracts the first JSON array substring and decodes it,
// matching the original's find('[')/rfind(']') tolerance for chatty model
// output that wraps the array in prose.
func parseSkillsJSON(content string) []string {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return []string{}
	}

	var raw []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return []string{}
	}

	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
