package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapingParameters_Titles(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "Software Engineer", []string{"Software Engineer"}},
		{"comma separated", "Software Engineer, Data Scientist", []string{"Software Engineer", "Data Scientist"}},
		{"extra whitespace and empties", " Backend Dev ,, , Frontend Dev ", []string{"Backend Dev", "Frontend Dev"}},
		{"empty", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ScrapingParameters{JobTitles: tc.input}
			assert.Equal(t, tc.want, p.Titles())
		})
	}
}

func TestScrapingParameters_Validate(t *testing.T) {
	base := ScrapingParameters{JobTitles: "Engineer", Location: "Remote", MaxJobs: 10}

	require.NoError(t, base.Validate())

	noTitles := base
	noTitles.JobTitles = "   "
	assert.Error(t, noTitles.Validate())

	noLocation := base
	noLocation.Location = ""
	assert.Error(t, noLocation.Validate())

	badFilter := base
	badFilter.TimeFilter = "5y"
	assert.Error(t, badFilter.Validate())

	for _, tf := range []string{"", TimeFilter24h, TimeFilter1w, TimeFilter1m} {
		withFilter := base
		withFilter.TimeFilter = tf
		assert.NoError(t, withFilter.Validate())
	}

	zeroMax := base
	zeroMax.MaxJobs = 0
	assert.Error(t, zeroMax.Validate())
}

func TestScrapingParameters_LLMEnabled(t *testing.T) {
	assert.False(t, ScrapingParameters{}.LLMEnabled())
	assert.False(t, ScrapingParameters{GoogleAPIKey: "  "}.LLMEnabled())
	assert.True(t, ScrapingParameters{GoogleAPIKey: "key-123"}.LLMEnabled())
}

func TestJobListing_ValidForPersistence(t *testing.T) {
	valid := JobListing{Title: "Engineer", Company: "Acme", Location: "Remote"}
	assert.True(t, valid.ValidForPersistence())

	missingTitle := valid
	missingTitle.Title = ""
	assert.False(t, missingTitle.ValidForPersistence())

	missingCompany := valid
	missingCompany.Company = "  "
	assert.False(t, missingCompany.ValidForPersistence())

	missingLocation := valid
	missingLocation.Location = ""
	assert.False(t, missingLocation.ValidForPersistence())
}

func TestJobListing_IdempotencyKey(t *testing.T) {
	a := JobListing{Title: " Software Engineer ", Company: "ACME Corp"}
	b := JobListing{Title: "software engineer", Company: "acme corp"}
	assert.Equal(t, a.IdempotencyKey(), b.IdempotencyKey())
	assert.Equal(t, IdempotencyKey{Title: "software engineer", Company: "acme corp"}, a.IdempotencyKey())
}
