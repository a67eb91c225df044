package scrapersvc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"
)

const searchBaseURL = "https://www.linkedin.com/jobs/search"

// card is one raw search-result card, before validity filtering.
type card struct {
	Title      string
	Company    string
	Location   string
	URL        string
	DatePosted string
}

// timeFilterParam maps the API's time_filter enum onto the external site's
// query parameter, grounded in the original's get_time_filter_param.
func timeFilterParam(timeFilter string) string {
	switch timeFilter {
	case "24h":
		return "r86400"
	case "1w":
		return "r604800"
	case "1m":
		return "r2592000"
	default:
		return ""
	}
}

// fetchSearchPage fetches and parses one search-results page (25 listings),
// using Colly for the request/response plumbing, grounded in
// jmylchreest-refyne-api's url_discovery.go idiom (a fresh collector per
// call, OnHTML card extraction, OnError capturing the fetch error). Nothing
// is logged here; errors are returned to the caller.
func fetchSearchPage(ctx context.Context, client *resty.Client, limiter *rate.Limiter, title, location, timeFilter string, page int) ([]card, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := buildSearchURL(title, location, timeFilter, page)

	var cards []card
	var fetchErr error

	c := colly.NewCollector()
	c.SetClient(&http.Client{Timeout: 30 * time.Second})

	c.OnHTML("div.base-card", func(e *colly.HTMLElement) {
		titleText := strings.TrimSpace(e.ChildText("h3.base-search-card__title"))
		companyText := strings.TrimSpace(e.ChildText("h4.base-search-card__subtitle"))
		locationText := strings.TrimSpace(e.ChildText("span.job-search-card__location"))
		link := e.ChildAttr("a.base-card__full-link", "href")
		datePosted := e.ChildAttr("time.job-search-card__listdate", "datetime")

		if titleText == "" || companyText == "" {
			return
		}

		cards = append(cards, card{
			Title:      titleText,
			Company:    companyText,
			Location:   locationText,
			URL:        link,
			DatePosted: datePosted,
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(url); err != nil {
		return nil, err
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return cards, nil
}

func buildSearchURL(title, location string, timeFilter string, page int) string {
	start := page * listingsPerPage
	q := url.Values{}
	q.Set("keywords", title)
	q.Set("location", location)
	q.Set("start", fmt.Sprintf("%d", start))
	if tfp := timeFilterParam(timeFilter); tfp != "" {
		q.Set("f_TPR", tfp)
	}
	return searchBaseURL + "?" + q.Encode()
}

// fetchDetailDescription fetches a listing's detail page and extracts the
// full description, trying the primary selector and falling back to a
// secondary one, matching the original's two-selector tolerance.
func fetchDetailDescription(ctx context.Context, client *resty.Client, limiter *rate.Limiter, url string) (string, error) {
	if !strings.HasPrefix(url, "http") {
		return "", fmt.Errorf("invalid detail url: %s", url)
	}
	if err := limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("detail fetch returned status %s", resp.Status())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(doc.Find("section.show-more-less-html > div.show-more-less-html__markup").Text())
	if text == "" {
		text = strings.TrimSpace(doc.Find("div.description__text--rich").Text())
	}
	return text, nil
}
