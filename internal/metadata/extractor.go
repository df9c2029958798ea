// Package metadata derives page metadata (title, description, favicon) from
// remote URLs using an ordered fallback chain over well-known tags.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"linkdeck/internal/models"
	"linkdeck/internal/validation"
)

// FetchTimeout caps the single outbound request. Fetches are never retried;
// the caller may re-invoke.
const FetchTimeout = 10 * time.Second

// userAgent identifies the extractor to remote servers.
const userAgent = "Mozilla/5.0 (compatible; linkdeck/1.0)"

// ErrInvalidURL marks input that never reaches the network.
var ErrInvalidURL = errors.New("invalid URL")

// FetchError reports a failed page fetch: transport failure, timeout, or a
// non-success HTTP status.
type FetchError struct {
	URL    string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Extractor fetches pages and derives metadata. It is stateless and safe
// for concurrent use.
type Extractor struct {
	client *http.Client
}

// New creates an extractor with the default bounded-timeout client.
func New() *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: FetchTimeout},
	}
}

// candidate is one step of a fallback chain: evaluated in order, the first
// non-empty result wins.
type candidate func(doc *goquery.Document) string

func metaContent(selector string) candidate {
	return func(doc *goquery.Document) string {
		content, _ := doc.Find(selector).First().Attr("content")
		return content
	}
}

func linkHref(selector string) candidate {
	return func(doc *goquery.Document) string {
		href, _ := doc.Find(selector).First().Attr("href")
		return href
	}
}

var (
	titleChain = []candidate{
		metaContent(`meta[property="og:title"]`),
		metaContent(`meta[name="twitter:title"]`),
		func(doc *goquery.Document) string { return doc.Find("title").First().Text() },
	}

	descriptionChain = []candidate{
		metaContent(`meta[property="og:description"]`),
		metaContent(`meta[name="twitter:description"]`),
		metaContent(`meta[name="description"]`),
	}

	faviconChain = []candidate{
		linkHref(`link[rel="apple-touch-icon"]`),
		linkHref(`link[rel="icon"]`),
		linkHref(`link[rel="shortcut icon"]`),
	}
)

// resolve walks a chain and returns the first non-empty value.
func resolve(doc *goquery.Document, chain []candidate) string {
	for _, c := range chain {
		if v := strings.TrimSpace(c(doc)); v != "" {
			return v
		}
	}
	return ""
}

// Extract fetches rawURL and derives its metadata. It returns either a full
// tuple or an error, never a partial result: malformed input yields
// ErrInvalidURL without touching the network, and any fetch problem yields a
// *FetchError.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*models.Metadata, error) {
	if valid, msg := validation.ValidateURL(rawURL); !valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, msg)
	}
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: rawURL, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	title := resolve(doc, titleChain)
	if title == "" {
		title = pageURL.Hostname()
	}

	md := &models.Metadata{
		URL:         pageURL.String(),
		Title:       truncate(title, models.MaxTitleLen),
		Description: truncate(resolve(doc, descriptionChain), models.MaxDescriptionLen),
		Favicon:     resolveFavicon(pageURL, resolve(doc, faviconChain)),
	}
	return md, nil
}

// resolveFavicon turns a (possibly relative) favicon href into an absolute
// URL against the page's origin. Pages that declare nothing get the
// conventional /favicon.ico; hrefs that cannot be resolved fall back to it
// too.
func resolveFavicon(pageURL *url.URL, href string) string {
	origin := &url.URL{Scheme: pageURL.Scheme, Host: pageURL.Host}
	if href == "" {
		href = "/favicon.ico"
	}

	ref, err := url.Parse(href)
	if err != nil {
		return origin.String() + "/favicon.ico"
	}
	return origin.ResolveReference(ref).String()
}

// truncate trims surrounding whitespace and hard-caps the value at max
// runes. Truncation is silent.
func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}
