package scraper

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/leadgenie/leadgenie/internal/config"
	"github.com/leadgenie/leadgenie/internal/domain"
)

// subPaths are fetched in addition to the base URL itself.
var subPaths = []string{"/about", "/services", "/contact", "/products"}

// Many sites return 403 for the default Go User-Agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// ProgressFunc is invoked once per completed fetch, in completion order,
// whether or not the fetch produced a page.
type ProgressFunc func(done, total int, url string)

// Scraper fetches a fixed set of pages from a company website and distills
// them into chat context plus mined contact details.
type Scraper struct {
	cfg    config.ScraperConfig
	client *http.Client
	logger *zap.Logger
}

// New creates a scraper from config.
func New(cfg config.ScraperConfig, logger *zap.Logger) *Scraper {
	return &Scraper{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		logger: logger,
	}
}

// NewDefault creates a scraper with the stock settings.
func NewDefault(logger *zap.Logger) *Scraper {
	return New(config.ScraperConfig{
		Workers:          5,
		FetchTimeout:     6 * time.Second,
		MinLineLength:    25,
		MaxLines:         50,
		MaxContentLength: 4000,
		MaxContacts:      3,
	}, logger)
}

// CandidateURLs returns the full fetch set for a base URL, scheme-normalized.
func (s *Scraper) CandidateURLs(baseURL string) []string {
	if !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	urls := make([]string, 0, len(subPaths)+1)
	urls = append(urls, baseURL)
	for _, p := range subPaths {
		urls = append(urls, baseURL+p)
	}
	return urls
}

// ScrapeWebsite fetches the candidate URLs concurrently and returns the kept
// pages in candidate order plus contact info mined from their combined text.
// Individual fetch failures are swallowed; an unreachable site yields an
// empty page list and empty contacts, never an error.
func (s *Scraper) ScrapeWebsite(ctx context.Context, baseURL string, onProgress ProgressFunc) ([]domain.ScrapedPage, domain.ContactInfo) {
	urls := s.CandidateURLs(baseURL)
	results := make([]*domain.ScrapedPage, len(urls))

	type task struct {
		idx int
		url string
	}

	tasks := make(chan task, len(urls))
	for i, u := range urls {
		tasks <- task{idx: i, url: u}
	}
	close(tasks)

	var (
		wg         sync.WaitGroup
		progressMu sync.Mutex
		done       int
	)

	workers := s.cfg.Workers
	if workers > len(urls) {
		workers = len(urls)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				page := s.scrapePage(ctx, t.url)
				results[t.idx] = page

				progressMu.Lock()
				done++
				if onProgress != nil {
					onProgress(done, len(urls), t.url)
				}
				progressMu.Unlock()
			}
		}()
	}
	wg.Wait()

	pages := make([]domain.ScrapedPage, 0, len(urls))
	var allText strings.Builder
	for _, p := range results {
		if p == nil {
			continue
		}
		pages = append(pages, *p)
		allText.WriteString(p.Content)
		allText.WriteString("\n")
	}

	contacts := ExtractContacts(allText.String(), s.cfg.MaxContacts)

	s.logger.Info("scrape complete",
		zap.String("base_url", baseURL),
		zap.Int("pages", len(pages)),
		zap.Int("emails", len(contacts.Emails)),
		zap.Int("phones", len(contacts.Phones)),
	)

	return pages, contacts
}

// scrapePage fetches one URL and extracts its readable text. Any failure
// (network, timeout, non-200, empty extraction) yields nil.
func (s *Scraper) scrapePage(ctx context.Context, url string) *domain.ScrapedPage {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.logger.Debug("building request failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("fetch failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Debug("fetch skipped", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil
	}

	content, err := ExtractText(resp.Body, s.cfg.MinLineLength, s.cfg.MaxLines, s.cfg.MaxContentLength)
	if err != nil || content == "" {
		return nil
	}

	return &domain.ScrapedPage{URL: url, Content: content}
}
