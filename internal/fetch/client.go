package fetch

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"tapebot/internal/config"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 TaleOfTheTapeBot"

// Client fetches pages from the listing site and hands back parsed
// documents. Failures are expected and non-fatal: callers degrade to
// "no data for this page".
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	client := resty.New()
	client.SetTimeout(cfg.FetchTimeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.5")

	return &Client{
		http:   client,
		logger: logger,
	}
}

func (c *Client) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	c.logger.Debug().Str("url", url).Msg("fetching page")

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", url).Msg("fetch failed")
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.StatusCode() != 200 {
		c.logger.Warn().Int("status", res.StatusCode()).Str("url", url).Msg("unexpected status")
		return nil, fmt.Errorf("fetch %s: status %d", url, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}
