package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/supplysift/supplysift/internal/config"
	"github.com/supplysift/supplysift/internal/extract"
	"github.com/supplysift/supplysift/internal/types"
)

// BrowserFetcher implements Fetcher with a headless browser via Rod. Beyond
// rendering script-driven markup, it walks the page's variation dropdowns and
// records the displayed price after each selection, producing the dynamic
// price observations the variant resolver consumes.
type BrowserFetcher struct {
	cfg    *config.BrowserConfig
	ua     string
	logger *slog.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// NewBrowserFetcher creates the dynamic fetcher. The browser itself launches
// lazily on first use so static-only runs never pay the Chromium startup cost.
func NewBrowserFetcher(cfg *config.BrowserConfig, userAgent string, logger *slog.Logger) *BrowserFetcher {
	return &BrowserFetcher{
		cfg:    cfg,
		ua:     userAgent,
		logger: logger.With("component", "browser_fetcher"),
	}
}

// Fetch renders the page and probes its variation dropdowns for per-option
// prices. Each call runs in its own page so concurrent requests never share
// DOM state.
func (bf *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (*types.FetchResult, error) {
	if err := validateURL(pageURL); err != nil {
		return nil, err
	}

	browser, err := bf.ensureBrowser()
	if err != nil {
		return nil, &types.FetchError{URL: pageURL, Err: err}
	}

	page, err := bf.newPage(browser)
	if err != nil {
		return nil, &types.FetchError{URL: pageURL, Err: fmt.Errorf("open page: %w", err)}
	}
	defer page.Close()
	page = page.Context(ctx).Timeout(bf.cfg.PageTimeout)

	if bf.ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: bf.ua}); err != nil {
			bf.logger.Warn("failed to set user agent", "error", err)
		}
	}

	start := time.Now()
	if err := page.Navigate(pageURL); err != nil {
		return nil, &types.FetchError{URL: pageURL, Err: err}
	}
	if err := page.WaitLoad(); err != nil {
		bf.logger.Warn("page load wait failed, continuing", "url", pageURL, "error", err)
	}
	// Commerce platforms render price and variation widgets after load.
	time.Sleep(bf.cfg.SettleDelay)

	observations := bf.probeVariations(page, pageURL)

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: pageURL, Err: err}
	}
	if strings.TrimSpace(html) == "" {
		return nil, &types.FetchError{URL: pageURL, Err: types.ErrEmptyResponse}
	}

	finalURL := pageURL
	if info, err := page.Info(); err == nil && info != nil {
		finalURL = info.URL
	}

	duration := time.Since(start)
	bf.logger.Debug("browser fetch complete",
		"url", pageURL,
		"final_url", finalURL,
		"size", len(html),
		"observations", len(observations),
		"duration", duration,
	)

	return &types.FetchResult{
		URL:           pageURL,
		FinalURL:      finalURL,
		StatusCode:    200,
		Body:          html,
		FetchDuration: duration,
		FetchedAt:     start,
		Observations:  observations,
	}, nil
}

// Close shuts down the browser if it was launched.
func (bf *BrowserFetcher) Close() error {
	bf.mu.Lock()
	defer bf.mu.Unlock()
	if bf.browser != nil {
		err := bf.browser.Close()
		bf.browser = nil
		return err
	}
	return nil
}

// Type returns the fetcher type identifier.
func (bf *BrowserFetcher) Type() string {
	return "browser"
}

func (bf *BrowserFetcher) ensureBrowser() (*rod.Browser, error) {
	bf.mu.Lock()
	defer bf.mu.Unlock()
	if bf.browser != nil {
		return bf.browser, nil
	}

	launchURL, err := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	bf.browser = browser
	bf.logger.Info("browser ready", "stealth", bf.cfg.Stealth)
	return browser, nil
}

func (bf *BrowserFetcher) newPage(browser *rod.Browser) (*rod.Page, error) {
	if bf.cfg.Stealth {
		return stealth.Page(browser)
	}
	return browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
}

// selectExcludeKeywords reject dropdowns that pick quantity, shipping, or
// anything else that is not a product variation.
var selectExcludeKeywords = []string{
	"qty", "quantity", "shipping", "delivery", "location", "postcode",
	"zip", "state", "country", "warranty", "payment", "currency", "sort",
}

// observePriceSelectors, in priority order, locate the live price element
// after a variation is selected.
var observePriceSelectors = []string{
	".woocommerce-variation-price .amount",
	".single_variation .amount",
	"[itemprop=price]",
	".product-price .amount",
	".price ins .amount",
	".price .amount",
	".product-price",
	".price",
}

// probeVariations walks every variation dropdown on the page, selects each of
// its options in turn, and records the price displayed after the page reacts.
// Probe failures degrade to fewer observations, never to a fetch error.
func (bf *BrowserFetcher) probeVariations(page *rod.Page, pageURL string) []types.PriceObservation {
	var observations []types.PriceObservation

	selects, err := page.Elements("select")
	if err != nil {
		return nil
	}

	for _, sel := range selects {
		if !isVariationSelect(sel) {
			continue
		}

		options, err := sel.Elements("option")
		if err != nil {
			continue
		}
		for _, opt := range options {
			value := attrValue(opt, "value")
			label, _ := opt.Text()
			label = strings.TrimSpace(label)
			if value == "" || isPlaceholderLabel(label) {
				continue
			}

			if err := sel.Select([]string{fmt.Sprintf(`option[value=%q]`, value)}, true, rod.SelectorTypeCSSSector); err != nil {
				bf.logger.Warn("variation select failed",
					"url", pageURL,
					"value", value,
					"error", err,
				)
				continue
			}
			// Give the page's scripts time to swap the displayed price.
			time.Sleep(bf.cfg.SelectionDelay)

			if price, ok := bf.readDisplayedPrice(page); ok {
				observations = append(observations, types.PriceObservation{
					Value: value,
					Label: label,
					Price: price,
				})
			}
		}
	}

	return observations
}

func (bf *BrowserFetcher) readDisplayedPrice(page *rod.Page) (float64, bool) {
	for _, selector := range observePriceSelectors {
		has, el, err := page.Has(selector)
		if err != nil || !has {
			continue
		}
		text, err := el.Text()
		if err != nil {
			continue
		}
		if price, ok := extract.ParseMoney(text); ok {
			return price, true
		}
	}
	return 0, false
}

func isVariationSelect(sel *rod.Element) bool {
	identity := strings.ToLower(
		attrValue(sel, "id") + " " + attrValue(sel, "name") + " " + attrValue(sel, "class"),
	)
	for _, kw := range selectExcludeKeywords {
		if strings.Contains(identity, kw) {
			return false
		}
	}
	return true
}

func isPlaceholderLabel(label string) bool {
	lower := strings.ToLower(label)
	return lower == "" || strings.HasPrefix(lower, "select") || strings.HasPrefix(lower, "choose") ||
		strings.HasPrefix(lower, "--")
}

func attrValue(el *rod.Element, name string) string {
	v, err := el.Attribute(name)
	if err != nil || v == nil {
		return ""
	}
	return *v
}
