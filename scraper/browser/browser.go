// Package browser renders a marketplace results page in headless Chrome and
// turns its listing cards into models.Listing values.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"car-aggregator/models"
	"car-aggregator/scraper"
	"car-aggregator/utils"
)

const pageTimeout = 90 * time.Second

// Config describes one browser-backed provider.
type Config struct {
	ID scraper.ProviderID
	// SearchURL may contain {make}, {model} and {maxPrice} placeholders.
	SearchURL string
	ChromeBin string
}

// Provider stands in for a marketplace by scraping its rendered results page.
type Provider struct {
	cfg    Config
	logger *utils.Logger
}

// New creates a browser Provider.
func New(cfg Config, logger *utils.Logger) *Provider {
	return &Provider{cfg: cfg, logger: logger}
}

// ID implements scraper.Provider.
func (p *Provider) ID() scraper.ProviderID { return p.cfg.ID }

// card is the raw shape extracted by the in-page script.
type card struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Meta     string `json:"meta"`
	Location string `json:"location"`
	Seller   string `json:"seller"`
	Image    string `json:"image"`
	URL      string `json:"url"`
}

// Search implements scraper.Provider.
func (p *Provider) Search(ctx context.Context, filters models.SearchFilters, maxResults int) ([]models.Listing, error) {
	if maxResults <= 0 {
		return []models.Listing{}, nil
	}

	pageURL := BuildURL(p.cfg.SearchURL, filters)
	chromeBin := p.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	p.logger.Info("[browser] %s rendering %s", p.cfg.ID, pageURL)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, pageTimeout)
	defer cancelRun()

	var cards []card
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(4*time.Second),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(fmt.Sprintf(extractCardsJS, maxResults), &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("browser: %s: %w", p.cfg.ID, err)
	}

	p.logger.Debug("[browser] %s found %d cards", p.cfg.ID, len(cards))

	listings := make([]models.Listing, 0, len(cards))
	for i, c := range cards {
		if len(listings) >= maxResults {
			break
		}
		l, ok := cardToListing(c, p.cfg.ID, i)
		if !ok {
			continue
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// extractCardsJS collects up to %d article-like result cards.
const extractCardsJS = `
(function() {
	var limit = %d;
	var selectors = ['[data-testid="search-listing"]', 'article', 'li[class*="listing"]', 'div[class*="listing-card"]'];
	var cards = [];
	for (var s = 0; s < selectors.length; s++) {
		cards = document.querySelectorAll(selectors[s]);
		if (cards.length > 0) break;
	}
	var text = function(el, sel) {
		var n = el.querySelector(sel);
		return n ? n.innerText.trim() : '';
	};
	var results = [];
	var seen = {};
	for (var i = 0; i < cards.length && results.length < limit; i++) {
		var c = cards[i];
		var link = c.querySelector('a[href]');
		var href = link ? link.href : '';
		if (href && seen[href]) continue;
		seen[href] = true;
		var lines = c.innerText.split('\n').map(function(l) { return l.trim(); }).filter(Boolean);
		var img = c.querySelector('img');
		results.push({
			title:    text(c, 'h2, h3, [data-testid*="title"]') || lines[0] || '',
			price:    lines.find(function(l) { return /£\s*[\d,]+/.test(l); }) || '',
			meta:     lines.filter(function(l) { return /\b(19|20)\d{2}\b|miles/i.test(l); }).join(' | '),
			location: text(c, '[data-testid*="location"], [class*="location"]'),
			seller:   text(c, '[data-testid*="seller"], [class*="seller"]'),
			image:    img ? (img.currentSrc || img.src || '') : '',
			url:      href
		});
	}
	return results;
})()
`

var (
	priceRe   = regexp.MustCompile(`£\s*([\d,]+)`)
	yearRe    = regexp.MustCompile(`\b(19[5-9]\d|20\d{2})\b`)
	mileageRe = regexp.MustCompile(`(?i)([\d,]+)\s*miles`)
	fuelRe    = regexp.MustCompile(`(?i)\b(petrol|diesel|hybrid|electric)\b`)
	gearboxRe = regexp.MustCompile(`(?i)\b(manual|automatic)\b`)
)

// cardToListing converts one extracted card. Cards without a title or a
// parseable price are skipped.
func cardToListing(c card, id scraper.ProviderID, index int) (models.Listing, bool) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return models.Listing{}, false
	}
	m := priceRe.FindStringSubmatch(c.Price)
	if m == nil {
		return models.Listing{}, false
	}
	price, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return models.Listing{}, false
	}

	l := models.Listing{
		ID:         fmt.Sprintf("%s-web-%d", id, index+1),
		Title:      title,
		Price:      price,
		Location:   strings.TrimSpace(c.Location),
		SellerName: strings.TrimSpace(c.Seller),
		ImageURL:   c.Image,
		Features:   []string{},
		URL:        c.URL,
		Source:     string(id),
	}

	meta := title + " | " + c.Meta
	if y := yearRe.FindString(meta); y != "" {
		l.Year, _ = strconv.Atoi(y)
	}
	if mm := mileageRe.FindStringSubmatch(c.Meta); mm != nil {
		if v, err := strconv.Atoi(strings.ReplaceAll(mm[1], ",", "")); err == nil {
			l.Mileage = models.Int(v)
		}
	}
	if f := fuelRe.FindString(meta); f != "" {
		l.FuelType = strings.ToUpper(f[:1]) + strings.ToLower(f[1:])
	}
	if g := gearboxRe.FindString(meta); g != "" {
		l.Transmission = strings.ToUpper(g[:1]) + strings.ToLower(g[1:])
	}
	return l, true
}

// BuildURL fills the {make}, {model} and {maxPrice} placeholders of tmpl.
// Absent values render as empty strings.
func BuildURL(tmpl string, filters models.SearchFilters) string {
	maxPrice := ""
	if filters.MaxPrice != nil {
		maxPrice = strconv.Itoa(*filters.MaxPrice)
	}
	return strings.NewReplacer(
		"{make}", url.QueryEscape(filters.Make),
		"{model}", url.QueryEscape(filters.Model),
		"{maxPrice}", maxPrice,
	).Replace(tmpl)
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	for _, p := range []string{"/usr/bin/chromium", "/snap/bin/chromium", "/opt/google/chrome/google-chrome"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
