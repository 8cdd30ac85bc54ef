package services

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"car-aggregator/models"
)

// SummaryPrinter renders a SearchResult as a terminal report.
type SummaryPrinter struct {
	out    io.Writer
	p      *message.Printer
	topN   int
	colour bool
}

// NewSummaryPrinter writes to out (stdout when nil) and lists the first topN listings.
func NewSummaryPrinter(out io.Writer, topN int) *SummaryPrinter {
	colour := false
	if out == nil {
		out = os.Stdout
		colour = true
	}
	return &SummaryPrinter{
		out:    out,
		p:      message.NewPrinter(language.BritishEnglish),
		topN:   topN,
		colour: colour,
	}
}

func (s *SummaryPrinter) style(code, text string) string {
	if !s.colour {
		return text
	}
	return "\033[" + code + "m" + text + "\033[0m"
}

// Pounds formats v as a grouped GBP amount, e.g. £12,495.
func (s *SummaryPrinter) Pounds(v int) string {
	return s.p.Sprintf("£%d", v)
}

func (s *SummaryPrinter) Print(r *models.SearchResult) {
	sep := strings.Repeat("═", 62)
	thin := strings.Repeat("─", 62)
	w := s.out

	fmt.Fprintf(w, "\n%s\n", s.style("1;35", sep))
	fmt.Fprintf(w, "%s\n", s.style("1;35", "  🚗 CAR SEARCH RESULTS"))
	fmt.Fprintf(w, "%s\n\n", s.style("1;35", sep))

	// Overview
	fmt.Fprintf(w, "%s\n", s.style("1;33", "  Overview"))
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Search ID          : %s\n", r.SearchID)
	fmt.Fprintf(w, "  Total listings     : %s\n", s.style("1", fmt.Sprint(r.Summary.TotalListings)))
	fmt.Fprintf(w, "  Platforms searched : %s\n", s.style("1", fmt.Sprintf("%d/%d", r.Summary.PlatformsSearched, len(r.PlatformResults))))
	fmt.Fprintln(w)

	// Price Stats
	fmt.Fprintf(w, "%s\n", s.style("1;33", "  Price Statistics"))
	fmt.Fprintf(w, "  %s\n", thin)
	if r.Summary.AveragePrice > 0 {
		fmt.Fprintf(w, "  Average price : %s\n", s.style("1;32", s.Pounds(r.Summary.AveragePrice)))
		fmt.Fprintf(w, "  Price range   : %s\n", s.style("1;32",
			s.Pounds(r.Summary.PriceRange.Min)+" – "+s.Pounds(r.Summary.PriceRange.Max)))
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	// Platforms
	fmt.Fprintf(w, "%s\n", s.style("1;33", "  Platforms"))
	fmt.Fprintf(w, "  %s\n", thin)
	for _, pr := range r.PlatformResults {
		status := s.style("1;32", "ok")
		detail := fmt.Sprintf("%d listings", len(pr.Listings))
		if !pr.Success {
			status = s.style("1;31", "failed")
			detail = truncate(pr.Error, 36)
		}
		fmt.Fprintf(w, "  %-12s %-8s %6dms  %s\n", pr.Platform, status, pr.SearchTime, detail)
	}
	fmt.Fprintln(w)

	// Top listings
	fmt.Fprintf(w, "%s\n", s.style("1;33", fmt.Sprintf("  Top %d Listings", s.topN)))
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.AllListings) == 0 {
		fmt.Fprintf(w, "  No cars found\n")
	}
	for i, l := range r.AllListings {
		if i >= s.topN {
			break
		}
		fmt.Fprintf(w, "  %s %-36s %9s  %-11s %6.1f\n",
			s.style("1", fmt.Sprintf("%2d.", i+1)), truncate(l.Title, 36), s.Pounds(l.Price), l.Source, l.Score)
	}
	fmt.Fprintln(w)

	if len(r.Summary.TopSources) > 0 {
		fmt.Fprintf(w, "  Top sources : %s\n", strings.Join(r.Summary.TopSources, ", "))
	}

	fmt.Fprintf(w, "\n%s\n\n", s.style("1;35", sep))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
