package services

import (
	"reflect"
	"testing"

	"car-aggregator/models"
)

func TestDedupKey(t *testing.T) {
	tests := []struct {
		l    models.Listing
		want string
	}{
		{listing("a", "Ford Fiesta Zetec", 6500, 2017, "motors"), "ford fiesta zetec-6500-2017"},
		{listing("b", "FORD FIESTA ZETEC", 6500, 2017, "ebay"), "ford fiesta zetec-6500-2017"},
		{listing("c", "Ford Ka", 900, 0, "gumtree"), "ford ka-900-"},
	}

	for _, tt := range tests {
		if got := DedupKey(tt.l); got != tt.want {
			t.Errorf("DedupKey(%q) = %q; want %q", tt.l.Title, got, tt.want)
		}
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	in := []models.Listing{
		listing("mo-1", "Ford Fiesta Zetec", 6500, 2017, "motors"),
		listing("at-1", "ford fiesta zetec", 6500, 2017, "autotrader"),
		listing("at-2", "Ford Fiesta Zetec", 6500, 2018, "autotrader"),
	}

	out := d.Dedupe(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 listings after deduplication, got %d", len(out))
	}
	if out[0].ID != "mo-1" || out[0].Source != "motors" {
		t.Errorf("expected first occurrence mo-1 to survive, got %s (%s)", out[0].ID, out[0].Source)
	}
	if out[1].ID != "at-2" {
		t.Errorf("expected at-2 to survive, got %s", out[1].ID)
	}
}

func TestDedupeIsIdempotent(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	in := []models.Listing{
		listing("1", "Audi A3 Sport", 12000, 2018, "motors"),
		listing("2", "Audi A3 Sport", 12000, 2018, "ebay"),
		listing("3", "Audi A3 Sport", 12500, 2018, "ebay"),
		listing("4", "Kia Rio", 4000, 0, "gumtree"),
		listing("5", "kia rio", 4000, 0, "ebay"),
	}

	once := d.Dedupe(in)
	twice := d.Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedupe not idempotent:\n once  = %v\n twice = %v", once, twice)
	}
}

func TestDedupeEmptyInput(t *testing.T) {
	d := NewDeduplicator(newTestLogger())
	out := d.Dedupe(nil)
	if out == nil || len(out) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", out)
	}
}
