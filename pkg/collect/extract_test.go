package collect

import (
	"strings"
	"testing"
)

const productHTML = `<!DOCTYPE html>
<html>
<head>
<title>Laptop Store - Best Deals</title>
<meta name="description" content="Compare laptop prices and specs">
<script>trackVisit();</script>
<style>.price { color: red; }</style>
</head>
<body>
<h1>Featured Laptops</h1>
<div class="product">
  <h2 class="name">UltraBook Pro 14</h2>
  <span class="price">$1,299.99</span>
  <span class="brand">TechCorp</span>
  <p class="specs">16GB RAM, 512GB SSD</p>
  <span class="rating">4.5/5</span>
</div>
<div class="product">
  <h2 class="name">Basic Laptop 15</h2>
  <span class="price">$549.00</span>
  <span class="brand">ValueTech</span>
  <p class="specs">8GB RAM, 256GB SSD</p>
  <span class="rating">4.1/5</span>
</div>
</body>
</html>`

func TestExtract(t *testing.T) {
	extractor := NewExtractor(0)
	page := &Page{URL: "https://shop.example.com/laptops", HTML: productHTML}

	extracted, err := extractor.Extract(page)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if extracted.Title != "Laptop Store - Best Deals" {
		t.Errorf("unexpected title: %q", extracted.Title)
	}
	if extracted.Description != "Compare laptop prices and specs" {
		t.Errorf("unexpected description: %q", extracted.Description)
	}
	if !strings.Contains(extracted.Text, "UltraBook Pro 14") {
		t.Errorf("expected product name in text: %q", extracted.Text)
	}
	if strings.Contains(extracted.Text, "trackVisit") {
		t.Error("script content should be removed")
	}
	if strings.Contains(extracted.Text, "color: red") {
		t.Error("style content should be removed")
	}
	if extracted.Truncated {
		t.Error("small page should not be truncated")
	}
}

func TestExtract_Truncation(t *testing.T) {
	extractor := NewExtractor(50)
	page := &Page{URL: "https://example.com", HTML: "<html><body><p>" + strings.Repeat("word ", 100) + "</p></body></html>"}

	extracted, err := extractor.Extract(page)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !extracted.Truncated {
		t.Error("expected truncation for long page")
	}
	if !strings.HasSuffix(extracted.Text, "...") {
		t.Errorf("expected ellipsis at end of truncated text: %q", extracted.Text)
	}
}

func TestExtract_BlockBoundaries(t *testing.T) {
	extractor := NewExtractor(0)
	page := &Page{URL: "https://example.com", HTML: "<html><body><p>first</p><p>second</p></body></html>"}

	extracted, err := extractor.Extract(page)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(extracted.Text, "first\n") {
		t.Errorf("expected newline after block element: %q", extracted.Text)
	}
}

func TestExtractedMarkdown(t *testing.T) {
	extracted := &Extracted{
		URL:         "https://example.com/page",
		Title:       "Page Title",
		Description: "A page about things",
		Text:        "Body content here",
	}

	md := extracted.Markdown()
	if !strings.HasPrefix(md, "# Page Title\n") {
		t.Errorf("expected title heading, got %q", md)
	}
	if !strings.Contains(md, "Source: https://example.com/page") {
		t.Errorf("expected source line, got %q", md)
	}
	if !strings.Contains(md, "Body content here") {
		t.Errorf("expected body text, got %q", md)
	}
}

func TestExtractRecords(t *testing.T) {
	extractor := NewExtractor(0)
	page := &Page{URL: "https://shop.example.com/laptops", HTML: productHTML}

	records, err := extractor.ExtractRecords(page, RecordSelector{
		Container: Selector{Tag: "div", Class: "product"},
		Fields: map[string]Selector{
			"name":   {Class: "name"},
			"price":  {Class: "price"},
			"brand":  {Class: "brand"},
			"specs":  {Class: "specs"},
			"rating": {Class: "rating"},
		},
	})
	if err != nil {
		t.Fatalf("ExtractRecords failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Get("name") != "UltraBook Pro 14" {
		t.Errorf("unexpected name: %q", first.Get("name"))
	}
	if first.Get("price") != "$1,299.99" {
		t.Errorf("unexpected price: %q", first.Get("price"))
	}
	if first.Source != "https://shop.example.com/laptops" {
		t.Errorf("unexpected source: %q", first.Source)
	}

	second := records[1]
	if second.Get("brand") != "ValueTech" {
		t.Errorf("unexpected brand: %q", second.Get("brand"))
	}
}

func TestExtractRecords_NoMatches(t *testing.T) {
	extractor := NewExtractor(0)
	page := &Page{URL: "https://example.com", HTML: "<html><body><p>nothing here</p></body></html>"}

	records, err := extractor.ExtractRecords(page, RecordSelector{
		Container: Selector{Class: "product"},
	})
	if err != nil {
		t.Fatalf("ExtractRecords failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestExtractRecords_MissingFields(t *testing.T) {
	extractor := NewExtractor(0)
	page := &Page{URL: "https://example.com", HTML: `<html><body><div class="product"><span class="name">Bare Item</span></div></body></html>`}

	records, err := extractor.ExtractRecords(page, RecordSelector{
		Container: Selector{Class: "product"},
		Fields: map[string]Selector{
			"name":  {Class: "name"},
			"price": {Class: "price"},
		},
	})
	if err != nil {
		t.Fatalf("ExtractRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Get("name") != "Bare Item" {
		t.Errorf("unexpected name: %q", records[0].Get("name"))
	}
	if records[0].Has("price") {
		t.Error("expected missing price field to be absent")
	}
}
