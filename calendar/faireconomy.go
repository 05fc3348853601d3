package calendar

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// FairEconomyBaseURL serves the ForexFactory weekly calendar mirror.
	FairEconomyBaseURL = "https://nfs.faireconomy.media"

	weeklyJSONPath = "/ff_calendar_thisweek.json"
	weeklyXMLPath  = "/ff_calendar_thisweek.xml"

	fetchTimeout = 10 * time.Second
)

// NewProvider returns the provider selected by configuration. An empty
// name selects the JSON feed.
func NewProvider(name, baseURL string) (Provider, error) {
	switch name {
	case "", "faireconomy-json":
		return NewFairEconomyJSON(baseURL), nil
	case "faireconomy-xml":
		return NewFairEconomyXML(baseURL), nil
	default:
		return nil, fmt.Errorf("unknown calendar provider %q", name)
	}
}

// FairEconomyJSON fetches the weekly calendar as a JSON array.
type FairEconomyJSON struct {
	baseURL string
	client  *http.Client
}

// NewFairEconomyJSON creates a JSON feed provider. An empty baseURL
// selects the public FairEconomy endpoint.
func NewFairEconomyJSON(baseURL string) *FairEconomyJSON {
	if baseURL == "" {
		baseURL = FairEconomyBaseURL
	}
	return &FairEconomyJSON{
		baseURL: baseURL,
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

func (p *FairEconomyJSON) Name() string { return "faireconomy-json" }

type jsonEvent struct {
	Title    string `json:"title"`
	Country  string `json:"country"`
	Date     string `json:"date"`
	Impact   string `json:"impact"`
	Actual   string `json:"actual"`
	Forecast string `json:"forecast"`
	Previous string `json:"previous"`
}

// FetchRawRecords performs a single GET with no internal retries; the
// refresh loop owns retry policy. The feed covers all currencies, so
// the currency argument is ignored.
func (p *FairEconomyJSON) FetchRawRecords(ctx context.Context, _ string) ([]RawRecord, error) {
	body, err := fetchBody(ctx, p.client, p.baseURL+weeklyJSONPath)
	if err != nil {
		return nil, err
	}

	var feed []jsonEvent
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: decode weekly JSON feed: %v", ErrFormat, err)
	}

	records := make([]RawRecord, 0, len(feed))
	for _, ev := range feed {
		records = append(records, RawRecord{
			Title:    ev.Title,
			Country:  ev.Country,
			Impact:   ev.Impact,
			Date:     ev.Date,
			Actual:   ev.Actual,
			Forecast: ev.Forecast,
			Previous: ev.Previous,
		})
	}
	return records, nil
}

// FairEconomyXML fetches the same weekly calendar in its XML shape,
// where date and time arrive as separate elements and dates use the
// feed's MM-DD-YYYY convention.
type FairEconomyXML struct {
	baseURL string
	client  *http.Client
}

// NewFairEconomyXML creates an XML feed provider. An empty baseURL
// selects the public FairEconomy endpoint.
func NewFairEconomyXML(baseURL string) *FairEconomyXML {
	if baseURL == "" {
		baseURL = FairEconomyBaseURL
	}
	return &FairEconomyXML{
		baseURL: baseURL,
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

func (p *FairEconomyXML) Name() string { return "faireconomy-xml" }

type xmlWeekly struct {
	XMLName xml.Name   `xml:"weeklyevents"`
	Events  []xmlEvent `xml:"event"`
}

type xmlEvent struct {
	Title    string `xml:"title"`
	Country  string `xml:"country"`
	Date     string `xml:"date"`
	Time     string `xml:"time"`
	Impact   string `xml:"impact"`
	Actual   string `xml:"actual"`
	Forecast string `xml:"forecast"`
	Previous string `xml:"previous"`
}

func (p *FairEconomyXML) FetchRawRecords(ctx context.Context, _ string) ([]RawRecord, error) {
	body, err := fetchBody(ctx, p.client, p.baseURL+weeklyXMLPath)
	if err != nil {
		return nil, err
	}

	var weekly xmlWeekly
	if err := xml.Unmarshal(body, &weekly); err != nil {
		return nil, fmt.Errorf("%w: decode weekly XML feed: %v", ErrFormat, err)
	}

	records := make([]RawRecord, 0, len(weekly.Events))
	for _, ev := range weekly.Events {
		records = append(records, RawRecord{
			Title:    ev.Title,
			Country:  ev.Country,
			Impact:   ev.Impact,
			Date:     isoDate(ev.Date),
			Time:     ev.Time,
			Actual:   ev.Actual,
			Forecast: ev.Forecast,
			Previous: ev.Previous,
		})
	}
	return records, nil
}

// isoDate rewrites the XML feed's MM-DD-YYYY dates into the ISO form
// the normalizer understands. Anything else passes through untouched
// and is left for the normalizer to reject.
func isoDate(s string) string {
	t, err := time.Parse("01-02-2006", strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrNetwork, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	return body, nil
}
