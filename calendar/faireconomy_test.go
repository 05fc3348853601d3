package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weeklyJSON = `[
  {"title":"Non-Farm Payrolls","country":"USD","date":"2025-01-17T08:30:00-05:00","impact":"High","forecast":"160K","previous":"227K"},
  {"title":"German Flash PMI","country":"EUR","date":"2025-01-16T03:30:00-05:00","impact":"Medium"}
]`

const weeklyXML = `<?xml version="1.0" encoding="UTF-8"?>
<weeklyevents>
  <event>
    <title>Non-Farm Payrolls</title>
    <country>USD</country>
    <date>01-17-2025</date>
    <time>8:30am</time>
    <impact>High</impact>
    <forecast>160K</forecast>
    <previous>227K</previous>
  </event>
</weeklyevents>`

func TestFairEconomyJSONFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, weeklyJSONPath, r.URL.Path)
		_, _ = w.Write([]byte(weeklyJSON))
	}))
	t.Cleanup(srv.Close)

	p := NewFairEconomyJSON(srv.URL)
	records, err := p.FetchRawRecords(context.Background(), "USD")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Non-Farm Payrolls", records[0].Title)
	assert.Equal(t, "USD", records[0].Country)
	assert.Equal(t, "High", records[0].Impact)
	assert.Equal(t, "2025-01-17T08:30:00-05:00", records[0].Date)
	assert.Equal(t, "160K", records[0].Forecast)
}

func TestFairEconomyXMLFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, weeklyXMLPath, r.URL.Path)
		_, _ = w.Write([]byte(weeklyXML))
	}))
	t.Cleanup(srv.Close)

	p := NewFairEconomyXML(srv.URL)
	records, err := p.FetchRawRecords(context.Background(), "USD")
	require.NoError(t, err)
	require.Len(t, records, 1)

	// The adapter rewrites MM-DD-YYYY into ISO form.
	assert.Equal(t, "2025-01-17", records[0].Date)
	assert.Equal(t, "8:30am", records[0].Time)
	assert.Equal(t, "High", records[0].Impact)
}

func TestFetchClassifiesNetworkErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	p := NewFairEconomyJSON(srv.URL)
	_, err := p.FetchRawRecords(context.Background(), "USD")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetchClassifiesBadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	p := NewFairEconomyJSON(srv.URL)
	_, err := p.FetchRawRecords(context.Background(), "USD")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetchClassifiesFormatErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	t.Cleanup(srv.Close)

	jp := NewFairEconomyJSON(srv.URL)
	_, err := jp.FetchRawRecords(context.Background(), "USD")
	assert.ErrorIs(t, err, ErrFormat)

	xp := NewFairEconomyXML(srv.URL)
	_, err = xp.FetchRawRecords(context.Background(), "USD")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	p, err := NewProvider("", "")
	require.NoError(t, err)
	assert.Equal(t, "faireconomy-json", p.Name())

	p, err = NewProvider("faireconomy-xml", "")
	require.NoError(t, err)
	assert.Equal(t, "faireconomy-xml", p.Name())

	_, err = NewProvider("bloomberg", "")
	assert.Error(t, err)
}
