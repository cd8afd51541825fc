package upstream

import (
	"bytes"
	"fmt"
	"strconv"
)

// RawEvent is the provider's event record, decoded as-is
type RawEvent struct {
	ID            string  `json:"id"`
	EventName     string  `json:"eventname"`
	Description   string  `json:"description"`
	StartDate     string  `json:"startdate"`
	EndDate       string  `json:"enddate"`
	Venue         *Venue  `json:"venue"`
	LargeImageURL string  `json:"largeimageurl"`
	Link          string  `json:"link"`
	MinAge        string  `json:"minage"`
	EntryPrice    string  `json:"entryprice"`
	Genres        []Genre `json:"genres"`
}

type Venue struct {
	Name      string  `json:"name"`
	Town      string  `json:"town"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Genre struct {
	GenreID string `json:"genreid"`
	Name    string `json:"name"`
}

// GenreIDs returns the provider genre ids attached to the event
func (e RawEvent) GenreIDs() []string {
	ids := make([]string, 0, len(e.Genres))
	for _, g := range e.Genres {
		ids = append(ids, g.GenreID)
	}
	return ids
}

// Query is one page request against the provider search endpoint
type Query struct {
	Offset   int
	Limit    int
	Order    string
	Keyword  string
	Location string
	MinDate  string // YYYY-MM-DD
	MaxDate  string // YYYY-MM-DD
}

type SearchResult struct {
	Events     []RawEvent
	TotalCount int
}

type searchResponse struct {
	Results    []RawEvent `json:"results"`
	TotalCount totalCount `json:"totalcount"`
}

type detailResponse struct {
	Results *RawEvent `json:"results"`
}

// totalCount accepts the provider's string-encoded count, or a bare number
type totalCount int

func (t *totalCount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*t = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid totalcount %q: %w", s, err)
	}
	*t = totalCount(n)
	return nil
}
