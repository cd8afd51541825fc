package search

import (
	"regexp"
	"strconv"

	"findmyrave/internal/upstream"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Shape converts a provider record into an Event. A record without a venue
// cannot be placed and fails with *ShapingError.
func Shape(raw upstream.RawEvent, platform string) (Event, error) {
	if raw.Venue == nil {
		return Event{}, &ShapingError{EventID: raw.ID, Reason: "missing venue"}
	}

	endDate := raw.EndDate
	if endDate == "" {
		endDate = raw.StartDate
	}

	return Event{
		ID:          raw.ID,
		Title:       raw.EventName,
		Description: raw.Description,
		StartDate:   raw.StartDate,
		EndDate:     endDate,
		Location:    raw.Venue.Name,
		Town:        raw.Venue.Town,
		Latitude:    raw.Venue.Latitude,
		Longitude:   raw.Venue.Longitude,
		ImageURL:    raw.LargeImageURL,
		MinAge:      parseMinAge(raw.MinAge),
		EntryPrice:  parsePrice(raw.EntryPrice),
		Genres:      Classify(raw.GenreIDs()),
		Link:        raw.Link,
		Platform:    platform,
	}, nil
}

// ShapeAll shapes a batch, failing on the first bad record
func ShapeAll(batch []upstream.RawEvent, platform string) ([]Event, error) {
	events := make([]Event, 0, len(batch))
	for _, raw := range batch {
		event, err := Shape(raw, platform)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// parseMinAge reads "18", "18+" or "Over 18s"; anything else is unknown
func parseMinAge(s string) *int {
	match := numberPattern.FindString(s)
	if match == "" {
		return nil
	}
	age, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &age
}

// parsePrice takes the first amount in strings like "£10.00" or "£8 - £12"
func parsePrice(s string) float64 {
	match := numberPattern.FindString(s)
	if match == "" {
		return 0
	}
	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return price
}
