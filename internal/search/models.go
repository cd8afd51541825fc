package search

// Filters is the canonical, validated form of a search request
type Filters struct {
	Keyword    string
	Location   string
	Page       int
	PageSize   int
	Genre      string // GenreAll or a key of the genre mapping
	DateRange  string
	CustomDate string
	MinDate    string // YYYY-MM-DD, empty for no lower bound
	MaxDate    string // YYYY-MM-DD, empty for no upper bound
	Order      string
	Platform   string
}

// HasGenreFilter reports whether results are filtered client-side by genre
func (f Filters) HasGenreFilter() bool {
	return f.Genre != "" && f.Genre != GenreAll
}

// Event is the normalized shape returned to API consumers
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Location    string   `json:"location"`
	Town        string   `json:"town"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	ImageURL    string   `json:"imageUrl"`
	MinAge      *int     `json:"minAge"`
	EntryPrice  float64  `json:"entryPrice"`
	Genres      []string `json:"genres"`
	Link        string   `json:"link"`
	Platform    string   `json:"platform"`
}

// Pagination totals are exact without a genre filter and estimated with one
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalResults int  `json:"totalResults"`
	HasMore      bool `json:"hasMore"`
}

type Response struct {
	Events     []Event    `json:"events"`
	Pagination Pagination `json:"pagination"`
}

func newPagination(page, pageSize, totalResults int) Pagination {
	totalPages := 1
	if pageSize > 0 {
		totalPages = max(1, ceilDiv(totalResults, pageSize))
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalResults: totalResults,
		HasMore:      page < totalPages,
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
