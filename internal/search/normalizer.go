package search

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"findmyrave/internal/shared/config"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// Date range shorthands
const (
	DateRangeAll      = "all"
	DateRangeToday    = "today"
	DateRangeTomorrow = "tomorrow"
	DateRangeThisWeek = "this-week"
	DateRangeWeekend  = "weekend"
	DateRangeCustom   = "custom"
)

const PlatformLocal = "local"

// MaxPage bounds page so that provider offsets stay well inside int range
const MaxPage = 10000

// rawQuery mirrors the inbound query string before any defaulting
type rawQuery struct {
	Event      string `query:"event" validate:"max=200"`
	Location   string `query:"location" validate:"max=200"`
	Skip       string `query:"skip" validate:"omitempty,numeric"`
	Limit      string `query:"limit" validate:"omitempty,numeric"`
	Page       string `query:"page" validate:"omitempty,numeric"`
	Platform   string `query:"platform" validate:"omitempty,alphanum,max=32"`
	DateRange  string `query:"dateRange"`
	CustomDate string `query:"customDate" validate:"omitempty,datetime=2006-01-02"`
	MinDate    string `query:"minDate" validate:"omitempty,datetime=2006-01-02"`
	MaxDate    string `query:"maxDate" validate:"omitempty,datetime=2006-01-02"`
	Order      string `query:"order" validate:"omitempty,oneof=date distance trending popularity goingto bestselling"`
	Genre      string `query:"genre" validate:"omitempty,genre"`
}

// Normalizer turns raw query parameters into Filters. It holds no request state.
type Normalizer struct {
	validate        *validator.Validate
	maxPageSize     int
	defaultPageSize int
	defaultPlatform string
}

func NewNormalizer(cfg config.SearchConfig, defaultPlatform string) *Normalizer {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("query")
	})
	if err := v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return IsKnownGenre(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register genre validation: %v", err))
	}

	n := &Normalizer{
		validate:        v,
		maxPageSize:     cfg.MaxPageSize,
		defaultPageSize: cfg.DefaultPageSize,
		defaultPlatform: defaultPlatform,
	}
	if n.maxPageSize <= 0 {
		n.maxPageSize = 24
	}
	if n.defaultPageSize <= 0 || n.defaultPageSize > n.maxPageSize {
		n.defaultPageSize = min(12, n.maxPageSize)
	}
	return n
}

// Normalize validates values and resolves paging and date shorthands against now
func (n *Normalizer) Normalize(values url.Values, now time.Time) (Filters, error) {
	raw := rawQuery{
		Event:      strings.TrimSpace(values.Get("event")),
		Location:   strings.TrimSpace(values.Get("location")),
		Skip:       strings.TrimSpace(values.Get("skip")),
		Limit:      strings.TrimSpace(values.Get("limit")),
		Page:       strings.TrimSpace(values.Get("page")),
		Platform:   strings.ToLower(strings.TrimSpace(values.Get("platform"))),
		DateRange:  strings.ToLower(strings.TrimSpace(values.Get("dateRange"))),
		CustomDate: strings.TrimSpace(values.Get("customDate")),
		MinDate:    strings.TrimSpace(values.Get("minDate")),
		MaxDate:    strings.TrimSpace(values.Get("maxDate")),
		Order:      strings.ToLower(strings.TrimSpace(values.Get("order"))),
		Genre:      strings.ToLower(strings.TrimSpace(values.Get("genre"))),
	}

	if err := n.validate.Struct(raw); err != nil {
		return Filters{}, toValidationError(err)
	}

	pageSize, err := parseOptionalInt("limit", raw.Limit)
	if err != nil {
		return Filters{}, err
	}
	switch {
	case pageSize <= 0:
		pageSize = n.defaultPageSize
	case pageSize > n.maxPageSize:
		pageSize = n.maxPageSize
	}

	page, err := parseOptionalInt("page", raw.Page)
	if err != nil {
		return Filters{}, err
	}
	if raw.Page == "" && raw.Skip != "" {
		skip, err := parseOptionalInt("skip", raw.Skip)
		if err != nil {
			return Filters{}, err
		}
		page = max(skip, 0)/pageSize + 1
		if page > MaxPage {
			return Filters{}, &ValidationError{Field: "skip", Message: fmt.Sprintf("must not reach beyond page %d", MaxPage)}
		}
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		return Filters{}, &ValidationError{Field: "page", Message: fmt.Sprintf("must not exceed %d", MaxPage)}
	}

	f := Filters{
		Keyword:    raw.Event,
		Location:   raw.Location,
		Page:       page,
		PageSize:   pageSize,
		Genre:      raw.Genre,
		DateRange:  raw.DateRange,
		CustomDate: raw.CustomDate,
		Order:      raw.Order,
		Platform:   raw.Platform,
	}
	if f.Genre == "" {
		f.Genre = GenreAll
	}
	if f.Order == "" {
		f.Order = "date"
	}
	if f.Platform == "" {
		f.Platform = n.defaultPlatform
	}

	f.DateRange, f.MinDate, f.MaxDate = resolveDateRange(raw.DateRange, raw.CustomDate, raw.MinDate, raw.MaxDate, now)

	return f, nil
}

// resolveDateRange expands a shorthand into inclusive YYYY-MM-DD bounds.
// Unknown shorthands fall back to "all", which passes explicit bounds through.
func resolveDateRange(dateRange, customDate, minDate, maxDate string, now time.Time) (string, string, string) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := int(today.Weekday())
	day := func(t time.Time) string { return t.Format(dateLayout) }

	switch dateRange {
	case DateRangeToday:
		return dateRange, day(today), day(today)
	case DateRangeTomorrow:
		tomorrow := today.AddDate(0, 0, 1)
		return dateRange, day(tomorrow), day(tomorrow)
	case DateRangeThisWeek:
		saturday := today.AddDate(0, 0, (6-weekday+7)%7)
		return dateRange, day(today), day(saturday)
	case DateRangeWeekend:
		friday := today.AddDate(0, 0, (5-weekday+7)%7)
		return dateRange, day(friday), day(friday.AddDate(0, 0, 2))
	case DateRangeCustom:
		if customDate == "" {
			return dateRange, "", ""
		}
		return dateRange, customDate, customDate
	default:
		return DateRangeAll, minDate, maxDate
	}
}

func parseOptionalInt(field, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: "must be a whole number"}
	}
	return n, nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: "query", Message: err.Error()}
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "numeric":
		msg = "must be numeric"
	case "datetime":
		msg = "must be a date in YYYY-MM-DD format"
	case "oneof":
		msg = "must be one of: " + fe.Param()
	case "genre":
		msg = "must be one of: " + GenreAll + ", " + strings.Join(Genres(), ", ")
	case "max":
		msg = "must be at most " + fe.Param() + " characters"
	default:
		msg = "is invalid"
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}
