package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/GastonDeS/SportMatch-Back/repositories"
)

// Search pagination defaults. Page is 0-indexed.
const (
	DefaultPage  = 0
	DefaultLimit = 20
)

// ParseEventFilters normalizes the raw /events query parameters into a
// typed filter set. Multi-valued filters (sportId, location, schedule)
// accept a single value or a comma-separated list; a single value becomes a
// one-element list. Malformed values wrap ErrValidationFailed.
func ParseEventFilters(query url.Values) (repositories.EventSearchFilter, error) {
	filter := repositories.EventSearchFilter{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	if raw := strings.TrimSpace(query.Get("sportId")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || id < 1 {
				return filter, fmt.Errorf("%w: sportId must be a positive integer or csv of them", ErrValidationFailed)
			}
			filter.SportIDs = append(filter.SportIDs, id)
		}
	}

	userID, err := optionalPositiveInt(query, "userId")
	if err != nil {
		return filter, err
	}
	filter.UserID = userID

	participantID, err := optionalPositiveInt(query, "participantId")
	if err != nil {
		return filter, err
	}
	filter.ParticipantID = participantID

	if raw := strings.TrimSpace(query.Get("filterOut")); raw != "" {
		filterOut, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			return filter, fmt.Errorf("%w: filterOut must be a boolean", ErrValidationFailed)
		}
		filter.FilterOut = filterOut
	}

	if raw := strings.TrimSpace(query.Get("location")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if location := strings.TrimSpace(part); location != "" {
				filter.Locations = append(filter.Locations, location)
			}
		}
	}

	if raw := strings.TrimSpace(query.Get("expertise")); raw != "" {
		expertise, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			return filter, fmt.Errorf("%w: expertise must be an integer", ErrValidationFailed)
		}
		if expertise < 0 {
			return filter, fmt.Errorf("%w: expertise must not be negative", ErrValidationFailed)
		}
		filter.Expertise = &expertise
	}

	if raw := strings.TrimSpace(query.Get("date")); raw != "" {
		if _, parseErr := time.Parse("2006-01-02", raw); parseErr != nil {
			return filter, fmt.Errorf("%w: date must be formatted YYYY-MM-DD", ErrValidationFailed)
		}
		date := raw
		filter.Date = &date
	}

	// schedule carries the time-of-day buckets: 0 morning, 1 afternoon,
	// 2 evening.
	if raw := strings.TrimSpace(query.Get("schedule")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			bucket, parseErr := strconv.Atoi(strings.TrimSpace(part))
			if parseErr != nil || bucket < repositories.TimeOfDayMorning || bucket > repositories.TimeOfDayEvening {
				return filter, fmt.Errorf("%w: schedule must be a csv of 0, 1 or 2", ErrValidationFailed)
			}
			filter.TimeOfDay = append(filter.TimeOfDay, bucket)
		}
	}

	if raw := strings.TrimSpace(query.Get("page")); raw != "" {
		page, parseErr := strconv.Atoi(raw)
		if parseErr != nil || page < 0 {
			return filter, fmt.Errorf("%w: page must be a non-negative integer", ErrValidationFailed)
		}
		filter.Page = page
	}

	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, parseErr := strconv.Atoi(raw)
		if parseErr != nil || limit < 1 {
			return filter, fmt.Errorf("%w: limit must be a positive integer", ErrValidationFailed)
		}
		filter.Limit = limit
	}

	return filter, nil
}

func optionalPositiveInt(query url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", ErrValidationFailed, name)
	}
	return &value, nil
}
