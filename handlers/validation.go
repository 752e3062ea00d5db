package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query parameter validation is declarative: every endpoint with query
// parameters registers a schema in querySchemas, keyed by "METHOD path".
// Handlers run their schema before touching any service, so malformed input
// never reaches the persistence layer.

type paramKind int

const (
	kindInt paramKind = iota
	kindIntCSV
	kindBool
	kindString
	kindDate // YYYY-MM-DD
	kindEnum
)

type fieldRule struct {
	name     string
	kind     paramKind
	required bool
	min      int      // kindInt / kindIntCSV lower bound
	max      int      // kindIntCSV upper bound, ignored when 0 for kindInt
	enum     []string // kindEnum allowed values
}

type querySchema []fieldRule

var querySchemas = map[string]querySchema{
	"GET /events": {
		{name: "sportId", kind: kindIntCSV, min: 1},
		{name: "userId", kind: kindInt, min: 1},
		{name: "participantId", kind: kindInt, min: 1},
		{name: "filterOut", kind: kindBool},
		{name: "location", kind: kindString},
		{name: "expertise", kind: kindInt},
		{name: "date", kind: kindDate},
		{name: "schedule", kind: kindIntCSV, min: 0, max: 2},
		{name: "page", kind: kindInt, min: 0},
		{name: "limit", kind: kindInt, min: 1},
	},
	"GET /events/{eventId}/owner/participants": {
		{name: "status", kind: kindEnum, enum: []string{"accepted", "pending"}},
	},
	"GET /users": {
		{name: "email", kind: kindString},
	},
}

// validateQuery checks the request's query parameters against the
// endpoint's registered schema and returns one message per failed field.
func validateQuery(endpoint string, query url.Values) map[string]string {
	schema, ok := querySchemas[endpoint]
	if !ok {
		return nil
	}

	failures := make(map[string]string)
	for _, rule := range schema {
		raw := strings.TrimSpace(query.Get(rule.name))
		if raw == "" {
			if rule.required {
				failures[rule.name] = "this parameter is required"
			}
			continue
		}
		if message := rule.check(raw); message != "" {
			failures[rule.name] = message
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return failures
}

func (rule fieldRule) check(raw string) string {
	switch rule.kind {
	case kindInt:
		value, err := strconv.Atoi(raw)
		if err != nil {
			return "must be an integer"
		}
		if value < rule.min {
			return fmt.Sprintf("must be at least %d", rule.min)
		}
	case kindIntCSV:
		for _, part := range strings.Split(raw, ",") {
			value, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return "must be an integer or a comma-separated list of integers"
			}
			if rule.max > 0 && (value < rule.min || value > rule.max) {
				return fmt.Sprintf("values must be between %d and %d", rule.min, rule.max)
			}
			if value < rule.min {
				return fmt.Sprintf("values must be at least %d", rule.min)
			}
		}
	case kindBool:
		if _, err := strconv.ParseBool(raw); err != nil {
			return "must be a boolean"
		}
	case kindDate:
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return "must be formatted YYYY-MM-DD"
		}
	case kindEnum:
		for _, allowed := range rule.enum {
			if raw == allowed {
				return ""
			}
		}
		return fmt.Sprintf("must be one of: %s", strings.Join(rule.enum, ", "))
	}
	return ""
}
