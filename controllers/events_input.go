package controllers

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/eventhive/eventhive-go/models"
)

// parseEventDate accepts RFC3339 plus a few date-only layouts.
func parseEventDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err == nil {
		return parsed, nil
	}

	layouts := []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if t, e := time.Parse(layout, raw); e == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format, use RFC3339 or YYYY-MM-DD")
}

// validateDateOrder enforces registrationDeadline <= startDate <= endDate.
func validateDateOrder(regDeadline, start, end time.Time) error {
	if regDeadline.After(start) {
		return fmt.Errorf("Registration deadline must be before event start date")
	}
	if end.Before(start) {
		return fmt.Errorf("End date cannot be before start date")
	}
	return nil
}

// decodeContactInfo decodes the JSON-encoded contactInfo form field. The
// payload arrives as a string inside multipart form data, so it is decoded
// once here at the boundary and rejected before any persistence attempt.
func decodeContactInfo(raw string) (models.ContactInfo, error) {
	var info models.ContactInfo
	if strings.TrimSpace(raw) == "" {
		return info, nil
	}
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return info, fmt.Errorf("contactInfo must be a valid JSON object")
	}
	return info, nil
}

// mergeContactInfo overlays non-empty incoming contact fields on the existing
// ones. Fields the caller left blank keep their stored values, so a partial
// contact update cannot erase the phone number an event was created with.
func mergeContactInfo(existing, incoming models.ContactInfo) models.ContactInfo {
	merged := existing
	if strings.TrimSpace(incoming.Name) != "" {
		merged.Name = incoming.Name
	}
	if strings.TrimSpace(incoming.Email) != "" {
		merged.Email = incoming.Email
	}
	if strings.TrimSpace(incoming.Phone) != "" {
		merged.Phone = incoming.Phone
	}
	return merged
}

// decodeRules decodes the JSON-encoded rules form field into an ordered list.
func decodeRules(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var rules []string
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return nil, fmt.Errorf("rules must be a valid JSON array of strings")
	}
	for i, rule := range rules {
		rules[i] = strings.TrimSpace(rule)
	}
	return rules, nil
}

type eventFilterQuery struct {
	Category  string `form:"category"`
	Status    string `form:"status"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Search    string `form:"search"`
}

// buildEventFilter translates query parameters into a Mongo filter. A non-zero
// ownerID scopes the filter to that owner's events. The date range applies to
// the event start date; search is a case-insensitive substring match over
// title, organizer and host.
func buildEventFilter(q eventFilterQuery, ownerID primitive.ObjectID) (bson.M, error) {
	filter := bson.M{}

	if !ownerID.IsZero() {
		filter["owner_id"] = ownerID
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	if q.StartDate != "" || q.EndDate != "" {
		dateRange := bson.M{}
		if q.StartDate != "" {
			from, err := parseEventDate(q.StartDate)
			if err != nil {
				return nil, err
			}
			dateRange["$gte"] = from
		}
		if q.EndDate != "" {
			to, err := parseEventDate(q.EndDate)
			if err != nil {
				return nil, err
			}
			dateRange["$lte"] = to
		}
		filter["start_date"] = dateRange
	}

	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": pattern},
			{"organizer": pattern},
			{"hosted_by": pattern},
		}
	}

	return filter, nil
}
