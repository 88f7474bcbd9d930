package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/eventhive/eventhive-go/models"
)

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"2026-05-01T10:00:00Z", false},
		{"2026-05-01", false},
		{"2026-05-01 10:00", false},
		{"2026-05-01 10:00:30", false},
		{"01/05/2026", true},
		{"next tuesday", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := parseEventDate(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "raw=%q", tt.raw)
		} else {
			assert.NoError(t, err, "raw=%q", tt.raw)
		}
	}
}

func TestValidateDateOrder(t *testing.T) {
	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	assert.NoError(t, validateDateOrder(start.Add(-24*time.Hour), start, end))
	assert.NoError(t, validateDateOrder(start, start, end))
	assert.NoError(t, validateDateOrder(start, start, start))

	err := validateDateOrder(start.Add(time.Hour), start, end)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Registration deadline")

	err = validateDateOrder(start.Add(-time.Hour), start, start.Add(-time.Minute))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "End date")
}

func TestDecodeContactInfo(t *testing.T) {
	info, err := decodeContactInfo(`{"name":"Jordan","email":"jordan@example.com","phone":"+14155550100"}`)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", info.Name)
	assert.Equal(t, "+14155550100", info.Phone)

	info, err = decodeContactInfo("")
	require.NoError(t, err)
	assert.Equal(t, models.ContactInfo{}, info)

	_, err = decodeContactInfo("not json")
	assert.Error(t, err)

	_, err = decodeContactInfo(`["a","b"]`)
	assert.Error(t, err)
}

func TestMergeContactInfo(t *testing.T) {
	existing := models.ContactInfo{Name: "Jordan", Email: "jordan@example.com", Phone: "+14155550100"}

	// Blank incoming fields keep the stored values.
	merged := mergeContactInfo(existing, models.ContactInfo{})
	assert.Equal(t, existing, merged)

	merged = mergeContactInfo(existing, models.ContactInfo{Name: "Sam"})
	assert.Equal(t, "Sam", merged.Name)
	assert.Equal(t, existing.Email, merged.Email)
	assert.Equal(t, existing.Phone, merged.Phone)

	// Whitespace counts as blank.
	merged = mergeContactInfo(existing, models.ContactInfo{Phone: "   "})
	assert.Equal(t, existing.Phone, merged.Phone)

	merged = mergeContactInfo(existing, models.ContactInfo{Phone: "+14155550111"})
	assert.Equal(t, "+14155550111", merged.Phone)

	// Nothing stored and nothing incoming leaves the phone empty.
	merged = mergeContactInfo(models.ContactInfo{}, models.ContactInfo{Name: "Sam"})
	assert.Empty(t, merged.Phone)
}

func TestDecodeRules(t *testing.T) {
	rules, err := decodeRules(`["No smoking", " Bring ID "]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"No smoking", "Bring ID"}, rules)

	rules, err = decodeRules("")
	require.NoError(t, err)
	assert.Empty(t, rules)

	_, err = decodeRules("no smoking")
	assert.Error(t, err)

	_, err = decodeRules(`{"rule":"x"}`)
	assert.Error(t, err)
}

func TestBuildEventFilter(t *testing.T) {
	owner := primitive.NewObjectID()

	filter, err := buildEventFilter(eventFilterQuery{Category: "Tech", Status: "Upcoming"}, owner)
	require.NoError(t, err)
	assert.Equal(t, owner, filter["owner_id"])
	assert.Equal(t, "Tech", filter["category"])
	assert.Equal(t, "Upcoming", filter["status"])

	filter, err = buildEventFilter(eventFilterQuery{}, primitive.NilObjectID)
	require.NoError(t, err)
	assert.NotContains(t, filter, "owner_id")

	filter, err = buildEventFilter(eventFilterQuery{StartDate: "2026-05-01", EndDate: "2026-06-01"}, primitive.NilObjectID)
	require.NoError(t, err)
	dateRange, ok := filter["start_date"].(bson.M)
	require.True(t, ok)
	assert.Contains(t, dateRange, "$gte")
	assert.Contains(t, dateRange, "$lte")

	_, err = buildEventFilter(eventFilterQuery{StartDate: "yesterday"}, primitive.NilObjectID)
	assert.Error(t, err)

	filter, err = buildEventFilter(eventFilterQuery{Search: "go meetup"}, primitive.NilObjectID)
	require.NoError(t, err)
	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	assert.Len(t, or, 3)
	pattern, ok := or[0]["title"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "i", pattern.Options)

	// Regex metacharacters are treated as literal text.
	filter, err = buildEventFilter(eventFilterQuery{Search: "c++ (advanced)"}, primitive.NilObjectID)
	require.NoError(t, err)
	or = filter["$or"].([]bson.M)
	pattern = or[0]["title"].(primitive.Regex)
	assert.NotContains(t, pattern.Pattern, "(advanced)")
}
