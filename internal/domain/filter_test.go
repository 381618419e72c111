package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		selector string
		expected Filter
		wantErr  bool
	}{
		{"d", FilterDay, false},
		{"day", FilterDay, false},
		{"DAY", FilterDay, false},
		{" w ", FilterWeek, false},
		{"week", FilterWeek, false},
		{"m", FilterMonth, false},
		{"month", FilterMonth, false},
		{"q", FilterQuarter, false},
		{"quarter", FilterQuarter, false},
		{"s", FilterSemiAnnual, false},
		{"semi", FilterSemiAnnual, false},
		{"semiannual", FilterSemiAnnual, false},
		{"y", FilterYear, false},
		{"year", FilterYear, false},
		{"all", FilterAll, false},
		{"", FilterAll, false},
		{"fortnight", FilterAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			f, err := ParseFilter(tt.selector)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestFilterAliases_AllParse(t *testing.T) {
	for _, alias := range FilterAliases() {
		_, err := ParseFilter(alias)
		assert.NoError(t, err, alias)
	}
}

func TestFilter_Cutoff(t *testing.T) {
	now := time.Unix(100_000_000, 0)
	const daySeconds = int64(86400)

	tests := []struct {
		filter   Filter
		expected int64
	}{
		{FilterDay, 100_000_000 - daySeconds},
		{FilterWeek, 100_000_000 - 7*daySeconds},
		{FilterMonth, 100_000_000 - 30*daySeconds},
		{FilterQuarter, 100_000_000 - 91*daySeconds},
		{FilterSemiAnnual, 100_000_000 - 182*daySeconds},
		{FilterYear, 100_000_000 - 365*daySeconds},
		{FilterAll, 0},
	}

	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Cutoff(now))
		})
	}
}

func TestResolveFilter(t *testing.T) {
	now := time.Unix(100_000_000, 0)

	t.Run("recognized", func(t *testing.T) {
		r := ResolveFilter("week", now)
		assert.True(t, r.Recognized)
		assert.Equal(t, FilterWeek, r.Filter)
		assert.Equal(t, FilterWeek.Cutoff(now), r.Cutoff)
		assert.Equal(t, "** Filtering events to those started in the last week **", r.Notice())
	})

	t.Run("unrecognized degrades to all", func(t *testing.T) {
		r := ResolveFilter("bogus", now)
		assert.False(t, r.Recognized)
		assert.Equal(t, FilterAll, r.Filter)
		assert.Equal(t, int64(0), r.Cutoff)
		assert.Equal(t, "Filter not recognized. No filter will be applied.", r.Notice())
	})

	t.Run("no selector", func(t *testing.T) {
		r := ResolveFilter("", now)
		assert.True(t, r.Recognized)
		assert.Equal(t, int64(0), r.Cutoff)
		assert.Empty(t, r.Notice())
	})
}

func TestFilter_Labels(t *testing.T) {
	assert.Equal(t, "the last 30 days", FilterMonth.Label())
	assert.Equal(t, "the last quarter (13 weeks)", FilterQuarter.Label())
	assert.Equal(t, "the last 6 months (26 weeks)", FilterSemiAnnual.Label())
	assert.Equal(t, "the last year (365 days)", FilterYear.Label())
}

func TestListScope_Status(t *testing.T) {
	assert.Nil(t, ScopeAll.Status())
	require.NotNil(t, ScopeActive.Status())
	assert.Equal(t, StatusActive, *ScopeActive.Status())
	require.NotNil(t, ScopeComplete.Status())
	assert.Equal(t, StatusComplete, *ScopeComplete.Status())
}
