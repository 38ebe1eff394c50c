package timeslot_test

import (
	"tavolo/shared/timeslot"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{
			name:     "midnight",
			input:    "00:00",
			expected: 0,
		},
		{
			name:     "evening slot",
			input:    "19:30",
			expected: 1170,
		},
		{
			name:     "last minute of day",
			input:    "23:59",
			expected: 1439,
		},
		{
			name:    "missing separator",
			input:   "1930",
			wantErr: true,
		},
		{
			name:    "hour out of range",
			input:   "24:00",
			wantErr: true,
		},
		{
			name:    "minute out of range",
			input:   "12:60",
			wantErr: true,
		},
		{
			name:    "non-numeric",
			input:   "ab:cd",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := timeslot.ToMinutes(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, timeslot.ErrInvalidClockTime)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestAddMinutes(t *testing.T) {
	tests := []struct {
		name     string
		clock    string
		delta    int
		expected string
	}{
		{
			name:     "within same day",
			clock:    "19:00",
			delta:    120,
			expected: "21:00",
		},
		{
			name:     "wraps past midnight",
			clock:    "23:30",
			delta:    90,
			expected: "01:00",
		},
		{
			name:     "negative delta wraps backwards",
			clock:    "00:30",
			delta:    -60,
			expected: "23:30",
		},
		{
			name:     "zero delta",
			clock:    "12:00",
			delta:    0,
			expected: "12:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := timeslot.AddMinutes(tt.clock, tt.delta)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	_, err := timeslot.AddMinutes("25:00", 30)
	assert.ErrorIs(t, err, timeslot.ErrInvalidClockTime)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		startA, endA, startB, endB int
		expected                   bool
	}{
		{
			name:   "identical intervals",
			startA: 1140, endA: 1260, startB: 1140, endB: 1260,
			expected: true,
		},
		{
			name:   "partial overlap",
			startA: 1140, endA: 1260, startB: 1200, endB: 1320,
			expected: true,
		},
		{
			name:   "contained interval",
			startA: 1140, endA: 1260, startB: 1170, endB: 1200,
			expected: true,
		},
		{
			name:   "touching endpoints do not overlap",
			startA: 1140, endA: 1260, startB: 1260, endB: 1380,
			expected: false,
		},
		{
			name:   "touching endpoints reversed",
			startA: 1260, endA: 1380, startB: 1140, endB: 1260,
			expected: false,
		},
		{
			name:   "disjoint intervals",
			startA: 600, endA: 720, startB: 1140, endB: 1260,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timeslot.Overlaps(tt.startA, tt.endA, tt.startB, tt.endB))
		})
	}
}

func TestSequence(t *testing.T) {
	tests := []struct {
		name        string
		start, end  string
		granularity int
		expected    []string
		wantErr     bool
	}{
		{
			name:  "half hour slots across the operating window",
			start: "12:00", end: "14:00", granularity: 30,
			expected: []string{"12:00", "12:30", "13:00", "13:30"},
		},
		{
			name:  "hourly granularity",
			start: "18:00", end: "21:00", granularity: 60,
			expected: []string{"18:00", "19:00", "20:00"},
		},
		{
			name:  "empty window",
			start: "23:00", end: "23:00", granularity: 30,
			expected: []string{},
		},
		{
			name:  "inverted window is empty",
			start: "23:00", end: "12:00", granularity: 30,
			expected: []string{},
		},
		{
			name:  "invalid granularity",
			start: "12:00", end: "23:00", granularity: 0,
			wantErr: true,
		},
		{
			name:  "invalid bound",
			start: "noon", end: "23:00", granularity: 30,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := timeslot.Sequence(tt.start, tt.end, tt.granularity)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestSequenceIsDeterministic(t *testing.T) {
	first, err := timeslot.Sequence("12:00", "23:00", 30)
	assert.NoError(t, err)

	second, err := timeslot.Sequence("12:00", "23:00", 30)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 22)
}
