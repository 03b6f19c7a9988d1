package datetime

import (
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateTimeLayout,
			dateStr:  "2025-01",
			expected: "2025-01",
		},
		{
			name:     "Another valid date",
			layout:   DateTimeLayout,
			dateStr:  "2030-12",
			expected: "2030-12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateTimeLayout, "invalid-date")
}

func TestOffsetDateAdvanced(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		layout   string
		months   int
		expected string
		wantErr  bool
	}{
		{
			name:     "Add multiple years",
			date:     "2025-01",
			layout:   DateTimeLayout,
			months:   24,
			expected: "2027-01",
			wantErr:  false,
		},
		{
			name:     "Subtract multiple years",
			date:     "2025-01",
			layout:   DateTimeLayout,
			months:   -24,
			expected: "2023-01",
			wantErr:  false,
		},
		{
			name:     "Cross year boundary forward",
			date:     "2025-06",
			layout:   DateTimeLayout,
			months:   8,
			expected: "2026-02",
			wantErr:  false,
		},
		{
			name:     "Cross year boundary backward",
			date:     "2025-06",
			layout:   DateTimeLayout,
			months:   -8,
			expected: "2024-10",
			wantErr:  false,
		},
		{
			name:     "Zero months",
			date:     "2025-06",
			layout:   DateTimeLayout,
			months:   0,
			expected: "2025-06",
			wantErr:  false,
		},
		{
			name:    "Full day date rejected",
			date:    "2025-06-01",
			layout:  DateTimeLayout,
			months:  1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, tt.layout, tt.months)
			if tt.wantErr {
				if err == nil {
					t.Errorf("OffsetDate() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("OffsetDate() error = %v", err)
				return
			}
			if result != tt.expected {
				t.Errorf("OffsetDate() = %v, expected %v", result, tt.expected)
			}
		})
	}
}


func TestCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	if got := CurrentMonth(now); got != "2026-10" {
		t.Errorf("CurrentMonth() = %s, expected 2026-10", got)
	}
}

func TestValidateMonth(t *testing.T) {
	if err := ValidateMonth("2026-01"); err != nil {
		t.Errorf("ValidateMonth(2026-01) unexpected error: %v", err)
	}
	for _, bad := range []string{"", "2026", "2026-13", "01-2026", "2026-01-01"} {
		if err := ValidateMonth(bad); err == nil {
			t.Errorf("ValidateMonth(%q) expected error", bad)
		}
	}
}

func TestMonthSequence(t *testing.T) {
	months, err := MonthSequence("2025-11", 4)
	if err != nil {
		t.Fatalf("MonthSequence() error = %v", err)
	}
	expected := []string{"2025-11", "2025-12", "2026-01", "2026-02"}
	if len(months) != len(expected) {
		t.Fatalf("MonthSequence() returned %d months, expected %d", len(months), len(expected))
	}
	for i := range expected {
		if months[i] != expected[i] {
			t.Errorf("month %d = %s, expected %s", i, months[i], expected[i])
		}
	}

	empty, err := MonthSequence("2025-11", 0)
	if err != nil || len(empty) != 0 {
		t.Errorf("MonthSequence(count=0) = %v, %v; expected empty, nil", empty, err)
	}

	if _, err := MonthSequence("November", 3); err == nil {
		t.Error("MonthSequence() expected error for invalid start")
	}
}
