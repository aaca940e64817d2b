package dto

import (
	"testing"
)

func TestValidateSessionTimes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid morning slot", "08:00", "09:30", false},
		{"valid over noon", "11:45", "13:15", false},
		{"midnight to end of day", "00:00", "23:59", false},
		{"start equals end", "09:00", "09:00", true},
		{"start after end", "10:00", "09:00", true},
		{"not zero padded", "9:00", "10:00", true},
		{"out of range hour", "25:00", "26:00", true},
		{"out of range minute", "08:61", "09:00", true},
		{"with seconds", "08:00:00", "09:00", true},
		{"empty start", "", "09:00", true},
		{"garbage", "pagi", "siang", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionTimes(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSessionTimes(%q, %q) err = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}

func TestParseSessionDate(t *testing.T) {
	if _, err := ParseSessionDate("2024-03-15"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"15-03-2024", "2024/03/15", "2024-13-01", "besok", ""} {
		if _, err := ParseSessionDate(bad); err == nil {
			t.Fatalf("ParseSessionDate(%q) should fail", bad)
		}
	}
}
