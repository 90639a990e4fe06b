package model

import (
	"testing"
)

func TestParseApplicationStatus_ValidValues(t *testing.T) {
	valid := []string{"pending", "reviewing", "interview", "rejected", "accepted"}
	for _, s := range valid {
		got, err := ParseApplicationStatus(s)
		if err != nil {
			t.Errorf("ParseApplicationStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseApplicationStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseApplicationStatus_InvalidValue(t *testing.T) {
	if _, err := ParseApplicationStatus("UNKNOWN"); err == nil {
		t.Error("ParseApplicationStatus(\"UNKNOWN\") expected error, got nil")
	}
	if _, err := ParseApplicationStatus(""); err == nil {
		t.Error("ParseApplicationStatus(\"\") expected error, got nil")
	}
}

func TestIsStatusTransitionAllowed_Forward(t *testing.T) {
	cases := []struct {
		from, to ApplicationStatus
	}{
		{StatusPending, StatusReviewing},
		{StatusPending, StatusRejected},
		{StatusReviewing, StatusInterview},
		{StatusReviewing, StatusRejected},
		{StatusInterview, StatusAccepted},
		{StatusInterview, StatusRejected},
	}
	for _, c := range cases {
		if !IsStatusTransitionAllowed(c.from, c.to) {
			t.Errorf("IsStatusTransitionAllowed(%s, %s) = false, want true", c.from, c.to)
		}
	}
}

func TestIsStatusTransitionAllowed_Invalid(t *testing.T) {
	cases := []struct {
		from, to ApplicationStatus
	}{
		{StatusPending, StatusInterview}, // 跳级
		{StatusPending, StatusAccepted},
		{StatusReviewing, StatusPending}, // 回退
		{StatusAccepted, StatusPending},  // 终态无出边
		{StatusAccepted, StatusRejected},
		{StatusRejected, StatusReviewing},
	}
	for _, c := range cases {
		if IsStatusTransitionAllowed(c.from, c.to) {
			t.Errorf("IsStatusTransitionAllowed(%s, %s) = true, want false", c.from, c.to)
		}
	}
}

func TestBreakpointForWidth(t *testing.T) {
	cases := []struct {
		width    int
		expected Breakpoint
	}{
		{0, BreakpointMobile},
		{767, BreakpointMobile},
		{768, BreakpointTablet},
		{1023, BreakpointTablet},
		{1024, BreakpointDesktop},
		{1439, BreakpointDesktop},
		{1440, BreakpointWide},
	}
	for _, c := range cases {
		if got := BreakpointForWidth(c.width); got != c.expected {
			t.Errorf("BreakpointForWidth(%d) = %s, want %s", c.width, got, c.expected)
		}
	}
}
