package utils

import (
	"strings"
	"testing"
	"time"
)

func TestUtils_Min(t *testing.T) {
	if got := Min(3, 7); got != 3 {
		t.Errorf("Min(3, 7) expected to be 3. Got %v", got)
	}
	if got := Min(2.5, -1.5); got != -1.5 {
		t.Errorf("Min(2.5, -1.5) expected to be -1.5. Got %v", got)
	}
}

func TestUtils_Max(t *testing.T) {
	if got := Max(3, 7); got != 7 {
		t.Errorf("Max(3, 7) expected to be 7. Got %v", got)
	}
}

func TestUtils_Abs(t *testing.T) {
	if got := Abs(-4); got != 4 {
		t.Errorf("Abs(-4) expected to be 4. Got %v", got)
	}
	if got := Abs(4.5); got != 4.5 {
		t.Errorf("Abs(4.5) expected to be 4.5. Got %v", got)
	}
}

func TestUtils_FormatTime(t *testing.T) {
	if got := FormatTime(30 * time.Second); got != "30.00s" {
		t.Errorf("FormatTime expected to be 30.00s. Got %v", got)
	}
	if got := FormatTime(90 * time.Second); got != "1m 30.00s" {
		t.Errorf("FormatTime expected to be 1m 30.00s. Got %v", got)
	}
}

func TestUtils_DecorateText(t *testing.T) {
	got := DecorateText("done", SuccessMessage)
	if !strings.Contains(got, "done") || !strings.Contains(got, SuccessColor) {
		t.Errorf("Decorated text expected to contain the message and the color code. Got %v", got)
	}
}
