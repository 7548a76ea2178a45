package calendar

import "testing"

func TestParseSlot(t *testing.T) {
	tests := []struct {
		in   string
		want Slot
	}{
		{"", Slot{9, 0}},
		{"   ", Slot{9, 0}},
		// Bare 6 to 12 are morning hours; only 1 to 5 shift to the afternoon.
		{"7", Slot{7, 0}},
		{"7:30", Slot{7, 30}},
		{"1", Slot{13, 0}},
		{"5:30", Slot{17, 30}},
		{"6", Slot{6, 0}},
		{"12", Slot{12, 0}},
		{"0", Slot{0, 0}},
		{"7AM", Slot{7, 0}},
		{"7:30 pm", Slot{19, 30}},
		{"12PM", Slot{12, 0}},
		{"12AM", Slot{0, 0}},
		{"12:30 AM", Slot{0, 30}},
		{"1PM", Slot{13, 0}},
		{"6AM", Slot{6, 0}},
		{"garbage", Slot{9, 0}},
		{"PM", Slot{9, 0}},
		{"25", Slot{9, 0}},
		{"7:75", Slot{9, 0}},
		{"13PM", Slot{9, 0}},
		{"-3", Slot{9, 0}},
		{"99999999999999999999", Slot{9, 0}},
		{"7h", Slot{7, 0}},
		{"7:", Slot{7, 0}},
		{"8:15:45", Slot{8, 15}},
	}
	for _, tt := range tests {
		if got := ParseSlot(tt.in); got != tt.want {
			t.Errorf("ParseSlot(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSlot_AlwaysInRange(t *testing.T) {
	inputs := []string{"", "x", "::", "AMPM", "23:59", "24:00", "4 PM", "11:59pm", "😀", "6 30"}
	for _, in := range inputs {
		s := ParseSlot(in)
		if s.Hour < 0 || s.Hour > 23 || s.Minute < 0 || s.Minute > 59 {
			t.Errorf("ParseSlot(%q) = %v out of range", in, s)
		}
	}
}

func TestSlotString(t *testing.T) {
	if got := (Slot{Hour: 7, Minute: 5}).String(); got != "07:05" {
		t.Errorf("String() = %q", got)
	}
}
