package date

import (
	"encoding/json"
	"testing"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2024, 2, 30), New(2024, 3, 1); got != want {
		t.Errorf("New(2024, 2, 30) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-03-08", want: New(2024, 3, 8)},
		{in: "2024-3-8", wantErr: true},
		{in: "2024-03-08T00:00:00", wantErr: true},
		{in: "08/03/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseLoose(t *testing.T) {
	testCases := []struct {
		in   string
		want Date
	}{
		{in: "2024-03-08", want: New(2024, 3, 8)},
		{in: "2024-3-8", want: New(2024, 3, 8)},
		{in: " 2024-03-08T00:00:00.000Z ", want: New(2024, 3, 8)},
		{in: "2024-03-08 00:00:00", want: New(2024, 3, 8)},
	}
	for _, tc := range testCases {
		got, err := ParseLoose(tc.in)
		if err != nil {
			t.Errorf("ParseLoose(%q) unexpected error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLoose(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseLoose("not a date"); err == nil {
		t.Error("ParseLoose(\"not a date\") expected an error")
	}
}

func TestDate_JSON(t *testing.T) {
	d := New(2025, 9, 16)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(b) != `"2025-09-16"` {
		t.Errorf("json.Marshal() = %s, want %q", b, "2025-09-16")
	}

	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("json.Unmarshal() = %v, want %v", got, d)
	}

	if err := json.Unmarshal([]byte(`"16/09/2025"`), &got); err == nil {
		t.Error("json.Unmarshal() expected an error for a non ISO date")
	}
}

func TestDate_IsZero(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Error("zero Date.IsZero() = false, want true")
	}
	if d.String() != "" {
		t.Errorf("zero Date.String() = %q, want empty", d.String())
	}
	var back Date
	if err := json.Unmarshal([]byte(`""`), &back); err != nil || !back.IsZero() {
		t.Errorf("json.Unmarshal(\"\") = %v, %v, want zero date", back, err)
	}
	if New(2025, 1, 1).IsZero() {
		t.Error("New(2025, 1, 1).IsZero() = true, want false")
	}
}
