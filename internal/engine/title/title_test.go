package title

import "testing"

func strptr(s string) *string { return &s }

func TestPickPrefersOrganizer(t *testing.T) {
	org := strptr("Downtown Arts Council")
	got := Pick("SUMMER GALA\nJune 14", org)
	if got == nil || *got != "Downtown Arts Council" {
		t.Fatalf("Pick() = %v, want organizer", got)
	}
}

func TestPickFallsBackToScan(t *testing.T) {
	got := Pick("SUMMER GALA\ndoors at seven", nil)
	if got == nil || *got != "Summer Gala" {
		t.Fatalf("Pick() = %v, want Summer Gala", got)
	}
}

func TestScanUppercaseLine(t *testing.T) {
	got := Scan("hello there\nCITY JAZZ NIGHT\nmore text")
	if got == nil || *got != "City Jazz Night" {
		t.Fatalf("Scan() = %v, want City Jazz Night", got)
	}
}

func TestScanTitleCaseLine(t *testing.T) {
	got := Scan("fine print first\nAnnual Spring Fair\nsmall words after")
	if got == nil || *got != "Annual Spring Fair" {
		t.Fatalf("Scan() = %v, want Annual Spring Fair", got)
	}
}

func TestScanSkipsDateLines(t *testing.T) {
	// A 4-digit run marks dates and years, not titles.
	got := Scan("JUNE 14 2025\nGRAND OPENING")
	if got == nil || *got != "Grand Opening" {
		t.Fatalf("Scan() = %v, want Grand Opening", got)
	}
}

func TestScanSkipsURLAndPhoneLines(t *testing.T) {
	got := Scan("WWW.EXAMPLE.COM\nCALL +1 555 0199\nOPENING NIGHT")
	if got == nil || *got != "Opening Night" {
		t.Fatalf("Scan() = %v, want Opening Night", got)
	}
}

func TestScanLengthBounds(t *testing.T) {
	if got := Scan("HI\nOK"); got != nil {
		t.Errorf("short lines qualified: %q", *got)
	}
	long := "A VERY LONG LINE THAT GOES ON AND ON AND ON AND KEEPS GOING WELL PAST THE EIGHTY CHARACTER LIMIT FOR TITLES"
	if got := Scan(long); got != nil {
		t.Errorf("overlong line qualified: %q", *got)
	}
}

func TestScanRejectsMixedCase(t *testing.T) {
	if got := Scan("this is all lowercase prose\nand so is this"); got != nil {
		t.Errorf("lowercase prose qualified: %q", *got)
	}
}

func TestScanNoQualifyingLine(t *testing.T) {
	if got := Scan(""); got != nil {
		t.Errorf("empty input returned %q", *got)
	}
}
