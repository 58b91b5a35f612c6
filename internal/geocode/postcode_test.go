package geocode

import "testing"

func TestExtractPostcode_GreekAddress(t *testing.T) {
	code, ok := ExtractPostcode("Παπαφλέσσα 145, Αθήνα, 18546")
	if !ok {
		t.Fatal("expected a postcode to be extracted")
	}
	if code != "18546" {
		t.Fatalf("expected postcode 18546, got %q", code)
	}
}

func TestExtractPostcode_FourDigits(t *testing.T) {
	code, ok := ExtractPostcode("Main Street 10, 1234 Sometown")
	if !ok {
		t.Fatal("expected a postcode to be extracted")
	}
	if code != "1234" {
		t.Fatalf("expected postcode 1234, got %q", code)
	}
}

func TestExtractPostcode_FirstRunWins(t *testing.T) {
	code, ok := ExtractPostcode("10115 Berlin, near 10117")
	if !ok {
		t.Fatal("expected a postcode to be extracted")
	}
	if code != "10115" {
		t.Fatalf("expected first run 10115, got %q", code)
	}
}

func TestExtractPostcode_NoDigitRun(t *testing.T) {
	if code, ok := ExtractPostcode("Main Street, Athens"); ok {
		t.Fatalf("expected no postcode, got %q", code)
	}
}

func TestExtractPostcode_ShortRunIgnored(t *testing.T) {
	// House numbers up to three digits are not postcodes.
	if code, ok := ExtractPostcode("Παπαφλέσσα 145, Αθήνα"); ok {
		t.Fatalf("expected no postcode, got %q", code)
	}
}

func TestExtractPostcode_LongRunIgnored(t *testing.T) {
	if code, ok := ExtractPostcode("order 123456 delivered"); ok {
		t.Fatalf("expected no postcode for a six-digit run, got %q", code)
	}
}
