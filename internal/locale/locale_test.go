package locale

import "testing"

func TestInfo(t *testing.T) {
	cases := []struct {
		locale   string
		country  string
		currency string
	}{
		{"en-US", "US", "USD"},
		{"en-GB", "GB", "GBP"},
		{"de-DE", "DE", "EUR"},
		{"fr-FR", "FR", "USD"},
		{"en", "US", "USD"},
	}
	for _, tc := range cases {
		country, currency := Info(tc.locale)
		if country != tc.country || currency != tc.currency {
			t.Fatalf("%s: got %s/%s, want %s/%s", tc.locale, country, currency, tc.country, tc.currency)
		}
	}
}

func TestFromRequest(t *testing.T) {
	cases := []struct {
		header string
		cookie string
		want   string
	}{
		{"", "", Default},
		{"en-US", "", "en-US"},
		{"de-DE", "", "de-DE"},
		{"en-GB,en;q=0.8", "", "en-GB"},
		{"", "de-DE", "de-DE"},
		{"not a locale!!", "", Default},
	}
	for _, tc := range cases {
		if got := FromRequest(tc.header, tc.cookie); got != tc.want {
			t.Fatalf("FromRequest(%q, %q) = %q, want %q", tc.header, tc.cookie, got, tc.want)
		}
	}
}

func TestSupportedIsCopy(t *testing.T) {
	s := Supported()
	s[0] = "xx"
	if Supported()[0] != "en-US" {
		t.Fatalf("Supported leaked internal slice")
	}
}
