package pricing

import (
	"strings"
	"testing"
)

func TestFormatPriceEnglish(t *testing.T) {
	if got := FormatPrice(2400, "en"); got != "€2,400.00" {
		t.Fatalf("FormatPrice(2400, en) = %q", got)
	}
	if got := FormatPrice(50, "en"); got != "€50.00" {
		t.Fatalf("FormatPrice(50, en) = %q", got)
	}
}

func TestFormatPriceFallsBackOnBadLocale(t *testing.T) {
	got := FormatPrice(99.5, "not-a-locale")
	if got != FormatPrice(99.5, "en") {
		t.Fatalf("bad locale should format as English, got %q", got)
	}
	if !strings.HasPrefix(got, BaseCurrencySymbol) {
		t.Fatalf("missing currency symbol in %q", got)
	}
}
