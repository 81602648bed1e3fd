package document

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/investkaro/backend/internal/domain/shared/valueobject"
)

var enIN = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders a money value with Indian digit grouping and two
// decimal places, e.g. 1234567.5 -> "₹12,34,567.50". Rounding happens
// here and nowhere earlier; aggregation keeps full precision.
func FormatINR(m valueobject.Money) string {
	f := m.Round(2).Float64()
	return enIN.Sprintf("₹%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}
