package nivesh

import (
	"fmt"
	"strconv"
	"strings"
)

// A MoneyFormatter renders a monetary value for display.
type MoneyFormatter interface {
	Format(m Money) string
}

// Formatters picks a formatting strategy by currency code. It is built once
// and injected into the aggregator; call sites never choose a format
// themselves.
type Formatters map[string]MoneyFormatter

// DefaultFormatters renders INR in the Indian numbering system and every
// other currency with its go-money formatter.
func DefaultFormatters() Formatters {
	return Formatters{"INR": indianFormatter{}}
}

// Format renders m with the strategy registered for its currency, falling
// back to the currency's own symbol and grouping.
func (f Formatters) Format(m Money) string {
	if fmtr, ok := f[m.Currency()]; ok {
		return fmtr.Format(m)
	}
	return m.String()
}

// indianFormatter renders INR amounts in the Indian system: crores above
// 1,00,00,000, lakhs above 1,00,000, plain grouped rupees below.
type indianFormatter struct{}

const (
	crore = 1e7
	lakh  = 1e5
)

func (indianFormatter) Format(m Money) string {
	v := m.AsFloat()
	switch {
	case v >= crore:
		return fmt.Sprintf("₹%.2f Cr", v/crore)
	case v >= lakh:
		return fmt.Sprintf("₹%.2f L", v/lakh)
	default:
		return "₹" + groupThousands(v)
	}
}

// groupThousands formats v with 2 decimals and comma-separated thousands.
func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
