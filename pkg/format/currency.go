// Package format arma las etiquetas que la UI muestra tal cual.
package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Currency formatea un monto como "$1,234.56" (redondeo a 2 decimales).
func Currency(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return "-$" + printer.Sprint(number.Decimal(-f, number.Scale(2)))
	}
	return "$" + printer.Sprint(number.Decimal(f, number.Scale(2)))
}

// Clock devuelve la hora local en formato HH:MM:SS para "Última actualización".
func Clock(t time.Time) string {
	return t.Format("15:04:05")
}
