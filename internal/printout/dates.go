package printout

import (
	"fmt"
	"strings"
	"time"
)

var (
	weekdaysPT = [...]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"}
	monthsPT   = [...]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}
)

// LongDate formats t like "segunda-feira, 19 de outubro de 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d", weekdaysPT[t.Weekday()], t.Day(), monthsPT[t.Month()-1], t.Year())
}

// ShortDate formats t like "19 de out.".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d de %s.", t.Day(), monthsPT[t.Month()-1][:3])
}

// WeekdayName returns the upper-case weekday of t, like "SEGUNDA-FEIRA".
func WeekdayName(t time.Time) string {
	return strings.ToUpper(weekdaysPT[t.Weekday()])
}

// MonthName formats a month like "outubro de 2026".
func MonthName(t time.Time) string {
	return fmt.Sprintf("%s de %d", monthsPT[t.Month()-1], t.Year())
}
