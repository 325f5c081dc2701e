package domain

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var koPrinter = message.NewPrinter(language.Korean)

// FormatNumber форматирует целое с разделителями тысяч: 12345 -> "12,345".
func FormatNumber(n int) string {
	return koPrinter.Sprintf("%d", n)
}

// Пары послелогов: вариант после согласного -> вариант после гласного.
var josaPairs = map[string]string{
	"은":  "는",
	"이":  "가",
	"과":  "와",
	"을":  "를",
	"으로": "로",
	"이나": "나",
	"이라": "라",
	"이랑": "랑",
}

const (
	hangulBase = 0xAC00
	hangulLast = 0xD7A3
	rieulFinal = 8 // ㄹ в конце слога
)

// PickJosa подбирает корейский послелог к слову по последнему слогу.
// josa задаётся в форме "после согласного" ("을", "이", "으로").
func PickJosa(word, josa string) string {
	without, ok := josaPairs[josa]
	if !ok {
		return josa
	}
	final, hangul := lastFinal(word)
	if !hangul {
		return without
	}
	if final == 0 {
		return without
	}
	// "으로" после ㄹ превращается в "로".
	if josa == "으로" && final == rieulFinal {
		return without
	}
	return josa
}

// WithJosa возвращает слово вместе с подобранным послелогом.
func WithJosa(word, josa string) string {
	return word + PickJosa(word, josa)
}

func lastFinal(word string) (int, bool) {
	w := strings.TrimSpace(word)
	if w == "" {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(w)
	if r < hangulBase || r > hangulLast {
		return 0, false
	}
	return int(r-hangulBase) % 28, true
}
