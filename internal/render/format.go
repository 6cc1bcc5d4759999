package render

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	SizeLogo    = "w45"
	SizeThumb   = "w92"
	SizeProfile = "w200"
	SizePoster  = "w500"

	DefaultImageBase = "https://image.tmdb.org/t/p"

	NoImageThumb   = "/static/images/no-image.jpg"
	NoImageProfile = "https://via.placeholder.com/200x300.png?text=No+Image"

	ExcerptLength = 120
)

// Images builds image-host URLs: {Base}/{size}{path}.
type Images struct {
	Base string
}

// URL returns "" when path is empty so callers pick their own fallback.
func (i Images) URL(size, path string) string {
	if path == "" {
		return ""
	}
	base := i.Base
	if base == "" {
		base = DefaultImageBase
	}
	return strings.TrimSuffix(base, "/") + "/" + size + path
}

// ReleaseYear is the part of a date before the first "-", or "N/A".
func ReleaseYear(date string) string {
	if date == "" {
		return "N/A"
	}
	year, _, _ := strings.Cut(date, "-")
	return year
}

// Excerpt keeps the first n characters and always appends "...".
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) > n {
		s = string([]rune(s)[:n])
	}
	return s + "..."
}

// FormatVote prints one decimal. Halves round away from zero on the exact
// binary value, so 7.25 is "7.3" while 1.45 (just under) is "1.4".
func FormatVote(v *float64) string {
	if v == nil {
		return "N/A"
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return strconv.FormatFloat(*v, 'f', 1, 64)
	}
	r := new(big.Rat).SetFloat64(*v)
	sign := ""
	if r.Sign() < 0 {
		sign = "-"
		r.Neg(r)
	}
	r.Mul(r, big.NewRat(10, 1))
	r.Add(r, big.NewRat(1, 2))
	tenths := new(big.Int).Quo(r.Num(), r.Denom()).String()
	if len(tenths) < 2 {
		tenths = "0" + tenths
	}
	return sign + tenths[:len(tenths)-1] + "." + tenths[len(tenths)-1:]
}

// Initial is the first character of name, used as an avatar.
func Initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return "?"
	}
	return string(r)
}
