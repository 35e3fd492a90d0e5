package dto

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// CleanText recorta espacios y normaliza a NFC, para que "Tubería" escrito con
// tilde combinada y con tilde precompuesta se trate como el mismo texto.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// CleanOptional aplica CleanText a un texto opcional.
func CleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	c := CleanText(*s)
	return &c
}

// ParseTimestamp interpreta una fecha RFC 3339 (con o sin fracción de segundo) y la pasa a UTC.
// Se trunca a microsegundos, la precisión de timestamptz en Postgres.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(time.Microsecond), nil
}
