// Package export serializes report rows for download.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/deskpilot/internal/model"
)

// WriteCSV writes one row per employee: name, email and sessions in the
// window. Every field is double-quoted.
func WriteCSV(w io.Writer, windowLabel string, users []model.UserMetric) error {
	header := []string{"Employee Name", "Email", fmt.Sprintf("Sessions (%s)", windowLabel)}
	if _, err := io.WriteString(w, strings.Join(header, ",")+"\n"); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, u := range users {
		row := []string{quote(u.Name), quote(u.Email), quote(strconv.Itoa(u.SessionsInWindow))}
		if _, err := io.WriteString(w, strings.Join(row, ",")+"\n"); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	return nil
}

// FileName returns the download name for a company's report on now's date.
func FileName(companyName string, now time.Time) string {
	return fmt.Sprintf("%s_wellness_report_%s.csv", sanitize(companyName), now.Format(model.DateLayout))
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func sanitize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "company"
	}
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, name)
}
