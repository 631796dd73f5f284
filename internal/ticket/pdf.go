// Package ticket renders a human-readable ticket document for a
// committed reservation. Rendering is best-effort output for the
// customer; the reservation core has no dependency on it succeeding.
package ticket

import (
	"bytes"
	"fmt"
	"strings"
)

// Info carries the reservation facts printed on the ticket.
type Info struct {
	ReservationID uint64
	EventID       uint64
	EventName     string
	EventDate     string
	Customer      string
	Seats         uint32
	ReservedAt    string
}

// Render produces a minimal single-page PDF for the reservation. The
// document uses only built-in Type1 fonts so no external assets are
// needed.
func Render(info Info) ([]byte, error) {
	if info.ReservationID == 0 {
		return nil, fmt.Errorf("ticket: reservation id is required")
	}

	content := contentStream(info)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, 6)
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	writeObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
		"/Contents 4 0 R /Resources << /Font << /F1 5 0 R /F2 6 0 R >> >> >>\nendobj\n")
	writeObj(fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(content), content))
	writeObj("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	writeObj("6 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>\nendobj\n")

	xrefStart := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefStart))

	return buf.Bytes(), nil
}

// contentStream lays out the ticket text top-down on the page.
func contentStream(info Info) string {
	lines := []struct {
		font string
		size int
		text string
	}{
		{"F2", 18, "EVENT RESERVATION TICKET"},
		{"F1", 12, ""},
		{"F1", 12, fmt.Sprintf("Reservation: #%d", info.ReservationID)},
		{"F1", 12, fmt.Sprintf("Event: %s (id %d)", info.EventName, info.EventID)},
		{"F1", 12, fmt.Sprintf("Date: %s", info.EventDate)},
		{"F1", 12, fmt.Sprintf("Customer: %s", info.Customer)},
		{"F1", 12, fmt.Sprintf("Seats: %d", info.Seats)},
		{"F1", 12, fmt.Sprintf("Reserved at: %s", info.ReservedAt)},
		{"F1", 10, ""},
		{"F1", 10, "Please present this ticket at the venue entrance."},
	}

	var b strings.Builder
	b.WriteString("BT\n/F2 18 Tf\n50 740 Td\n16 TL\n")
	for i, ln := range lines {
		if i > 0 {
			b.WriteString("T*\n")
		}
		b.WriteString(fmt.Sprintf("/%s %d Tf\n", ln.font, ln.size))
		b.WriteString(fmt.Sprintf("(%s) Tj\n", escapeText(ln.text)))
	}
	b.WriteString("ET")
	return b.String()
}

// escapeText escapes the characters with special meaning inside PDF
// string literals.
func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
