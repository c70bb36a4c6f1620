// Package pdf writes plain-text A4 documents using the built-in Helvetica fonts.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pageWidth     = 595
	pageHeight    = 842
	marginLeft    = 50
	marginTop     = 790
	leading       = 14
	linesPerPage  = 50
	maxLineLength = 95
)

// Document is a titled list of text lines. Lines longer than a page width are wrapped and
// the document is split over as many pages as needed.
type Document struct {
	Title    string
	Subtitle string
	Lines    []string
}

// Render encodes the document as PDF 1.4.
func (d Document) Render() ([]byte, error) {
	lines := wrapLines(d.Lines, maxLineLength)
	pages := paginate(lines, linesPerPage)

	// objects: 1 catalog, 2 pages, 3 font regular, 4 font bold, then page+content pairs.
	objects := make([]string, 0, 4+2*len(pages))
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 5+2*i))
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>",
	)

	for i, page := range pages {
		stream := d.pageStream(page, i+1, len(pages))
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>",
				pageWidth, pageHeight, 6+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects))
	for i, obj := range objects {
		offsets = append(offsets, out.Len())
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(objects)+1, xrefStart)

	return out.Bytes(), nil
}

func (d Document) pageStream(lines []string, page, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BT\n/F2 14 Tf\n%d %d Td\n(%s) Tj\n", marginLeft, marginTop+16, escape(d.Title))
	if d.Subtitle != "" {
		fmt.Fprintf(&b, "/F1 9 Tf\n0 -14 Td\n(%s) Tj\n", escape(d.Subtitle))
	}
	b.WriteString("ET\n")

	fmt.Fprintf(&b, "BT\n/F1 10 Tf\n%d TL\n%d %d Td\n", leading, marginLeft, marginTop-24)
	for i, line := range lines {
		if i == 0 {
			fmt.Fprintf(&b, "(%s) Tj\n", escape(line))
			continue
		}
		fmt.Fprintf(&b, "T* (%s) Tj\n", escape(line))
	}
	b.WriteString("ET\n")

	fmt.Fprintf(&b, "BT\n/F1 8 Tf\n%d 30 Td\n(Page %d of %d) Tj\nET", marginLeft, page, total)
	return b.String()
}

func paginate(lines []string, perPage int) [][]string {
	if len(lines) == 0 {
		return [][]string{{}}
	}
	pages := make([][]string, 0, len(lines)/perPage+1)
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}
	return pages
}

func wrapLines(lines []string, width int) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		for len([]rune(line)) > width {
			r := []rune(line)
			cut := width
			if idx := strings.LastIndex(string(r[:width]), " "); idx > 0 {
				cut = len([]rune(string(r[:width])[:idx]))
			}
			out = append(out, strings.TrimRight(string(r[:cut]), " "))
			line = strings.TrimLeft(string(r[cut:]), " ")
		}
		out = append(out, line)
	}
	return out
}

// escape quotes PDF string delimiters and drops characters Helvetica cannot show.
func escape(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString("    ")
		case r < 0x20:
		case r > 0xff:
			b.WriteRune('?')
		default:
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}
