package tabular

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var innerSpace = regexp.MustCompile(`\s+`)

// cellText extracts the trimmed, whitespace-collapsed text of a cell.
func cellText(s *goquery.Selection) string {
	return innerSpace.ReplaceAllString(strings.TrimSpace(s.Text()), " ")
}

// cellSpan returns the colspan of a header or data cell, at least 1.
func cellSpan(s *goquery.Selection) int {
	n, err := strconv.Atoi(strings.TrimSpace(s.AttrOr("colspan", "1")))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// expandRow flattens one tr into cell texts, repeating colspan cells so
// every column owns exactly one slot.
func expandRow(tr *goquery.Selection) []string {
	var out []string
	tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		text := cellText(cell)
		for i := 0; i < cellSpan(cell); i++ {
			out = append(out, text)
		}
	})
	return out
}

// placeholder reports whether a header cell text is filler rather than a
// real label: empty, or one of the generic "unnamed" markers some renderers
// emit for spacer columns.
func placeholder(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.HasPrefix(strings.ToLower(s), "unnamed")
}

// buildCandidate parses one table element into a Candidate grid. Returns nil
// when the element yields no usable header and no data rows, so callers can
// skip it and keep scanning.
func buildCandidate(tbl *goquery.Selection) *Candidate {
	headRows := headerMatrix(tbl)

	var dataRows [][]string
	tbl.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		// Stats sites repeat the header mid-body for readability; those
		// rows carry a "thead" class and are not data.
		if strings.Contains(tr.AttrOr("class", ""), "thead") {
			return
		}
		if row := expandRow(tr); len(row) > 0 {
			dataRows = append(dataRows, row)
		}
	})

	// No thead: treat the first body row as a flat header.
	if len(headRows) == 0 && len(dataRows) > 0 {
		headRows = dataRows[:1]
		dataRows = dataRows[1:]
	}
	if len(headRows) == 0 {
		return nil
	}

	width := 0
	for _, r := range headRows {
		if len(r) > width {
			width = len(r)
		}
	}
	if width == 0 {
		return nil
	}

	header := make([]Label, width)
	for j := 0; j < width; j++ {
		header[j] = columnLabel(headRows, j)
	}

	return &Candidate{
		ID:     tbl.AttrOr("id", ""),
		Levels: len(headRows),
		Header: header,
		Rows:   dataRows,
	}
}

// headerMatrix returns the colspan-expanded thead rows of a table.
func headerMatrix(tbl *goquery.Selection) [][]string {
	var rows [][]string
	tbl.ChildrenFiltered("thead").First().ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, expandRow(tr))
	})
	return rows
}

// columnLabel derives the Label pair for column j: the base is the last
// (innermost) non-placeholder text, the section the first (outermost) one.
// A single header row yields a base with an empty section.
func columnLabel(headRows [][]string, j int) Label {
	cell := func(i int) string {
		if j < len(headRows[i]) {
			return headRows[i][j]
		}
		return ""
	}

	if len(headRows) == 1 {
		return Label{Base: cell(0)}
	}

	var lab Label
	for i := len(headRows) - 1; i >= 0; i-- {
		if !placeholder(cell(i)) {
			lab.Base = cell(i)
			break
		}
	}
	for i := 0; i < len(headRows); i++ {
		if !placeholder(cell(i)) {
			lab.Section = cell(i)
			break
		}
	}
	return lab
}

// candidatesIn parses every table element under root, skipping any that do
// not yield a usable grid.
func candidatesIn(root *html.Node) []*Candidate {
	doc := goquery.NewDocumentFromNode(root)
	var out []*Candidate
	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		if c := buildCandidate(tbl); c != nil {
			out = append(out, c)
		}
	})
	return out
}

// largest picks the biggest candidate ordered lexicographically by
// (rows, cols). Ties keep the earliest, matching document order.
func largest(cands []*Candidate) *Candidate {
	var best *Candidate
	for _, c := range cands {
		if best == nil {
			best = c
			continue
		}
		br, bc := best.Size()
		cr, cc := c.Size()
		if cr > br || (cr == br && cc > bc) {
			best = c
		}
	}
	return best
}
