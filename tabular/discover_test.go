package tabular

import (
	"fmt"
	"strings"
	"testing"
)

// buildTable renders a flat-header HTML table with n generated data rows.
func buildTable(id string, headers []string, n int) string {
	var b strings.Builder
	if id != "" {
		fmt.Fprintf(&b, `<table id=%q>`, id)
	} else {
		b.WriteString("<table>")
	}
	b.WriteString("<thead><tr>")
	for _, h := range headers {
		fmt.Fprintf(&b, "<th>%s</th>", h)
	}
	b.WriteString("</tr></thead><tbody>")
	for i := 0; i < n; i++ {
		b.WriteString("<tr>")
		for j := range headers {
			fmt.Fprintf(&b, "<td>r%dc%d</td>", i, j)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func page(body string) string {
	return "<html><head><title>t</title></head><body>" + body + "</body></html>"
}

func TestVisiblePicksLargest(t *testing.T) {
	doc := page(
		buildTable("small", []string{"a", "b"}, 3) +
			buildTable("big", []string{"a", "b", "c"}, 10) +
			buildTable("mid", []string{"a"}, 10),
	)

	c := Visible(doc)
	if c == nil {
		t.Fatal("no candidate found")
	}
	if c.ID != "big" {
		t.Fatalf("picked %q, want big", c.ID)
	}
	rows, cols := c.Size()
	if rows != 10 || cols != 3 {
		t.Errorf("size = (%d, %d), want (10, 3)", rows, cols)
	}
}

func TestVisibleSkipsMalformed(t *testing.T) {
	doc := page(
		"<table></table>" +
			"<table><tbody><tr></tr></tbody></table>" +
			buildTable("ok", []string{"a"}, 2),
	)

	c := Visible(doc)
	if c == nil || c.ID != "ok" {
		t.Fatalf("got %+v, want the ok table", c)
	}
}

func TestVisibleTwoLevelHeader(t *testing.T) {
	doc := page(`<table id="stats">
		<thead>
			<tr><th colspan="2"></th><th colspan="2">Performance</th><th colspan="2">Per 90 Minutes</th></tr>
			<tr><th>Squad</th><th># Pl</th><th>Gls</th><th>Ast</th><th>Gls</th><th>Ast</th></tr>
		</thead>
		<tbody>
			<tr><td>Arsenal</td><td>26</td><td>69</td><td>50</td><td>1.82</td><td>1.32</td></tr>
		</tbody>
	</table>`)

	c := Visible(doc)
	if c == nil {
		t.Fatal("no candidate found")
	}
	if c.Levels != 2 {
		t.Fatalf("levels = %d, want 2", c.Levels)
	}
	if got := c.Header[2]; got.Base != "Gls" || got.Section != "Performance" {
		t.Errorf("column 2 = %+v, want Gls/Performance", got)
	}
	if got := c.Header[4]; got.Base != "Gls" || got.Section != "Per 90 Minutes" {
		t.Errorf("column 4 = %+v, want Gls/Per 90 Minutes", got)
	}
	// With an empty spanner the section scan falls through to the inner
	// row, so base and section coincide.
	if got := c.Header[0]; got.Base != "Squad" || got.Section != "Squad" {
		t.Errorf("column 0 = %+v, want Squad/Squad", got)
	}
}

func TestVisibleSkipsRepeatedHeaderRows(t *testing.T) {
	doc := page(`<table>
		<thead><tr><th>a</th><th>b</th></tr></thead>
		<tbody>
			<tr><td>1</td><td>2</td></tr>
			<tr class="thead"><td>a</td><td>b</td></tr>
			<tr><td>3</td><td>4</td></tr>
		</tbody>
	</table>`)

	c := Visible(doc)
	if c == nil {
		t.Fatal("no candidate found")
	}
	if rows, _ := c.Size(); rows != 2 {
		t.Fatalf("rows = %d, want 2 (mid-body header must be skipped)", rows)
	}
}

func TestHiddenRecoversCommentTable(t *testing.T) {
	doc := page(
		buildTable("visible", []string{"a", "b"}, 5) +
			`<div class="placeholder"><!-- note, no table here --></div>` +
			"<!--\n" + buildTable("hidden_big", []string{"a", "b", "c"}, 12) + "\n-->" +
			"<!--" + buildTable("hidden_small", []string{"a"}, 2) + "-->",
	)

	c := Hidden(doc)
	if c == nil {
		t.Fatal("no hidden candidate found")
	}
	if c.ID != "hidden_big" {
		t.Fatalf("picked %q, want hidden_big", c.ID)
	}

	// The visible scan must not see comment content.
	if v := Visible(doc); v == nil || v.ID != "visible" {
		t.Fatalf("visible scan leaked into comments: %+v", v)
	}
}

func TestHiddenNone(t *testing.T) {
	if c := Hidden(page("<p>plain</p><!-- just words -->")); c != nil {
		t.Fatalf("got %+v, want nil", c)
	}
}

func TestNoTablesAnywhere(t *testing.T) {
	doc := page("<p>nothing tabular</p>")

	if c := Visible(doc); c != nil {
		t.Fatalf("visible = %+v, want nil", c)
	}
	if c := Hidden(doc); c != nil {
		t.Fatalf("hidden = %+v, want nil", c)
	}
	got := Biggest(doc)
	if !got.Empty() {
		t.Fatalf("Biggest = %+v, want empty table", got)
	}
}
