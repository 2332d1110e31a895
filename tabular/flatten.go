package tabular

import (
	"regexp"
	"strings"
)

// labelReplacer applies the literal vocabulary substitutions before the
// generic token rule. Longer keys come first so "g+apk" is not split by the
// "g+a" rule.
var labelReplacer = strings.NewReplacer(
	"g+apk", "g_plus_a_pk",
	"g+a", "g_plus_a",
	"per 90 minutes", "per90",
)

var (
	nonWord     = regexp.MustCompile(`[^\w]+`)
	underscores = regexp.MustCompile(`_+`)
)

// normalizeLabel turns a raw header text into a lowercase
// underscore-delimited token.
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = labelReplacer.Replace(s)
	s = nonWord.ReplaceAllString(s, "_")
	s = underscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// sectionTags maps common normalized section labels to the short tag used
// when a field name collides.
var sectionTags = map[string]string{
	"playing_time": "pt",
	"performance":  "perf",
	"expected":     "exp",
	"progression":  "prog",
	"per90":        "per90",
}

// sectionTag picks the collision tag for a normalized section label:
// the fixed map first, else the label's first six characters, else "sec".
func sectionTag(section string) string {
	if tag, ok := sectionTags[section]; ok {
		return tag
	}
	if len(section) > 6 {
		section = section[:6]
	}
	if section == "" {
		return "sec"
	}
	return section
}

// Flatten converts a candidate's header into unique field names and tidies
// the grid: duplicate columns are dropped keep-first, rows empty across all
// surviving columns are removed, and row order stays contiguous 0-based.
// A nil or empty candidate yields an empty table; Flatten never fails.
func Flatten(c *Candidate) Table {
	if c == nil || len(c.Header) == 0 {
		return Table{}
	}

	names := make([]string, len(c.Header))
	if c.Levels >= 2 {
		// Left-to-right fold over already-assigned names. A name
		// disambiguated here is final: it is recorded as assigned and
		// never re-checked, so a second collision on the same
		// disambiguated name falls through to the keep-first column
		// drop below.
		seen := make(map[string]bool, len(c.Header))
		for i, lab := range c.Header {
			base := normalizeLabel(lab.Base)
			section := normalizeLabel(lab.Section)

			name := base
			if strings.Contains(section, "per90") {
				name = base + "_per90"
			}
			if seen[name] {
				name = base + "_" + sectionTag(section)
			}
			seen[name] = true
			names[i] = name
		}
	} else {
		for i, lab := range c.Header {
			names[i] = normalizeLabel(lab.Base)
		}
	}

	// Keep-first column dedup.
	keep := make([]int, 0, len(names))
	assigned := make(map[string]bool, len(names))
	for i, n := range names {
		if assigned[n] {
			continue
		}
		assigned[n] = true
		keep = append(keep, i)
	}

	fields := make([]string, len(keep))
	for k, i := range keep {
		fields[k] = names[i]
	}

	rows := make([][]string, 0, len(c.Rows))
	for _, src := range c.Rows {
		row := make([]string, len(keep))
		empty := true
		for k, i := range keep {
			if i < len(src) {
				row[k] = src[i]
			}
			if row[k] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return Table{Fields: fields, Rows: rows}
}
