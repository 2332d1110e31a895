package tabular

import (
	"strings"

	"golang.org/x/net/html"
)

// teamStatsIDs is the priority list of known markup identifiers for the
// squad-aggregate table, checked before falling back to metric overlap.
var teamStatsIDs = []string{"stats_squads_standard_for", "stats_squads_standard"}

// teamStatsKeys is the key-metric vocabulary: a header overlapping at least
// three of these marks a team-aggregate table.
var teamStatsKeys = []string{"sh", "sot", "xg", "xga", "g", "ast", "cmp", "att", "tkl", "int"}

// Classify picks the league standings table and the team-aggregate metrics
// table out of the document's full candidate pool (visible tables in
// document order, then comment-recovered ones). Either result may be nil;
// both pass through Flatten before being returned.
func Classify(document string) (standings, teamStats *Table) {
	pool := candidatePool(document)

	if c := findStandings(pool); c != nil {
		t := Flatten(c)
		standings = &t
	}
	if c := findTeamStats(pool); c != nil {
		t := Flatten(c)
		teamStats = &t
	}
	return standings, teamStats
}

// candidatePool parses every table of the document, visible first, then the
// ones recovered from comment blocks.
func candidatePool(document string) []*Candidate {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil
	}
	pool := candidatesIn(root)
	for _, payload := range commentBlocks(root) {
		if !strings.Contains(payload, "<table") {
			continue
		}
		frag, err := html.Parse(strings.NewReader(payload))
		if err != nil {
			continue
		}
		pool = append(pool, candidatesIn(frag)...)
	}
	return pool
}

// headerSet collects the distinct lowercase header texts of a candidate,
// base and section labels alike.
func headerSet(c *Candidate) map[string]bool {
	set := make(map[string]bool, 2*len(c.Header))
	for _, lab := range c.Header {
		for _, s := range []string{lab.Base, lab.Section} {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				set[s] = true
			}
		}
	}
	return set
}

// standingsShaped reports the W/D/L header signature of a league table.
func standingsShaped(h map[string]bool) bool {
	return h["w"] && h["d"] && h["l"]
}

// findStandings prefers a table whose id mentions standings, else the first
// one whose header carries W, D, L and a points column.
func findStandings(pool []*Candidate) *Candidate {
	for _, c := range pool {
		if strings.Contains(strings.ToLower(c.ID), "standings") {
			return c
		}
	}
	for _, c := range pool {
		h := headerSet(c)
		if standingsShaped(h) && (h["pts"] || h["points"]) {
			return c
		}
	}
	return nil
}

// findTeamStats tries the known table ids first, else the first table with
// enough key-metric overlap that is not itself standings-shaped.
func findTeamStats(pool []*Candidate) *Candidate {
	for _, id := range teamStatsIDs {
		for _, c := range pool {
			if c.ID == id {
				return c
			}
		}
	}
	for _, c := range pool {
		h := headerSet(c)
		overlap := 0
		for _, k := range teamStatsKeys {
			if h[k] {
				overlap++
			}
		}
		if overlap >= 3 && !standingsShaped(h) {
			return c
		}
	}
	return nil
}
