package tabular

import (
	"testing"
)

const standingsHTML = `<table id="results2024-202591_overall">
	<thead><tr><th>Rk</th><th>Squad</th><th>MP</th><th>W</th><th>D</th><th>L</th><th>GF</th><th>GA</th><th>Pts</th></tr></thead>
	<tbody>
		<tr><td>1</td><td>Liverpool</td><td>38</td><td>25</td><td>9</td><td>4</td><td>86</td><td>41</td><td>84</td></tr>
		<tr><td>2</td><td>Arsenal</td><td>38</td><td>20</td><td>14</td><td>4</td><td>69</td><td>34</td><td>74</td></tr>
	</tbody>
</table>`

const teamStatsHTML = `<table id="stats_squads_standard_for">
	<thead>
		<tr><th colspan="2"></th><th colspan="3">Performance</th><th colspan="2">Expected</th></tr>
		<tr><th>Squad</th><th>Poss</th><th>Gls</th><th>Ast</th><th>Sh</th><th>xG</th><th>xGA</th></tr>
	</thead>
	<tbody>
		<tr><td>Arsenal</td><td>58.3</td><td>69</td><td>50</td><td>594</td><td>67.9</td><td>33.6</td></tr>
	</tbody>
</table>`

func TestClassifyByID(t *testing.T) {
	doc := page(`<table id="league_standings_xyz">
		<thead><tr><th>Team</th><th>Rank</th></tr></thead>
		<tbody><tr><td>Arsenal</td><td>2</td></tr></tbody>
	</table>` + teamStatsHTML)

	standings, stats := Classify(doc)
	if standings == nil {
		t.Fatal("standings not detected by id substring")
	}
	if got := standings.Fields[0]; got != "team" {
		t.Errorf("standings fields = %v", standings.Fields)
	}
	if stats == nil {
		t.Fatal("team stats not detected by known id")
	}
	want := []string{"squad", "poss", "gls", "ast", "sh", "xg", "xga"}
	for i, f := range want {
		if stats.Fields[i] != f {
			t.Fatalf("stats fields = %v, want %v", stats.Fields, want)
		}
	}
}

func TestStandingsHeaderFallback(t *testing.T) {
	// No id attribute at all: the W/D/L + Pts signature must match.
	doc := page(`<table>
		<thead><tr><th>Squad</th><th>W</th><th>D</th><th>L</th><th>Pts</th></tr></thead>
		<tbody><tr><td>Arsenal</td><td>20</td><td>14</td><td>4</td><td>74</td></tr></tbody>
	</table>`)

	standings, _ := Classify(doc)
	if standings == nil {
		t.Fatal("standings fallback did not match")
	}
	if len(standings.Rows) != 1 || standings.Rows[0][0] != "Arsenal" {
		t.Errorf("rows = %v", standings.Rows)
	}
}

func TestStandingsNeedsPoints(t *testing.T) {
	doc := page(`<table>
		<thead><tr><th>Squad</th><th>W</th><th>D</th><th>L</th></tr></thead>
		<tbody><tr><td>Arsenal</td><td>20</td><td>14</td><td>4</td></tr></tbody>
	</table>`)

	standings, _ := Classify(doc)
	if standings != nil {
		t.Fatalf("matched without a points column: %+v", standings)
	}
}

func TestTeamStatsMetricFallback(t *testing.T) {
	// Standings-shaped table comes first and must be excluded even though
	// it also overlaps the metric vocabulary.
	doc := page(standingsHTML + `<table>
		<thead><tr><th>Squad</th><th>Sh</th><th>SoT</th><th>xG</th><th>Tkl</th></tr></thead>
		<tbody><tr><td>Arsenal</td><td>594</td><td>212</td><td>67.9</td><td>601</td></tr></tbody>
	</table>`)

	standings, stats := Classify(doc)
	if standings == nil {
		t.Fatal("standings not detected")
	}
	if stats == nil {
		t.Fatal("team stats fallback did not match")
	}
	if stats.Fields[3] != "xg" {
		t.Errorf("stats fields = %v", stats.Fields)
	}
}

func TestTeamStatsNeedsOverlap(t *testing.T) {
	doc := page(`<table>
		<thead><tr><th>Squad</th><th>Sh</th><th>SoT</th></tr></thead>
		<tbody><tr><td>Arsenal</td><td>594</td><td>212</td></tr></tbody>
	</table>`)

	_, stats := Classify(doc)
	if stats != nil {
		t.Fatalf("matched with only two key metrics: %+v", stats)
	}
}

func TestClassifyFindsCommentHiddenStats(t *testing.T) {
	doc := page(standingsHTML + "<!--" + teamStatsHTML + "-->")

	standings, stats := Classify(doc)
	if standings == nil {
		t.Fatal("standings not detected")
	}
	if stats == nil {
		t.Fatal("comment-hidden team stats not detected")
	}
	if got := stats.Fields[2]; got != "gls" {
		t.Errorf("stats fields = %v", stats.Fields)
	}
}

func TestClassifyNothing(t *testing.T) {
	standings, stats := Classify(page("<p>no tables</p>"))
	if standings != nil || stats != nil {
		t.Fatalf("got %+v / %+v, want nil / nil", standings, stats)
	}
}
