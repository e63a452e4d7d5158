package dataset

import "strings"

// rule is one entry in the ordered classification chain. More specific rules
// must come before more general ones that share columns: NBW is tested before
// Narcotics (both carry seizure counters, only Narcotics has ganja_kg), and
// the seizure-text sniff separates Excise from OPG.
type rule struct {
	kind  Kind
	match func(t *Table) bool
}

var rules = []rule{
	{KindConvictions, func(t *Table) bool {
		return t.HasColumns("ipc_trials", "ipc_convictions", "sll_trials")
	}},
	{KindCrimePendency, func(t *Table) bool {
		return t.HasColumns("pendency_percent", "target_close")
	}},
	{KindExcise, func(t *Table) bool {
		return t.HasColumns("cases_registered", "persons_arrested", "details_of_seizure") &&
			seizureTextContains(t, "fermented wash")
	}},
	{KindFirearms, func(t *Table) bool {
		return t.HasColumns("gun_rifle", "pistol", "ammunition")
	}},
	{KindMissingPersons, func(t *Table) bool {
		return t.HasColumns("missing_boys_start", "traced_boys")
	}},
	{KindNBW, func(t *Table) bool {
		return t.HasColumns("nbw_pending_start", "nbw_received", "nbw_executed_drive") &&
			!t.HasColumn("ganja_kg")
	}},
	{KindNarcotics, func(t *Table) bool {
		return t.HasColumns("ganja_kg", "brownsugar_g", "cough_syrup_bottles")
	}},
	{KindOPG, func(t *Table) bool {
		return t.HasColumn("details_of_seizure") && seizureTextContains(t, "mobile")
	}},
	{KindPreventive, func(t *Table) bool {
		return t.HasColumns("notice_129_bnss", "bound_126_bnss")
	}},
	{KindSandMining, func(t *Table) bool {
		return t.HasColumns("vehicles_seized", "notices_served")
	}},
}

// Classify returns the first kind in the chain whose predicate matches, or
// KindUnknown when nothing does.
//
// The Excise/OPG split rests on keyword sniffing of the details_of_seizure
// free text ("fermented wash" vs "mobile"). That is a heuristic, not a
// guarantee: a file whose leading seizure descriptions are atypical can be
// misclassified. The sniff reads the first non-empty value of the column so
// that a blank leading cell alone cannot defeat it.
func Classify(t *Table) Kind {
	for _, r := range rules {
		if r.match(t) {
			return r.kind
		}
	}
	return KindUnknown
}

func seizureTextContains(t *Table, keyword string) bool {
	for _, r := range t.Rows {
		cell := strings.TrimSpace(r["details_of_seizure"])
		if cell == "" {
			continue
		}
		return strings.Contains(strings.ToLower(cell), keyword)
	}
	return false
}
