package accounts

import (
	"strings"

	"warroom-monitor/internal/types"
)

// Account is one monitored X identity. The roster is defined at compile time
// and never mutated after process start.
type Account struct {
	Handle string     `json:"handle"`
	Name   string     `json:"name"`
	Role   string     `json:"role"`
	Org    string     `json:"org"`
	Tier   types.Tier `json:"tier"`
}

// Critical accounts are polled every cycle; these drive program decisions.
var Critical = []Account{
	{Handle: "forgepad", Name: "Forgepad", Role: "Platform", Org: "Forgepad", Tier: types.TierCritical},
	{Handle: "danbrower", Name: "Dan Brower", Role: "Co-founder", Org: "Forgepad", Tier: types.TierCritical},
}

// High accounts are founders and top-tier advisors, also polled every cycle.
var High = []Account{
	{Handle: "mia_castellan", Name: "Mia Castellan", Role: "Co-founder & CEO", Org: "Forgepad", Tier: types.TierHigh},
	{Handle: "tomvreeland", Name: "Tom Vreeland", Role: "General Partner", Org: "Crestline Ventures", Tier: types.TierHigh},
	{Handle: "priyarao_vc", Name: "Priya Rao", Role: "Partner", Org: "Northbeam Capital", Tier: types.TierHigh},
	{Handle: "jkowalski", Name: "Jan Kowalski", Role: "Head of Ecosystem", Org: "Relay Labs", Tier: types.TierHigh},
}

// Standard accounts ride along every third cycle to stay inside rate limits.
var Standard = []Account{
	{Handle: "swattenberg", Name: "Sara Wattenberg", Role: "Portfolio Manager", Org: "Arcadia", Tier: types.TierStandard},
	{Handle: "colefisher", Name: "Cole Fisher", Role: "Head of Markets", Org: "Tidewater", Tier: types.TierStandard},
	{Handle: "mrodrig_dev", Name: "Marco Rodriguez", Role: "Developer Relations", Org: "Relay Labs", Tier: types.TierStandard},
	{Handle: "annikaberg", Name: "Annika Berg", Role: "General Partner", Org: "Helmsman Ventures", Tier: types.TierStandard},
	{Handle: "drew_lam", Name: "Drew Lam", Role: "COO", Org: "Kite Labs", Tier: types.TierStandard},
}

// Competitors are watched projects; they poll on the standard cadence.
var Competitors = []Account{
	{Handle: "meshwire_app", Name: "Meshwire", Role: "Cohort winner", Org: "Meshwire", Tier: types.TierStandard},
	{Handle: "quietloop", Name: "Quietloop", Role: "Competitor", Org: "Quietloop", Tier: types.TierStandard},
}

// All returns the full roster in tier order.
func All() []Account {
	out := make([]Account, 0, len(Critical)+len(High)+len(Standard)+len(Competitors))
	out = append(out, Critical...)
	out = append(out, High...)
	out = append(out, Standard...)
	out = append(out, Competitors...)
	return out
}

var byHandle = func() map[string]Account {
	m := make(map[string]Account)
	for _, a := range All() {
		m[strings.ToLower(a.Handle)] = a
	}
	return m
}()

// Lookup finds an account by handle, case-insensitively.
func Lookup(handle string) (Account, bool) {
	a, ok := byHandle[strings.ToLower(handle)]
	return a, ok
}
