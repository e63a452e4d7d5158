// Package geo resolves district names to static reference coordinates and
// assembles the deduplicated map markers of an inference result.
package geo

import "strings"

// Point is the static reference coordinate of a district headquarters.
type Point struct {
	District string  `json:"district"`
	State    string  `json:"state"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// Coordinates target the district headquarters for accurate GIS overlays.
var districts = map[string]Point{
	"angul":         {"angul", "Odisha", 20.8390, 85.0970},
	"balangir":      {"balangir", "Odisha", 20.7043, 83.4843},
	"balasore":      {"balasore", "Odisha", 21.4942, 86.9330},
	"bargarh":       {"bargarh", "Odisha", 21.3420, 83.6190},
	"bhadrak":       {"bhadrak", "Odisha", 21.0574, 86.5155},
	"bhubaneswar":   {"bhubaneswar", "Odisha", 20.2961, 85.8245},
	"boudh":         {"boudh", "Odisha", 20.8373, 84.3275},
	"cuttack":       {"cuttack", "Odisha", 20.4625, 85.8828},
	"deogarh":       {"deogarh", "Odisha", 21.5389, 84.7289},
	"dhenkanal":     {"dhenkanal", "Odisha", 20.6574, 85.5969},
	"gajapati":      {"gajapati", "Odisha", 18.7808, 84.0886},
	"ganjam":        {"ganjam", "Odisha", 19.3897, 85.0600},
	"jagatsinghpur": {"jagatsinghpur", "Odisha", 20.2588, 86.1711},
	"jajpur":        {"jajpur", "Odisha", 20.8400, 86.3373},
	"jharsuguda":    {"jharsuguda", "Odisha", 21.8687, 84.0067},
	"kalahandi":     {"kalahandi", "Odisha", 19.9136, 83.1649},
	"kandhamal":     {"kandhamal", "Odisha", 20.4670, 84.2335},
	"kendrapara":    {"kendrapara", "Odisha", 20.5006, 86.4160},
	"kendujhar":     {"kendujhar", "Odisha", 21.6284, 85.6002},
	"khordha":       {"khordha", "Odisha", 20.1822, 85.6160},
	"koraput":       {"koraput", "Odisha", 18.8110, 82.7123},
	"malkangiri":    {"malkangiri", "Odisha", 18.3537, 81.8893},
	"mayurbhanj":    {"mayurbhanj", "Odisha", 21.9385, 86.7387},
	"nabarangpur":   {"nabarangpur", "Odisha", 19.2311, 82.5479},
	"nayagarh":      {"nayagarh", "Odisha", 20.1288, 85.0985},
	"nuapada":       {"nuapada", "Odisha", 20.8080, 82.5330},
	"puri":          {"puri", "Odisha", 19.8135, 85.8312},
	"rayagada":      {"rayagada", "Odisha", 19.1710, 83.4163},
	"sambalpur":     {"sambalpur", "Odisha", 21.4669, 83.9812},
	"subarnapur":    {"subarnapur", "Odisha", 20.8330, 83.9169},
	"rourkela":      {"rourkela", "Odisha", 22.2604, 84.8536},
	"sundargarh":    {"sundargarh", "Odisha", 22.2604, 84.8536},
}

// Alternate historical and colloquial spellings seen across the dataset
// templates. Each alias resolves to its canonical district's Point.
var aliases = map[string][]string{
	"angul":         {"anugul"},
	"balangir":      {"bolangir"},
	"balasore":      {"baleshwar", "balaswar"},
	"bargarh":       {"padampur"},
	"bhadrak":       {"bhadrak town"},
	"bhubaneswar":   {"bhubaneshwar"},
	"boudh":         {"baudh"},
	"cuttack":       {"katak"},
	"deogarh":       {"debagarh"},
	"dhenkanal":     {"dhenkanal town"},
	"gajapati":      {"paralakhemundi"},
	"ganjam":        {"chhatrapur"},
	"jagatsinghpur": {"jagatsingpur"},
	"jajpur":        {"jaipur"},
	"jharsuguda":    {"jharsugura"},
	"kalahandi":     {"bhawanipatna"},
	"kandhamal":     {"phulbani"},
	"kendrapara":    {"kendrapada"},
	"kendujhar":     {"keonjhar"},
	"khordha":       {"khurda", "khorda"},
	"koraput":       {"jeypore"},
	"malkangiri":    {"malakangiri"},
	"mayurbhanj":    {"baripada"},
	"nabarangpur":   {"navarangpur"},
	"nayagarh":      {"nayagad"},
	"nuapada":       {"nuapara"},
	"rayagada":      {"raigada"},
	"subarnapur":    {"sonepur"},
	"sundargarh":    {"sundargar"},
}

var registry = buildRegistry()

func buildRegistry() map[string]Point {
	r := make(map[string]Point, len(districts)*2)
	for key, p := range districts {
		r[key] = p
	}
	for canonical, alts := range aliases {
		p := districts[canonical]
		for _, a := range alts {
			// Aliases are stored both space-stripped and as-is so both
			// lookup passes can hit them.
			r[normalizeKey(a)] = p
			r[a] = p
		}
	}
	return r
}

func normalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}

// Resolve looks a free-text district name up in the static registry. The
// space-stripped lowercase form is tried first, then the trimmed lowercase
// form with spaces kept. Aliases resolve by plain membership, no fuzzy match.
func Resolve(districtName string) (Point, bool) {
	if strings.TrimSpace(districtName) == "" {
		return Point{}, false
	}
	if p, ok := registry[normalizeKey(districtName)]; ok {
		return p, true
	}
	if p, ok := registry[strings.ToLower(strings.TrimSpace(districtName))]; ok {
		return p, true
	}
	return Point{}, false
}
