package dataset

// Kind identifies which of the ten operational-drive schemas a table matches.
type Kind string

const (
	KindConvictions    Kind = "convictions"
	KindCrimePendency  Kind = "crime_pendency"
	KindExcise         Kind = "excise"
	KindFirearms       Kind = "firearms"
	KindMissingPersons Kind = "missing_persons"
	KindNBW            Kind = "nbw"
	KindNarcotics      Kind = "narcotics"
	KindOPG            Kind = "opg"
	KindPreventive     Kind = "preventive"
	KindSandMining     Kind = "sand_mining"
	KindUnknown        Kind = "unknown"
)

// Label returns the display name used in responses, reports and history rows.
func (k Kind) Label() string {
	switch k {
	case KindConvictions:
		return "Convictions"
	case KindCrimePendency:
		return "Crime_Pendency"
	case KindExcise:
		return "Excise_Act"
	case KindFirearms:
		return "Firearms_Drive"
	case KindMissingPersons:
		return "MissingPersons_Drive"
	case KindNBW:
		return "NBW_Drive"
	case KindNarcotics:
		return "Narcotics_Drive"
	case KindOPG:
		return "OPG_Act"
	case KindPreventive:
		return "PreventiveMeasures"
	case KindSandMining:
		return "SandMining"
	default:
		return "Unknown"
	}
}
