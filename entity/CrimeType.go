package entity

// CrimeTypeGroup is one category of the fixed crime taxonomy.
type CrimeTypeGroup struct {
	Category string   `json:"category"`
	Types    []string `json:"types"`
}

// CrimeTypeGroups is the full taxonomy surfaced to the intake form,
// grouped the way the select box renders it.
var CrimeTypeGroups = []CrimeTypeGroup{
	{
		Category: "Violent",
		Types: []string{
			"Murder", "Manslaughter", "Armed Robbery", "Kidnapping", "Terrorism",
			"Assault", "Rape/Sexual Assault", "Domestic Violence", "Human Trafficking",
		},
	},
	{
		Category: "Property",
		Types: []string{
			"Theft", "Burglary", "Arson", "Vandalism", "Fraud",
			"Cybercrime", "Identity Theft", "Forgery",
		},
	},
	{
		Category: "Maritime",
		Types: []string{
			"Piracy", "Sea Robbery", "Illegal Fishing", "Oil Bunkering",
			"Maritime Terrorism", "Smuggling", "Trafficking via Sea", "Illegal Oil Refining",
		},
	},
	{
		Category: "Financial",
		Types: []string{
			"Corruption", "Money Laundering", "Embezzlement", "Bribery",
			"Tax Evasion", "Advance Fee Fraud",
		},
	},
	{
		Category: "Drug",
		Types:    []string{"Drug Trafficking", "Drug Possession", "Drug Manufacturing", "Drug Distribution"},
	},
	{
		Category: "Other",
		Types: []string{
			"Cultism", "Ritual Killing", "Illegal Firearms", "Banditry",
			"Cattle Rustling", "Communal Clashes", "Electoral Violence", "Other",
		},
	},
}

var crimeTypeSet = buildCrimeTypeSet()

func buildCrimeTypeSet() map[string]bool {
	set := make(map[string]bool)
	for _, g := range CrimeTypeGroups {
		for _, t := range g.Types {
			set[t] = true
		}
	}
	return set
}

// ValidCrimeType reports whether t belongs to the taxonomy.
func ValidCrimeType(t string) bool {
	return crimeTypeSet[t]
}
