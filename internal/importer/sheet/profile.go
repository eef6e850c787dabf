package sheet

// Profile describes the column layout of a deal spreadsheet export.
// Adding a new layout is just adding a new Profile to the profiles slice.
type Profile struct {
	Name        string
	CompanyCol  string
	RevenueCol  string
	OwnerCol    string
	PriorityCol string // optional
	SDECol      string // optional
	DescCol     string // optional
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.CompanyCol, p.RevenueCol, p.OwnerCol}
}

// profiles is the ordered list of layouts tried during auto-detection.
var profiles = []Profile{
	{
		Name:        "pipeline",
		CompanyCol:  "company name",
		RevenueCol:  "annual revenue",
		OwnerCol:    "deal owner",
		PriorityCol: "priority",
		SDECol:      "sde",
		DescCol:     "description",
	},
	{
		Name:        "simple",
		CompanyCol:  "company",
		RevenueCol:  "revenue",
		OwnerCol:    "owner",
		PriorityCol: "priority",
		SDECol:      "sde",
		DescCol:     "notes",
	},
}
