package protocol

import "strings"

type Status string

const (
	StatusVerified      Status = "verified"
	StatusCaution       Status = "caution"
	StatusInformational Status = "informational"
)

// Label is the display text a renderer shows for the status.
func (s Status) Label() string {
	switch s {
	case StatusCaution:
		return "Caution / Guideline Deviation"
	case StatusInformational:
		return "Note"
	default:
		return "Verified"
	}
}

type Verification struct {
	Status  Status `json:"status" yaml:"status"`
	Notes   string `json:"notes" yaml:"notes"`
	Changes string `json:"changes" yaml:"changes"`
}

const (
	BaselineVerificationNotes = "Protocol aligns with standard empiric guidelines."
	NoChanges                 = "None detected."
)

type guidelineCheck struct {
	id       string
	syndrome string
	drug     string
	patch    func(v *Verification)
}

// guidelineChecks are independent: each one whose syndrome and drug both
// appear is applied in order, so later checks overwrite earlier fields.
var guidelineChecks = []guidelineCheck{
	{
		id:       "diverticulitis-fluoroquinolone",
		syndrome: "Diverticulitis",
		drug:     "Ciprofloxacin",
		patch: func(v *Verification) {
			v.Status = StatusCaution
			v.Notes = "Protocol suggests Ciprofloxacin + Metronidazole. Recent IDSA guidelines prefer Amoxicillin/Clavulanate due to high E. coli resistance to fluoroquinolones."
			v.Changes = "Consider reviewing local E. coli antibiogram before prescribing Cipro."
		},
	},
	{
		id:       "cystitis-nitrofurantoin-crcl",
		syndrome: "Cystitis",
		drug:     "Nitrofurantoin",
		patch: func(v *Verification) {
			v.Notes = "Nitrofurantoin is standard, but ensure CrCl > 30 mL/min (revised from >60 in older guidelines)."
		},
	},
	{
		id:       "cap-macrolide-resistance",
		syndrome: "Community-Acquired Pneumonia",
		drug:     "Azithromycin",
		patch: func(v *Verification) {
			v.Status = StatusInformational
			v.Changes = "Protocol uses Azithromycin monotherapy adjunct. Some 2024 guidelines suggest Doxycycline as a preferred alternative due to macrolide resistance, unless local data supports Azithromycin."
		},
	},
}

// Verify compares a resolved first-line regimen against known guideline
// deviations for the diagnosis.
func Verify(diagnosis, firstLine string) Verification {
	v := Verification{
		Status:  StatusVerified,
		Notes:   BaselineVerificationNotes,
		Changes: NoChanges,
	}
	for _, c := range guidelineChecks {
		if strings.Contains(diagnosis, c.syndrome) && strings.Contains(firstLine, c.drug) {
			c.patch(&v)
		}
	}
	return v
}
