package protocol

// DosingAdjustment is one row of the renal adjustment reference table.
type DosingAdjustment struct {
	Drug         string `json:"drug" yaml:"drug"`
	StandardDose string `json:"standardDose" yaml:"standardDose"`
	CrCl30To50   string `json:"crcl30to50" yaml:"crcl30to50"`
	CrCl10To29   string `json:"crcl10to29" yaml:"crcl10to29"`
}

// GramStainHint maps a rapid diagnostic finding to its likely organisms.
type GramStainHint struct {
	Finding   string `json:"finding" yaml:"finding"`
	Organisms string `json:"organisms" yaml:"organisms"`
}

type Metadata struct {
	Title    string `json:"title" yaml:"title"`
	Date     string `json:"date" yaml:"date"`
	Location string `json:"location" yaml:"location"`
	Mission  string `json:"mission" yaml:"mission"`
	Excerpt  string `json:"excerpt" yaml:"excerpt"`
}

var dosingAdjustments = []DosingAdjustment{
	{Drug: "Cefepime", StandardDose: "2 g Q8H", CrCl30To50: "2 g Q12H", CrCl10To29: "2 g Q24H"},
	{Drug: "Piperacillin/tazobactam", StandardDose: "4.5 g Q6H", CrCl30To50: "3.375 g Q6H", CrCl10To29: "2.25 g Q8H"},
	{Drug: "Meropenem", StandardDose: "1 g Q8H", CrCl30To50: "1 g Q12H", CrCl10To29: "500 mg Q12H"},
	{Drug: "Ciprofloxacin", StandardDose: "400 mg Q8H", CrCl30To50: "400 mg Q12H", CrCl10To29: "400 mg Q24H"},
}

var microbiologyGuide = []GramStainHint{
	{Finding: "GPC Clusters", Organisms: "Staph aureus / CoNS"},
	{Finding: "GPC Pairs/Chains", Organisms: "Strep pneumo / Enterococcus"},
	{Finding: "GNR Lactose (+)", Organisms: "E. coli / Klebsiella"},
	{Finding: "GNR Lactose (-)", Organisms: "Pseudomonas / Acinetobacter"},
}

var protocolMetadata = Metadata{
	Title:    "Clinical Protocol for Inpatient Antimicrobial Therapy",
	Date:     "February 03, 2026",
	Location: "The Johns Hopkins Hospital",
	Mission:  "Optimize clinical outcomes while minimizing unintended consequences...",
	Excerpt: `Clinical Protocol for Inpatient Antimicrobial Therapy
Date: February 03, 2026
Location: The Johns Hopkins Hospital

Mission: Optimize clinical outcomes while minimizing unintended consequences...`,
}

// DosingAdjustments returns the renal adjustment table. See section 7.3 of
// the protocol for the full list.
func DosingAdjustments() []DosingAdjustment {
	return append([]DosingAdjustment(nil), dosingAdjustments...)
}

func MicrobiologyGuide() []GramStainHint {
	return append([]GramStainHint(nil), microbiologyGuide...)
}

func ProtocolMetadata() Metadata {
	return protocolMetadata
}
