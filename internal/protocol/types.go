package protocol

type OrganSystem string

const (
	Abdominal OrganSystem = "Abdominal Infections"
	CNS       OrganSystem = "CNS Infections"
	Pulmonary OrganSystem = "Pulmonary Infections"
	Skin      OrganSystem = "Skin, Soft-Tissue, Bone"
	Urinary   OrganSystem = "Urinary Tract Infections (UTI)"
	Sepsis    OrganSystem = "Sepsis (No Clear Source)"
)

type Diagnosis string

const (
	BiliaryTract   Diagnosis = "Biliary Tract (Cholecystitis/Cholangitis)"
	Diverticulitis Diagnosis = "Diverticulitis"
	Pancreatitis   Diagnosis = "Pancreatitis"
	Peritonitis    Diagnosis = "Peritonitis"

	BacterialMeningitis Diagnosis = "Bacterial Meningitis"
	BrainAbscess        Diagnosis = "Brain Abscess"

	CommunityAcquiredPneumonia Diagnosis = "Community-Acquired Pneumonia (CAP)"
	HospitalAcquiredPneumonia  Diagnosis = "HAP/VAP"

	AcuteCystitis      Diagnosis = "Acute Cystitis (Uncomplicated)"
	Pyelonephritis     Diagnosis = "Pyelonephritis / Urosepsis"
	CatheterAssociated Diagnosis = "Catheter-Associated UTI (CA-UTI)"

	CellulitisNonSuppurative Diagnosis = "Cellulitis (Non-suppurative)"
	CellulitisSuppurative    Diagnosis = "Cellulitis (Suppurative) / Abscess"
	DiabeticFoot             Diagnosis = "Diabetic Foot"
	NecrotizingFasciitis     Diagnosis = "Necrotizing Fasciitis"

	SepsisUnknownSource Diagnosis = "Sepsis Unknown Source"
)

// Severity labels. The general scale is offered for every diagnosis without
// its own labels; biliary, diverticulitis and CAP rules match their own.
type Severity string

const (
	Mild     Severity = "Mild"
	Moderate Severity = "Moderate"
	Severe   Severity = "Severe"
	Critical Severity = "ICU / Critical"

	NotSevere        Severity = "Community-Acquired/Not Severe"
	HospitalAcquired Severity = "Severe/Hospital-Acquired"
	MildModerate     Severity = "Mild/Moderate"
	NonICU           Severity = "Non-ICU"
	ICU              Severity = "ICU"
)

type RiskFactor string

const (
	MRSARisk          RiskFactor = "MRSA Risk"
	PseudomonasRisk   RiskFactor = "Pseudomonas Risk"
	Immunocompromised RiskFactor = "Immunocompromised"
	AgeOver50         RiskFactor = "Age > 50"
	RecentAntibiotics RiskFactor = "Recent Antibiotics"
)

// ClinicalInput is the categorical case description supplied by a form
// collector. Resolve never validates it.
type ClinicalInput struct {
	OrganSystem OrganSystem  `json:"organSystem" yaml:"organSystem"`
	Diagnosis   Diagnosis    `json:"diagnosis" yaml:"diagnosis"`
	Severity    Severity     `json:"severity" yaml:"severity"`
	PCNAllergy  bool         `json:"pcnAllergy" yaml:"pcnAllergy"`
	RiskFactors []RiskFactor `json:"riskFactors" yaml:"riskFactors"`
}

// HasRisk reports whether tag is present in the input's risk factors.
func (in ClinicalInput) HasRisk(tag RiskFactor) bool {
	for _, r := range in.RiskFactors {
		if r == tag {
			return true
		}
	}
	return false
}

type Recommendation struct {
	FirstLine   string `json:"firstLine" yaml:"firstLine"`
	Alternative string `json:"alternative" yaml:"alternative"`
	Duration    string `json:"duration" yaml:"duration"`
	Notes       string `json:"notes" yaml:"notes"`
}

const (
	ConsultID       = "Consult ID"
	DefaultDuration = "Dependent on clinical response"
	DefaultNotes    = "No specific match found in protocol text."
)

// DefaultRecommendation is returned whenever no authored rule matches.
func DefaultRecommendation() Recommendation {
	return Recommendation{
		FirstLine:   ConsultID,
		Alternative: ConsultID,
		Duration:    DefaultDuration,
		Notes:       DefaultNotes,
	}
}

// Evaluation pairs a resolved recommendation with its verification.
type Evaluation struct {
	Input          ClinicalInput  `json:"input" yaml:"input"`
	Recommendation Recommendation `json:"recommendation" yaml:"recommendation"`
	Verification   Verification   `json:"verification" yaml:"verification"`
}

// Evaluate runs the resolver and then the annotator over its first-line text.
func Evaluate(in ClinicalInput) Evaluation {
	rec := Resolve(in)
	return Evaluation{
		Input:          in,
		Recommendation: rec,
		Verification:   Verify(string(in.Diagnosis), rec.FirstLine),
	}
}
