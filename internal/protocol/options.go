package protocol

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrUnknownOrganSystem = errors.New("unknown organ system")
	ErrUnknownDiagnosis   = errors.New("unknown diagnosis")
	ErrUnknownSeverity    = errors.New("unknown severity")
	ErrUnknownRiskFactor  = errors.New("unknown risk factor")
)

var (
	organSystems = []OrganSystem{Abdominal, CNS, Pulmonary, Skin, Urinary, Sepsis}

	diagnosisOptions = map[OrganSystem][]Diagnosis{
		Abdominal: {BiliaryTract, Diverticulitis, Pancreatitis, Peritonitis},
		CNS:       {BacterialMeningitis, BrainAbscess},
		Pulmonary: {CommunityAcquiredPneumonia, HospitalAcquiredPneumonia},
		Urinary:   {AcuteCystitis, Pyelonephritis, CatheterAssociated},
		Skin:      {CellulitisNonSuppurative, CellulitisSuppurative, DiabeticFoot, NecrotizingFasciitis},
		Sepsis:    {SepsisUnknownSource},
	}

	generalSeverities = []Severity{Mild, Moderate, Severe, Critical}

	severityOptions = map[Diagnosis][]Severity{
		BiliaryTract:               {NotSevere, HospitalAcquired},
		Diverticulitis:             {MildModerate, Severe},
		CommunityAcquiredPneumonia: {NonICU, ICU},
	}

	riskFactors = []RiskFactor{MRSARisk, PseudomonasRisk, Immunocompromised, AgeOver50, RecentAntibiotics}
)

// OrganSystems lists the organ systems in display order.
func OrganSystems() []OrganSystem {
	return append([]OrganSystem(nil), organSystems...)
}

// DiagnosisOptions lists the diagnoses offered for an organ system. Unknown
// organ systems have none.
func DiagnosisOptions(organ OrganSystem) []Diagnosis {
	return append([]Diagnosis(nil), diagnosisOptions[organ]...)
}

// SeverityOptions lists the severity labels a form should offer for the
// diagnosis. Diagnoses whose rules do not branch on their own labels get
// the general scale.
func SeverityOptions(organ OrganSystem, diagnosis Diagnosis) []Severity {
	if !containsValue(diagnosisOptions[organ], diagnosis) {
		return append([]Severity(nil), generalSeverities...)
	}
	if opts, ok := severityOptions[diagnosis]; ok {
		return append([]Severity(nil), opts...)
	}
	return append([]Severity(nil), generalSeverities...)
}

func RiskFactors() []RiskFactor {
	return append([]RiskFactor(nil), riskFactors...)
}

// Catalogue is the full option tree a form collector offers.
type Catalogue struct {
	OrganSystems []OrganGroup `json:"organSystems" yaml:"organSystems"`
	RiskFactors  []RiskFactor `json:"riskFactors" yaml:"riskFactors"`
}

type OrganGroup struct {
	OrganSystem OrganSystem      `json:"organSystem" yaml:"organSystem"`
	Diagnoses   []DiagnosisGroup `json:"diagnoses" yaml:"diagnoses"`
}

type DiagnosisGroup struct {
	Diagnosis  Diagnosis  `json:"diagnosis" yaml:"diagnosis"`
	Severities []Severity `json:"severities" yaml:"severities"`
}

// OptionCatalogue walks every organ system and diagnosis in display order.
func OptionCatalogue() Catalogue {
	cat := Catalogue{RiskFactors: RiskFactors()}
	for _, organ := range organSystems {
		group := OrganGroup{OrganSystem: organ}
		for _, dx := range diagnosisOptions[organ] {
			group.Diagnoses = append(group.Diagnoses, DiagnosisGroup{
				Diagnosis:  dx,
				Severities: SeverityOptions(organ, dx),
			})
		}
		cat.OrganSystems = append(cat.OrganSystems, group)
	}
	return cat
}

// ParseOrganSystem matches raw against the organ system labels, ignoring
// case and surrounding whitespace.
func ParseOrganSystem(raw string) (OrganSystem, error) {
	if v, ok := matchLabel(raw, organSystems); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrganSystem, raw)
}

// ParseDiagnosis matches raw against the diagnoses offered for organ.
func ParseDiagnosis(organ OrganSystem, raw string) (Diagnosis, error) {
	if v, ok := matchLabel(raw, diagnosisOptions[organ]); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q for %s", ErrUnknownDiagnosis, raw, organ)
}

func ParseSeverity(organ OrganSystem, diagnosis Diagnosis, raw string) (Severity, error) {
	if v, ok := matchLabel(raw, SeverityOptions(organ, diagnosis)); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q for %s", ErrUnknownSeverity, raw, diagnosis)
}

func ParseRiskFactor(raw string) (RiskFactor, error) {
	if v, ok := matchLabel(raw, riskFactors); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRiskFactor, raw)
}

// ValidationError collects every field problem found in a ClinicalInput.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	return "invalid clinical input: " + strings.Join(e.Messages(), "; ")
}

func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// Messages returns one message per problem, in the order found.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return msgs
}

// Canonical rewrites every label that matches an offered option to its
// canonical spelling and drops repeated risk factors. Labels that match
// nothing are kept as given so Validate can report them.
func (in ClinicalInput) Canonical() ClinicalInput {
	out := ClinicalInput{
		OrganSystem: in.OrganSystem,
		Diagnosis:   in.Diagnosis,
		Severity:    in.Severity,
		PCNAllergy:  in.PCNAllergy,
		RiskFactors: []RiskFactor{},
	}
	if organ, err := ParseOrganSystem(string(in.OrganSystem)); err == nil {
		out.OrganSystem = organ
	}
	if dx, err := ParseDiagnosis(out.OrganSystem, string(in.Diagnosis)); err == nil {
		out.Diagnosis = dx
	}
	if sev, err := ParseSeverity(out.OrganSystem, out.Diagnosis, string(in.Severity)); err == nil {
		out.Severity = sev
	}
	for _, raw := range in.RiskFactors {
		risk := raw
		if r, err := ParseRiskFactor(string(raw)); err == nil {
			risk = r
		}
		if !out.HasRisk(risk) {
			out.RiskFactors = append(out.RiskFactors, risk)
		}
	}
	return out
}

// Validate checks the input against the option catalogue. Resolve does not
// require a valid input; this is for collectors that reject bad forms.
func (in ClinicalInput) Validate() error {
	var problems []error

	if !containsValue(organSystems, in.OrganSystem) {
		problems = append(problems, fmt.Errorf("%w: %q", ErrUnknownOrganSystem, in.OrganSystem))
	} else if !containsValue(diagnosisOptions[in.OrganSystem], in.Diagnosis) {
		problems = append(problems, fmt.Errorf("%w: %q for %s", ErrUnknownDiagnosis, in.Diagnosis, in.OrganSystem))
	} else if !containsValue(SeverityOptions(in.OrganSystem, in.Diagnosis), in.Severity) {
		problems = append(problems, fmt.Errorf("%w: %q for %s", ErrUnknownSeverity, in.Severity, in.Diagnosis))
	}

	for _, r := range in.RiskFactors {
		if !containsValue(riskFactors, r) {
			problems = append(problems, fmt.Errorf("%w: %q", ErrUnknownRiskFactor, r))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func normalizeLabel(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func matchLabel[T ~string](raw string, options []T) (T, bool) {
	want := normalizeLabel(raw)
	for _, opt := range options {
		if strings.EqualFold(want, string(opt)) {
			return opt, true
		}
	}
	var zero T
	return zero, false
}

func containsValue[T comparable](values []T, target T) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
