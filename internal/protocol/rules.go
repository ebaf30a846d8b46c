package protocol

// anyDiagnosis keys a rule that applies to every diagnosis of an organ system.
const anyDiagnosis Diagnosis = "*"

type ruleKey struct {
	organ     OrganSystem
	diagnosis Diagnosis
}

// regimen fills first-line and alternative text when its predicate holds.
// An empty alternative keeps whatever the record already carries.
type regimen struct {
	when        func(ClinicalInput) bool
	firstLine   string
	alternative string
}

// rule branches are tried in order and at most one is applied. Duration and
// notes are rule-wide and applied even when no branch matches.
type rule struct {
	branches []regimen
	duration string
	notes    string
}

const (
	biliaryNotes       = "Source control (drainage) is crucial. Antibiotics penetrate obstructed ducts poorly."
	diverticulitisNote = "Uncomplicated cases (localized wall thickening only) may be managed conservatively without antibiotics."
	meningitisDuration = "Subject to pathogen (e.g., 7 days for N. men, 10-14 for S. pneumo)"
	meningitisNotes    = "Start ABX within 30 mins. Add Ampicillin for Listeria coverage if >50y or immunocompromised."
	capDuration        = "Minimum 5 days. Stop when afebrile for 48-72h."
	hapNotes           = "Narrow therapy based on respiratory culture. Stop Vanco/Double coverage if cultures negative."

	pipTazo         = "Piperacillin/tazobactam 4.5 g IV Q6H"
	cefepime        = "Cefepime 2 g IV Q8H"
	vancomycinAddOn = " + Vancomycin"
)

func always(ClinicalInput) bool { return true }

func severityIs(s Severity) func(ClinicalInput) bool {
	return func(in ClinicalInput) bool { return in.Severity == s }
}

func hasRisk(tag RiskFactor) func(ClinicalInput) bool {
	return func(in ClinicalInput) bool { return in.HasRisk(tag) }
}

func allOf(preds ...func(ClinicalInput) bool) func(ClinicalInput) bool {
	return func(in ClinicalInput) bool {
		for _, p := range preds {
			if !p(in) {
				return false
			}
		}
		return true
	}
}

var ruleTable = map[ruleKey]rule{
	{Abdominal, BiliaryTract}: {
		branches: []regimen{
			{when: severityIs(NotSevere), firstLine: "Ceftriaxone 1 g IV Q24H OR Ertapenem 1 g IV Q24H", alternative: "Cipro/Flagyl (if PCN allergic - inferred)"},
			{when: always, firstLine: pipTazo, alternative: cefepime + " + Metronidazole 500 mg IV Q8H ± Vancomycin"},
		},
		notes: biliaryNotes,
	},
	{Abdominal, Diverticulitis}: {
		branches: []regimen{
			{when: severityIs(MildModerate), firstLine: "Amoxicillin/clavulanate 875 mg PO BID", alternative: "Ciprofloxacin 500 mg PO BID + Metronidazole 500 mg PO Q8H"},
			{when: severityIs(Severe), firstLine: pipTazo, alternative: cefepime + " + Metronidazole 500 mg IV Q8H"},
		},
		duration: "4 days (if source control achieved)",
		notes:    diverticulitisNote,
	},

	{CNS, BacterialMeningitis}: {
		branches: []regimen{
			{when: hasRisk(Immunocompromised), firstLine: "Vancomycin + Cefepime + Ampicillin", alternative: "Vancomycin + Ciprofloxacin + TMP/SMX"},
			{when: hasRisk(AgeOver50), firstLine: "Vancomycin + Ceftriaxone + Ampicillin", alternative: "Vancomycin + Moxifloxacin + TMP/SMX"},
			{when: always, firstLine: "Vancomycin + Ceftriaxone", alternative: "Vancomycin + Moxifloxacin"},
		},
		duration: meningitisDuration,
		notes:    meningitisNotes,
	},

	{Pulmonary, CommunityAcquiredPneumonia}: {
		branches: []regimen{
			{when: severityIs(NonICU), firstLine: "Ceftriaxone 1 g IV Q24H + Azithromycin 500 mg IV/PO Q24H"},
			{when: allOf(severityIs(ICU), hasRisk(PseudomonasRisk)), firstLine: pipTazo + " + Azithromycin 500 mg IV Q24H", alternative: cefepime + " + Azithromycin 500 mg IV Q24H"},
			{when: severityIs(ICU), firstLine: "Ceftriaxone 2 g IV Q24H + Azithromycin 500 mg IV Q24H"},
		},
		duration: capDuration,
	},
	{Pulmonary, HospitalAcquiredPneumonia}: {
		branches: []regimen{
			{when: hasRisk(MRSARisk), firstLine: pipTazo + vancomycinAddOn, alternative: cefepime + vancomycinAddOn},
			{when: always, firstLine: pipTazo, alternative: cefepime},
		},
		duration: "7 days (if prompt response)",
		notes:    hapNotes,
	},

	{Urinary, AcuteCystitis}: {
		branches: []regimen{{when: always, firstLine: "Nitrofurantoin 100 mg PO BID", alternative: "TMP/SMX DS PO BID x 3 days"}},
		duration: "5 days",
	},
	{Urinary, Pyelonephritis}: {
		branches: []regimen{{when: always, firstLine: "Ceftriaxone 1 g IV Q24H", alternative: "Piperacillin/tazobactam 3.375 g IV Q6H"}},
		duration: "7-14 days",
	},
	{Urinary, CatheterAssociated}: {
		branches: []regimen{{when: always, firstLine: "Remove Catheter + Ceftriaxone 1 g IV Q24H"}},
		duration: "7 days",
		notes:    "Treat as pyelonephritis. Do not treat asymptomatic bacteriuria.",
	},

	{Skin, CellulitisNonSuppurative}: {
		branches: []regimen{{when: always, firstLine: "Cefazolin 1-2 g IV Q8H", alternative: "Clindamycin 300-450 mg PO TID"}},
		notes:    "Targeting Streptococci/MSSA.",
	},
	{Skin, CellulitisSuppurative}: {
		branches: []regimen{{when: always, firstLine: "Incision & Drainage (Primary Tx)", alternative: "Vancomycin (if systemic signs)"}},
		notes:    "Adjunctive antibiotics only for severe disease, SIRS, or immunosuppression.",
	},

	// Sepsis without a source is treated the same whatever diagnosis is picked.
	{Sepsis, anyDiagnosis}: {
		branches: []regimen{
			{when: hasRisk(MRSARisk), firstLine: pipTazo + " OR " + cefepime + vancomycinAddOn},
			{when: always, firstLine: pipTazo + " OR " + cefepime},
		},
		duration: "Re-evaluate at 48-72h based on cultures",
		notes:    "Obtain 2 sets of blood cultures prior to initiation.",
	},
}

func lookupRule(organ OrganSystem, diagnosis Diagnosis) (rule, bool) {
	if r, ok := ruleTable[ruleKey{organ, diagnosis}]; ok {
		return r, true
	}
	r, ok := ruleTable[ruleKey{organ, anyDiagnosis}]
	return r, ok
}

func (r rule) apply(in ClinicalInput, rec *Recommendation) {
	for _, b := range r.branches {
		if !b.when(in) {
			continue
		}
		rec.FirstLine = b.firstLine
		if b.alternative != "" {
			rec.Alternative = b.alternative
		}
		break
	}
	if r.duration != "" {
		rec.Duration = r.duration
	}
	if r.notes != "" {
		rec.Notes = r.notes
	}
}
