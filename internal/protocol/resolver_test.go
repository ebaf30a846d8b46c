package protocol

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestResolve_UnauthoredDiagnosesFallBackToDefault(t *testing.T) {
	unauthored := []struct {
		organ     OrganSystem
		diagnosis Diagnosis
	}{
		{Abdominal, Pancreatitis},
		{Abdominal, Peritonitis},
		{CNS, BrainAbscess},
		{Skin, DiabeticFoot},
		{Skin, NecrotizingFasciitis},
		{Abdominal, ""},
		{"", BacterialMeningitis},
		{"Cardiac Infections", "Endocarditis"},
		// diagnosis from another organ system
		{Urinary, BacterialMeningitis},
		{Pulmonary, AcuteCystitis},
	}
	severities := []Severity{Mild, Moderate, Severe, Critical, NotSevere, MildModerate, NonICU, ICU, ""}
	riskSets := [][]RiskFactor{nil, riskFactors, {MRSARisk}, {Immunocompromised, AgeOver50}}

	for _, tc := range unauthored {
		for _, sev := range severities {
			for _, risks := range riskSets {
				got := Resolve(ClinicalInput{OrganSystem: tc.organ, Diagnosis: tc.diagnosis, Severity: sev, RiskFactors: risks})
				if diff := cmp.Diff(DefaultRecommendation(), got); diff != "" {
					t.Fatalf("%s/%s/%s %v: expected default record (-want +got):\n%s", tc.organ, tc.diagnosis, sev, risks, diff)
				}
			}
		}
	}
}

func TestResolve_AuthoredRules(t *testing.T) {
	tests := []struct {
		name string
		in   ClinicalInput
		want Recommendation
	}{
		{
			name: "biliary not severe",
			in:   ClinicalInput{OrganSystem: Abdominal, Diagnosis: BiliaryTract, Severity: NotSevere},
			want: Recommendation{
				FirstLine:   "Ceftriaxone 1 g IV Q24H OR Ertapenem 1 g IV Q24H",
				Alternative: "Cipro/Flagyl (if PCN allergic - inferred)",
				Duration:    DefaultDuration,
				Notes:       biliaryNotes,
			},
		},
		{
			name: "biliary hospital acquired",
			in:   ClinicalInput{OrganSystem: Abdominal, Diagnosis: BiliaryTract, Severity: HospitalAcquired},
			want: Recommendation{
				FirstLine:   "Piperacillin/tazobactam 4.5 g IV Q6H",
				Alternative: "Cefepime 2 g IV Q8H + Metronidazole 500 mg IV Q8H ± Vancomycin",
				Duration:    DefaultDuration,
				Notes:       biliaryNotes,
			},
		},
		{
			name: "diverticulitis mild",
			in:   ClinicalInput{OrganSystem: Abdominal, Diagnosis: Diverticulitis, Severity: MildModerate},
			want: Recommendation{
				FirstLine:   "Amoxicillin/clavulanate 875 mg PO BID",
				Alternative: "Ciprofloxacin 500 mg PO BID + Metronidazole 500 mg PO Q8H",
				Duration:    "4 days (if source control achieved)",
				Notes:       diverticulitisNote,
			},
		},
		{
			name: "diverticulitis severe",
			in:   ClinicalInput{OrganSystem: Abdominal, Diagnosis: Diverticulitis, Severity: Severe},
			want: Recommendation{
				FirstLine:   "Piperacillin/tazobactam 4.5 g IV Q6H",
				Alternative: "Cefepime 2 g IV Q8H + Metronidazole 500 mg IV Q8H",
				Duration:    "4 days (if source control achieved)",
				Notes:       diverticulitisNote,
			},
		},
		{
			name: "diverticulitis unlabelled severity keeps regimen default",
			in:   ClinicalInput{OrganSystem: Abdominal, Diagnosis: Diverticulitis, Severity: Critical},
			want: Recommendation{
				FirstLine:   ConsultID,
				Alternative: ConsultID,
				Duration:    "4 days (if source control achieved)",
				Notes:       diverticulitisNote,
			},
		},
		{
			name: "meningitis standard adult",
			in:   ClinicalInput{OrganSystem: CNS, Diagnosis: BacterialMeningitis, Severity: Severe, RiskFactors: []RiskFactor{MRSARisk}},
			want: Recommendation{
				FirstLine:   "Vancomycin + Ceftriaxone",
				Alternative: "Vancomycin + Moxifloxacin",
				Duration:    meningitisDuration,
				Notes:       meningitisNotes,
			},
		},
		{
			name: "meningitis over fifty",
			in:   ClinicalInput{OrganSystem: CNS, Diagnosis: BacterialMeningitis, RiskFactors: []RiskFactor{AgeOver50}},
			want: Recommendation{
				FirstLine:   "Vancomycin + Ceftriaxone + Ampicillin",
				Alternative: "Vancomycin + Moxifloxacin + TMP/SMX",
				Duration:    meningitisDuration,
				Notes:       meningitisNotes,
			},
		},
		{
			name: "cap non icu",
			in:   ClinicalInput{OrganSystem: Pulmonary, Diagnosis: CommunityAcquiredPneumonia, Severity: NonICU},
			want: Recommendation{
				FirstLine:   "Ceftriaxone 1 g IV Q24H + Azithromycin 500 mg IV/PO Q24H",
				Alternative: ConsultID,
				Duration:    capDuration,
				Notes:       DefaultNotes,
			},
		},
		{
			name: "cap icu pseudomonas",
			in:   ClinicalInput{OrganSystem: Pulmonary, Diagnosis: CommunityAcquiredPneumonia, Severity: ICU, RiskFactors: []RiskFactor{PseudomonasRisk}},
			want: Recommendation{
				FirstLine:   "Piperacillin/tazobactam 4.5 g IV Q6H + Azithromycin 500 mg IV Q24H",
				Alternative: "Cefepime 2 g IV Q8H + Azithromycin 500 mg IV Q24H",
				Duration:    capDuration,
				Notes:       DefaultNotes,
			},
		},
		{
			name: "cap icu",
			in:   ClinicalInput{OrganSystem: Pulmonary, Diagnosis: CommunityAcquiredPneumonia, Severity: ICU, RiskFactors: []RiskFactor{MRSARisk}},
			want: Recommendation{
				FirstLine:   "Ceftriaxone 2 g IV Q24H + Azithromycin 500 mg IV Q24H",
				Alternative: ConsultID,
				Duration:    capDuration,
				Notes:       DefaultNotes,
			},
		},
		{
			name: "hap without mrsa",
			in:   ClinicalInput{OrganSystem: Pulmonary, Diagnosis: HospitalAcquiredPneumonia},
			want: Recommendation{
				FirstLine:   "Piperacillin/tazobactam 4.5 g IV Q6H",
				Alternative: "Cefepime 2 g IV Q8H",
				Duration:    "7 days (if prompt response)",
				Notes:       hapNotes,
			},
		},
		{
			name: "hap with mrsa",
			in:   ClinicalInput{OrganSystem: Pulmonary, Diagnosis: HospitalAcquiredPneumonia, RiskFactors: []RiskFactor{MRSARisk}},
			want: Recommendation{
				FirstLine:   "Piperacillin/tazobactam 4.5 g IV Q6H + Vancomycin",
				Alternative: "Cefepime 2 g IV Q8H + Vancomycin",
				Duration:    "7 days (if prompt response)",
				Notes:       hapNotes,
			},
		},
		{
			name: "cystitis",
			in:   ClinicalInput{OrganSystem: Urinary, Diagnosis: AcuteCystitis, Severity: Mild},
			want: Recommendation{
				FirstLine:   "Nitrofurantoin 100 mg PO BID",
				Alternative: "TMP/SMX DS PO BID x 3 days",
				Duration:    "5 days",
				Notes:       DefaultNotes,
			},
		},
		{
			name: "pyelonephritis",
			in:   ClinicalInput{OrganSystem: Urinary, Diagnosis: Pyelonephritis, Severity: Severe},
			want: Recommendation{
				FirstLine:   "Ceftriaxone 1 g IV Q24H",
				Alternative: "Piperacillin/tazobactam 3.375 g IV Q6H",
				Duration:    "7-14 days",
				Notes:       DefaultNotes,
			},
		},
		{
			name: "catheter associated",
			in:   ClinicalInput{OrganSystem: Urinary, Diagnosis: CatheterAssociated},
			want: Recommendation{
				FirstLine:   "Remove Catheter + Ceftriaxone 1 g IV Q24H",
				Alternative: ConsultID,
				Duration:    "7 days",
				Notes:       "Treat as pyelonephritis. Do not treat asymptomatic bacteriuria.",
			},
		},
		{
			name: "cellulitis non-suppurative",
			in:   ClinicalInput{OrganSystem: Skin, Diagnosis: CellulitisNonSuppurative},
			want: Recommendation{
				FirstLine:   "Cefazolin 1-2 g IV Q8H",
				Alternative: "Clindamycin 300-450 mg PO TID",
				Duration:    DefaultDuration,
				Notes:       "Targeting Streptococci/MSSA.",
			},
		},
		{
			name: "abscess",
			in:   ClinicalInput{OrganSystem: Skin, Diagnosis: CellulitisSuppurative},
			want: Recommendation{
				FirstLine:   "Incision & Drainage (Primary Tx)",
				Alternative: "Vancomycin (if systemic signs)",
				Duration:    DefaultDuration,
				Notes:       "Adjunctive antibiotics only for severe disease, SIRS, or immunosuppression.",
			},
		},
		{
			name: "sepsis",
			in:   ClinicalInput{OrganSystem: Sepsis, Diagnosis: SepsisUnknownSource},
			want: Recommendation{
				FirstLine:   "Piperacillin/tazobactam 4.5 g IV Q6H OR Cefepime 2 g IV Q8H",
				Alternative: ConsultID,
				Duration:    "Re-evaluate at 48-72h based on cultures",
				Notes:       "Obtain 2 sets of blood cultures prior to initiation.",
			},
		},
		{
			name: "sepsis mrsa ignores diagnosis",
			in:   ClinicalInput{OrganSystem: Sepsis, Diagnosis: "", RiskFactors: []RiskFactor{MRSARisk}},
			want: Recommendation{
				FirstLine:   "Piperacillin/tazobactam 4.5 g IV Q6H OR Cefepime 2 g IV Q8H + Vancomycin",
				Alternative: ConsultID,
				Duration:    "Re-evaluate at 48-72h based on cultures",
				Notes:       "Obtain 2 sets of blood cultures prior to initiation.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Resolve(tt.in)); diff != "" {
				t.Fatalf("unexpected recommendation (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_DiverticulitisSevere(t *testing.T) {
	rec := Resolve(ClinicalInput{
		OrganSystem: "Abdominal Infections",
		Diagnosis:   "Diverticulitis",
		Severity:    "Severe",
	})
	assert.Equal(t, "Piperacillin/tazobactam 4.5 g IV Q6H", rec.FirstLine)
	assert.Equal(t, "4 days (if source control achieved)", rec.Duration)
}

func TestResolve_MeningitisImmunocompromisedTakesPriority(t *testing.T) {
	for _, risks := range [][]RiskFactor{
		{Immunocompromised},
		{Immunocompromised, AgeOver50},
		{AgeOver50, Immunocompromised},
	} {
		for _, sev := range generalSeverities {
			rec := Resolve(ClinicalInput{
				OrganSystem: "CNS Infections",
				Diagnosis:   "Bacterial Meningitis",
				Severity:    sev,
				RiskFactors: risks,
			})
			require.Equal(t, "Vancomycin + Cefepime + Ampicillin", rec.FirstLine, "risks %v", risks)
			require.Equal(t, "Vancomycin + Ciprofloxacin + TMP/SMX", rec.Alternative)
			require.Equal(t, meningitisNotes, rec.Notes)
		}
	}
}

func TestResolve_PCNAllergyAppendsNoteOnly(t *testing.T) {
	inputs := []ClinicalInput{
		{OrganSystem: Abdominal, Diagnosis: Diverticulitis, Severity: Severe},
		{OrganSystem: CNS, Diagnosis: BacterialMeningitis, RiskFactors: []RiskFactor{AgeOver50}},
		{OrganSystem: Sepsis, Diagnosis: SepsisUnknownSource, RiskFactors: []RiskFactor{MRSARisk}},
		{OrganSystem: Abdominal, Diagnosis: Pancreatitis},
		{},
	}

	for _, in := range inputs {
		plain := Resolve(in)
		in.PCNAllergy = true
		allergic := Resolve(in)

		assert.Equal(t, plain.FirstLine, allergic.FirstLine)
		assert.Equal(t, plain.Alternative, allergic.Alternative)
		assert.Equal(t, plain.Duration, allergic.Duration)
		assert.Equal(t, plain.Notes+"\n\n"+AllergyNote, allergic.Notes)
		assert.True(t, strings.HasSuffix(allergic.Notes, AllergyNote))
	}

	def := Resolve(ClinicalInput{OrganSystem: CNS, Diagnosis: BrainAbscess, PCNAllergy: true})
	assert.Equal(t, DefaultNotes+"\n\n"+AllergyNote, def.Notes)
	assert.Equal(t, ConsultID, def.FirstLine)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	risks := []RiskFactor{MRSARisk, AgeOver50}
	in := ClinicalInput{OrganSystem: Pulmonary, Diagnosis: HospitalAcquiredPneumonia, PCNAllergy: true, RiskFactors: risks}
	Resolve(in)
	assert.Equal(t, []RiskFactor{MRSARisk, AgeOver50}, in.RiskFactors)
}

func TestEvaluate_Idempotent(t *testing.T) {
	for _, organ := range OrganSystems() {
		for _, dx := range DiagnosisOptions(organ) {
			for _, sev := range SeverityOptions(organ, dx) {
				in := ClinicalInput{OrganSystem: organ, Diagnosis: dx, Severity: sev, PCNAllergy: true, RiskFactors: RiskFactors()}
				first := Evaluate(in)
				second := Evaluate(in)
				if diff := cmp.Diff(first, second); diff != "" {
					t.Fatalf("evaluation not repeatable for %s/%s/%s:\n%s", organ, dx, sev, diff)
				}
			}
		}
	}
}

func TestEvaluate_CystitisCarriesCrClCaveat(t *testing.T) {
	ev := Evaluate(ClinicalInput{
		OrganSystem: "Urinary Tract Infections (UTI)",
		Diagnosis:   "Acute Cystitis (Uncomplicated)",
		Severity:    Mild,
	})
	assert.Contains(t, ev.Verification.Notes, "CrCl > 30")
	assert.Equal(t, StatusVerified, ev.Verification.Status)
	assert.Equal(t, NoChanges, ev.Verification.Changes)
}
