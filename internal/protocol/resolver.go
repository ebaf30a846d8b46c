package protocol

// AllergyNote is appended to the notes of every recommendation made for a
// patient with a penicillin allergy.
const AllergyNote = "ALLERGY NOTE: Patient has PCN Allergy. Ensure 'Alternative' regimen is non-beta-lactam or consult ID if severity of allergy (anaphylaxis) contraindicates Cephalosporins."

// Resolve maps a clinical input to the protocol's empiric regimen. Inputs
// without an authored rule, including inconsistent organ/diagnosis pairs,
// yield DefaultRecommendation.
func Resolve(in ClinicalInput) Recommendation {
	rec := DefaultRecommendation()
	if r, ok := lookupRule(in.OrganSystem, in.Diagnosis); ok {
		r.apply(in, &rec)
	}

	if in.PCNAllergy {
		rec.Notes += "\n\n" + AllergyNote
	}

	return rec
}
