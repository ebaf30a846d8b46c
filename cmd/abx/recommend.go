package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Skufu/abxprotocol/internal/protocol"
)

type recommendFlags struct {
	organ      string
	diagnosis  string
	severity   string
	pcnAllergy bool
	risks      []string
}

var recFlags recommendFlags

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Resolve empiric therapy for a case",
	Long: `Looks up the empiric regimen for an organ system, diagnosis and severity,
then runs the guideline verification over the first-line therapy.

Example:
  abx recommend --organ "CNS Infections" --diagnosis "Bacterial Meningitis" \
      --severity Severe --risk "Age > 50" --pcn-allergy`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List organ systems, diagnoses, severities and risk factors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRenderer(output)
		if err != nil {
			return err
		}
		return r.options(cmd.OutOrStdout(), protocol.OptionCatalogue())
	},
}

func init() {
	f := recommendCmd.Flags()
	f.StringVar(&recFlags.organ, "organ", "", "suspected organ system")
	f.StringVar(&recFlags.diagnosis, "diagnosis", "", "specific diagnosis")
	f.StringVar(&recFlags.severity, "severity", "", "severity of illness")
	f.BoolVar(&recFlags.pcnAllergy, "pcn-allergy", false, "history of penicillin allergy")
	f.StringArrayVar(&recFlags.risks, "risk", nil, "risk factor (repeatable)")
	_ = recommendCmd.MarkFlagRequired("organ")
	_ = recommendCmd.MarkFlagRequired("diagnosis")
	_ = recommendCmd.MarkFlagRequired("severity")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	input, err := recFlags.toInput()
	if err != nil {
		return err
	}

	eval := protocol.Evaluate(input)
	logger.Debug("evaluated case",
		zap.String("organ_system", string(input.OrganSystem)),
		zap.String("diagnosis", string(input.Diagnosis)),
		zap.String("status", string(eval.Verification.Status)),
	)

	r, err := newRenderer(output)
	if err != nil {
		return err
	}
	return r.evaluation(cmd.OutOrStdout(), eval)
}

func (f recommendFlags) toInput() (protocol.ClinicalInput, error) {
	raw := protocol.ClinicalInput{
		OrganSystem: protocol.OrganSystem(f.organ),
		Diagnosis:   protocol.Diagnosis(f.diagnosis),
		Severity:    protocol.Severity(f.severity),
		PCNAllergy:  f.pcnAllergy,
	}
	for _, r := range f.risks {
		raw.RiskFactors = append(raw.RiskFactors, protocol.RiskFactor(r))
	}

	input := raw.Canonical()
	if err := input.Validate(); err != nil {
		return protocol.ClinicalInput{}, err
	}
	return input, nil
}
