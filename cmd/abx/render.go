package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/Skufu/abxprotocol/internal/protocol"
)

type renderer struct {
	format string
}

func newRenderer(format string) (renderer, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "text", "json", "yaml":
		return renderer{format: f}, nil
	default:
		return renderer{}, fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
	}
}

func (r renderer) encode(w io.Writer, v any) error {
	switch r.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("format %q is not structured", r.format)
}

type evaluationView struct {
	protocol.Evaluation `yaml:",inline"`
	StatusLabel         string `json:"statusLabel" yaml:"statusLabel"`
}

func (r renderer) evaluation(w io.Writer, eval protocol.Evaluation) error {
	if r.format != "text" {
		return r.encode(w, evaluationView{Evaluation: eval, StatusLabel: eval.Verification.Status.Label()})
	}

	rec, v := eval.Recommendation, eval.Verification
	var b strings.Builder
	fmt.Fprintf(&b, "Treatment Recommendation: %s\n\n", eval.Input.Diagnosis)
	fmt.Fprintf(&b, "First Line Empiric:\n  %s\n\n", rec.FirstLine)
	if eval.Input.PCNAllergy {
		fmt.Fprintf(&b, "PCN Allergy Alternative:\n  %s\n\n", rec.Alternative)
	} else {
		fmt.Fprintf(&b, "Alternative: %s\n\n", rec.Alternative)
	}
	fmt.Fprintf(&b, "Duration: %s\n", rec.Duration)
	fmt.Fprintf(&b, "Clinical Notes: %s\n\n", rec.Notes)

	fmt.Fprintf(&b, "Guideline Verification: %s\n", v.Status.Label())
	fmt.Fprintf(&b, "Analysis: %s\n", v.Notes)
	if v.Changes != protocol.NoChanges {
		fmt.Fprintf(&b, "Changes/Deviations: %s\n", v.Changes)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r renderer) options(w io.Writer, cat protocol.Catalogue) error {
	if r.format != "text" {
		return r.encode(w, cat)
	}

	var b strings.Builder
	for _, group := range cat.OrganSystems {
		fmt.Fprintf(&b, "%s\n", group.OrganSystem)
		for _, dx := range group.Diagnoses {
			sev := make([]string, 0, len(dx.Severities))
			for _, s := range dx.Severities {
				sev = append(sev, string(s))
			}
			fmt.Fprintf(&b, "  - %s [%s]\n", dx.Diagnosis, strings.Join(sev, " | "))
		}
	}
	b.WriteString("\nRisk factors:\n")
	for _, rf := range cat.RiskFactors {
		fmt.Fprintf(&b, "  - %s\n", rf)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r renderer) dosing(w io.Writer) error {
	rows := protocol.DosingAdjustments()
	if r.format != "text" {
		return r.encode(w, rows)
	}

	fmt.Fprintln(w, "Renal Adjustments (Select Agents)")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Drug\tStandard Dose\tCrCl 30-50\tCrCl 10-29")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Drug, row.StandardDose, row.CrCl30To50, row.CrCl10To29)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "Refer to Section 7.3 of the protocol for full details.")
	return err
}

func (r renderer) microbiology(w io.Writer) error {
	hints := protocol.MicrobiologyGuide()
	if r.format != "text" {
		return r.encode(w, hints)
	}

	var b strings.Builder
	b.WriteString("Rapid Diagnostic Interpretation\n")
	for _, h := range hints {
		fmt.Fprintf(&b, "- %s: %s\n", h.Finding, h.Organisms)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r renderer) source(w io.Writer) error {
	meta := protocol.ProtocolMetadata()
	if r.format != "text" {
		return r.encode(w, meta)
	}
	_, err := fmt.Fprintf(w, "Source Text Snippet\n\n%s\n", meta.Excerpt)
	return err
}
