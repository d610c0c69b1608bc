// Package validator checks signature documents without activating them.
package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/robertdigital/ml4ir/pkg/ports"
	"github.com/robertdigital/ml4ir/pkg/registry"
	"github.com/robertdigital/ml4ir/pkg/signature"
)

// Report is the outcome of checking one signature.
type Report struct {
	Model    string
	Fields   int
	Required int
	// Err is the configuration error that keeps the model from being served.
	Err error
	// Warnings flag signatures that load but are probably not what was meant.
	Warnings []string
}

// OK reports whether the signature can be served.
func (r Report) OK() bool { return r.Err == nil }

// ValidateSignatures checks the signatures of models, or of every model the
// source lists when none is named. Unlike loading, it does not stop at the
// first broken signature. The error is non-nil only when the source fails.
func ValidateSignatures(ctx context.Context, source ports.SignatureSource, models ...string) ([]Report, error) {
	if len(models) == 0 {
		listed, err := source.List(ctx)
		if err != nil {
			return nil, err
		}
		models = listed
	}

	reports := make([]Report, 0, len(models))
	for _, model := range models {
		reports = append(reports, check(ctx, source, model))
	}
	return reports, nil
}

// Failed counts the reports with an error.
func Failed(reports []Report) int {
	n := 0
	for _, r := range reports {
		if !r.OK() {
			n++
		}
	}
	return n
}

func check(ctx context.Context, source ports.SignatureSource, model string) Report {
	report := Report{Model: model}

	doc, err := source.Fetch(ctx, model)
	if err != nil {
		report.Err = err
		return report
	}

	descriptors, err := signature.Parse(doc.Data, doc.Format)
	if err != nil {
		report.Err = err
		return report
	}

	reg, err := registry.Build(descriptors)
	if err != nil {
		report.Err = err
		return report
	}

	report.Fields = reg.Len()
	report.Required = reg.RequiredCount()
	report.Warnings = lint(reg)
	return report
}

func lint(reg *registry.FieldRegistry) []string {
	var warnings []string

	if reg.RequiredCount() == 0 {
		warnings = append(warnings, "no required fields: every payload is accepted in permissive mode")
	}

	seen := make(map[string]string)
	for _, d := range reg.Fields() {
		name := d.Name()
		if strings.TrimSpace(name) != name {
			warnings = append(warnings, fmt.Sprintf("field %q has leading or trailing whitespace", name))
		}
		folded := strings.ToLower(name)
		if prev, ok := seen[folded]; ok {
			warnings = append(warnings, fmt.Sprintf("fields %q and %q differ only by case", prev, name))
			continue
		}
		seen[folded] = name
	}

	return warnings
}
