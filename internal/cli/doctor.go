package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rdeckard/sysmon/internal/doctor"
	"github.com/rdeckard/sysmon/internal/errors"
	"github.com/rdeckard/sysmon/internal/ui"
)

var doctorJSON bool

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand() error {
	checks := doctor.DefaultChecks()
	results := doctor.RunAll(checks)

	if doctorJSON {
		if err := outputDoctorJSON(checks, results); err != nil {
			return err
		}
	} else {
		outputDoctorText(checks, results)
	}

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrExec,
			doctor.Summary(results),
			"Fix the failed checks above and re-run 'sysmon doctor'")
	}
	return nil
}

// outputDoctorJSON outputs results in JSON format.
func outputDoctorJSON(checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := make(map[string][]doctor.CheckResult)
	var categoryOrder []string

	for i, check := range checks {
		cat := check.Category()
		if _, exists := grouped[cat]; !exists {
			categoryOrder = append(categoryOrder, cat)
		}
		grouped[cat] = append(grouped[cat], results[i])
	}

	output := DoctorOutput{
		Categories: make([]CategoryOutput, 0, len(categoryOrder)),
	}
	for _, cat := range categoryOrder {
		output.Categories = append(output.Categories, CategoryOutput{
			Name:    cat,
			Results: grouped[cat],
		})
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: counts[doctor.StatusWarn] == 0 && counts[doctor.StatusFail] == 0,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputDoctorText outputs results in human-readable format.
func outputDoctorText(checks []doctor.Check, results []doctor.CheckResult) {
	fmt.Println()
	fmt.Println("sysmon diagnostic report")
	fmt.Println()

	categoryOrder := []string{"PLATFORM", "TOOLS", "PROCFS"}
	grouped := make(map[string][]int)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], i)
	}

	for _, category := range categoryOrder {
		indices := grouped[category]
		if len(indices) == 0 {
			continue
		}

		fmt.Println(category)
		for _, idx := range indices {
			renderCheckResult(results[idx])
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("━", 60))
	fmt.Println()

	if doctor.HasFailures(results) {
		fmt.Printf("%s %s\n", ui.ErrorStyle.Render(ui.SymbolFail), doctor.Summary(results))
	} else if doctor.CountByStatus(results)[doctor.StatusWarn] > 0 {
		fmt.Printf("%s %s\n", ui.WarningStyle.Render(ui.SymbolWarn), doctor.Summary(results))
	} else {
		fmt.Printf("%s %s\n", ui.SuccessStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	}
}

func renderCheckResult(result doctor.CheckResult) {
	switch result.Status {
	case doctor.StatusPass:
		fmt.Printf("  %s %s\n", ui.SuccessStyle.Render(ui.SymbolSuccess), result.Message)
	case doctor.StatusWarn:
		fmt.Printf("  %s %s\n", ui.WarningStyle.Render(ui.SymbolWarn), result.Message)
	default:
		fmt.Printf("  %s %s\n", ui.ErrorStyle.Render(ui.SymbolFail), result.Message)
	}
	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		fmt.Printf("    %s\n", ui.MutedStyle.Render(result.Suggestion))
	}
}
