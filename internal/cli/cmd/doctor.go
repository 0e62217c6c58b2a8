package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/lockbreak/internal/application/usecase"
	"github.com/bnema/lockbreak/internal/bootstrap"
	"github.com/bnema/lockbreak/internal/cli/styles"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the display, lock backends and history database",
	Long: `Doctor checks what lockbreak needs at runtime:

- a graphical display for the overlay (Wayland or X11)
- the system lock backend (logind over D-Bus, or the lock command)
- the lock command on PATH
- the history database and its schema version

Warnings do not fail the run; failed checks exit with status 1.

Examples:
  lockbreak doctor
  lockbreak doctor --json`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output as JSON")
}

func runDoctor(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	uc := usecase.NewRunDiagnosticsUseCase(bootstrap.DiagnosticChecks(app.CurrentConfig())...)
	out, err := uc.Execute(app.Ctx())
	if err != nil {
		return err
	}

	if doctorJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		fmt.Println(styles.NewDoctorRenderer(app.Theme).Render(doctorReport(out)))
	}

	if !out.OK {
		return fmt.Errorf("runtime requirements not met")
	}
	return nil
}

func doctorReport(out *usecase.RunDiagnosticsOutput) styles.DoctorReport {
	report := styles.DoctorReport{
		OverallOK: out.OK,
		Checks:    make([]styles.DoctorCheck, 0, len(out.Results)),
	}
	for _, r := range out.Results {
		level := styles.DoctorOK
		switch r.Level {
		case usecase.DiagnosticWarning:
			level = styles.DoctorWarning
		case usecase.DiagnosticFailed:
			level = styles.DoctorFailed
		}
		report.Checks = append(report.Checks, styles.DoctorCheck{
			Name:   r.Name,
			Level:  level,
			Detail: r.Detail,
			Error:  r.Error,
		})
	}
	return report
}
