package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/lockbreak/internal/cli/model"
	"github.com/bnema/lockbreak/internal/cli/styles"
	"github.com/bnema/lockbreak/internal/domain/entity"
)

var (
	historyJSON bool
	historyMax  int
	historyYes  bool
)

const defaultHistoryMax = 50

var errHistoryDisabled = errors.New("lock history is disabled (history.enabled = false) or its database could not be opened")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded breaks",
	Long: `List the most recent locks with how long they lasted and how they ended.

Examples:
  lockbreak history
  lockbreak history --max 10
  lockbreak history --json`,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole break history",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to show")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "skip confirmation")
}

// historyJSONEvent is the --json shape of one lock event.
type historyJSONEvent struct {
	ID              string     `json:"id"`
	Mode            string     `json:"mode"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds float64    `json:"duration_seconds"`
	Reason          string     `json:"reason,omitempty"`
	Error           string     `json:"error,omitempty"`
}

type historyJSONOutput struct {
	Events []historyJSONEvent `json:"events"`
	Stats  struct {
		Total            int     `json:"total"`
		Expired          int     `json:"expired"`
		Unlocked         int     `json:"unlocked"`
		Stopped          int     `json:"stopped"`
		Failed           int     `json:"failed"`
		TotalTimeSeconds float64 `json:"total_time_seconds"`
	} `json:"stats"`
}

func runHistory(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	uc := app.HistoryUseCase()
	if uc == nil {
		return errHistoryDisabled
	}

	result, err := uc.Execute(app.Ctx(), historyMax)
	if err != nil {
		return err
	}

	if historyJSON {
		return writeHistoryJSON(result.Events, result.Stats)
	}

	fmt.Println(styles.NewHistoryRenderer(app.Theme).Render(result.Events, result.Stats))
	return nil
}

func writeHistoryJSON(events []*entity.LockEvent, stats *entity.LockStats) error {
	out := historyJSONOutput{Events: make([]historyJSONEvent, 0, len(events))}
	for _, e := range events {
		out.Events = append(out.Events, historyJSONEvent{
			ID:              string(e.ID),
			Mode:            string(e.Mode),
			StartedAt:       e.StartedAt,
			EndedAt:         e.EndedAt,
			DurationSeconds: e.Duration().Seconds(),
			Reason:          string(e.Reason),
			Error:           e.Error,
		})
	}
	if stats != nil {
		out.Stats.Total = stats.Total
		out.Stats.Expired = stats.Expired
		out.Stats.Unlocked = stats.Unlocked
		out.Stats.Stopped = stats.Stopped
		out.Stats.Failed = stats.Failed
		out.Stats.TotalTimeSeconds = stats.TotalTime.Seconds()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	uc := app.HistoryUseCase()
	if uc == nil {
		return errHistoryDisabled
	}

	if historyYes {
		deleted, err := uc.Clear(app.Ctx())
		if err != nil {
			return err
		}
		fmt.Println(app.Theme.SuccessStyle.Render(fmt.Sprintf("Removed %d recorded breaks.", deleted)))
		return nil
	}

	m := model.NewCleanupModel(app.Ctx(), app.Theme, uc)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return fmt.Errorf("run cleanup: %w", err)
	}
	if cm, ok := final.(model.CleanupModel); ok && cm.Err() != nil {
		return cm.Err()
	}
	return nil
}
