package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/application/usecase"
	"github.com/bnema/lockbreak/internal/cli/styles"
	"github.com/bnema/lockbreak/internal/infrastructure/config"
)

var configYes bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show the config file location, the effective settings, the JSON schema, and add new default settings.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config and history file locations",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long:  `Print the configuration after defaults, environment overrides and normalization.`,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	RunE:  runConfigSchema,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Add missing default settings to config file",
	Long: `Compares your config file with available defaults and adds any missing settings.

Existing settings are never modified - only missing keys are added with default values.`,
	RunE: runConfigMigrate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configMigrateCmd)
	configMigrateCmd.Flags().BoolVarP(&configYes, "yes", "y", false, "skip confirmation prompt")
}

func configFilePath() (string, error) {
	if app := GetApp(); app != nil && app.ConfigManager != nil {
		if path := app.ConfigManager.GetConfigFile(); path != "" {
			return path, nil
		}
	}
	return config.GetConfigFile()
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	created := app.ConfigManager != nil && app.ConfigManager.CreatedConfigFile() != ""
	fmt.Println(renderer.RenderConfigInfo(configFile, app.CurrentConfig().Database.Path, created))

	uc := usecase.NewMigrateConfigUseCase(config.NewMigrator(configFile))
	result, err := uc.Check(app.Ctx())
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	if result.NeedsMigration {
		fmt.Println(renderer.RenderMigrateHint())
	}
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	data, err := config.MarshalTOML(app.CurrentConfig())
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	data, err := config.SchemaJSON()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// runConfigMigrate runs the migration with optional confirmation.
func runConfigMigrate(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	configFile, err := configFilePath()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	if _, statErr := os.Stat(configFile); errors.Is(statErr, fs.ErrNotExist) {
		fmt.Println(renderer.RenderNoConfigFile(configFile))
		return nil
	}

	ctx := app.Ctx()
	uc := usecase.NewMigrateConfigUseCase(config.NewMigrator(configFile))
	result, err := uc.Check(ctx)
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	if !result.NeedsMigration {
		fmt.Println(renderer.RenderUpToDate(configFile))
		return nil
	}

	fmt.Println(renderer.RenderMissingKeys(result.MissingKeys))

	if configYes {
		return executeMigration(ctx, uc, renderer)
	}

	m := newMigrateModel(ctx, renderer, app.Theme, uc, result.MissingKeys)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// executeMigration performs the actual migration.
func executeMigration(ctx context.Context, uc *usecase.MigrateConfigUseCase, renderer *styles.ConfigRenderer) error {
	result, err := uc.Execute(ctx)
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}

	if len(result.AddedKeys) > 0 {
		fmt.Println(renderer.RenderMigrationSuccess(len(result.AddedKeys), result.ConfigFile))
	}
	return nil
}

// migrateState represents the current state of the migrate confirmation.
type migrateState int

const (
	migrateStateConfirm migrateState = iota
	migrateStateRunning
	migrateStateDone
)

// migrateModel is the bubbletea model for the migrate confirmation.
type migrateModel struct {
	ctx         context.Context
	spinner     spinner.Model
	renderer    *styles.ConfigRenderer
	confirm     styles.ConfirmModel
	state       migrateState
	uc          *usecase.MigrateConfigUseCase
	missingKeys []port.KeyInfo

	result   string
	err      error
	quitting bool
}

// migrateResultMsg is sent when the migration completes.
type migrateResultMsg struct {
	output *usecase.MigrateConfigOutput
	err    error
}

func newMigrateModel(
	ctx context.Context,
	renderer *styles.ConfigRenderer,
	theme *styles.Theme,
	uc *usecase.MigrateConfigUseCase,
	missingKeys []port.KeyInfo,
) migrateModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return migrateModel{
		ctx:         ctx,
		spinner:     s,
		renderer:    renderer,
		confirm:     styles.NewConfirm(theme, "Add these settings with default values?"),
		state:       migrateStateConfirm,
		uc:          uc,
		missingKeys: missingKeys,
	}
}

func (m migrateModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m migrateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case migrateResultMsg:
		m.state = migrateStateDone
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if len(msg.output.AddedKeys) > 0 {
			m.result = m.renderer.RenderMigrationSuccess(len(msg.output.AddedKeys), msg.output.ConfigFile)
		}
		return m, tea.Quit
	}

	if m.state == migrateStateConfirm {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)

		if m.confirm.Done() {
			if m.confirm.Result() {
				m.state = migrateStateRunning
				return m, m.runMigration()
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, cmd
	}

	return m, nil
}

func (m migrateModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return m.renderer.RenderError(m.err)
	}

	switch m.state {
	case migrateStateRunning:
		return fmt.Sprintf("\n  %s Writing %d settings...\n", m.spinner.View(), len(m.missingKeys))
	case migrateStateDone:
		return m.result
	default:
		return m.confirm.View()
	}
}

func (m migrateModel) runMigration() tea.Cmd {
	return func() tea.Msg {
		result, err := m.uc.Execute(m.ctx)
		return migrateResultMsg{output: result, err: err}
	}
}
