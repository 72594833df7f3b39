// Command neurotracker runs the self-assessment in the terminal and exposes
// the scoring and hardware estimator as one-shot commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/neurotracker/neurotracker-go/internal/app"
	"github.com/neurotracker/neurotracker-go/internal/assessment"
	"github.com/neurotracker/neurotracker-go/internal/config"
	"github.com/neurotracker/neurotracker-go/internal/logging"
	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/service"
	"github.com/neurotracker/neurotracker-go/internal/tui"
	"github.com/spf13/cobra"
)

var (
	projectRoot string
	inMemory    bool
	probe       model.HardwareProbe
)

var rootCmd = &cobra.Command{
	Use:           "neurotracker",
	Short:         "ADHD self-assessment and focus tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Take the assessment in the terminal",
	Long: `Walk through the landing page, sign-up, verification, survey and
results from the terminal. Accounts are stored in the configured database,
or in memory with --memory.`,
	RunE: runTUI,
}

var interpretCmd = &cobra.Command{
	Use:   "interpret SCORE",
	Short: "Print the band for a survey score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("score must be an integer: %w", err)
		}
		band := assessment.Interpret(score)
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d-%d)\n%s\n", band.Name, band.Min, band.Max, band.Message)
		return nil
	},
}

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Score this machine for running local AI models",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := service.ApplyProbe(service.DefaultSystemConfig(), probe)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(service.Assess(cfg))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", ".", "Directory holding config/config.yaml")

	tuiCmd.Flags().BoolVar(&inMemory, "memory", false, "Keep accounts in memory only")

	estimateCmd.Flags().IntVar(&probe.Cores, "cores", 0, "CPU cores")
	estimateCmd.Flags().StringVar(&probe.Renderer, "gpu", "", "GPU renderer string, e.g. \"NVIDIA GeForce RTX 4070\"")
	estimateCmd.Flags().IntVar(&probe.DeviceMemoryGB, "ram", 0, "RAM in GB")
	estimateCmd.Flags().IntVar(&probe.StorageQuotaGB, "storage", 0, "Free storage in GB")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(interpretCmd)
	rootCmd.AddCommand(estimateCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	godotenv.Load()

	cfg, _, err := config.Load(projectRoot)
	if err != nil {
		return err
	}
	// the terminal belongs to the UI; logs only go to files
	cfg.Logging.Console = false
	if inMemory {
		cfg.Database.Driver = "memory"
	}

	log, _, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store, closeStore, err := app.OpenStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, err := app.NewServices(store, cfg.Auth, uint64(time.Now().UnixNano()), log)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(tui.New(ctx, svc.NewController(log)), tea.WithAltScreen()).Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
