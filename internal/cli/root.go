package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"pv-intake/internal/app"
	"pv-intake/internal/config"
	"pv-intake/internal/gateway"
)

var (
	apiURL     string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envAPI := os.Getenv("PV_API_URL")
	if envAPI == "" {
		envAPI = "http://localhost:8000"
	}
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "pv-intake",
		Short: "Terminal client for adverse drug reaction reporting and follow-up",
	}

	cmd.PersistentFlags().StringVar(&apiURL, "api", envAPI, "backend API base URL")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewReportCmd(&configPath, &apiURL))
	cmd.AddCommand(NewPortalCmd(&configPath, &apiURL))
	cmd.AddCommand(NewDashboardCmd(&configPath, &apiURL))
	cmd.AddCommand(NewCasesCmd(&configPath, &apiURL))
	cmd.AddCommand(NewLeaderboardCmd(&configPath, &apiURL))
	cmd.AddCommand(NewReconcileCmd(&configPath, &apiURL))
	return cmd
}

// buildClient loads config and wires the gateway client. The --api flag
// wins over both the config file and the environment.
func buildClient(configPath, apiFlag string) (*gateway.Client, config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, cfg, err
	}
	baseURL := cfg.API.BaseURL
	if apiFlag != "" {
		baseURL = apiFlag
	}
	timeout := config.Duration(cfg.API.Timeout, 0)
	return gateway.New(baseURL, timeout), cfg, nil
}

func advanceDelay(cfg config.Config) time.Duration {
	return config.Duration(cfg.Interview.AdvanceDelay, 2*time.Second)
}

func pollInterval(cfg config.Config) time.Duration {
	return config.Duration(cfg.Poll.Interval, 5*time.Second)
}

func summaryTTL(cfg config.Config) time.Duration {
	return config.Duration(cfg.Poll.SummaryTTL, 30*time.Second)
}

// missionConfig applies configured overrides on top of the defaults; the
// level thresholds are presentation tuning, not domain rules.
func missionConfig(cfg config.Config) app.MissionConfig {
	m := app.DefaultMissionConfig()
	if cfg.Mission.CasePoints > 0 {
		m.CasePoints = cfg.Mission.CasePoints
	}
	if cfg.Mission.FollowUpPoints > 0 {
		m.FollowUpPoints = cfg.Mission.FollowUpPoints
	}
	if cfg.Mission.SilverAt > 0 {
		m.SilverAt = cfg.Mission.SilverAt
	}
	if cfg.Mission.GoldAt > 0 {
		m.GoldAt = cfg.Mission.GoldAt
	}
	return m
}
