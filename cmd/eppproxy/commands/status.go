package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/internal/cli/health"
	"github.com/registryops/eppproxy/internal/cli/output"
)

var (
	statusOutput  string
	statusPidFile string
	statusAPIPort int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Long: `Display the current status of the eppproxy server.

This command checks the server readiness endpoint and displays the
state of every configured registry session.

Examples:
  # Check status (uses default settings)
  eppproxy status

  # Check status with custom API port
  eppproxy status --api-port 9700

  # Output as JSON
  eppproxy status --output json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusPidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/eppproxy/eppproxy.pid)")
	statusCmd.Flags().IntVar(&statusAPIPort, "api-port", 8700, "API server port")
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

// ServerStatus represents the server status information.
type ServerStatus struct {
	Running    bool                    `json:"running" yaml:"running"`
	PID        int                     `json:"pid,omitempty" yaml:"pid,omitempty"`
	Message    string                  `json:"message" yaml:"message"`
	Healthy    bool                    `json:"healthy" yaml:"healthy"`
	Registries []health.RegistryStatus `json:"registries,omitempty" yaml:"registries,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(statusOutput)
	if err != nil {
		return err
	}

	status := ServerStatus{
		Running: false,
		Healthy: false,
		Message: "Server is not running",
	}

	pidPath := statusPidFile
	if pidPath == "" {
		pidPath = GetDefaultPidFile()
	}
	if pid, running := isProcessRunning(pidPath); running {
		status.Running = true
		status.PID = pid
	}

	// Check readiness endpoint (works for both daemon and foreground mode)
	healthURL := fmt.Sprintf("http://localhost:%d/health/ready", statusAPIPort)
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(healthURL)
	if err == nil {
		defer func() { _ = resp.Body.Close() }()

		var healthResp health.Response
		if err := json.NewDecoder(resp.Body).Decode(&healthResp); err == nil {
			status.Running = true
			status.Healthy = healthResp.Status == "healthy"
			status.Registries = healthResp.Data
			if status.Healthy {
				status.Message = "Server is running and healthy"
			} else {
				status.Message = fmt.Sprintf("Server is running but not ready: %s", healthResp.Error)
			}
		} else {
			status.Running = true
			status.Message = "Server is running but health response invalid"
		}
	} else if status.Running {
		// PID file says running but health check failed
		status.Message = "Server process exists but health check failed"
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, status)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, status)
	default:
		printStatusTable(status)
	}

	return nil
}

func printStatusTable(status ServerStatus) {
	fmt.Println()
	fmt.Println("eppproxy Server Status")
	fmt.Println("======================")
	fmt.Println()

	if status.Running {
		fmt.Println("  Status:  Running")
		if status.PID != 0 {
			fmt.Printf("  PID:     %d\n", status.PID)
		}
	} else {
		fmt.Println("  Status:  Stopped")
	}
	if status.Healthy {
		fmt.Println("  Health:  Ready")
	} else {
		fmt.Printf("  Health:  %s\n", status.Message)
	}

	if len(status.Registries) > 0 {
		fmt.Println()
		fmt.Println("  Registries:")
		for _, reg := range status.Registries {
			zones := "-"
			if len(reg.Zones) > 0 {
				zones = strings.Join(reg.Zones, ", ")
			}
			fmt.Printf("    %-16s %-12s zones: %s\n", reg.ID, reg.State, zones)
		}
	}
	fmt.Println()
}
