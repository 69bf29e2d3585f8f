package main

// health.go – Cobra CLI glue for routerd's /v1/health endpoint (spec §6.1
// HealthCheck), grounded on the same no-arg-list-command shape as chains.go.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type HealthController struct{ client *routerClient }

func (c *HealthController) Health(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.client.getJSON(ctx, "/v1/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Print the router daemon's health report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl := &HealthController{client: newRouterClient(serverAddr(cmd))}
		out, err := ctrl.Health(cmd.Context())
		if err != nil {
			return err
		}
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
