package main

// chains.go – Cobra CLI glue for routerd's /v1/chains endpoint (spec §6.1
// ListSupportedChains), grounded on the teacher's cmd/cli/amm.go "pairs"
// command (no-arg list command, JSON pretty-printed to stdout).

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type ChainsController struct{ client *routerClient }

func (c *ChainsController) ListChains(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.client.getJSON(ctx, "/v1/chains", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List every chain the router daemon has registered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl := &ChainsController{client: newRouterClient(serverAddr(cmd))}
		out, err := ctrl.ListChains(cmd.Context())
		if err != nil {
			return err
		}
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chainsCmd)
}
