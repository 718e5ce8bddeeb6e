package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allang/companion-memory/internal/memory"
)

func init() {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Render the memory context block for prompt injection",
		Long: "Render the profile plus the recent episode window into the plain-text " +
			"context block. Prints nothing when there is no context to inject.",
		Run: runContext,
	}

	RootCmd.AddCommand(cmd)
}

func runContext(cmd *cobra.Command, args []string) {
	m := memory.Open(getDBPath(), nil)
	defer m.Close()

	if out := m.BuildContext(cmd.Context()); out != "" {
		fmt.Print(out)
	}
}
