package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/allang/companion-memory/internal/classify"
	"github.com/allang/companion-memory/internal/memory"
	"github.com/allang/companion-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "remember [user-text] [assistant-text]",
		Short: "Classify one conversational turn and store what it extracts",
		Long: "Send a user/assistant turn to the classification endpoint, then route " +
			"the extracted records into the profile and episode tiers. Classification " +
			"failures are soft: nothing is stored and the exit code stays zero.",
		Args: cobra.ExactArgs(2),
		Run:  runRemember,
	}

	cmd.Flags().String("base-url", "", "OpenAI-compatible endpoint base URL (default: $OPENAI_BASE_URL)")
	cmd.Flags().StringP("model", "m", "", "Classifier model name (required)")
	cmd.MarkFlagRequired("model")

	RootCmd.AddCommand(cmd)
}

func runRemember(cmd *cobra.Command, args []string) {
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = os.Getenv("OPENAI_BASE_URL")
	}
	modelName, _ := cmd.Flags().GetString("model")

	cls := classify.New(classify.Config{
		Enabled: true,
		BaseURL: baseURL,
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   modelName,
	})

	m := memory.Open(getDBPath(), cls)
	defer m.Close()

	records, err := cls.Classify(cmd.Context(), args[0], args[1])
	if err != nil || len(records) == 0 {
		fmt.Println(`{"stored":0}`)
		return
	}

	if err := m.Route(cmd.Context(), records); err != nil {
		// Partial failures were already logged per record; report what landed.
		fmt.Fprintf(os.Stderr, "warning: some records not stored: %v\n", err)
	}

	stored := 0
	for _, r := range records {
		if r.Category == model.CategoryLongTerm || r.Category == model.CategoryMidTerm {
			stored++
		}
	}
	fmt.Printf(`{"stored":%d}`+"\n", stored)
}
