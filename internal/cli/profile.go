package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allang/companion-memory/internal/model"
)

func init() {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Long-term profile management",
	}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current profile (defaults filled in)",
		Run:   runProfileGet,
	}

	setCmd := &cobra.Command{
		Use:   "set [json]",
		Short: "Overwrite the full profile from a JSON object",
		Args:  cobra.ExactArgs(1),
		Run:   runProfileSet,
	}

	updateCmd := &cobra.Command{
		Use:   "update [field] [value]",
		Short: "Update one field (idempotent append for list fields)",
		Args:  cobra.ExactArgs(2),
		Run:   runProfileUpdate,
	}

	removeCmd := &cobra.Command{
		Use:   "remove [field] [value]",
		Short: "Remove a value from a list field, or reset a scalar field",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runProfileRemove,
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore every profile field to its default",
		Run:   runProfileReset,
	}

	profileCmd.AddCommand(getCmd, setCmd, updateCmd, removeCmd, resetCmd)
	RootCmd.AddCommand(profileCmd)
}

func printProfile(p model.Profile) {
	b, _ := json.MarshalIndent(p, "", "  ")
	fmt.Println(string(b))
}

func runProfileGet(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	printProfile(s.Profile(cmd.Context()))
}

func runProfileSet(cmd *cobra.Command, args []string) {
	p := model.DefaultProfile()
	if err := json.Unmarshal([]byte(args[0]), &p); err != nil {
		exitErr("parse profile", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.SaveProfile(cmd.Context(), p); err != nil {
		exitErr("save profile", err)
	}
	printProfile(s.Profile(cmd.Context()))
}

func runProfileUpdate(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := s.UpdateProfile(cmd.Context(), args[0], args[1])
	if err != nil {
		exitErr("update profile", err)
	}
	printProfile(p)
}

func runProfileRemove(cmd *cobra.Command, args []string) {
	value := ""
	if len(args) > 1 {
		value = args[1]
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := s.RemoveFromProfile(cmd.Context(), args[0], value)
	if err != nil {
		exitErr("remove from profile", err)
	}
	printProfile(p)
}

func runProfileReset(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.ResetProfile(cmd.Context()); err != nil {
		exitErr("reset profile", err)
	}
	fmt.Println(`{"ok":true}`)
}
