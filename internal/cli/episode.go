package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allang/companion-memory/internal/model"
	"github.com/allang/companion-memory/internal/retention"
)

func init() {
	episodeCmd := &cobra.Command{
		Use:   "episode",
		Short: "Mid-term episode log management",
	}

	addCmd := &cobra.Command{
		Use:   "add [summary]",
		Short: "Append an episode dated today",
		Args:  cobra.MinimumNArgs(1),
		Run:   runEpisodeAdd,
	}
	addCmd.Flags().StringP("emotion", "e", "", "Emotion tag (default: "+model.DefaultEmotion+")")
	addCmd.Flags().IntP("priority", "p", model.DefaultPriority, "Priority 1-5 (higher = more salient)")

	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "List episodes inside the recency window, newest first",
		Run:   runEpisodeRecent,
	}
	recentCmd.Flags().IntP("days", "w", retention.DefaultRecencyDays, "Window size in days")

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete episodes older than the retention window",
		Run:   runEpisodePrune,
	}
	pruneCmd.Flags().IntP("days", "w", retention.DefaultRetentionDays, "Maximum age in days")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all episodes",
		Run:   runEpisodeClear,
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Find episodes whose summary contains the query",
		Args:  cobra.MinimumNArgs(1),
		Run:   runEpisodeSearch,
	}
	searchCmd.Flags().IntP("limit", "l", retention.RecentEpisodeCap, "Maximum results")

	episodeCmd.AddCommand(addCmd, recentCmd, pruneCmd, clearCmd, searchCmd)
	RootCmd.AddCommand(episodeCmd)
}

func printEpisodes(episodes []model.Episode) {
	if episodes == nil {
		episodes = []model.Episode{}
	}
	b, _ := json.MarshalIndent(episodes, "", "  ")
	fmt.Println(string(b))
}

func runEpisodeAdd(cmd *cobra.Command, args []string) {
	emotion, _ := cmd.Flags().GetString("emotion")
	priority, _ := cmd.Flags().GetInt("priority")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ep, err := s.AppendEpisode(cmd.Context(), strings.Join(args, " "), emotion, priority)
	if err != nil {
		exitErr("append episode", err)
	}

	b, _ := json.Marshal(ep)
	fmt.Println(string(b))
}

func runEpisodeRecent(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	episodes, err := s.RecentEpisodes(cmd.Context(), days)
	if err != nil {
		exitErr("recent episodes", err)
	}
	printEpisodes(episodes)
}

func runEpisodePrune(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.PruneEpisodes(cmd.Context(), days)
	if err != nil {
		exitErr("prune episodes", err)
	}
	fmt.Printf(`{"ok":true,"pruned":%d}`+"\n", n)
}

func runEpisodeClear(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.ClearEpisodes(cmd.Context()); err != nil {
		exitErr("clear episodes", err)
	}
	fmt.Println(`{"ok":true}`)
}

func runEpisodeSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	episodes, err := s.SearchEpisodes(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		exitErr("search episodes", err)
	}
	printEpisodes(episodes)
}
