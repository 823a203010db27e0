package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"checklist/internal/config"
	"checklist/internal/storage"
	"checklist/internal/task"
	"checklist/internal/tui"
)

func main() {
	var memoryFlag bool

	rootCmd := &cobra.Command{
		Use:   "checklist",
		Short: "A personal task tracker",
		Long:  "checklist is a terminal task tracker with urgencies, statuses and tags, backed by a local sqlite database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(memoryFlag)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&memoryFlag, "memory", false, "Use a throwaway in-memory database")

	// Add command with flags
	var descriptionFlag string
	var latestFlag string
	var urgencyFlag string
	var statusFlag string
	var tagsFlag []string

	addCmd := &cobra.Command{
		Use:   "add [task name]",
		Short: "Add a new task",
		Long: `Add a new task with optional flags.

Examples:
  checklist add "Buy groceries"
  checklist add "Fix bug" --urgency critical --tag work
  checklist add "Weekend project" --description "Clean out the garage" --status paused`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(memoryFlag, args, descriptionFlag, latestFlag, urgencyFlag, statusFlag, tagsFlag)
		},
	}

	addCmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "Description of the task")
	addCmd.Flags().StringVarP(&latestFlag, "latest", "l", "", "Latest update on the task")
	addCmd.Flags().StringVarP(&urgencyFlag, "urgency", "u", "", "Urgency (low, medium, high, critical)")
	addCmd.Flags().StringVarP(&statusFlag, "status", "s", "", "Status (open, working, paused, completed)")
	addCmd.Flags().StringSliceVarP(&tagsFlag, "tag", "T", nil, "Tags (can be specified multiple times)")

	var displayFlag string
	var tagFilterFlag string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(memoryFlag, displayFlag, tagFilterFlag)
		},
	}

	listCmd.Flags().StringVar(&displayFlag, "display", "", "Status filter (all, completed, notcompleted)")
	listCmd.Flags().StringVar(&tagFilterFlag, "tag", "", "Only show tasks with a tag containing this text")

	var yesFlag bool
	var hardFlag bool

	wipeCmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete all tasks",
		Long:  "Delete every task from the database. With --hard the task table itself is dropped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWipe(memoryFlag, yesFlag, hardFlag)
		},
	}

	wipeCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")
	wipeCmd.Flags().BoolVar(&hardFlag, "hard", false, "Drop the task table instead of emptying it")

	var setFlag string

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the task database",
		Long: `Create the sqlite database and config file, or point the config at an
existing database with --set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(setFlag)
		},
	}

	initCmd.Flags().StringVar(&setFlag, "set", "", "Use an existing database at this path")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(wipeCmd)
	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore loads the config and connects to the task database.
func openStore(memory bool) (*config.Config, *storage.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	path := cfg.DBPath
	if memory {
		path = ":memory:"
	}

	store, err := storage.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open the task database: %w", err)
	}
	return cfg, store, nil
}

func runTUI(memory bool) error {
	cfg, store, err := openStore(memory)
	if err != nil {
		return err
	}
	defer store.Close()

	return tui.Run(cfg, store)
}

func runAdd(memory bool, args []string, description, latest, urgency, status string, tags []string) error {
	_, store, err := openStore(memory)
	if err != nil {
		return err
	}
	defer store.Close()

	t := task.New(strings.Join(args, " "))
	t.Description = description
	t.Latest = latest
	t.SetTags(tags)

	if urgency != "" {
		u, err := task.ParseUrgency(urgency)
		if err != nil {
			return err
		}
		t.Urgency = u
	}

	st := task.Open
	if status != "" {
		st, err = task.ParseStatus(status)
		if err != nil {
			return err
		}
	}
	t.ApplyStatus(st)

	if err := store.Add(t); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added: %s\n", t.Name)
	fmt.Printf("  ID: %s\n", t.ID)
	fmt.Printf("  Urgency: %s, Status: %s\n", t.Urgency, t.Status)
	if len(t.Tags) > 0 {
		fmt.Printf("  Tags: %s\n", strings.Join(t.SortedTags(), ", "))
	}

	return nil
}

func runList(memory bool, display, tagFilter string) error {
	cfg, store, err := openStore(memory)
	if err != nil {
		return err
	}
	defer store.Close()

	filter, err := task.ParseDisplay(cfg.DisplayFilter)
	if err != nil {
		filter = task.DisplayAll
	}
	if display != "" {
		filter, err = task.ParseDisplay(display)
		if err != nil {
			return err
		}
	}

	all, err := store.All()
	if err != nil {
		return err
	}
	tasks := all.Filter(filter, tagFilter)
	tasks.SortByUrgency(cfg.UrgencySortDesc)

	if len(tasks) == 0 {
		fmt.Println("No tasks. Add one with: checklist add \"task name\"")
		return nil
	}

	for _, t := range tasks {
		checkbox := "[ ]"
		if t.Status == task.Completed {
			checkbox = "[x]"
		}

		line := fmt.Sprintf("  %s %s (%s, %s)", checkbox, t.Name, t.Urgency, t.Status)
		if len(t.Tags) > 0 {
			line += fmt.Sprintf(" #%s", strings.Join(t.SortedTags(), " #"))
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Printf("Total: %d tasks\n", len(tasks))

	return nil
}

func runWipe(memory, yes, hard bool) error {
	if !yes {
		fmt.Print("This deletes every task. Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	_, store, err := openStore(memory)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Wipe(hard); err != nil {
		return err
	}

	if hard {
		fmt.Println("Task table dropped.")
	} else {
		fmt.Println("All tasks deleted.")
	}

	return nil
}

func runInit(set string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if set != "" {
		abs, err := filepath.Abs(set)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", set, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("no database at %q: %w", abs, err)
		}
		cfg.DBPath = abs
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Database ready at: %s\n", cfg.DBPath)
	fmt.Printf("Config at: %s\n", config.ConfigPath())

	return nil
}
