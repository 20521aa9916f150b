package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List pending tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)
		var response struct {
			Tasks []struct {
				Title       string `json:"title"`
				DueDate     int64  `json:"dueDate"`
				Priority    int    `json:"priority"`
				ProjectName string `json:"projectName"`
			} `json:"tasks"`
		}
		if err := client.get("/api/tasks", &response); err != nil {
			return err
		}
		if len(response.Tasks) == 0 {
			fmt.Println("No pending tasks.")
			return nil
		}
		for _, t := range response.Tasks {
			due := "no due date"
			if t.DueDate != 0 {
				due = time.UnixMilli(t.DueDate).Local().Format("2006-01-02 15:04")
			}
			project := t.ProjectName
			if project == "" {
				project = "inbox"
			}
			fmt.Printf("%-16s  %-12s  %s\n", due, project, t.Title)
		}
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync tasks from TickTick now",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)
		if err := client.post("/api/sync", nil, nil); err != nil {
			return err
		}
		fmt.Println("Sync complete.")
		return nil
	},
}

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Show permission setup status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)
		var response struct {
			CompletionFraction float64 `json:"completionFraction"`
			FullySetUp         bool    `json:"fullySetUp"`
			Groups             []struct {
				Group   int `json:"group"`
				Records []struct {
					Descriptor struct {
						DisplayName string `json:"displayName"`
					} `json:"descriptor"`
					Status int `json:"status"`
				} `json:"records"`
			} `json:"groups"`
		}
		if err := client.get("/api/permissions", &response); err != nil {
			return err
		}
		fmt.Printf("Setup: %.0f%% complete", response.CompletionFraction*100)
		if response.FullySetUp {
			fmt.Print(" (fully set up)")
		}
		fmt.Println()
		return nil
	},
}

var aiCmd = &cobra.Command{
	Use:   "ai [message]",
	Short: "Send a message to the assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)
		var response struct {
			Reply string `json:"reply"`
		}
		payload := map[string]string{"message": strings.Join(args, " ")}
		if err := client.post("/api/ai/chat", payload, &response); err != nil {
			return err
		}
		fmt.Println(response.Reply)
		return nil
	},
}
