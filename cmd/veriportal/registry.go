package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"veriportal-engine/pkg/registry"
)

const defaultJobTimeout = 30 * time.Second

func newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the activity registry",
	}
	cmd.AddCommand(newRegistryValidateCmd())
	cmd.AddCommand(newRegistryListCmd())
	cmd.AddCommand(newRegistryExportCmd())
	cmd.AddCommand(newRegistryAddCmd())
	cmd.AddCommand(newRegistrySetCmd())
	return cmd
}

func newRegistryValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate activity definitions and their schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d activities ok\n", len(reg.Activities))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Registry JSON file (default: built-in registry)")
	return cmd
}

func newRegistryListCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered task types",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}

			activities := append([]registry.Activity(nil), reg.Activities...)
			sort.Slice(activities, func(i, j int) bool { return activities[i].TaskType < activities[j].TaskType })
			for _, a := range activities {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-32s %-12s %s\n",
					a.TaskType, a.ID, a.ImplementationStatus, a.TimeoutDuration(defaultJobTimeout))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Registry JSON file (default: built-in registry)")
	return cmd
}

func newRegistryExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the built-in registry to a file for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Default()
			if err != nil {
				return err
			}
			return reg.Save(args[0])
		},
	}
	return cmd
}

func newRegistryAddCmd() *cobra.Command {
	var (
		path     string
		activity registry.Activity
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity to a registry file",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			activity.InputSchema = map[string]interface{}{}
			activity.OutputSchema = map[string]interface{}{}
			if err := reg.Add(activity); err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return err
			}
			if err := reg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", activity.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Registry JSON file [REQUIRED]")
	cmd.Flags().StringVar(&activity.ID, "id", "", "Activity ID, domain.subdomain.action [REQUIRED]")
	cmd.Flags().StringVar(&activity.TaskType, "task-type", "", "Zeebe job type [REQUIRED]")
	cmd.Flags().StringVar(&activity.DisplayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&activity.Description, "description", "", "Description")
	cmd.Flags().StringVar(&activity.Category, "category", "", "Category")
	cmd.Flags().StringVar(&activity.Version, "version", "1.0.0", "Version")
	cmd.Flags().StringVar(&activity.ImplementationStatus, "status", "planned", "Implementation status")
	cmd.Flags().StringVar(&activity.Timeout, "timeout", "10s", "Job timeout")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("task-type")
	return cmd
}

func newRegistrySetCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "set <id> <field> <value>",
		Short: "Update one field of an activity in a registry file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			if err := reg.Update(args[0], args[1], args[2]); err != nil {
				return err
			}
			return reg.Save(path)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Registry JSON file [REQUIRED]")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
