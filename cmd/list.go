package cmd

import "github.com/spf13/cobra"

func newListCmd(globals *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Work with SharePoint lists",
	}

	cmd.AddCommand(newListLabelCmd(globals))

	return cmd
}

func newListLabelCmd(globals *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage retention labels on lists",
	}

	cmd.AddCommand(newListLabelSetCmd(globals))
	cmd.AddCommand(newListLabelGetCmd(globals))

	return cmd
}
