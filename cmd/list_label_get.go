package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yourorg/spoctl/internal/render"
	"github.com/yourorg/spoctl/internal/spo"
	"github.com/yourorg/spoctl/internal/spurl"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

type listLabelGetOptions struct {
	listIdentity
	format string
}

func newListLabelGetCmd(globals *globalOptions) *cobra.Command {
	opts := &listLabelGetOptions{format: formatJSON}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get the retention label applied to a list",
		RunE:  opts.run(globals),
	}

	opts.bindFlags(cmd)
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format: json|table")

	return cmd
}

func (opts *listLabelGetOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := opts.listIdentity.validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := buildClient(ctx, globals.profile, opts.webURL)
		if err != nil {
			return err
		}

		rootFolder, err := opts.rootFolder(ctx, client)
		if err != nil {
			return err
		}

		listURL := spurl.GetAbsoluteURL(opts.webURL, rootFolder)
		tag, found, err := client.GetListComplianceTag(ctx, opts.webURL, listURL)
		if err != nil {
			return err
		}
		if !found {
			if globals.verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "No label set on %s\n", listURL)
			}
			return nil
		}

		return opts.renderTag(cmd, tag)
	}
}

func (opts *listLabelGetOptions) renderTag(cmd *cobra.Command, tag spo.ComplianceTag) error {
	switch opts.format {
	case formatJSON:
		return render.JSON(cmd.OutOrStdout(), tag)
	case formatTable:
		return render.KeyValues(cmd.OutOrStdout(), complianceTagRows(tag))
	default:
		return fmt.Errorf("unknown format %q (expected json or table)", opts.format)
	}
}

func complianceTagRows(tag spo.ComplianceTag) [][2]string {
	return [][2]string{
		{"TagId", tag.TagID},
		{"TagName", tag.TagName},
		{"Notes", tag.Notes},
		{"BlockDelete", strconv.FormatBool(tag.BlockDelete)},
		{"BlockEdit", strconv.FormatBool(tag.BlockEdit)},
		{"AutoDelete", strconv.FormatBool(tag.AutoDelete)},
		{"HasRetentionAction", strconv.FormatBool(tag.HasRetentionAction)},
		{"IsEventTag", strconv.FormatBool(tag.IsEventTag)},
		{"SuperLock", strconv.FormatBool(tag.SuperLock)},
		{"TagDuration", strconv.Itoa(tag.TagDuration)},
		{"TagRetentionBasedOn", tag.TagRetentionBasedOn},
	}
}
