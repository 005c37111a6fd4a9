package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/spoctl/internal/spo"
	"github.com/yourorg/spoctl/internal/spurl"
)

type listLabelSetOptions struct {
	listIdentity
	label       string
	syncToItems bool
	blockDelete bool
	blockEdit   bool
}

func newListLabelSetCmd(globals *globalOptions) *cobra.Command {
	opts := &listLabelSetOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a retention label on a list",
		RunE:  opts.run(globals),
	}

	opts.bindFlags(cmd)
	cmd.Flags().StringVar(&opts.label, "label", "", "Name of the retention label to apply")
	cmd.Flags().BoolVar(&opts.syncToItems, "sync-to-items", false, "Apply the label to existing items in the list")
	cmd.Flags().BoolVar(&opts.blockDelete, "block-delete", false, "Block deleting items in the list")
	cmd.Flags().BoolVar(&opts.blockEdit, "block-edit", false, "Block editing items in the list")

	return cmd
}

// run executes the pipeline: validate, acquire a site-scoped token, resolve
// the list root folder, apply the label. Stages run strictly in order and
// the first failure aborts the rest.
func (opts *listLabelSetOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := opts.validate(); err != nil {
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
		if globals.debug {
			fmt.Fprintf(cmd.ErrOrStderr(), "Resolved list root folder: %s\n", rootFolder)
		}

		listURL := spurl.GetAbsoluteURL(opts.webURL, rootFolder)
		if err := opts.applyLabel(ctx, client, listURL); err != nil {
			return err
		}

		if globals.verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Set label %q on %s\n", opts.label, listURL)
		}
		return nil
	}
}

// validate checks the arguments in the service's fixed order: label, then
// the list identity (site URL, exactly-one identifier, GUID syntax, URL
// shape). Pure; no network access.
//
//nolint:staticcheck,err113,stylecheck // fixed user-facing validation message
func (opts *listLabelSetOptions) validate() error {
	if opts.label == "" {
		return errors.New("Required parameter label missing")
	}
	return opts.listIdentity.validate()
}

func (opts *listLabelSetOptions) applyLabel(ctx context.Context, client *spo.Client, listURL string) error {
	req := spo.ComplianceTagRequest{
		ListURL:            listURL,
		ComplianceTagValue: opts.label,
		BlockDelete:        opts.blockDelete,
		BlockEdit:          opts.blockEdit,
		SyncToItems:        opts.syncToItems,
	}
	return client.SetListComplianceTag(ctx, opts.webURL, req)
}
