package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/spoctl/internal/spo"
	"github.com/yourorg/spoctl/internal/spurl"
)

// listIdentity is the three-way list addressing shared by the label
// commands: a site URL plus exactly one of ID, title, or URL.
type listIdentity struct {
	webURL    string
	listID    string
	listTitle string
	listURL   string
}

func (id *listIdentity) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&id.webURL, "web-url", "", "URL of the site the list is located in")
	cmd.Flags().StringVar(&id.listID, "list-id", "", "ID of the list")
	cmd.Flags().StringVar(&id.listTitle, "list-title", "", "Title of the list")
	cmd.Flags().StringVar(&id.listURL, "list-url", "", "Server- or web-relative URL of the list")
}

// validate checks the identity portion of the arguments. The messages are
// the service tooling's fixed strings, so they keep the service's camelCase
// parameter names.
//
//nolint:staticcheck,err113,stylecheck // fixed user-facing validation messages
func (id *listIdentity) validate() error {
	if id.webURL == "" {
		return errors.New("Required parameter webUrl missing")
	}

	supplied := 0
	for _, v := range []string{id.listID, id.listTitle, id.listURL} {
		if v != "" {
			supplied++
		}
	}
	if supplied != 1 {
		return errors.New("Specify listId or listTitle or listUrl.")
	}

	if id.listID != "" && !spurl.IsValidGUID(id.listID) {
		return fmt.Errorf("%s is not a valid GUID", id.listID)
	}

	return spurl.ValidateSiteURL(id.webURL)
}

// rootFolder resolves the list's server-relative root-folder URL. The URL
// case is a pure path computation; ID and title each issue a single GET.
func (id *listIdentity) rootFolder(ctx context.Context, client *spo.Client) (string, error) {
	switch {
	case id.listURL != "":
		return spurl.GetServerRelativePath(id.webURL, id.listURL), nil
	case id.listID != "":
		return client.ListRootFolderByID(ctx, id.webURL, id.listID)
	default:
		return client.ListRootFolderByTitle(ctx, id.webURL, id.listTitle)
	}
}
