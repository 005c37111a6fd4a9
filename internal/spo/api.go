package spo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	setComplianceTagEndpoint = "_api/SP_CompliancePolicy_SPPolicyStoreProxy_SetListComplianceTag"
	getComplianceTagEndpoint = "_api/SP_CompliancePolicy_SPPolicyStoreProxy_GetListComplianceTag"

	rootFolderQuery = "?$expand=RootFolder&$select=RootFolder"
)

// ComplianceTagRequest is the payload of the compliance-policy proxy call
// that applies a label to a list. The booleans are always sent concretely;
// the service does not accept an unset state.
type ComplianceTagRequest struct {
	ListURL            string `json:"listUrl"`
	ComplianceTagValue string `json:"complianceTagValue"`
	BlockDelete        bool   `json:"blockDelete"`
	BlockEdit          bool   `json:"blockEdit"`
	SyncToItems        bool   `json:"syncToItems"`
}

// ComplianceTag describes the label currently applied to a list.
type ComplianceTag struct {
	TagID               string `json:"TagId"`
	TagName             string `json:"TagName"`
	Notes               string `json:"Notes"`
	TagDuration         int    `json:"TagDuration"`
	TagRetentionBasedOn string `json:"TagRetentionBasedOn"`
	AutoDelete          bool   `json:"AutoDelete"`
	BlockDelete         bool   `json:"BlockDelete"`
	BlockEdit           bool   `json:"BlockEdit"`
	HasRetentionAction  bool   `json:"HasRetentionAction"`
	IsEventTag          bool   `json:"IsEventTag"`
	SuperLock           bool   `json:"SuperLock"`
}

type rootFolderResponse struct {
	RootFolder struct {
		ServerRelativeURL string `json:"ServerRelativeUrl"`
	} `json:"RootFolder"`
}

// ListRootFolderByID resolves the server-relative root-folder URL of the
// list with the given GUID.
func (c *Client) ListRootFolderByID(ctx context.Context, webURL, listID string) (string, error) {
	if listID == "" {
		return "", fmt.Errorf("listID cannot be empty")
	}
	fragment := fmt.Sprintf("lists(guid'%s')/", encodeODataParameter(listID))
	return c.listRootFolder(ctx, webURL, fragment)
}

// ListRootFolderByTitle resolves the server-relative root-folder URL of the
// list with the given title.
func (c *Client) ListRootFolderByTitle(ctx context.Context, webURL, title string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("title cannot be empty")
	}
	fragment := fmt.Sprintf("lists/getByTitle('%s')/", encodeODataParameter(title))
	return c.listRootFolder(ctx, webURL, fragment)
}

func (c *Client) listRootFolder(ctx context.Context, webURL, fragment string) (string, error) {
	endpoint := siteEndpoint(webURL, "_api/web/"+fragment) + rootFolderQuery
	var resp rootFolderResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return "", err
	}
	return resp.RootFolder.ServerRelativeURL, nil
}

// SetListComplianceTag applies a retention label to the list addressed by
// req.ListURL. The response body is not interpreted.
func (c *Client) SetListComplianceTag(ctx context.Context, webURL string, req ComplianceTagRequest) error {
	endpoint := siteEndpoint(webURL, setComplianceTagEndpoint)
	return c.do(ctx, http.MethodPost, endpoint, req, nil)
}

// GetListComplianceTag returns the label applied to the list at the given
// absolute URL. found is false when no label is set.
func (c *Client) GetListComplianceTag(
	ctx context.Context,
	webURL string,
	listURL string,
) (tag ComplianceTag, found bool, err error) {
	endpoint := siteEndpoint(webURL, getComplianceTagEndpoint)

	var resp struct {
		ComplianceTag
		// the proxy answers {"odata.null":true} when no label is applied
		Null bool `json:"odata.null"`
	}
	body := map[string]string{"listUrl": listURL}
	if err := c.do(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return ComplianceTag{}, false, err
	}
	if resp.Null {
		return ComplianceTag{}, false, nil
	}
	return resp.ComplianceTag, true, nil
}

func siteEndpoint(webURL, relative string) string {
	return strings.TrimSuffix(webURL, "/") + "/" + relative
}

// encodeODataParameter percent-encodes an identifier interpolated into an
// OData path fragment. Spaces become %20, not '+'.
func encodeODataParameter(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
