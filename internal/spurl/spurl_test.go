package spurl_test

import (
	"strings"
	"testing"

	"github.com/yourorg/spoctl/internal/spurl"
)

func TestGetServerRelativePath(t *testing.T) {
	cases := []struct {
		name   string
		webURL string
		folder string
		want   string
	}{
		{
			name:   "web relative folder",
			webURL: "https://contoso.sharepoint.com/sites/x",
			folder: "Shared Documents",
			want:   "/sites/x/Shared Documents",
		},
		{
			name:   "already server relative",
			webURL: "https://contoso.sharepoint.com/sites/x",
			folder: "/sites/x/Shared Documents",
			want:   "/sites/x/Shared Documents",
		},
		{
			name:   "case insensitive prefix",
			webURL: "https://contoso.sharepoint.com/Sites/X",
			folder: "/sites/x/Lists/Tasks",
			want:   "/Sites/X/Lists/Tasks",
		},
		{
			name:   "root site",
			webURL: "https://contoso.sharepoint.com",
			folder: "Shared Documents",
			want:   "/Shared Documents",
		},
		{
			name:   "trailing slashes trimmed",
			webURL: "https://contoso.sharepoint.com/sites/x/",
			folder: "Lists/Tasks/",
			want:   "/sites/x/Lists/Tasks",
		},
		{
			name:   "empty folder yields web path",
			webURL: "https://contoso.sharepoint.com/sites/x",
			folder: "",
			want:   "/sites/x",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := spurl.GetServerRelativePath(tc.webURL, tc.folder)
			if got != tc.want {
				t.Fatalf("GetServerRelativePath(%q, %q) = %q, want %q", tc.webURL, tc.folder, got, tc.want)
			}
		})
	}
}

func TestGetAbsoluteURL(t *testing.T) {
	got := spurl.GetAbsoluteURL("https://contoso.sharepoint.com/sites/x", "/sites/x/Shared Documents")
	want := "https://contoso.sharepoint.com/sites/x/Shared Documents"
	if got != want {
		t.Fatalf("GetAbsoluteURL = %q, want %q", got, want)
	}
}

func TestRootSiteURL(t *testing.T) {
	got, err := spurl.RootSiteURL("https://contoso.sharepoint.com/sites/x")
	if err != nil {
		t.Fatalf("RootSiteURL returned error: %v", err)
	}
	if want := "https://contoso.sharepoint.com"; got != want {
		t.Fatalf("RootSiteURL = %q, want %q", got, want)
	}

	if _, err := spurl.RootSiteURL("/sites/x"); err == nil {
		t.Fatalf("expected error for URL without authority")
	}
}

func TestIsValidGUID(t *testing.T) {
	if !spurl.IsValidGUID("3e26f060-66a0-4bea-a3a4-b09c6a91d5a5") {
		t.Fatalf("expected canonical GUID to validate")
	}
	if spurl.IsValidGUID("not-a-guid") {
		t.Fatalf("expected invalid GUID to fail")
	}
}

func TestValidateSiteURL(t *testing.T) {
	if err := spurl.ValidateSiteURL("https://contoso.sharepoint.com/sites/x"); err != nil {
		t.Fatalf("ValidateSiteURL returned error: %v", err)
	}

	err := spurl.ValidateSiteURL("http://contoso.sharepoint.com")
	if err == nil {
		t.Fatalf("expected error for non-https URL")
	}
	if !strings.Contains(err.Error(), "is not a valid SharePoint Online site URL") {
		t.Fatalf("unexpected error message: %v", err)
	}
}
