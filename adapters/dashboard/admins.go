package dashboard

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jmcgrail/apireport/domain/usage"
)

// admin is the wire form of one organization operator.
type admin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FetchAdmins returns the organization's operator directory, used to
// resolve admin IDs to display names in the export.
func (c *Client) FetchAdmins(ctx context.Context) (usage.AdminDirectory, error) {
	next := fmt.Sprintf("%s/organizations/%s/admins", c.baseURL, url.PathEscape(c.orgID))

	dir := usage.AdminDirectory{}
	for next != "" {
		var page []admin
		hdr, err := c.get(ctx, next, &page)
		if err != nil {
			return nil, fmt.Errorf("fetch admins: %w", err)
		}
		for _, a := range page {
			dir[a.ID] = a.Name
		}
		next = nextLink(hdr.Get("Link"))
	}

	return dir, nil
}
