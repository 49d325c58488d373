package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jmcgrail/apireport/domain/usage"
	"github.com/jmcgrail/apireport/ports"
)

// apiRequest is the wire form of one usage log record.
type apiRequest struct {
	Timestamp    string `json:"ts"`
	AdminID      string `json:"adminId"`
	Method       string `json:"method"`
	Path         string `json:"path"`
	QueryString  string `json:"queryString"`
	SourceIP     string `json:"sourceIp"`
	UserAgent    string `json:"userAgent"`
	ResponseCode int    `json:"responseCode"`
	LatencyMs    int64  `json:"latencyMs"`
}

func (r apiRequest) toRecord() usage.Record {
	return usage.Record{
		Timestamp:    r.Timestamp,
		AdminID:      r.AdminID,
		Method:       r.Method,
		Path:         r.Path,
		QueryString:  r.QueryString,
		SourceIP:     r.SourceIP,
		UserAgent:    r.UserAgent,
		ResponseCode: r.ResponseCode,
		LatencyMs:    r.LatencyMs,
	}
}

// Pager lazily walks the paginated usage-log listing. It is not safe
// for concurrent use and cannot be restarted.
type Pager struct {
	client  *Client
	nextURL string
	done    bool
}

// Requests starts a paginated listing of the organization's usage logs
// inside the window. The first request encodes the window bounds;
// follow-up requests use the platform's rel=next cursor verbatim.
func (c *Client) Requests(window usage.Window) *Pager {
	q := url.Values{}
	q.Set("t0", window.Start.UTC().Format(time.RFC3339))
	q.Set("t1", window.End.UTC().Format(time.RFC3339))
	q.Set("perPage", strconv.Itoa(c.perPage))

	first := fmt.Sprintf("%s/organizations/%s/apiRequests?%s",
		c.baseURL, url.PathEscape(c.orgID), q.Encode())

	return &Pager{client: c, nextURL: first}
}

// Next fetches the following page. It performs exactly one request per
// call and reports done on the page whose response carried no rel=next
// cursor. Once done, further calls issue no requests.
func (p *Pager) Next(ctx context.Context) (records []usage.Record, done bool, err error) {
	if p.done {
		return nil, true, nil
	}

	var page []apiRequest
	hdr, err := p.client.get(ctx, p.nextURL, &page)
	if err != nil {
		return nil, false, err
	}

	p.nextURL = nextLink(hdr.Get("Link"))
	if p.nextURL == "" {
		p.done = true
	}

	records = make([]usage.Record, 0, len(page))
	for _, r := range page {
		records = append(records, r.toRecord())
	}
	return records, p.done, nil
}

// FetchRequests drains the paginated listing and returns all records
// in arrival order. Zero-record runs are normal.
func (c *Client) FetchRequests(ctx context.Context, window usage.Window) ([]usage.Record, error) {
	pager := c.Requests(window)

	var all []usage.Record
	page := 0
	for {
		records, done, err := pager.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch usage page %d: %w", page+1, err)
		}
		page++
		all = append(all, records...)
		c.logger.Debug().
			Int("page", page).
			Int("records", len(records)).
			Msg("fetched usage page")
		if done {
			return all, nil
		}
	}
}

// Ensure interface compliance.
var _ ports.UsageSource = (*Client)(nil)
