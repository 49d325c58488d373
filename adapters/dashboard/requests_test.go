package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jmcgrail/apireport/domain/usage"
)

// =============================================================================
// Pager Tests (requests.go)
// =============================================================================

func testWindow() usage.Window {
	return usage.Window{
		Start: time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestRequests_FirstURL(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, 0)

	records, done, err := client.Requests(testWindow()).Next(context.Background())
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %v, want none", records)
	}
	if !done {
		t.Error("done = false, want true for cursorless response")
	}

	if gotPath != "/organizations/org-123/apiRequests" {
		t.Errorf("path = %q, want /organizations/org-123/apiRequests", gotPath)
	}
	if got := gotQuery.Get("t0"); got != "2026-06-14T12:00:00Z" {
		t.Errorf("t0 = %q, want 2026-06-14T12:00:00Z", got)
	}
	if got := gotQuery.Get("t1"); got != "2026-06-15T12:00:00Z" {
		t.Errorf("t1 = %q, want 2026-06-15T12:00:00Z", got)
	}
	if got := gotQuery.Get("perPage"); got != "1000" {
		t.Errorf("perPage = %q, want 1000", got)
	}
}

func TestRequests_WindowFormattedAsUTC(t *testing.T) {
	var gotT0 string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotT0 = r.URL.Query().Get("t0")
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, 0)
	window := usage.Window{
		Start: time.Date(2026, 6, 14, 14, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
		End:   time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	if _, _, err := client.Requests(window).Next(context.Background()); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if gotT0 != "2026-06-14T12:00:00Z" {
		t.Errorf("t0 = %q, want 2026-06-14T12:00:00Z", gotT0)
	}
}

func TestPager_FollowsCursor(t *testing.T) {
	requests := 0
	var serverURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		switch r.URL.Query().Get("startingAfter") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(
				"<%s/organizations/org-123/apiRequests?startingAfter=c1>; rel=next", serverURL))
			fmt.Fprint(w, `[
				{"ts":"2026-06-15T10:00:00Z","adminId":"adm_1","method":"GET","path":"/organizations/814/devices","queryString":"perPage=10","sourceIp":"203.0.113.7","userAgent":"curl/8.5.0","responseCode":200,"latencyMs":123},
				{"method":"POST","path":"/networks","responseCode":201}
			]`)
		case "c1":
			fmt.Fprint(w, `[{"method":"DELETE","path":"/networks/N_2","responseCode":404}]`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("startingAfter"))
		}
	}))
	defer server.Close()
	serverURL = server.URL

	client, _ := newTestClient(server.URL, 0)
	pager := client.Requests(testWindow())

	records, done, err := pager.Next(context.Background())
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	if done {
		t.Error("done after page 1, cursor not followed")
	}
	if len(records) != 2 {
		t.Fatalf("page 1 records = %d, want 2", len(records))
	}
	want := usage.Record{
		Timestamp:    "2026-06-15T10:00:00Z",
		AdminID:      "adm_1",
		Method:       "GET",
		Path:         "/organizations/814/devices",
		QueryString:  "perPage=10",
		SourceIP:     "203.0.113.7",
		UserAgent:    "curl/8.5.0",
		ResponseCode: 200,
		LatencyMs:    123,
	}
	if !reflect.DeepEqual(records[0], want) {
		t.Errorf("records[0] = %+v, want %+v", records[0], want)
	}

	records, done, err = pager.Next(context.Background())
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	if !done {
		t.Error("done = false after final page")
	}
	if len(records) != 1 || records[0].Method != "DELETE" {
		t.Errorf("page 2 records = %+v, want one DELETE", records)
	}

	records, done, err = pager.Next(context.Background())
	if err != nil || !done || records != nil {
		t.Errorf("exhausted Next = (%v, %v, %v), want (nil, true, nil)", records, done, err)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2 (none after terminal page)", requests)
	}
}

func TestFetchRequests_ConcatenatesPages(t *testing.T) {
	var serverURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("startingAfter") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(
				"<%s/page?startingAfter=c1>; rel=next", serverURL))
			fmt.Fprint(w, `[{"method":"GET","responseCode":200},{"method":"POST","responseCode":404}]`)
		case "c1":
			fmt.Fprint(w, `[{"method":"GET","responseCode":200}]`)
		}
	}))
	defer server.Close()
	serverURL = server.URL

	client, _ := newTestClient(server.URL, 0)

	records, err := client.FetchRequests(context.Background(), testWindow())
	if err != nil {
		t.Fatalf("FetchRequests failed: %v", err)
	}

	wantMethods := []string{"GET", "POST", "GET"}
	if len(records) != len(wantMethods) {
		t.Fatalf("records = %d, want %d", len(records), len(wantMethods))
	}
	for i, m := range wantMethods {
		if records[i].Method != m {
			t.Errorf("records[%d].Method = %q, want %q", i, records[i].Method, m)
		}
	}
}

func TestFetchRequests_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, 0)

	records, err := client.FetchRequests(context.Background(), testWindow())
	if err != nil {
		t.Fatalf("FetchRequests failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %v, want none", records)
	}
}

func TestFetchRequests_EmptyPageMidRun(t *testing.T) {
	var serverURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("startingAfter") {
		case "":
			w.Header().Set("Link", fmt.Sprintf("<%s/page?startingAfter=c1>; rel=next", serverURL))
			fmt.Fprint(w, `[{"method":"GET","responseCode":200}]`)
		case "c1":
			w.Header().Set("Link", fmt.Sprintf("<%s/page?startingAfter=c2>; rel=next", serverURL))
			fmt.Fprint(w, `[]`)
		case "c2":
			fmt.Fprint(w, `[{"method":"PUT","responseCode":200}]`)
		}
	}))
	defer server.Close()
	serverURL = server.URL

	client, _ := newTestClient(server.URL, 0)

	records, err := client.FetchRequests(context.Background(), testWindow())
	if err != nil {
		t.Fatalf("FetchRequests failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (empty page must not terminate the run)", len(records))
	}
	if records[1].Method != "PUT" {
		t.Errorf("records[1].Method = %q, want PUT", records[1].Method)
	}
}

func TestFetchRequests_PropagatesError(t *testing.T) {
	var serverURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("startingAfter") == "" {
			w.Header().Set("Link", fmt.Sprintf("<%s/page?startingAfter=c1>; rel=next", serverURL))
			fmt.Fprint(w, `[{"method":"GET","responseCode":200}]`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	serverURL = server.URL

	client, _ := newTestClient(server.URL, 0)

	_, err := client.FetchRequests(context.Background(), testWindow())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "fetch usage page 2") {
		t.Errorf("error = %q, want page number in message", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("error = %v, want wrapped 500 APIError", err)
	}
}

func TestAPIRequest_ToRecord(t *testing.T) {
	wire := apiRequest{
		Timestamp:    "2026-06-15T10:00:00Z",
		AdminID:      "adm_9",
		Method:       "PUT",
		Path:         "/networks/N_1/clients",
		QueryString:  "timespan=3600",
		SourceIP:     "198.51.100.4",
		UserAgent:    "python-requests/2.32",
		ResponseCode: 429,
		LatencyMs:    2050,
	}

	got := wire.toRecord()
	want := usage.Record{
		Timestamp:    "2026-06-15T10:00:00Z",
		AdminID:      "adm_9",
		Method:       "PUT",
		Path:         "/networks/N_1/clients",
		QueryString:  "timespan=3600",
		SourceIP:     "198.51.100.4",
		UserAgent:    "python-requests/2.32",
		ResponseCode: 429,
		LatencyMs:    2050,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("toRecord() = %+v, want %+v", got, want)
	}
}
