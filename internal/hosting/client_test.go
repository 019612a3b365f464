package hosting

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/artifact-hub/relcheck/internal/registry"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{httpClient: srv.Client(), githubAPI: srv.URL}
}

func TestTags_Paginated(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Query().Get("per_page") != "100" {
			t.Errorf("per_page = %q, want 100", r.URL.Query().Get("per_page"))
		}
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `[{"name":"release-1.19.3"},{"name":"release-1.19.2"}]`)
		case "2":
			fmt.Fprint(w, `[{"name":"release-1.19.1"}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))
	defer srv.Close()

	pkg := registry.Package{Name: "unbound", Host: "github", Repo: "NLnetLabs/unbound"}
	tags, err := testClient(srv).Tags(pkg)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	want := []string{"release-1.19.3", "release-1.19.2", "release-1.19.1"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
	if gotUA != userAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, userAgent)
	}
}

func TestTags_NonArrayEndsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"rate limited politely"}`)
	}))
	defer srv.Close()

	pkg := registry.Package{Name: "wghttp", Host: "github", Repo: "brsyuksel/wghttp"}
	tags, err := testClient(srv).Tags(pkg)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want none", tags)
	}
}

func TestTags_SkipsMalformedItems(t *testing.T) {
	pages := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		if pages == 1 {
			fmt.Fprint(w, `[{"name":"v0.2.0"},"junk",{"name":42},{"other":"v9.9.9"},{"name":"v0.1.0"}]`)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	pkg := registry.Package{Name: "wghttp", Host: "github", Repo: "brsyuksel/wghttp"}
	tags, err := testClient(srv).Tags(pkg)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "v0.2.0" || tags[1] != "v0.1.0" {
		t.Errorf("tags = %v, want [v0.2.0 v0.1.0]", tags)
	}
}

func TestTags_PageLimit(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `[{"name":"tor-0.4.8.1"}]`)
	}))
	defer srv.Close()

	pkg := registry.Package{Name: "tor", Host: "gitlab", BaseURL: srv.URL, Project: "tpo/core/tor"}
	tags, err := testClient(srv).Tags(pkg)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if requests != maxPages {
		t.Errorf("requests = %d, want %d", requests, maxPages)
	}
	if len(tags) != maxPages {
		t.Errorf("len(tags) = %d, want %d", len(tags), maxPages)
	}
}

func TestTags_GitLabProjectPathEscaped(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	pkg := registry.Package{Name: "tor", Host: "gitlab", BaseURL: srv.URL, Project: "tpo/core/tor"}
	if _, err := testClient(srv).Tags(pkg); err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if !strings.Contains(gotPath, "tpo%2Fcore%2Ftor") {
		t.Errorf("path = %q, want escaped project segment", gotPath)
	}
}

func TestTags_HTTPErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	pkg := registry.Package{Name: "udp2raw", Host: "github", Repo: "wangyu-/udp2raw"}
	if _, err := testClient(srv).Tags(pkg); err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestTags_UnknownHost(t *testing.T) {
	pkg := registry.Package{Name: "x", Host: "sourcehut"}
	if _, err := NewClient().Tags(pkg); err == nil {
		t.Fatal("expected error for unknown host")
	}
}
