package apt

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/etnz/debedit/deb"
	"github.com/etnz/debedit/relations"
	"github.com/ulikunitz/xz"
)

const remotePackages = `Package: remote-pkg
Version: 1.0-1
Architecture: amd64
Filename: pool/main/r/remote-pkg/remote-pkg_1.0-1_amd64.deb
Size: 100

Package: remote-pkg
Version: 1.2-1
Architecture: amd64
`

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	gw.Write([]byte(s))
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func xzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(s))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func armoredPrivateKey(t *testing.T) string {
	t.Helper()
	entity, err := openpgp.NewEntity("Repo", "test", "repo@example.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PrivateKeyType, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := entity.SerializePrivate(w, nil); err != nil {
		t.Fatal(err)
	}
	w.Close()
	return buf.String()
}

func newRepoServer(t *testing.T) *httptest.Server {
	t.Helper()
	release := deb.NewRelease(deb.ArchiveInfo{Suite: "stable", Components: []string{"main"}})
	if err := release.AddFile("main/binary-amd64/Packages", []byte(remotePackages)); err != nil {
		t.Fatal(err)
	}
	inRelease, err := deb.Sign(release.String(), armoredPrivateKey(t))
	if err != nil {
		t.Fatal(err)
	}
	files := map[string][]byte{
		"/dists/stable/main/binary-amd64/Packages.gz": gzipped(t, remotePackages),
		"/dists/stable/main/binary-amd64/Packages.xz": xzipped(t, remotePackages),
		"/dists/stable/main/binary-arm64/Packages.gz": []byte("not gzip"),
		"/dists/stable/InRelease":                     []byte(inRelease),
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchPackagesIndex(t *testing.T) {
	ts := newRepoServer(t)
	repo, _ := url.Parse(ts.URL)
	ctx := context.Background()

	for _, src := range []string{
		PackagesURL(repo, "stable", "main", "amd64"),
		strings.TrimSuffix(PackagesURL(repo, "stable", "main", "amd64"), ".gz") + ".xz",
	} {
		x, err := FetchPackagesIndex(ctx, ts.Client(), src)
		if err != nil {
			t.Fatalf("FetchPackagesIndex(%s) failed: %v", src, err)
		}
		if x.String() != remotePackages {
			t.Errorf("FetchPackagesIndex(%s) = %q", src, x.String())
		}
		newest, ok := x.Newest("remote-pkg")
		if !ok || newest.Version() != "1.2-1" {
			t.Errorf("Newest() = %v, %v", newest, ok)
		}
		rs, _ := relations.Parse("remote-pkg (>= 1.1)")
		if !rs.SatisfiedBy(x.Lookup()) {
			t.Error("remote-pkg (>= 1.1) not satisfied by the fetched index")
		}
	}
}

func TestFetchPackagesIndexErrors(t *testing.T) {
	ts := newRepoServer(t)
	repo, _ := url.Parse(ts.URL)
	ctx := context.Background()

	if _, err := FetchPackagesIndex(ctx, ts.Client(), PackagesURL(repo, "testing", "main", "amd64")); err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Errorf("FetchPackagesIndex(missing) error = %v, want status 404", err)
	}
	if _, err := FetchPackagesIndex(ctx, ts.Client(), PackagesURL(repo, "stable", "main", "arm64")); err == nil {
		t.Error("FetchPackagesIndex(corrupt) succeeded")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := FetchPackagesIndex(cancelled, ts.Client(), PackagesURL(repo, "stable", "main", "amd64")); err == nil {
		t.Error("FetchPackagesIndex() with a cancelled context succeeded")
	}
}

func TestFetchRelease(t *testing.T) {
	ts := newRepoServer(t)
	repo, _ := url.Parse(ts.URL)

	r, err := FetchRelease(context.Background(), ts.Client(), ReleaseURL(repo, "stable"))
	if err != nil {
		t.Fatalf("FetchRelease() failed: %v", err)
	}
	if r.Suite() != "stable" {
		t.Errorf("Suite() = %q", r.Suite())
	}
	sums, err := r.Checksums(deb.RelSHA256)
	if err != nil || len(sums) != 1 || sums[0].Path != "main/binary-amd64/Packages" {
		t.Errorf("Checksums() = %v, %v", sums, err)
	}
}
