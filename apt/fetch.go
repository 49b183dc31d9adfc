package apt

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/debedit/deb"
	"github.com/ulikunitz/xz"
)

// PackagesURL returns the URL of a Packages index. A suite ending with "/"
// is the path of a flat repository, which has no component nor
// architecture:
//
//	<repo>/dists/<suite>/<component>/binary-<arch>/Packages.gz
//	<repo>/<suite>Packages.gz        (suite "./" or "path/")
func PackagesURL(repo *url.URL, suite, component, arch string) string {
	base := strings.TrimSuffix(repo.String(), "/") + "/"
	if strings.HasSuffix(suite, "/") {
		return base + flatPath(suite) + "Packages.gz"
	}
	return fmt.Sprintf("%sdists/%s/%s/binary-%s/Packages.gz", base, suite, component, arch)
}

// ReleaseURL returns the URL of the InRelease file of a suite.
func ReleaseURL(repo *url.URL, suite string) string {
	base := strings.TrimSuffix(repo.String(), "/") + "/"
	if strings.HasSuffix(suite, "/") {
		return base + flatPath(suite) + "InRelease"
	}
	return base + "dists/" + suite + "/InRelease"
}

// flatPath returns the path of a flat repository relative to its URI: "./"
// is the URI itself.
func flatPath(suite string) string {
	return strings.TrimPrefix(strings.TrimPrefix(suite, "./"), "/")
}

// FetchPackagesIndex downloads and parses a Packages index. Indices
// compressed with gzip or xz are recognized by their extension, and a
// clearsigned index is accepted without verification.
func FetchPackagesIndex(ctx context.Context, client *http.Client, src string) (*deb.PackagesIndex, error) {
	text, err := fetch(ctx, client, src)
	if err != nil {
		return nil, err
	}
	x, err := deb.ParsePackagesIndex(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return x, nil
}

// FetchRelease downloads and parses a Release or InRelease file. The
// signature of an InRelease file is not verified.
func FetchRelease(ctx context.Context, client *http.Client, src string) (*deb.Release, error) {
	text, err := fetch(ctx, client, src)
	if err != nil {
		return nil, err
	}
	r, err := deb.ParseRelease(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return r, nil
}

// fetch returns the decompressed payload of src.
func fetch(ctx context.Context, client *http.Client, src string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status %d", src, resp.StatusCode)
	}

	var r io.Reader = resp.Body
	switch {
	case strings.HasSuffix(src, ".gz"):
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return "", fmt.Errorf("%s: %w", src, err)
		}
		defer gzr.Close()
		r = gzr
	case strings.HasSuffix(src, ".xz"):
		xzr, err := xz.NewReader(r)
		if err != nil {
			return "", fmt.Errorf("%s: %w", src, err)
		}
		r = xzr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}
	payload, _, err := deb.StripSignature(buf.String())
	if err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}
	return payload, nil
}
