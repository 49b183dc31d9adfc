package deb

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/blakesmith/ar"
	"github.com/etnz/debedit/deb822"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// ReadControl extracts and parses the control file of a .deb.
func ReadControl(r io.Reader) (*deb822.Paragraph, error) {
	content, err := ReadControlFile(r, FileControl)
	if err != nil {
		return nil, err
	}
	p, err := deb822.ParseParagraph(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing control file: %w", err)
	}
	return p, nil
}

// ReadControlFile iterates through the ar members of a .deb to locate the
// control archive (control.tar, optionally compressed with gzip, xz or
// zstd), and returns the named file from it.
func ReadControlFile(r io.Reader, name ControlFile) ([]byte, error) {
	arR := ar.NewReader(r)
	for {
		header, err := arR.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		member := memberName(header)
		if !strings.HasPrefix(member, string(PkgControlTar)) {
			continue
		}
		tarR, closeFn, err := decompress(member, arR)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", member, err)
		}
		defer closeFn()
		tr := tar.NewReader(tarR)
		for {
			th, err := tr.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", member, err)
			}
			if path.Clean(th.Name) == string(name) {
				return io.ReadAll(tr)
			}
		}
		break
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNoControl)
}

// ReplaceControl copies the .deb read from r to w with its control file
// replaced by control. Other members, and the other files of the control
// archive, are copied unchanged; the control archive keeps its compression.
func ReplaceControl(r io.Reader, w io.Writer, control *deb822.Paragraph) error {
	arR := ar.NewReader(r)
	arW := ar.NewWriter(w)
	if err := arW.WriteGlobalHeader(); err != nil {
		return err
	}
	replaced := false
	for {
		header, err := arR.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		body, err := io.ReadAll(arR)
		if err != nil {
			return err
		}
		member := memberName(header)
		if strings.HasPrefix(member, string(PkgControlTar)) {
			if body, err = replaceInTar(member, body, string(FileControl), []byte(control.String())); err != nil {
				return fmt.Errorf("rewriting %s: %w", member, err)
			}
			replaced = true
		}
		if err := addBufferToAr(arW, header.Name, body); err != nil {
			return err
		}
	}
	if !replaced {
		return ErrNoControl
	}
	return nil
}

// memberName returns the name of an ar member, without the trailing slash
// of the GNU variant.
func memberName(h *ar.Header) string {
	return strings.TrimSuffix(strings.TrimSpace(h.Name), "/")
}

// replaceInTar rewrites the compressed tar archive data with the file name
// holding content.
func replaceInTar(member string, data []byte, name string, content []byte) ([]byte, error) {
	in, closeIn, err := decompress(member, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer closeIn()

	var out bytes.Buffer
	cw, err := compress(member, &out)
	if err != nil {
		return nil, err
	}
	tr := tar.NewReader(in)
	tw := tar.NewWriter(cw)
	found := false
	for {
		th, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		body := io.Reader(tr)
		if path.Clean(th.Name) == name {
			th.Size = int64(len(content))
			body = bytes.NewReader(content)
			found = true
		}
		if err := tw.WriteHeader(th); err != nil {
			return nil, err
		}
		if _, err := io.Copy(tw, body); err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, ErrNoControl
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := cw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// decompress opens the tar stream of an ar member according to its
// extension.
func decompress(member string, r io.Reader) (io.Reader, func(), error) {
	switch path.Ext(member) {
	case ".gz":
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return gzr, func() { gzr.Close() }, nil
	case ".xz":
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return xzr, func() {}, nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case ".tar":
		return r, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unsupported compression %q", path.Ext(member))
}

// compress is the writing counterpart of decompress.
func compress(member string, w io.Writer) (io.WriteCloser, error) {
	switch path.Ext(member) {
	case ".gz":
		return gzip.NewWriter(w), nil
	case ".xz":
		return xz.NewWriter(w)
	case ".zst":
		return zstd.NewWriter(w)
	case ".tar":
		return nopCloser{w}, nil
	}
	return nil, fmt.Errorf("unsupported compression %q", path.Ext(member))
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// addBufferToAr writes a named byte slice as a file entry to the AR archive.
// It constructs the AR header with mode 0644 and the current timestamp.
func addBufferToAr(w *ar.Writer, name string, body []byte) error {
	header := &ar.Header{
		Name:    name,
		Size:    int64(len(body)),
		Mode:    0644,
		ModTime: time.Now(),
	}
	if err := w.WriteHeader(header); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}
