package hub

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractSelected pulls only the wanted members out of a gzipped tarball:
// exact matches against files and prefix matches against prefixes. Returns
// how many members were written. Member names that escape the destination
// directory are rejected.
func ExtractSelected(tarPath string, files map[string]struct{}, prefixes []string, dest string) (int, error) {
	f, err := os.Open(tarPath)
	if err != nil {
		return 0, fmt.Errorf("open tarball %s: %w", tarPath, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("read gzip %s: %w", tarPath, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	extracted := 0
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return extracted, fmt.Errorf("read tar %s: %w", tarPath, err)
		}

		if !wanted(hdr.Name, files, prefixes) {
			continue
		}
		if !filepath.IsLocal(filepath.FromSlash(hdr.Name)) {
			return extracted, fmt.Errorf("tarball %s: unsafe member name %q", tarPath, hdr.Name)
		}

		target := filepath.Join(dest, filepath.FromSlash(hdr.Name))
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return extracted, fmt.Errorf("create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeMember(target, tr); err != nil {
				return extracted, err
			}
			extracted++
		}
	}
	return extracted, nil
}

func wanted(name string, files map[string]struct{}, prefixes []string) bool {
	if _, ok := files[name]; ok {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func writeMember(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", target, err)
	}
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	return nil
}
