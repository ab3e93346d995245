package pdfops

import (
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)


// ExtractImages extracts the embedded images of the document (or of a single
// 1-based page when page > 0). Extraction is delegated to pdfcpu, which
// writes the images to a temporary directory; each file is then probed for
// its dimensions and returned base64-encoded.
func ExtractImages(path string, page int) ([]Image, error) {
	total, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdfops: page count of %s: %w", path, err)
	}

	var selected []string
	if page > 0 {
		if err := checkPage(page, total); err != nil {
			return nil, err
		}
		selected = []string{strconv.Itoa(page)}
	}

	dir, err := os.MkdirTemp("", "pdfscholar_images_*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, dir, selected, conf); err != nil {
		return nil, fmt.Errorf("pdfops: extracting images: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	images := make([]Image, 0, len(names))
	perPage := make(map[int]int)
	for _, name := range names {
		img, err := loadExtractedImage(filepath.Join(dir, name))
		if err != nil {
			// Unsupported encodings (e.g. JBIG2) are skipped, not fatal.
			continue
		}
		img.Page = imagePageNumber(base, name)
		img.Index = perPage[img.Page]
		perPage[img.Page]++
		images = append(images, img)
	}
	return images, nil
}

func loadExtractedImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, err
	}

	img := Image{
		Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		Data:   base64.StdEncoding.EncodeToString(data),
	}

	f, err := os.Open(path)
	if err != nil {
		return Image{}, err
	}
	defer f.Close()
	if cfg, _, err := image.DecodeConfig(f); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	return img, nil
}

// imagePageNumber recovers the 1-based page number from a pdfcpu image
// file name, written as <base>_<page>_<resource>.<ext>. Both base and
// resource may themselves contain underscores, so the page is the digit
// run right after the known base prefix. Returns 0 when the name does
// not follow the expected shape.
func imagePageNumber(base, name string) int {
	rest, ok := strings.CutPrefix(name, base+"_")
	if !ok {
		return 0
	}
	digits, _, ok := strings.Cut(rest, "_")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
