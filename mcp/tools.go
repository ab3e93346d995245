package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/localrivet/gomcp/server"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-labs/pdfscholar/pdfops"
)

// optionalPage resolves the optional page argument of extraction tools:
// nil means the whole document.
func optionalPage(page *int) int {
	if page == nil {
		return 0
	}
	return *page
}

// registerTools registers the core PDF extraction tools.
func (s *Server) registerTools(srv server.Server) {
	srv.Tool("load_pdf", "Load a PDF file for processing", func(ctx *server.Context, args struct {
		FilePath string  `json:"file_path" description:"Path to the PDF file"`
		Name     *string `json:"name" description:"Custom name for the PDF, defaults to the file name"`
	}) (string, error) {
		name := ""
		if args.Name != nil {
			name = *args.Name
		}
		doc, err := s.store.Load(args.FilePath, name)
		if err != nil {
			return "", err
		}
		s.log.WithFields(logrus.Fields{"name": doc.Name, "path": doc.Path}).Info("loaded PDF")
		return fmt.Sprintf("Loaded PDF: %s\nPages: %d\nFile ID: %s", doc.Name, doc.Meta.PageCount, doc.ID), nil
	})

	srv.Tool("get_metadata", "Get PDF metadata and document information", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		b, err := json.MarshalIndent(doc.Meta, "", "  ")
		if err != nil {
			return "", fmt.Errorf("mcp: encoding metadata: %w", err)
		}
		return fmt.Sprintf("PDF Metadata:\n%s", b), nil
	})

	srv.Tool("extract_text", "Extract the text layer of the PDF", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
		Page     *int   `json:"page" description:"Page number to extract, all pages when omitted"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		pages, err := pdfops.ExtractText(doc.Path, optionalPage(args.Page))
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		for _, pt := range pages {
			fmt.Fprintf(&sb, "--- Page %d ---\n%s\n\n", pt.Page, pt.Text)
		}
		return strings.TrimSpace(sb.String()), nil
	})

	srv.Tool("extract_images", "Extract images from the PDF", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
		Page     *int   `json:"page" description:"Page number to extract images from, all pages when omitted"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		images, err := pdfops.ExtractImages(doc.Path, optionalPage(args.Page))
		if err != nil {
			return "", err
		}

		result := fmt.Sprintf("Found %d images", len(images))
		if args.Page != nil {
			result += fmt.Sprintf(" on page %d", *args.Page)
		}
		if len(images) > 0 {
			result += "\n\nImage details:\n"
			for _, img := range images {
				result += fmt.Sprintf("- Page %d: %dx%d pixels (%s)\n", img.Page, img.Width, img.Height, img.Format)
			}
		}
		return result, nil
	})

	srv.Tool("extract_tables", "Detect and extract table-like structures from the PDF", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
		Page     *int   `json:"page" description:"Page number to scan, all pages when omitted"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		tables, err := pdfops.ExtractTables(doc.Path, optionalPage(args.Page))
		if err != nil {
			return "", err
		}
		if len(tables) == 0 {
			return "No tables detected.", nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Found %d tables:\n\n", len(tables))
		for i, table := range tables {
			fmt.Fprintf(&sb, "**Table %d** (page %d, %d rows)\n", i+1, table.Page, len(table.Rows))
			for _, row := range table.Rows {
				fmt.Fprintf(&sb, "| %s |\n", strings.Join(row, " | "))
			}
			sb.WriteString("\n")
		}
		return strings.TrimSpace(sb.String()), nil
	})

	srv.Tool("extract_annotations", "Extract annotations (comments, highlights, links) from the PDF", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		annots, err := pdfops.ExtractAnnotations(doc.Path)
		if err != nil {
			return "", err
		}
		if len(annots) == 0 {
			return "No annotations found.", nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Found %d annotations:\n\n", len(annots))
		for _, a := range annots {
			fmt.Fprintf(&sb, "- Page %d [%s]", a.Page, a.Type)
			if a.Author != "" {
				fmt.Fprintf(&sb, " by %s", a.Author)
			}
			if a.Content != "" {
				fmt.Fprintf(&sb, ": %s", a.Content)
			}
			sb.WriteString("\n")
		}
		return strings.TrimSpace(sb.String()), nil
	})

	srv.Tool("render_page", "Render a PDF page as a PNG image", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
		Page     int    `json:"page" description:"Page number to render"`
		DPI      *int   `json:"dpi" description:"Rendering resolution, defaults to 150"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		dpi := s.cfg.DefaultDPI
		if args.DPI != nil {
			dpi = *args.DPI
		}
		rendered, err := pdfops.RenderPage(doc.Path, args.Page, dpi)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Rendered page %d at %d DPI\nImage size: %d characters", rendered.Page, rendered.DPI, len(rendered.Data)), nil
	})

	srv.Tool("list_documents", "List the PDFs currently loaded in the document cache", func(ctx *server.Context, args struct{}) (string, error) {
		docs := s.store.List()
		if len(docs) == 0 {
			return "No documents loaded.", nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d documents loaded:\n\n", len(docs))
		for _, doc := range docs {
			fmt.Fprintf(&sb, "- %s (%d pages): %s\n", doc.Name, doc.Meta.PageCount, doc.Path)
		}
		return strings.TrimSpace(sb.String()), nil
	})
}
