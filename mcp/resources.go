package mcp

import (
	"fmt"

	"github.com/localrivet/gomcp/server"

	"github.com/inkwell-labs/pdfscholar/academic"
	"github.com/inkwell-labs/pdfscholar/document"
)

// documentView is the JSON body of the pdf://{name} resource.
type documentView struct {
	Metadata     interface{}       `json:"metadata"`
	KeySections  map[string]string `json:"key_sections"`
	DocumentType string            `json:"document_type"`
}

// listEntry is one row of the pdf://documents listing.
type listEntry struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	PageCount int    `json:"page_count"`
	Title     string `json:"title,omitempty"`
	Preview   string `json:"preview,omitempty"`
}

// registerResources registers the pdf:// resources: a listing of loaded
// documents and a structured per-document view.
func (s *Server) registerResources(srv server.Server) {
	srv.Resource("pdf://documents", "List of loaded PDF documents", func(ctx *server.Context, params map[string]interface{}) (server.JSONResource, error) {
		docs := s.store.List()
		entries := make([]listEntry, 0, len(docs))
		for _, doc := range docs {
			entries = append(entries, s.listEntryFor(doc))
		}
		return server.JSONResource{Data: entries}, nil
	})

	srv.Resource("pdf://{name}", "Structured view of a loaded PDF with academic sections", func(ctx *server.Context, params map[string]interface{}) (server.JSONResource, error) {
		name, _ := params["name"].(string)
		if name == "" {
			return server.JSONResource{}, fmt.Errorf("mcp: resource name missing")
		}
		doc, err := s.resolve(name)
		if err != nil {
			return server.JSONResource{}, err
		}
		view, err := s.documentViewFor(doc)
		if err != nil {
			return server.JSONResource{}, err
		}
		return server.JSONResource{Data: view}, nil
	})
}

// documentViewFor assembles the structured resource body of one document.
func (s *Server) documentViewFor(doc *document.Document) (documentView, error) {
	text, err := rawText(doc.Path)
	if err != nil {
		return documentView{}, err
	}
	key := academic.KeySections(academic.DetectSections(text))

	docType := "general_pdf"
	if len(key) > 0 {
		docType = "academic_paper"
	}
	return documentView{
		Metadata:     doc.Meta,
		KeySections:  key,
		DocumentType: docType,
	}, nil
}

// listEntryFor builds a listing row with a short text preview. Preview
// failures are not fatal; the row is returned without one.
func (s *Server) listEntryFor(doc *document.Document) listEntry {
	entry := listEntry{
		Name:      doc.Name,
		Path:      doc.Path,
		PageCount: doc.Meta.PageCount,
		Title:     doc.Meta.Title,
	}
	if text, err := rawText(doc.Path); err == nil {
		entry.Preview = preview(academic.CleanText(text), s.cfg.PreviewBytes)
	}
	return entry
}
