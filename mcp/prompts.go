package mcp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/localrivet/gomcp/server"

	"github.com/inkwell-labs/pdfscholar/academic"
	"github.com/inkwell-labs/pdfscholar/pdfops"
)

// ErrMissingArgument is returned when a prompt is rendered without one of
// its required arguments.
var ErrMissingArgument = errors.New("mcp: missing required prompt argument")

// TemplateArg describes one argument of a prompt template.
type TemplateArg struct {
	Name        string
	Description string
	Required    bool
	Default     string
}

// Template is a prompt template with named {{placeholder}} variables.
type Template struct {
	Name        string
	Description string
	Args        []TemplateArg
	Text        string
}

// resolveArgs validates required arguments and fills in defaults for the
// optional ones. Validation happens before any interpolation.
func (t Template) resolveArgs(args map[string]string) (map[string]string, error) {
	vals := make(map[string]string, len(t.Args))
	for _, a := range t.Args {
		v, ok := args[a.Name]
		if !ok || v == "" {
			if a.Required {
				return nil, fmt.Errorf("%w: %s", ErrMissingArgument, a.Name)
			}
			v = a.Default
		}
		vals[a.Name] = v
	}
	return vals, nil
}

// Render interpolates the template text with validated arguments.
func (t Template) Render(args map[string]string) (string, error) {
	vals, err := t.resolveArgs(args)
	if err != nil {
		return "", err
	}
	out := t.Text
	for name, v := range vals {
		out = strings.ReplaceAll(out, "{{"+name+"}}", v)
	}
	return out, nil
}

// focusInstructions steer the summary prompt. Unknown focus values fall
// back to the general instruction.
var focusInstructions = map[string]string{
	"general":      "Provide a comprehensive overview suitable for researchers",
	"methodology":  "Focus on research methods, data collection, and analysis approaches",
	"results":      "Emphasize findings, results, and statistical outcomes",
	"implications": "Highlight conclusions, implications, and future research directions",
}

func focusInstruction(focus string) string {
	if v, ok := focusInstructions[focus]; ok {
		return v
	}
	return focusInstructions["general"]
}

var summarizePrompt = Template{
	Name:        "summarize_academic_paper",
	Description: "Create an intelligent summary of an academic paper",
	Args: []TemplateArg{
		{Name: "file_path", Description: "Path or name of a loaded PDF", Required: true},
		{Name: "focus", Description: "Summary focus: general, methodology, results, or implications", Default: "general"},
	},
	Text: "Please provide an academic summary of the research paper {{file_path}}, focusing on {{focus}}.",
}

var methodologyPrompt = Template{
	Name:        "analyze_research_methodology",
	Description: "Analyze the research methodology of an academic paper",
	Args: []TemplateArg{
		{Name: "file_path", Description: "Path or name of a loaded PDF", Required: true},
	},
	Text: "Please analyze the research methodology of the academic paper {{file_path}}.",
}

// promptTemplates lists all registered prompts.
var promptTemplates = []Template{summarizePrompt, methodologyPrompt}

// registerPrompts registers the prompt templates with the MCP host. Host
// prompts interpolate static text only, so each template also gets a
// companion tool returning the document-enriched rendering.
func (s *Server) registerPrompts(srv server.Server) {
	for _, t := range promptTemplates {
		srv.Prompt(t.Name, t.Description, server.User(t.Text))
	}

	srv.Tool("render_summary_prompt", "Build the academic summary prompt with the document's sections and citation profile folded in", func(ctx *server.Context, args struct {
		FilePath string  `json:"file_path" description:"Path or name of a loaded PDF"`
		Focus    *string `json:"focus" description:"Summary focus: general, methodology, results, or implications"`
	}) (string, error) {
		return s.renderSummaryPrompt(args.FilePath, args.Focus)
	})

	srv.Tool("render_methodology_prompt", "Build the methodology analysis prompt with the document's methods section folded in", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
	}) (string, error) {
		return s.renderMethodologyPrompt(args.FilePath)
	})
}

// renderSummaryPrompt backs the render_summary_prompt tool. A nil focus is
// left out of the arguments so the template default applies.
func (s *Server) renderSummaryPrompt(filePath string, focus *string) (string, error) {
	args := map[string]string{"file_path": filePath}
	if focus != nil {
		args["focus"] = *focus
	}
	return s.RenderPrompt(summarizePrompt.Name, args)
}

// renderMethodologyPrompt backs the render_methodology_prompt tool.
func (s *Server) renderMethodologyPrompt(filePath string) (string, error) {
	return s.RenderPrompt(methodologyPrompt.Name, map[string]string{"file_path": filePath})
}

// RenderPrompt renders a named prompt into its full document-enriched
// text: arguments are validated and defaulted first, then the document is
// analyzed and its content folded into the prompt body.
func (s *Server) RenderPrompt(name string, args map[string]string) (string, error) {
	switch name {
	case summarizePrompt.Name:
		vals, err := summarizePrompt.resolveArgs(args)
		if err != nil {
			return "", err
		}
		doc, err := s.resolve(vals["file_path"])
		if err != nil {
			return "", err
		}
		text, err := rawText(doc.Path)
		if err != nil {
			return "", err
		}
		secs := academic.DetectSections(text)
		report := academic.AnalyzeCitations(text, referencesContent(secs))
		return buildSummarizeContent(doc.Meta, academic.KeySections(secs), academic.SummarizeCitations(report), vals["focus"]), nil

	case methodologyPrompt.Name:
		vals, err := methodologyPrompt.resolveArgs(args)
		if err != nil {
			return "", err
		}
		doc, err := s.resolve(vals["file_path"])
		if err != nil {
			return "", err
		}
		text, err := rawText(doc.Path)
		if err != nil {
			return "", err
		}
		secs := academic.DetectSections(text)
		return buildMethodologyContent(secs.Sections["methods"].Content), nil

	default:
		return "", fmt.Errorf("mcp: unknown prompt %q", name)
	}
}

func buildSummarizeContent(meta pdfops.Metadata, key map[string]string, cits academic.CitationSummary, focus string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Please provide an academic summary of this research paper focusing on %s.\n\n", focus)
	sb.WriteString(focusInstruction(focus))
	sb.WriteString("\n\nDocument Information:\n")
	fmt.Fprintf(&sb, "- Title: %s\n", orNA(meta.Title))
	fmt.Fprintf(&sb, "- Author: %s\n", orNA(meta.Author))
	fmt.Fprintf(&sb, "- Pages: %d\n", meta.PageCount)
	fmt.Fprintf(&sb, "- Citations: %d in-text, %d references\n", cits.TotalCitations, cits.TotalReferences)
	sb.WriteString("\nKey Sections Available:\n")

	for _, name := range []string{"abstract", "introduction", "methods", "results", "conclusion"} {
		content, ok := key[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "\n**%s:**\n%s\n", strings.ToUpper(name), content)
	}
	return sb.String()
}

func buildMethodologyContent(methods string) string {
	if methods == "" {
		methods = "Methods section not clearly identified - please analyze the full document for methodological information."
	}
	return fmt.Sprintf(`Please analyze the research methodology of this academic paper.

Focus on:
1. Research design and approach
2. Data collection methods
3. Sample size and characteristics
4. Statistical analysis methods
5. Limitations and validity considerations

Methods Section:
%s
`, methods)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
