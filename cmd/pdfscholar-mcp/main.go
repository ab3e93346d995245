// Command pdfscholar-mcp is an MCP (Model Context Protocol) server that
// exposes PDF extraction and academic paper analysis to AI assistants.
//
// # Installation
//
//	go install github.com/inkwell-labs/pdfscholar/cmd/pdfscholar-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "pdfscholar": {
//	      "command": "pdfscholar-mcp",
//	      "env": { "PDFSCHOLAR_TRANSPORT": "stdio" }
//	    }
//	  }
//	}
//
// Without the env override the server listens for SSE connections on the
// configured address.
//
// # Available Tools
//
//   - load_pdf: Load a PDF into the document cache
//   - get_metadata: Read document information
//   - extract_text: Extract the text layer
//   - extract_images: Extract embedded images
//   - extract_tables: Detect table-like structures
//   - extract_annotations: Extract comments, highlights, links
//   - render_page: Rasterize a page to PNG
//   - extract_academic_text: Column-aware reading order extraction
//   - detect_sections: Find academic paper sections
//   - extract_abstract: Pull out the abstract
//   - extract_key_sections: Key sections trimmed for agents
//   - extract_citations: In-text citations and reference list
//   - chunk_content: Sentence-boundary chunking
//   - analyze_document_structure: Whole-document structure report
//   - list_documents: Show the document cache
//   - render_summary_prompt: Summary prompt enriched with document content
//   - render_methodology_prompt: Methodology prompt enriched with document content
//
// # Available Resources
//
//   - pdf://documents : List of loaded documents
//   - pdf://{name} : Structured view of one loaded document
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inkwell-labs/pdfscholar/config"
	"github.com/inkwell-labs/pdfscholar/document"
	"github.com/inkwell-labs/pdfscholar/mcp"
)

const version = "1.0.0"

var (
	cfgFile       string
	flagTransport string
	flagListen    string
	flagLogLevel  string
	flagLogFile   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pdfscholar-mcp",
	Short: "MCP server for reading and analyzing academic PDFs",
	Long: `pdfscholar-mcp serves PDF extraction and academic analysis tools over
the Model Context Protocol. It talks SSE by default; set
PDFSCHOLAR_TRANSPORT=stdio (or --transport stdio) for desktop hosts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := buildLogger(cfg)
		if err != nil {
			return err
		}
		store := document.NewStore()
		return mcp.New(cfg, store, log).Serve()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pdfscholar-mcp %s\n", version)
	},
}

func main() {
	cobra.OnInitialize(loadConfig)
	rootCmd.AddCommand(versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pdfscholar-mcp: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pdfscholar/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagTransport, "transport", "", "transport mode: sse or stdio (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagListen, "listen", "", "SSE listen address (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "log file path (overrides config)")
}

func loadConfig() {
	c, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfscholar-mcp: %v\n", err)
		os.Exit(1)
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("transport") {
		cfg.Transport = flagTransport
	}
	if f.Changed("listen") {
		cfg.ListenAddr = flagListen
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if f.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
}

// buildLogger configures logrus for the selected transport. With stdio the
// protocol owns stdout, so logs go to stderr or the configured file.
func buildLogger(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
	}
	return log, nil
}
