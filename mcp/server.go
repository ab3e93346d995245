// Package mcp implements a Model Context Protocol (MCP) server that exposes
// pdfscholar's PDF extraction and academic analysis capabilities as tools,
// resources, and prompts for AI assistants.
//
// Protocol plumbing (JSON-RPC 2.0, schema generation, transports) is
// provided by github.com/localrivet/gomcp; this package only registers
// handlers against it. The transport is chosen by configuration: SSE for
// networked clients (the default), stdio for debugging and desktop hosts.
//
// # Usage with Claude Desktop
//
// Add to your claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "pdfscholar": {
//	      "command": "pdfscholar-mcp",
//	      "env": { "PDFSCHOLAR_TRANSPORT": "stdio" }
//	    }
//	  }
//	}
package mcp

import (
	"fmt"

	"github.com/localrivet/gomcp/server"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-labs/pdfscholar/config"
	"github.com/inkwell-labs/pdfscholar/document"
)

const serverName = "pdfscholar"

// Server bundles the document store with the configuration and logger the
// tool handlers need.
type Server struct {
	cfg   *config.Config
	store *document.Store
	log   *logrus.Logger
}

// New creates a server around the given document store.
func New(cfg *config.Config, store *document.Store, log *logrus.Logger) *Server {
	return &Server{cfg: cfg, store: store, log: log}
}

// Serve registers all tools, resources, and prompts and runs the MCP
// server on the configured transport until the connection closes.
func (s *Server) Serve() error {
	srv := server.NewServer(serverName)

	switch s.cfg.Transport {
	case config.TransportStdio:
		if s.cfg.LogFile != "" {
			srv.AsStdio(s.cfg.LogFile)
		} else {
			srv.AsStdio()
		}
	case config.TransportSSE:
		srv.AsSSE(s.cfg.ListenAddr)
	default:
		return fmt.Errorf("mcp: unknown transport %q", s.cfg.Transport)
	}

	s.registerTools(srv)
	s.registerAcademicTools(srv)
	s.registerResources(srv)
	s.registerPrompts(srv)

	s.log.WithFields(logrus.Fields{
		"transport": s.cfg.Transport,
		"addr":      s.cfg.ListenAddr,
	}).Info("starting MCP server")

	return srv.Run()
}

// resolve looks a tool's file_path argument up in the store, loading it
// from disk when it names a PDF that is not cached yet.
func (s *Server) resolve(filePath string) (*document.Document, error) {
	doc, err := s.store.Resolve(filePath)
	if err != nil {
		s.log.WithField("file_path", filePath).Warn("document not found")
		return nil, err
	}
	return doc, nil
}
