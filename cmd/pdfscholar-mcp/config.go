package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/pdfscholar/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set server configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("transport: %s\n", cfg.Transport)
		fmt.Printf("listen_addr: %s\n", cfg.ListenAddr)
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		if cfg.LogFile != "" {
			fmt.Printf("log_file: %s\n", cfg.LogFile)
		}
		fmt.Printf("default_dpi: %d\n", cfg.DefaultDPI)
		fmt.Printf("chunk_size: %d\n", cfg.ChunkSize)
		fmt.Printf("preview_bytes: %d\n", cfg.PreviewBytes)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyConfigValue(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func applyConfigValue(c *config.Config, key, val string) error {
	switch key {
	case "transport":
		if val != config.TransportSSE && val != config.TransportStdio {
			return fmt.Errorf("invalid transport: %s (use sse or stdio)", val)
		}
		c.Transport = val
	case "listen_addr":
		c.ListenAddr = val
	case "log_level":
		c.LogLevel = val
	case "log_file":
		c.LogFile = val
	case "default_dpi":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for default_dpi: %v", val)
		}
		c.DefaultDPI = i
	case "chunk_size":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for chunk_size: %v", val)
		}
		c.ChunkSize = i
	case "preview_bytes":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for preview_bytes: %v", val)
		}
		c.PreviewBytes = i
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
