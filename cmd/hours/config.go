package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/hours/internal/output"
)

type configInfo struct {
	Archive       string `json:"archive"`
	ArchiveExists bool   `json:"archive_exists"`
	ArchiveBytes  int64  `json:"archive_size_bytes"`
	Addr          string `json:"addr"`
	LogLevel      string `json:"log_level"`
	LogFormat     string `json:"log_format"`
	ConfigFile    string `json:"config_file"`
	ConfigLoaded  bool   `json:"config_file_loaded"`
}

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Display the resolved configuration",
	Annotations: map[string]string{annotationSkipArchive: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		exists, err := cfg.ArchiveExists()
		if err != nil {
			return cmdErr(fmt.Errorf("checking archive: %w", err), output.ErrGeneral)
		}

		info := configInfo{
			Archive:       cfg.Archive,
			ArchiveExists: exists,
			Addr:          cfg.Addr,
			LogLevel:      cfg.LogLevel,
			LogFormat:     cfg.LogFormat,
			ConfigFile:    cfg.ConfigFile,
			ConfigLoaded:  cfg.FileLoaded,
		}
		if exists {
			stat, err := os.Stat(cfg.Archive)
			if err != nil {
				return cmdErr(fmt.Errorf("reading archive file: %w", err), output.ErrGeneral)
			}
			info.ArchiveBytes = stat.Size()
		} else if cfg.Archive != "" {
			w.Warn("Archive %s not found.", cfg.Archive)
		}

		w.Success(info, formatConfigHuman(info))
		return nil
	},
}

func formatSize(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func formatValue(val string) string {
	if val == "" {
		return "(not set)"
	}
	return val
}

func formatConfigHuman(info configInfo) string {
	archive := formatValue(info.Archive)
	if info.ArchiveExists {
		archive = fmt.Sprintf("%s (%s)", info.Archive, formatSize(info.ArchiveBytes))
	} else if info.Archive != "" {
		archive += " (not found)"
	}
	configFile := info.ConfigFile
	if !info.ConfigLoaded {
		configFile += " (not loaded)"
	}

	lines := fmt.Sprintf("Archive:      %s\n", archive)
	lines += fmt.Sprintf("Listen addr:  %s\n", info.Addr)
	lines += fmt.Sprintf("Log level:    %s\n", formatValue(info.LogLevel))
	lines += fmt.Sprintf("Log format:   %s\n", info.LogFormat)
	lines += fmt.Sprintf("Config file:  %s", configFile)
	return lines
}

func init() {
	rootCmd.AddCommand(configCmd)
}
