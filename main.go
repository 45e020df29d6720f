package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"SignaturePad/internal/config"
	"SignaturePad/internal/logger"
	"SignaturePad/internal/pad"
	"SignaturePad/internal/replay"
	"SignaturePad/internal/state"
	"SignaturePad/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	attrs      map[string]string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "signaturepad",
		Short:         "Capture handwritten signatures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd.ErrOrStderr(), flags.logLevel)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML render config file")
	root.PersistentFlags().StringToStringVar(&flags.attrs, "set", nil, "override a config attribute, e.g. --set color=navy")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level: debug|info|warn|error")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newFormatsCmd())
	root.AddCommand(newConfigCmd(flags))
	return root
}

func setupLogging(w io.Writer, level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	logger.Set(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})))
	return nil
}

// loadConfig reads --config, then applies --set attributes on top.
func loadConfig(flags *rootFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		if cfg, err = config.Load(flags.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if len(flags.attrs) == 0 {
		return cfg, nil
	}
	attrs := cfg.Attributes()
	for k, v := range config.NormalizeAttributes(flags.attrs) {
		attrs[k] = v
	}
	return config.FromAttributes(attrs), nil
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the signature pad window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			sink := state.NewFieldStore()
			sink.OnChange = func(field, value string) {
				_, _ = fmt.Fprintf(out, "%s\t%d bytes\n", field, len(value))
			}
			return ui.RunApp(pad.Options{ID: id, Config: cfg}, sink)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "surface id (default: generated)")
	return cmd
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var outPath, format string
	var dataURL bool
	cmd := &cobra.Command{
		Use:   "render <script.yaml>",
		Short: "Replay a recorded pointer script and write the signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadConfig(flags)
			if err != nil {
				return err
			}
			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			cfg, err := script.ScriptConfig(base)
			if err != nil {
				return err
			}
			if format != "" {
				cfg.ExportFormat = config.ParseFormat(format)
			}

			store := state.NewFieldStore()
			p, err := replay.Run(script, cfg, store)
			if err != nil {
				return err
			}
			defer p.Close()

			if dataURL {
				value, _ := store.Value(p.Field())
				if value == "" {
					return ui.ErrEmpty
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			}
			if outPath == "" || outPath == "-" {
				_, err := ui.WriteSignature(cmd.OutOrStdout(), p)
				return err
			}
			if err := ui.ExportFile(outPath, p); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "export format: "+formatList())
	cmd.Flags().BoolVar(&dataURL, "data-url", false, "print the committed output field value instead of raw bytes")
	return cmd
}

func formatList() string {
	names := make([]string, len(config.Formats))
	for i, f := range config.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List export formats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, f := range config.Formats {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t.%s\n", f, f.MediaType(), f.Extension())
			}
			return nil
		},
	}
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective render config as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
