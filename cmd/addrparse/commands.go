package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/opfobo/taxmate-sub000/internal/app/adapters/export"
	"github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

type parseOptions struct {
	strategy  string
	file      string
	format    string
	out       string
	config    string
	mandatory []string
	split     bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "addrparse",
		Short:         "Parse free-form postal addresses",
		Long:          `Detects the script of an address text, extracts its fields and transliterates Cyrillic values to Latin`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newParseCmd())
	root.AddCommand(newTranslitCmd())
	root.AddCommand(newDetectCmd())
	return root
}

func newParseCmd() *cobra.Command {
	var o parseOptions

	cmd := &cobra.Command{
		Use:   "parse [text]",
		Short: "Extract address fields as JSON or XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.strategy, "strategy", "s", "auto", "auto, cyrillic or latin")
	f.StringVarP(&o.file, "file", "f", "", "read the text from a file instead of stdin")
	f.StringVar(&o.format, "format", "json", "json or xlsx")
	f.StringVarP(&o.out, "out", "o", "", "write to a file instead of stdout")
	f.StringVar(&o.config, "config", "", "take the default strategy and mandatory fields from a config.json")
	f.StringSliceVarP(&o.mandatory, "mandatory", "m", nil, "mandatory field keys, in order")
	f.BoolVar(&o.split, "split", false, "treat blank-line separated blocks as separate addresses")
	return cmd
}

func newTranslitCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "translit [text]",
		Short: "Transliterate Cyrillic text to Latin",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), address.Transliterate(text))
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the text from a file instead of stdin")
	return cmd
}

func newDetectCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "detect [text]",
		Short: "Print the script of the text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}

			out := address.DetectScript(text).String()
			if address.HasMixedScript(text) {
				out += " (mixed)"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the text from a file instead of stdin")
	return cmd
}

// readInput prefers arguments, then --file, then stdin.
func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func newParser(o parseOptions) (*address.Parser, address.Strategy, error) {
	var opts []address.Option

	if o.config != "" {
		manager, err := config.New(o.config)
		if err != nil {
			return nil, 0, err
		}
		cfg := manager.Get()
		opts = append(opts, address.WithDefaultStrategy(cfg.Parser.Strategy), address.WithMandatory(cfg.Parser.Mandatory...))
	}

	if len(o.mandatory) > 0 {
		keys, err := address.ParseFieldKeys(o.mandatory)
		if err != nil {
			return nil, 0, err
		}
		opts = append(opts, address.WithMandatory(keys...))
	}

	strategy, err := address.ParseStrategy(o.strategy)
	if err != nil {
		return nil, 0, err
	}
	return address.NewParser(opts...), strategy, nil
}

func runParse(cmd *cobra.Command, args []string, o parseOptions) error {
	if o.format != "json" && o.format != "xlsx" {
		return fmt.Errorf("unknown format %q", o.format)
	}

	parser, strategy, err := newParser(o)
	if err != nil {
		return err
	}

	text, err := readInput(cmd, args, o.file)
	if err != nil {
		return err
	}

	texts := []string{text}
	if o.split {
		texts = splitBlocks(text)
	}
	if len(texts) == 0 {
		return errors.New("no address text given")
	}

	sets := lo.Map(texts, func(t string, _ int) address.FieldSet {
		return parser.Parse(t, strategy)
	})

	w := cmd.OutOrStdout()
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if o.format == "xlsx" {
		now := time.Now()
		records := make([]address.Record, len(sets))
		for i, set := range sets {
			records[i] = address.NewRecord(strconv.Itoa(i+1), texts[i], set, now)
		}
		return export.WriteXLSX(w, records)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(sets) == 1 {
		return enc.Encode(sets[0])
	}
	return enc.Encode(sets)
}

// splitBlocks cuts text at blank lines and drops empty blocks.
func splitBlocks(text string) []string {
	var blocks []string
	var cur []string
	for _, line := range append(strings.Split(text, "\n"), "") {
		if strings.TrimSpace(line) != "" {
			cur = append(cur, line)
			continue
		}
		if len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = cur[:0]
		}
	}
	return lo.Map(blocks, func(b string, _ int) string { return strings.TrimSpace(b) })
}
