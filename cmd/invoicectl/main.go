// invoicectl parses pharmaceutical purchase-invoice PDFs from the command
// line, printing the same structured response the API layer persists.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/parser/pdf"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/patterns"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/processor"
)

// errParseFailed signals a parse that completed with success=false; the
// response JSON has already been printed when it is returned.
var errParseFailed = errors.New("parse failed")

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		if errors.Is(err, errParseFailed) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	var noFallback bool

	root := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Parse pharmaceutical purchase-invoice PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	parse := &cobra.Command{
		Use:   "parse <file.pdf>",
		Short: "Parse an invoice PDF and print the structured result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := buildLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			pipeline := processor.NewPipeline(
				processor.WithExtractor(extractorFromEnv()),
				processor.WithLogger(log),
			)
			factory := processor.NewFactory(pipeline, log)

			resp := factory.ParseInvoice(cmd.Context(), args[0], !noFallback)
			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			if !resp.Success {
				return errParseFailed
			}
			return nil
		},
	}
	parse.Flags().BoolVar(&noFallback, "no-fallback", false, "disable the generic no-items fallback")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "Print the pattern-library size (health check)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "catalogue %s: %d patterns\n", patterns.Version, patterns.Count())
			return nil
		},
	}

	root.AddCommand(parse, patternsCmd)
	return root
}

// extractorFromEnv wires optional OCR tuning from the environment:
// PDFTOPPM_BIN, OCR_DPI, TESSERACT_LANG.
func extractorFromEnv() *pdf.Extractor {
	var opts []pdf.Option
	bin := os.Getenv("PDFTOPPM_BIN")
	dpi := 0
	if v := os.Getenv("OCR_DPI"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			dpi = n
		}
	}
	if bin != "" || dpi > 0 {
		opts = append(opts, pdf.WithRasterizer(bin, dpi))
	}
	if lang := os.Getenv("TESSERACT_LANG"); lang != "" {
		opts = append(opts, pdf.WithOCRLanguage(lang))
	}
	return pdf.NewExtractor(opts...)
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
