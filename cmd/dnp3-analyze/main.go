package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	dnp3 "github.com/fossabot/dnp3-1"
)

var (
	rootCmd = &cobra.Command{
		Use:   "dnp3-analyze [hex]",
		Short: "Decode DNP3 application-layer fragments",
		Long: "dnp3-analyze decodes hex-encoded DNP3 application fragments and prints\n" +
			"every object header and decoded item.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive()
			}
			return runAnalyze(args[0])
		},
	}

	asResponse bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&asResponse, "response", false,
		"treat the fragment as outstation-to-master (with IIN bytes)")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.DebugLevel)
	dnp3.SetLogger(logrus.StandardLogger())
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive() error {
	scanner := bufio.NewScanner(os.Stdin)
	logrus.Info("dnp3 analyze mode. Paste a hex fragment and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runAnalyze(line); err != nil {
			logrus.WithError(err).Error("failed to decode fragment")
		}
	}
	return scanner.Err()
}

func runAnalyze(raw string) error {
	data, err := decodeHex(raw)
	if err != nil {
		return err
	}

	var frag *dnp3.Fragment
	if asResponse {
		frag, err = dnp3.ParseResponse(data)
	} else {
		frag, err = dnp3.ParseRequest(data)
	}
	if err != nil {
		return err
	}

	frag.Log(logrus.DebugLevel)
	fmt.Printf("function=%s headers=%d bytes=%d\n", frag.Function, len(frag.Headers), len(data))
	for _, h := range frag.Headers {
		gv := h.Objects.GroupVar
		switch h.Qualifier {
		case dnp3.QualifierAllObjects:
			fmt.Printf("  %s (%s) all objects\n", gv, gv.Name())
		default:
			fmt.Printf("  %s (%s) range %d..%d\n", gv, gv.Name(), h.Range.Start(), h.Range.Stop())
		}
	}
	return nil
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(strings.ToUpper(input))
	if strings.HasPrefix(clean, "0X") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex fragment must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
