package main

import (
	"fmt"
	"io"

	"github.com/admin/tg-bots/astro-miniapp/internal/pkg/markup"
	"github.com/admin/tg-bots/astro-miniapp/internal/usecases/texts"
	"github.com/spf13/cobra"
)

var renderNumerology bool

// renderCmd прогоняет текст бэкенда через тот же рендер, что и мини-приложение
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render backend markup from stdin to HTML",
	Long: `Reads a backend reply from stdin and prints the HTML the mini-app would show.

By default the full pipeline is used (bold, italic, line breaks).
With --numerology the reply is split into the YOUR_NUMBER header and body first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderText(cmd.InOrStdin(), cmd.OutOrStdout(), renderNumerology)
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderNumerology, "numerology", false, "parse the numerology reply format")
}

func renderText(in io.Reader, out io.Writer, numerology bool) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var html string
	if numerology {
		number, body := markup.ParseNumerology(string(raw))
		html = texts.FormatNumerology(number, markup.Inline.Render(body))
	} else {
		html = markup.Render(string(raw))
	}

	_, err = fmt.Fprintln(out, html)
	return err
}
