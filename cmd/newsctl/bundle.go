package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vitalvas/newsapi/newsapi"
)

func (a *app) bundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Offline article bundle commands",
	}

	cmd.AddCommand(a.bundleEncodeCmd())

	return cmd
}

func (a *app) bundleEncodeCmd() *cobra.Command {
	var (
		upload uploadFlags
		out    string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode an article bundle without sending it",
		Long: `Encode builds the multipart body an article upload would send and lists
its parts. With --out the body is written to a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := upload.createInput("")
			if err != nil {
				return err
			}

			body, err := newsapi.EncodeArticle(cmd.Context(), in)
			if err != nil {
				return err
			}

			if out != "" {
				if err := os.WriteFile(out, body.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write body: %w", err)
				}

				a.logger.Debug().Str("path", out).Int("bytes", body.Len()).Msg("body written")
			}

			w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Content-Type: %s\n\n", body.ContentType())
			fmt.Fprintln(w, "NAME\tFILENAME\tTYPE\tSIZE")

			for _, p := range body.Parts() {
				filename := p.Filename
				if filename == "" {
					filename = "-"
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, filename, p.ContentType, humanize.Bytes(uint64(p.Size)))
			}

			fmt.Fprintf(w, "\nTotal: %s (%s bytes)\n", humanize.Bytes(uint64(body.Len())), humanize.Comma(int64(body.Len())))

			return w.Flush()
		},
	}

	upload.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Write the encoded body to this file")

	return cmd
}
