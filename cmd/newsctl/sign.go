package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vitalvas/newsapi/hhmac"
)

func (a *app) signCmd() *cobra.Command {
	var (
		method      string
		path        string
		date        string
		contentType string
		bodyPath    string
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the Authorization header for a request",
		Long: `Sign computes the HHMAC Authorization header for a request without sending
it. The signed host is the configured host.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			signer, err := hhmac.NewSigner(a.cfg.APIID, a.cfg.APISecret)
			if err != nil {
				return err
			}

			if date == "" {
				date = hhmac.FormatDate(time.Now())
			} else if _, err := hhmac.ParseDate(date); err != nil {
				return fmt.Errorf("--date: %w", err)
			}

			req := hhmac.CanonicalRequest{
				Method: method,
				Host:   a.cfg.Host,
				Path:   path,
				Date:   date,
			}

			if bodyPath != "" {
				if contentType == "" {
					return errors.New("--content-type is required with --body")
				}

				body, err := os.ReadFile(bodyPath)
				if err != nil {
					return fmt.Errorf("read body: %w", err)
				}

				req.ContentType = contentType
				req.Body = body
			}

			_, err = fmt.Fprintln(a.stdout, signer.Authorization(req))

			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&method, "method", "GET", "HTTP method")
	flags.StringVar(&path, "path", "", "Request path including the query string (required)")
	flags.StringVar(&date, "date", "", "Request date, "+hhmac.DateLayout+" (default now)")
	flags.StringVar(&contentType, "content-type", "", "Content type of the body")
	flags.StringVar(&bodyPath, "body", "", "Path to the request body")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}
