package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vitalvas/newsapi/formdata"
	"github.com/vitalvas/newsapi/hhmac"
	"github.com/vitalvas/newsapi/newsapi"
)

// uploadFlags are shared by article create, article update and bundle
// encode.
type uploadFlags struct {
	article string
	files   []string

	preview       bool
	issueOnly     bool
	sponsored     bool
	candidate     bool
	hidden        bool
	paid          bool
	maturity      string
	accessoryText string
	sections      []string
}

func (f *uploadFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.article, "article", "", "Path to the article JSON document (required)")
	flags.StringArrayVar(&f.files, "file", nil, "Bundled file as NAME=PATH or PATH (repeatable)")
	flags.BoolVar(&f.preview, "preview", true, "Publish as a preview visible only to channel members")
	flags.BoolVar(&f.issueOnly, "issue-only", false, "Show the article only within an issue")
	flags.BoolVar(&f.sponsored, "sponsored", false, "Mark the article as sponsored")
	flags.BoolVar(&f.candidate, "candidate", false, "Mark the article as a candidate to be featured")
	flags.BoolVar(&f.hidden, "hidden", false, "Hide the article from the channel feed")
	flags.BoolVar(&f.paid, "paid", false, "Mark the article as paid content")
	flags.StringVar(&f.maturity, "maturity", "", "Maturity rating: KIDS, MATURE or GENERAL")
	flags.StringVar(&f.accessoryText, "accessory-text", "", "Text shown below the article excerpt")
	flags.StringArrayVar(&f.sections, "section", nil, "Section URL to link the article to (repeatable)")

	_ = cmd.MarkFlagRequired("article")
}

func (f *uploadFlags) document() (json.RawMessage, error) {
	raw, err := os.ReadFile(f.article)
	if err != nil {
		return nil, fmt.Errorf("read article: %w", err)
	}

	return raw, nil
}

func (f *uploadFlags) bundleFiles() []formdata.File {
	out := make([]formdata.File, 0, len(f.files))

	for _, v := range f.files {
		name, path, ok := strings.Cut(v, "=")
		if !ok {
			name, path = filepath.Base(v), v
		}

		out = append(out, formdata.File{Name: name, Path: path})
	}

	return out
}

func (f *uploadFlags) metadata() newsapi.ArticleMetadata {
	return newsapi.ArticleMetadata{
		IsPreview:               newsapi.Bool(f.preview),
		IsIssueOnly:             newsapi.Bool(f.issueOnly),
		IsSponsored:             f.sponsored,
		IsCandidateToBeFeatured: f.candidate,
		IsHidden:                f.hidden,
		IsPaid:                  f.paid,
		MaturityRating:          newsapi.MaturityRating(strings.ToUpper(f.maturity)),
		AccessoryText:           f.accessoryText,
		Sections:                f.sections,
	}
}

func (f *uploadFlags) createInput(channelID string) (newsapi.CreateArticleInput, error) {
	doc, err := f.document()
	if err != nil {
		return newsapi.CreateArticleInput{}, err
	}

	return newsapi.CreateArticleInput{
		ChannelID: channelID,
		Article:   doc,
		Files:     f.bundleFiles(),
		Metadata:  f.metadata(),
	}, nil
}

func (a *app) articleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "article",
		Short: "Article commands",
	}

	cmd.AddCommand(
		a.articleCreateCmd(),
		a.articleUpdateCmd(),
		a.articleGetCmd(),
		a.articleDeleteCmd(),
		a.articleSearchCmd(),
	)

	return cmd
}

func (a *app) articleCreateCmd() *cobra.Command {
	var upload uploadFlags

	cmd := &cobra.Command{
		Use:   "create CHANNEL_ID",
		Short: "Publish an article to a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := upload.createInput(args[0])
			if err != nil {
				return err
			}

			return a.withClient(func(c *newsapi.Client) error {
				article, err := c.CreateArticle(cmd.Context(), in)
				if err != nil {
					return err
				}

				return a.print(article)
			})
		},
	}

	upload.register(cmd)

	return cmd
}

func (a *app) articleUpdateCmd() *cobra.Command {
	var (
		upload   uploadFlags
		revision string
	)

	cmd := &cobra.Command{
		Use:   "update ARTICLE_ID",
		Short: "Upload a new revision of an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := upload.document()
			if err != nil {
				return err
			}

			in := newsapi.UpdateArticleInput{
				ArticleID: args[0],
				Revision:  revision,
				Article:   doc,
				Files:     upload.bundleFiles(),
				Metadata:  upload.metadata(),
			}

			return a.withClient(func(c *newsapi.Client) error {
				article, err := c.UpdateArticle(cmd.Context(), in)
				if err != nil {
					return err
				}

				return a.print(article)
			})
		},
	}

	upload.register(cmd)
	cmd.Flags().StringVar(&revision, "revision", "", "Latest revision of the article (required)")
	_ = cmd.MarkFlagRequired("revision")

	return cmd
}

func (a *app) articleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ARTICLE_ID",
		Short: "Show an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *newsapi.Client) error {
				article, err := c.ReadArticle(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return a.print(article)
			})
		},
	}
}

func (a *app) articleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ARTICLE_ID",
		Short: "Delete an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *newsapi.Client) error {
				if err := c.DeleteArticle(cmd.Context(), args[0]); err != nil {
					return err
				}

				a.logger.Info().Str("article_id", args[0]).Msg("article deleted")

				return nil
			})
		},
	}
}

func (a *app) articleSearchCmd() *cobra.Command {
	var (
		in       newsapi.SearchArticlesInput
		from, to string
		sortDir  string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List the articles of a channel or section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error

			if from != "" {
				if in.FromDate, err = hhmac.ParseDate(from); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			}

			if to != "" {
				if in.ToDate, err = hhmac.ParseDate(to); err != nil {
					return fmt.Errorf("--to: %w", err)
				}
			}

			in.SortDir = newsapi.SortDirection(strings.ToUpper(sortDir))

			return a.withClient(func(c *newsapi.Client) error {
				list, err := c.SearchArticles(cmd.Context(), in)
				if err != nil {
					return err
				}

				return a.print(list)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.ChannelID, "channel", "", "Channel ID")
	flags.StringVar(&in.SectionID, "section", "", "Section ID")
	flags.IntVar(&in.PageSize, "page-size", 0, "Number of articles per page")
	flags.StringVar(&from, "from", "", "Earliest creation date, "+hhmac.DateLayout)
	flags.StringVar(&to, "to", "", "Latest creation date, "+hhmac.DateLayout)
	flags.StringVar(&sortDir, "sort", "", "Sort direction: ASC or DESC")
	flags.StringVar(&in.PageToken, "page-token", "", "Token of the page to fetch")
	cmd.MarkFlagsMutuallyExclusive("channel", "section")
	cmd.MarkFlagsOneRequired("channel", "section")

	return cmd
}
