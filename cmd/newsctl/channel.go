package main

import (
	"github.com/spf13/cobra"
	"github.com/vitalvas/newsapi/newsapi"
)

func (a *app) channelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Channel commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get CHANNEL_ID",
		Short: "Show a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(func(c *newsapi.Client) error {
				ch, err := c.ReadChannel(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return a.print(ch)
			})
		},
	})

	return cmd
}

func (a *app) sectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Section commands",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list CHANNEL_ID",
			Short: "List the sections of a channel",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withClient(func(c *newsapi.Client) error {
					sections, err := c.ListSections(cmd.Context(), args[0])
					if err != nil {
						return err
					}

					return a.print(sections)
				})
			},
		},
		&cobra.Command{
			Use:   "get SECTION_ID",
			Short: "Show a section",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withClient(func(c *newsapi.Client) error {
					s, err := c.ReadSection(cmd.Context(), args[0])
					if err != nil {
						return err
					}

					return a.print(s)
				})
			},
		},
	)

	return cmd
}
