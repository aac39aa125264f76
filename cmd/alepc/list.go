package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alepc/internal/catalog"
	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	domainerr "alepc/internal/domain/errors"
	"alepc/internal/index"
	"alepc/internal/textutil"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		tag    string
		drafts bool
		sort   string
		page   int
		size   int
		tags   bool
	)
	cmd := &cobra.Command{
		Use:   "list [slug]",
		Short: "List posts, newest first, or show a single post",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			mode, err := index.ParseSortMode(sort)
			if err != nil {
				return err
			}
			if page < 1 || size < 0 {
				return domainerr.Validation("--page must be at least 1 and --size not negative")
			}

			b := &catalog.Builder{Cfg: cfg}
			st, _, err := b.Run(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			switch {
			case tags:
				counts, err := st.Tags()
				if err != nil {
					return err
				}
				return printTags(out, counts)
			case len(args) == 1:
				slug := textutil.NormalizeSlug(args[0])
				p, err := st.Get(slug)
				if errors.Is(err, index.ErrNotFound) {
					return domainerr.PostProperties("there is no post with the slug '%s'", slug)
				}
				if err != nil {
					return err
				}
				return printSummaries(out, cfg, []content.Summary{p})
			}

			posts, err := st.List(index.ListOptions{Sort: mode, Tag: tag, IncludeDraft: drafts, Page: page, Size: size})
			if err != nil {
				return err
			}
			return printSummaries(out, cfg, posts)
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "only posts with this tag")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "include drafts")
	cmd.Flags().StringVar(&sort, "sort", string(index.SortUpdated), "sort by updated or created")
	cmd.Flags().IntVar(&page, "page", 1, "page number when --size is set")
	cmd.Flags().IntVar(&size, "size", 0, "posts per page (0 lists all)")
	cmd.Flags().BoolVar(&tags, "tags", false, "count posts per tag instead")
	return cmd
}

func printSummaries(w io.Writer, cfg config.Config, posts []content.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tTITLE\tDATE\tMODIFIED\tDRAFT\tTAGS")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			p.Slug,
			p.Title,
			textutil.FormatDate(p.Date, cfg.DateFormat),
			textutil.FormatDate(p.Modified, cfg.DateFormat),
			p.Draft,
			strings.Join(p.Tags, ", "),
		)
	}
	return tw.Flush()
}

func printTags(w io.Writer, counts []index.TagCount) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tPOSTS")
	for _, tc := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", tc.Tag, tc.Count)
	}
	return tw.Flush()
}
