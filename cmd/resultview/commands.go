package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/catalog"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/client"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/render"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/results"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/tui"
	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/view"
)

var (
	sortToken     string
	search        string
	detailed      bool
	detailSubject string
	detailRow     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published result sheets",
	Long: `Lists every result sheet on the server. With all of --year, --level,
--group and --session set, lists only the exam names of that cohort.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a result sheet as a table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

var summaryCmd = &cobra.Command{
	Use:   "summary [id]",
	Short: "Print the section summary and subject cards",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummary,
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects [id]",
	Short: "List the subjects and sort options of a sheet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSubjects,
}

var browseCmd = &cobra.Command{
	Use:   "browse [id]",
	Short: "Browse a result sheet interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func newClient() *client.Client {
	return client.New(server, client.WithLogger(logger), client.WithHTTPClient(&http.Client{Timeout: timeout}))
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	files, err := newClient().ListResults(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(files))
	if sel.Year != "" && sel.Level != "" && sel.Group != "" && sel.Session != "" {
		names = catalog.Exams(files, sel)
	} else {
		for _, f := range files {
			names = append(names, catalog.ID(f))
		}
	}

	f, err := render.ParseFormat(output)
	if err != nil {
		return err
	}
	if f != render.FormatTable {
		return render.Encode(cmd.OutOrStdout(), f, names)
	}
	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}

// load returns the dataset and its identifier from --file, a positional
// id or the selection flags. Each source is read exactly once.
func load(ctx context.Context, args []string) (*results.Dataset, string, error) {
	if file != "" {
		fh, err := os.Open(file)
		if err != nil {
			return nil, "", err
		}
		defer fh.Close()
		ds, err := results.Decode(fh)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", file, err)
		}
		return ds, catalog.ID(filepath.Base(file)), nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	c := newClient()

	if len(args) == 1 {
		id := catalog.ID(args[0])
		if err := c.VerifyPassword(ctx, password); err != nil {
			return nil, "", err
		}
		ds, err := c.FetchResults(ctx, id)
		return ds, id, err
	}
	if !sel.Complete() {
		return nil, "", errors.New("give a sheet id, --file, or all of --exam --year --level --group --session")
	}
	return c.Open(ctx, sel, password)
}

func runShow(cmd *cobra.Command, args []string) error {
	f, err := render.ParseFormat(output)
	if err != nil {
		return err
	}
	ds, id, err := load(cmd.Context(), args)
	if err != nil {
		return err
	}

	st := view.NewState()
	st.SetSort(sortToken)
	st.SetSearch(search)
	st.SetCompact(!detailed)
	if detailSubject != "" {
		st.ToggleSubject(detailSubject)
	}
	if detailRow != "" {
		st.ToggleRow(detailRow)
	}
	logger.Debug("rendering sheet", zap.String("id", id), zap.String("sort", st.SortToken()), zap.Int("records", len(ds.Order)))

	t := view.Build(ds, st)
	if f != render.FormatTable {
		return render.Encode(cmd.OutOrStdout(), f, t)
	}
	styles := render.DefaultStyles()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Heading(id, styles))
	fmt.Fprint(out, render.Table(t, styles))
	fmt.Fprintf(out, "%d of %d students\n", t.Matched, len(ds.Order))
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	f, err := render.ParseFormat(output)
	if err != nil {
		return err
	}
	ds, id, err := load(cmd.Context(), args)
	if err != nil {
		return err
	}

	summary := view.SummaryTable(ds)
	cards := view.SubjectCards(ds)
	if f != render.FormatTable {
		return render.Encode(cmd.OutOrStdout(), f, struct {
			Summary []results.SummaryRow `json:"summary" yaml:"summary"`
			Cards   []view.Card          `json:"cards" yaml:"cards"`
		}{results.SectionSummary(ds), cards})
	}
	styles := render.DefaultStyles()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Heading(id, styles))
	fmt.Fprintln(out, render.Table(summary, styles))
	fmt.Fprintln(out, render.Cards(cards, styles, 4))
	return nil
}

func runSubjects(cmd *cobra.Command, args []string) error {
	f, err := render.ParseFormat(output)
	if err != nil {
		return err
	}
	ds, _, err := load(cmd.Context(), args)
	if err != nil {
		return err
	}
	opts := view.SortOptions(ds.Subjects)
	if f != render.FormatTable {
		return render.Encode(cmd.OutOrStdout(), f, opts)
	}
	out := cmd.OutOrStdout()
	for _, o := range opts {
		if o.Disabled {
			fmt.Fprintf(out, "-- %s --\n", o.Label)
			continue
		}
		fmt.Fprintf(out, "%-36s %s\n", o.Value, strings.TrimPrefix(o.Label, "Sort by "))
	}
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ds, id, err := load(cmd.Context(), args)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(tui.New(ds, id), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}
