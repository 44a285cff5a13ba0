package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/helix/internal/domain/catalog"
	"github.com/kailas-cloud/helix/internal/domain/listing/filter"
	"github.com/kailas-cloud/helix/internal/domain/listing/order"
	"github.com/kailas-cloud/helix/internal/domain/listing/schema"
	listinguc "github.com/kailas-cloud/helix/internal/usecase/listing"
)

type queryFlags struct {
	text   string
	facets map[string]string
	mins   map[string]string
	maxs   map[string]string
	sort   string
	desc   bool
}

var qf queryFlags

var queryCmd = &cobra.Command{
	Use:   "query <kind>",
	Short: "Filter, sort and count a listing from the terminal",
	Example: `  helix query schools --q kansas
  helix query venues --facet sport=Basketball --sort capacity --desc
  helix query awards --min quantity=10 --max quantity=100`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.StringVarP(&qf.text, "q", "q", "", "Free-text search")
	f.StringToStringVar(&qf.facets, "facet", nil, "Facet selection field=value (repeatable)")
	f.StringToStringVar(&qf.mins, "min", nil, "Inclusive lower bound field=number (repeatable)")
	f.StringToStringVar(&qf.maxs, "max", nil, "Inclusive upper bound field=number (repeatable)")
	f.StringVar(&qf.sort, "sort", "", "Sort field (default: the listing's default sort)")
	f.BoolVar(&qf.desc, "desc", false, "Sort descending")
}

func runQuery(cmd *cobra.Command, args []string) error {
	_, cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	q, err := buildQuery(qf)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cat := catalog.Default()
	b, err := openBackend(ctx, cfg.Store, cat, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	kind := args[0]
	page, err := listinguc.New(b.repo, cat).Query(ctx, kind, q)
	if err != nil {
		return err
	}

	sch, _ := cat.Lookup(kind)
	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderPage(sch, page))
	return nil
}

// buildQuery turns command-line flags into a listing query.
func buildQuery(f queryFlags) (listinguc.Query, error) {
	bounds := make(map[string][2]*float64)
	for i, m := range []map[string]string{f.mins, f.maxs} {
		for name, raw := range m {
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return listinguc.Query{}, fmt.Errorf("%s: not a number: %q", name, raw)
			}
			b := bounds[name]
			b[i] = &n
			bounds[name] = b
		}
	}

	var ranges []filter.Condition
	for _, name := range slices.Sorted(maps.Keys(bounds)) {
		b := bounds[name]
		rng, err := filter.NewRangeFilter(nil, b[0], nil, b[1])
		if err != nil {
			return listinguc.Query{}, fmt.Errorf("range %s: %w", name, err)
		}
		cond, err := filter.NewRange(name, rng)
		if err != nil {
			return listinguc.Query{}, err
		}
		ranges = append(ranges, cond)
	}

	st, err := filter.NewState(f.text, f.facets, ranges)
	if err != nil {
		return listinguc.Query{}, err
	}

	q := listinguc.Query{Filter: st}
	if f.sort != "" {
		dir := order.Asc
		if f.desc {
			dir = order.Desc
		}
		spec, err := order.NewSpec(f.sort, dir)
		if err != nil {
			return listinguc.Query{}, err
		}
		q.Sort = spec
	}
	return q, nil
}

func renderPage(sch schema.Schema, page listinguc.Page) string {
	fields := sch.Fields()
	headers := make([]string, 0, len(fields))
	for _, f := range fields {
		headers = append(headers, f.Name())
	}

	tbl := newTable(sch.Title(), headers...)
	for _, r := range page.Result.Items() {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = cellText(r, h)
		}
		tbl.addRow(cells...)
	}

	out := tbl.render()
	out += mutedStyle.Render(page.Result.Summary()) + "\n"
	if page.Degraded {
		out += warnStyle.Render("warning: record store unavailable, results may be stale") + "\n"
	}
	return out
}
