package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	frameql "github.com/dshills/FrameQL"
	"github.com/dshills/FrameQL/dataframe"
	"github.com/dshills/FrameQL/internal/log"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sql/types"
)

var (
	version = "0.1.0"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		debug       = flag.Bool("debug", false, "Log converted plans and chain planner diagnostics")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("FrameQL v%s\n", version)
		os.Exit(0)
	}

	log.SetDefault(log.NewTextLogger(parseLevel(*logLevel)))

	planner := frameql.NewStaticPlanner()
	ctx := frameql.NewContext(planner, frameql.WithDebug(*debug))

	df, err := dataframe.New(
		dataframe.NewSeries("id", dataframe.Int64, []any{int64(1), int64(2), int64(3)}),
		dataframe.NewSeries("name", dataframe.String, []any{"alice", "bob", "carol"}),
		dataframe.NewSeries("score", dataframe.Float64, []any{7.5, nil, 9.0}),
	)
	if err != nil {
		log.Error("building demo frame", "error", err)
		os.Exit(1)
	}
	ctx.RegisterTable("people", df)

	// The demo stands in for the external parser/optimizer with canned
	// plans for a couple of queries.
	planner.Add("SELECT * FROM people", plan.NewTableScan("people"))
	planner.Add("SELECT id, score FROM people WHERE id > 1 ORDER BY score DESC",
		plan.NewSort(
			plan.NewProject(
				plan.NewFilter(
					plan.NewTableScan("people"),
					plan.NewCall(">",
						plan.NewInputRef(0),
						plan.NewLiteral(types.NewValue(int64(1)), types.BigInt)),
				),
				[]plan.Rex{plan.NewInputRef(0), plan.NewInputRef(2)},
				[]string{"id", "score"},
			),
			[]plan.SortKey{{Expr: plan.NewInputRef(1), Order: plan.Descending}},
		))

	queries := []string{
		"SELECT * FROM people",
		"SELECT id, score FROM people WHERE id > 1 ORDER BY score DESC",
	}
	for _, q := range queries {
		fmt.Println("> " + q)
		res, err := ctx.SQL(q)
		if err != nil {
			log.Error("query failed", "query", q, "error", err)
			os.Exit(1)
		}
		printFrame(res)
		fmt.Println()
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printFrame(df *dataframe.DataFrame) {
	cols := df.Columns()
	fmt.Println(strings.Join(cols, "\t"))
	for i := 0; i < df.Len(); i++ {
		cells := make([]string, len(cols))
		for c, name := range cols {
			s, _ := df.Column(name)
			if s.Data[i] == nil {
				cells[c] = "NULL"
			} else {
				cells[c] = fmt.Sprintf("%v", s.Data[i])
			}
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
}
