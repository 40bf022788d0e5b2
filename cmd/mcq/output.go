package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/stellarlinkco/mcq-eval/internal/eval"
)

func printResults(w io.Writer, results map[string]eval.AggregateResult) error {
	domains := make([]string, 0, len(results))
	for domain := range results {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOMAIN\tACCURACY\tAVG LATENCY")
	for _, domain := range domains {
		r := results[domain]
		fmt.Fprintf(tw, "%s\t%.2f%%\t%.2fms\n", domain, r.AccuracyPercent, r.AvgLatencyMs)
	}
	return tw.Flush()
}
