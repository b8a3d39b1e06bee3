package pointctl

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/pointchart/internal/domain/heatmap"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes tab-separated rows aligned into columns.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// tierGlyph renders a tier as a single calendar character.
func tierGlyph(t heatmap.Tier) string {
	if t == heatmap.NoData {
		return "."
	}
	return strconv.Itoa(int(t) + 1)
}

// points renders zero-point unpriced cells as a dash.
func points(p int, priced bool) string {
	if !priced {
		return "-"
	}
	return strconv.Itoa(p)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
