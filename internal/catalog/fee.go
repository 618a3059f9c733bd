package catalog

import "github.com/dustin/go-humanize"

func formatFee(fee int) string {
	return "Rs. " + humanize.Comma(int64(fee))
}
