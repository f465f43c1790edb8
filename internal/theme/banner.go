package theme

import (
	"fmt"
)

// Banner returns the CLI banner.
func Banner() string {
	const orange = "\033[33m"
	const cyan = "\033[36m"
	const reset = "\033[0m"

	art := "" +
		orange + "  ▲▲▲  " + reset + "KARMAFORGE" + orange + "  ▲▲▲\n" + reset +
		cyan + "   ▄█▀▀▀█▄ ▄█▀▀▀█▄ ▄█▀▀▀█▄\n" + reset +
		cyan + "   ▀█▄▄▄█▀ ▀█▄▄▄█▀ ▀█▄▄▄█▀\n" + reset +
		"   trending posts in, upvoted replies out\n"
	return art
}

// PrintBanner prints the banner to stdout.
func PrintBanner() {
	fmt.Print(Banner())
}
