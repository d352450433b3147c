// productetl - Product Catalog ETL
//
// productetl reads a product catalog CSV, applies fixed pricing and category
// rules to every row, and writes the transformed catalog with a row summary.
package main

import (
	"os"

	"github.com/ccollicutt/productetl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
