// Command filestorectl is a maintenance CLI over the storage core's
// operation surface — upload, browse, rename, move, trash, restore, and
// purge — for local operation and as executable documentation. It is
// not the product's HTTP surface; that transport layer calls into the
// same Service methods this CLI drives directly.
package main

import (
	"os"

	"filestore/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
