// pgprobe - interactive PostgreSQL diagnostics client
//
// pgprobe connects to a PostgreSQL server and offers a fixed menu of
// diagnostic operations (uptime, version, public tables, extensions,
// custom queries), with named connection profiles persisted for reuse.
package main

import (
	"github.com/ctorralba/pgprobe/internal/cli"
)

func main() {
	cli.Execute()
}
