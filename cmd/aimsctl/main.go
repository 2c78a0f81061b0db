// aimsctl is the terminal console for A.I.M.S: login, hosts, incidents,
// teams and provider settings, all through the gateway.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
