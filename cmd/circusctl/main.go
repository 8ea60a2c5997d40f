package main

import (
	"context"
	"fmt"
	"os"

	"github.com/iliyamo/circus-schedule/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd(os.Stdout)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "circusctl:", err)
		os.Exit(1)
	}
}
