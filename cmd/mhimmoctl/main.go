package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"mhimmo/internal/cli"
)

func main() {
	_ = godotenv.Load()
	if err := cli.NewRootCmd(nil).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "mhimmoctl:", err)
		os.Exit(1)
	}
}
