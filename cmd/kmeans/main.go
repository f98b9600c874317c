// Command kmeans prints the K-means centroids of a dataset.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hupe1980/symnmf/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.KMeans(os.Stdout, os.Stderr).Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
