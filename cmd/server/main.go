// Command server runs the lost & found HTTP API, the realtime socket and
// the email delivery worker.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/heartmarshall/lostfound-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
