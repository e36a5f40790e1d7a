package main

import (
	"fmt"
	"os"
	"time"

	"github.com/feral-file/ff-tokenomics/internal/logger"
)

func main() {
	app := newApp(os.Stdout)
	err := app.Run(os.Args)
	logger.Flush(2 * time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
