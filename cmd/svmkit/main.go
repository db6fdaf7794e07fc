package main

import (
	"os"

	"github.com/go-ml-lab/svmkit/internal/mlog"
)

func main() {
	if err := newCLI().run(); err != nil {
		mlog.Error("svmkit", "%v", err)
		os.Exit(1)
	}
}
