package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"webmarcas/backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
