package main

import (
	"log"
	"os"

	"github.com/trknhr/hmmtag/cmd"
	"github.com/trknhr/hmmtag/internal"
	"github.com/trknhr/hmmtag/internal/logger"
	"github.com/trknhr/hmmtag/internal/store"
)

func main() {
	if err := logger.Init(os.Getenv("HMMTAG_LOG_PATH"), os.Getenv("HMMTAG_LOG_LEVEL")); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	db := internal.GetDB()
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := cmd.Execute(db); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
