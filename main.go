// Package main is the entry point for the studytrack CLI.
package main

import (
	"github.com/huangsam/studytrack/cmd"
	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/internal/iostore"
)

func main() {
	cmd.SetStoreManager(iostore.Manager)

	err := cmd.Execute()

	// Deferred cleanup does not run after os.Exit, so release everything first.
	iostore.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogFatal("studytrack failed", err)
	}
}
