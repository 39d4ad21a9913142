package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Shubham-550/strfem/pkg/audit"
	"github.com/Shubham-550/strfem/pkg/config"
	"github.com/Shubham-550/strfem/pkg/logging"
	"github.com/Shubham-550/strfem/pkg/model"
)

// strfem inspects model snapshots: it loads a snapshot written by
// SaveSnapshot and prints the model report, using configuration from
// an optional YAML file.
func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	snapshotPath := flag.String("snapshot", "", "path to a model snapshot to load")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	recorder := audit.NewRecorder(cfg.AuditBufferSize)

	modelCfg := model.Config{
		Precision: cfg.Precision,
		Logger:    logger,
		Auditor:   recorder,
	}

	if *snapshotPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	path := *snapshotPath
	if cfg.Snapshot.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Snapshot.Dir, path)
	}

	m, err := model.LoadSnapshot(path, cfg.Snapshot.Compress, modelCfg)
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	fmt.Print(m.Report())

	stats := m.Statistics()
	fmt.Printf("\nLoaded %d nodes, %d lines from %s\n",
		stats.NodeCount, stats.LineCount, path)
}
