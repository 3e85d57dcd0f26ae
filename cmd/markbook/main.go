package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"

	"markbook/internal/chart"
	"markbook/internal/config"
	"markbook/internal/database"
	"markbook/internal/handler"
	"markbook/internal/service"
	"markbook/internal/store"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("An unexpected error occurred: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()
	run()
}

func run() {
	// A missing .env is fine; the config has defaults for everything.
	_ = godotenv.Load()

	dataFile := flag.String("data", "", "dataset file path (overrides MARKBOOK_DATA_FILE)")
	importFile := flag.String("import", "", "bulk-import records from a CSV file and exit")
	archiveFile := flag.String("archive", "", "export the dataset to a SQLite archive and exit")
	flag.Parse()

	cfg := config.Load()
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	color.NoColor = color.NoColor || cfg.NoColor

	st := store.NewStore(cfg.DataFile)
	ds := st.Load()
	log.Printf("Loaded data: %d subjects, %d students", len(ds.Subjects), len(ds.Students))

	recordService := service.NewRecordService(st)
	statsService := service.NewStatsService()
	importService := service.NewImportService(st)
	renderer := chart.NewRenderer(cfg.ChartsDir)

	if *importFile != "" || *archiveFile != "" {
		if *importFile != "" {
			imported, skipped, err := importService.ImportCSV(ds, *importFile)
			if err != nil {
				log.Fatal("Import failed: ", err)
			}
			log.Printf("Imported %d records, skipped %d", imported, skipped)
		}
		if *archiveFile != "" {
			count, err := database.ExportArchive(ds, *archiveFile)
			if err != nil {
				log.Fatal("Archive export failed: ", err)
			}
			log.Printf("Archived %d marks to %s", count, *archiveFile)
		}
		return
	}

	if cfg.ViewAddr != "" {
		viewer := handler.NewViewer(ds, statsService, cfg.ChartsDir)
		go func() {
			log.Printf("Chart viewer listening on %s", cfg.ViewAddr)
			if err := http.ListenAndServe(cfg.ViewAddr, handlers.LoggingHandler(os.Stderr, viewer.Router())); err != nil {
				log.Printf("Chart viewer stopped: %v", err)
			}
		}()
	}

	console := handler.NewConsole(os.Stdin, os.Stdout, recordService, statsService, renderer)
	color.New(color.Bold).Println("Starting Student Performance Analysis Program...")
	console.Run(ds)
}
