package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"trafficdash/database"
	"trafficdash/server/services"
)

func main() {
	dbPath := flag.String("db", "vehicle_violations.db", "Path to the violation store")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: import-violations [-db path] file.xlsx [file2.csv ...]")
		os.Exit(2)
	}

	db, err := database.NewViolationsDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to open violation store: %v", err)
	}
	defer db.Close()

	ingest := services.NewIngestService(db)

	var inserted, duplicate int
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("failed to open %s: %v", path, err)
		}

		result, err := ingest.IngestViolations(f, path)
		f.Close()
		if err != nil {
			log.Fatalf("failed to import %s: %v", path, err)
		}

		fmt.Printf("%s: %d records, %d new, %d duplicates\n",
			path, result.Total, result.Inserted, result.Duplicate)
		inserted += result.Inserted
		duplicate += result.Duplicate
	}

	fmt.Printf("\nDone: %d files, %d new records, %d duplicates skipped\n",
		len(files), inserted, duplicate)
}
