package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"trafficdash/analytics"
	"trafficdash/database"
	"trafficdash/server/services"
)

func main() {
	dbPath := flag.String("db", "vehicle_violations.db", "Path to the violation store")
	printJSON := flag.Bool("json", false, "Print the raw overview JSON after the summary")
	flag.Parse()

	db, err := database.NewViolationsDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to open violation store: %v", err)
	}
	defer db.Close()

	dashboard := services.NewDashboardService(db)
	overview, err := dashboard.GetOverview(analytics.Filters{}, nil)
	if err != nil {
		log.Fatalf("failed to collect stats: %v", err)
	}

	fmt.Println("\n--- Violation Store Statistics ---")
	fmt.Printf("Total Records: %d\n", overview.TotalRecords)
	if overview.DateRange != nil {
		fmt.Printf("Date Range: %s ~ %s\n", overview.DateRange.Min, overview.DateRange.Max)
	}

	fmt.Println("\nTop Devices:")
	printTop(overview.Devices, 10)

	fmt.Println("\nVehicle Types:")
	printTop(overview.VehicleTypes, 10)

	stats, err := dashboard.GetDeviceAnomalies(analytics.Filters{}, true)
	if err != nil {
		log.Fatalf("failed to compute anomalies: %v", err)
	}
	fmt.Println("\nFlagged Devices:")
	if len(stats) == 0 {
		fmt.Println("  None.")
	} else {
		for _, s := range stats {
			fmt.Printf("  - %s: %d records (threshold %.1f)\n",
				s.EquipmentCode, s.SelectedCount, *s.Threshold)
		}
	}

	if *printJSON {
		payload, err := json.MarshalIndent(overview, "", "  ")
		if err != nil {
			log.Fatalf("failed to marshal overview: %v", err)
		}
		fmt.Println("\nJSON payload:")
		fmt.Println(string(payload))
	}
}

func printTop(counts []analytics.ValueCount, limit int) {
	if len(counts) == 0 {
		fmt.Println("  None.")
		return
	}
	if len(counts) > limit {
		counts = counts[:limit]
	}
	for _, c := range counts {
		fmt.Printf("  - %s: %d\n", c.Value, c.Count)
	}
}
