package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"

	"trafficdash/normalization"
)

var violationTypes = []string{"과속", "신호위반", "버스전용차로", "갓길통행"}
var vehicleTypes = []string{"승용차", "승합차", "화물차", "이륜차"}
var processingStatuses = []string{"처리완료", "미처리", "계도"}
var locationCategories = []string{"일반도로", "어린이보호구역", "터널"}
var residentCategories = []string{"관내", "관외"}
var locations = []string{
	"서울특별시 강남구 테헤란로 123",
	"경기도 수원시 팔달구 중부대로 45",
	"부산광역시 해운대구 해운대로 210",
	"대전광역시 유성구 대학로 99",
}

func main() {
	out := flag.String("out", "test_violations.xlsx", "Output workbook path")
	devices := flag.Int("devices", 5, "Number of enforcement devices")
	days := flag.Int("days", 14, "Number of calendar days to cover")
	perDay := flag.Int("per-day", 20, "Average records per device per day")
	seed := flag.Int64("seed", 0, "Random seed (0 keeps runs reproducible)")
	flag.Parse()

	gofakeit.Seed(*seed)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(normalization.ViolationColumns))
	for i, col := range normalization.ViolationColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		log.Fatalf("failed to write header: %v", err)
	}

	start := time.Now().AddDate(0, 0, -*days)
	row := 2
	for d := 0; d < *devices; d++ {
		code := fmt.Sprintf("F%04d", d+1)
		for day := 0; day < *days; day++ {
			// Vary volume per day so anomaly baselines have spread.
			count := gofakeit.Number(*perDay/2, *perDay*3/2)
			for i := 0; i < count; i++ {
				record := randomRow(code, start.AddDate(0, 0, day), row)
				cell := fmt.Sprintf("A%d", row)
				if err := f.SetSheetRow(sheet, cell, &record); err != nil {
					log.Fatalf("failed to write row %d: %v", row, err)
				}
				row++
			}
		}
	}

	if err := f.SaveAs(*out); err != nil {
		log.Fatalf("failed to save workbook: %v", err)
	}
	fmt.Printf("Generated %d records for %d devices over %d days: %s\n",
		row-2, *devices, *days, *out)
}

func randomRow(code string, day time.Time, seq int) []interface{} {
	limit := []int{30, 50, 60, 80, 100}[gofakeit.Number(0, 4)]
	actual := limit + gofakeit.Number(11, 40)
	notified := actual - gofakeit.Number(0, 3)

	ts := time.Date(day.Year(), day.Month(), day.Day(),
		gofakeit.Number(0, 23), gofakeit.Number(0, 59), gofakeit.Number(0, 59), 0, time.Local)

	return []interface{}{
		fmt.Sprintf("%s-%s-%06d", code, day.Format("20060102"), seq),
		violationTypes[gofakeit.Number(0, len(violationTypes)-1)],
		ts.Format("2006-01-02 15:04:05"),
		limit,
		actual,
		actual - limit,
		notified,
		notified - limit,
		processingStatuses[gofakeit.Number(0, len(processingStatuses)-1)],
		gofakeit.Number(1, 4),
		vehicleTypes[gofakeit.Number(0, len(vehicleTypes)-1)],
		locationCategories[gofakeit.Number(0, len(locationCategories)-1)],
		residentCategories[gofakeit.Number(0, len(residentCategories)-1)],
		gofakeit.CarModel(),
		locations[gofakeit.Number(0, len(locations)-1)],
	}
}
