package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"testing"

	"hermannm.dev/datadash/analysis"
	"hermannm.dev/datadash/csv"
	"hermannm.dev/datadash/datasets"
	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
)

const benchmarkRows = 20_000

var (
	testData []byte

	testSelection = analysis.Selection{
		"year":  {"2006", "2007", "2008"},
		"genre": {"Action", "Sports", "Shooter"},
	}
)

// Sets up logger and generates test data before running benchmarks.
func TestMain(m *testing.M) {
	logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: slog.LevelWarn})
	slog.SetDefault(slog.New(logHandler))

	testData = generateSalesCSV(benchmarkRows)
	log.Infof("generated %d rows of test data", benchmarkRows)

	os.Exit(m.Run())
}

func BenchmarkReadTable(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := csv.ReadTable(bytes.NewReader(testData)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNewPipeline(b *testing.B) {
	raw, err := csv.ReadTable(bytes.NewReader(testData))
	if err != nil {
		b.Fatal(err)
	}
	dataset := videoGameSales(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := analysis.NewPipeline(dataset, raw); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRender(b *testing.B) {
	raw, err := csv.ReadTable(bytes.NewReader(testData))
	if err != nil {
		b.Fatal(err)
	}
	pipeline, err := analysis.NewPipeline(videoGameSales(b), raw)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pipeline.Render(testSelection); err != nil {
			b.Fatal(err)
		}
	}
}

func videoGameSales(b *testing.B) analysis.Dataset {
	for _, dataset := range datasets.Catalog {
		if dataset.ID == "vgsales" {
			return dataset
		}
	}
	b.Fatal("video game sales dataset missing from catalog")
	return analysis.Dataset{}
}

func generateSalesCSV(rows int) []byte {
	genres := []string{"Action", "Sports", "Shooter", "Puzzle", "Racing", "Role-Playing"}
	random := rand.New(rand.NewSource(1))

	var data strings.Builder
	data.WriteString(
		"Rank,Name,Platform,Year,Genre,Publisher," +
			"NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales\n",
	)

	for i := 0; i < rows; i++ {
		year := "N/A"
		if random.Intn(50) != 0 {
			year = fmt.Sprint(1990 + random.Intn(30))
		}
		na, eu, jp, other := random.Float64(), random.Float64(), random.Float64(), random.Float64()

		fmt.Fprintf(
			&data,
			"%d,Game %d,Wii,%s,%s,Publisher %d,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			i+1, i, year, genres[random.Intn(len(genres))], random.Intn(40),
			na, eu, jp, other, na+eu+jp+other,
		)
	}

	return []byte(data.String())
}
