package util

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"tour-server/models"
)

// PlotTours renders the tours with decodable coordinates as a scatter map.
// The selected tour, if any, is drawn as its own highlighted series.
func PlotTours(w io.Writer, tours []models.TourItem, selectedID string) error {
	points := make([]opts.GeoData, 0, len(tours))
	var selected []opts.GeoData
	for _, tour := range tours {
		coords := DecodeCoordinates(tour.MapX, tour.MapY)
		if coords == nil {
			continue
		}
		name := tour.Title
		if label := tour.PetInfo.SizeLabel(); label != "" {
			name = fmt.Sprintf("%s (%s)", tour.Title, label)
		}
		point := opts.GeoData{Name: name, Value: []float64{coords.Lng, coords.Lat}}
		if tour.ContentID == selectedID {
			selected = append(selected, point)
			continue
		}
		points = append(points, point)
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Tours Map",
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "관광지 지도"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}"}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("Tours", types.ChartScatter, points,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#3b82f6"}),
	)
	if len(selected) > 0 {
		geo.AddSeries("Selected", types.ChartEffectScatter, selected,
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ef4444"}),
		)
	}

	return geo.Render(w)
}

// PlotToursToFile writes the PlotTours output to path.
func PlotToursToFile(path string, tours []models.TourItem, selectedID string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer f.Close()

	if err := PlotTours(f, tours, selectedID); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}

// RenderStatsCharts renders the region counts as a bar chart and the content
// type shares as a pie chart on one page.
func RenderStatsCharts(w io.Writer, data *models.StatsData) error {
	names := make([]string, 0, len(data.RegionStats))
	counts := make([]opts.BarData, 0, len(data.RegionStats))
	for _, r := range data.RegionStats {
		names = append(names, r.Name)
		counts = append(counts, opts.BarData{Value: r.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "지역별 관광지 수",
			Subtitle: fmt.Sprintf("전체 %d곳", data.Summary.TotalCount),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).AddSeries("관광지 수", counts)

	slices := make([]opts.PieData, 0, len(data.TypeStats))
	for _, t := range data.TypeStats {
		slices = append(slices, opts.PieData{Name: t.TypeName, Value: t.Count})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "타입별 관광지 분포"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}: {c} ({d}%)"}),
	)
	pie.AddSeries("타입", slices,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}"}),
	)

	page := components.NewPage()
	page.PageTitle = "Tour Stats"
	page.AddCharts(bar, pie)
	return page.Render(w)
}
