package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
)

// ErrNotEnoughData is returned when a chart needs more rows than the dataset
// has. The caller presents it as an informational message, not a failure.
var ErrNotEnoughData = errors.New("not enough data to chart")

// Renderer draws dataset charts as PNG files in a fixed output directory.
type Renderer struct {
	dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Trend renders one line per subject across students, x = student index with
// the student names as tick labels. At least two students are required for a
// line to exist.
func (r *Renderer) Trend(subjects, students []string, marks [][]int) (string, error) {
	if len(students) < 2 {
		return "", ErrNotEnoughData
	}

	xs := make([]float64, len(students))
	ticks := make([]chart.Tick, len(students))
	for i, name := range students {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: name}
	}

	series := make([]chart.Series, 0, len(subjects))
	for j, subject := range subjects {
		ys := make([]float64, len(marks))
		for i, row := range marks {
			ys[i] = float64(row[j])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    subject,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(j),
				DotColor:    chart.GetDefaultColor(j),
				DotWidth:    4,
			},
		})
	}

	ch := chart.Chart{
		Title:  "Trend of Marks by Subject",
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 24},
		},
		XAxis: chart.XAxis{
			Name:  "Student",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(students) - 1)},
		},
		YAxis: chart.YAxis{
			Name:  "Marks",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return r.writePNG("trend.png", ch.Render)
}

// SubjectComparison renders a bar per subject showing its average mark. The
// average is baked into each bar label since bars carry no value labels of
// their own.
func (r *Renderer) SubjectComparison(subjects []string, averages []float64) (string, error) {
	if len(averages) == 0 {
		return "", ErrNotEnoughData
	}

	bars := make([]chart.Value, len(subjects))
	for j, subject := range subjects {
		bars[j] = chart.Value{
			Value: averages[j],
			Label: fmt.Sprintf("%s (%.2f)", subject, averages[j]),
		}
	}

	ch := chart.BarChart{
		Title:  "Average Performance by Subject",
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 24},
		},
		BarWidth: 80,
		YAxis: chart.YAxis{
			Name:  "Average Marks",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	return r.writePNG("subject_comparison.png", ch.Render)
}

func (r *Renderer) writePNG(name string, render func(chart.RendererProvider, io.Writer) error) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create charts dir %s: %w", r.dir, err)
	}
	path := filepath.Join(r.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	return path, nil
}
