package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"time"

	"github.com/huangsam/tempdash/schema"
	"github.com/labstack/echo/v4"
)

//go:embed templates
var templatesFS embed.FS

const indexTemplate = "index.html.tmpl"

// Sidebar text of the dashboard page.
const (
	sidebarHeading     = "Kansas Temperatures"
	sidebarDescription = "A demonstration of real-time temperature readings in Kansas."
)

// templateRenderer adapts html/template to echo.Renderer.
type templateRenderer struct {
	tmpl *template.Template
}

func newTemplateRenderer() *templateRenderer {
	return &templateRenderer{tmpl: template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))}
}

// Render executes the named template with data.
func (r *templateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

// pageData is the view model of the dashboard page.
type pageData struct {
	Title           string
	Heading         string
	Description     string
	Subtitle        string
	RefreshSeconds  int
	Interval        time.Duration
	Capacity        int
	WindowLen       int
	HasData         bool
	Tick            int64
	Label           string
	LatestValue     string
	LatestTimestamp string
	Readings        []schema.Reading
	Min, Max, Mean  string
	TrendText       string
}

// newPageData builds the view model for report.
func newPageData(title string, report schema.SnapshotReport, interval time.Duration, capacity int) pageData {
	data := pageData{
		Title:          title,
		Heading:        sidebarHeading,
		Description:    sidebarDescription,
		Subtitle:       "No readings yet",
		RefreshSeconds: max(int(math.Ceil(interval.Seconds())), 1),
		Interval:       interval,
		Capacity:       capacity,
		WindowLen:      report.Len(),
		HasData:        !report.Empty(),
	}
	if !data.HasData {
		return data
	}

	data.Subtitle = fmt.Sprintf("Latest reading is %s", report.Label)
	data.Tick = report.Tick
	data.Label = report.Label
	data.LatestValue = report.Latest.TempString()
	data.LatestTimestamp = report.Latest.Timestamp
	data.Readings = report.Readings
	data.Min = fmt.Sprintf("%.1f F", report.Stats.Min)
	data.Max = fmt.Sprintf("%.1f F", report.Stats.Max)
	data.Mean = fmt.Sprintf("%.1f F", report.Stats.Mean)
	data.TrendText = "trend n/a"
	if report.Trend != nil {
		data.TrendText = fmt.Sprintf("trend %+.2f F/tick (r=%.2f)", report.Trend.Slope, report.Trend.R)
	}
	return data
}
