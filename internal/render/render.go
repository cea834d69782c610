// Package render turns ranked picks into the static dashboard page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/propedge/propedge/internal/models"
	"github.com/propedge/propedge/internal/scoring"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

// Section is one league's slice of a render: its ranked picks plus the run
// diagnostics shown in the debug panel.
type Section struct {
	League      models.League
	Picks       []models.Pick
	Diagnostics models.RunDiagnostics
}

type factorView struct {
	Label string
	Width int
	Tier  string // fill-hot, fill-warm, fill-cool
}

type pickView struct {
	Title     string
	Subtitle  string
	Badge     string // high, medium, low
	BadgeText string
	Projected float64
	Line      float64
	Factors   []factorView
}

type sectionView struct {
	ID      string
	Label   string
	Heading string
	Active  bool
	Picks   []pickView
	Diag    models.RunDiagnostics
}

type pageView struct {
	Date        string
	LastUpdated string
	Sections    []sectionView
	TotalPicks  int
}

// Renderer renders dashboard pages and writes them to disk.
type Renderer struct {
	tmpl   *template.Template
	logger *logrus.Logger
}

// NewRenderer parses the embedded dashboard template.
func NewRenderer(logger *logrus.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/dashboard.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}
	return &Renderer{tmpl: tmpl, logger: logger}, nil
}

// Render produces the full self-contained HTML document.
func (r *Renderer) Render(generatedAt time.Time, sections []Section) ([]byte, error) {
	page := pageView{
		Date:        generatedAt.Format("January 2, 2006"),
		LastUpdated: generatedAt.Format("January 2, 2006 at 3:04 PM MST"),
	}
	for i, section := range sections {
		view := sectionView{
			ID:      string(section.League),
			Label:   strings.ToUpper(string(section.League)),
			Heading: fmt.Sprintf("%s Top Plays – %s", strings.ToUpper(string(section.League)), page.Date),
			Active:  i == 0,
			Diag:    section.Diagnostics,
		}
		for _, pick := range section.Picks {
			view.Picks = append(view.Picks, buildPickView(pick))
		}
		page.TotalPicks += len(section.Picks)
		page.Sections = append(page.Sections, view)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the document atomically: a temp file in the target
// directory, then a rename. Readers never observe a half-written page.
func (r *Renderer) WriteFile(path string, doc []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dashboard-*.html")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move dashboard into place: %w", err)
	}
	r.logger.WithFields(logrus.Fields{"path": path, "bytes": len(doc)}).Info("Dashboard written")
	return nil
}

func buildPickView(pick models.Pick) pickView {
	badge := "low"
	switch {
	case pick.EdgeScore >= 80:
		badge = "high"
	case pick.EdgeScore >= 70:
		badge = "medium"
	}

	side := "Over"
	if pick.Side == models.SideUnder {
		side = "Under"
	}

	view := pickView{
		Title: fmt.Sprintf("%s %s %s %.1f",
			pick.Player.DisplayName, scoring.DisplayName(pick.PropType), side, pick.Line),
		Subtitle:  fmt.Sprintf("%s | %s", pick.Matchup, pick.TimeLabel),
		Badge:     badge,
		BadgeText: fmt.Sprintf("%d%% EDGE", int(pick.EdgeScore)),
		Projected: pick.Projected,
		Line:      pick.Line,
	}

	for _, factor := range pick.Factors {
		width := factorWidth(factor)
		if width < 0 {
			continue
		}
		view.Factors = append(view.Factors, factorView{
			Label: scoring.Describe(factor.Name),
			Width: width,
			Tier:  tierFor(width),
		})
	}
	sort.SliceStable(view.Factors, func(i, j int) bool {
		return view.Factors[i].Width > view.Factors[j].Width
	})
	if len(view.Factors) > 6 {
		view.Factors = view.Factors[:6]
	}
	return view
}

// factorWidth maps a factor's magnitude onto a 0-100 bar. Multiplier
// factors live in [0.90, 1.10]; bonus and penalty factors are additive
// points. Baseline is the raw projection and gets no bar.
func factorWidth(factor models.Factor) int {
	var width int
	switch factor.Name {
	case "baseline":
		return -1
	case "gap_bonus":
		width = int(factor.Magnitude * 100 / 6.0)
	case "dispersion_penalty":
		// Recorded as a negative contribution; a louder penalty shows a
		// shorter bar.
		width = int(100 - math.Abs(factor.Magnitude)*100/12.0)
	default:
		width = int((factor.Magnitude - 0.90) * 500)
	}
	if width < 0 {
		width = 0
	}
	if width > 100 {
		width = 100
	}
	return width
}

func tierFor(width int) string {
	switch {
	case width >= 75:
		return "fill-hot"
	case width >= 50:
		return "fill-warm"
	default:
		return "fill-cool"
	}
}
