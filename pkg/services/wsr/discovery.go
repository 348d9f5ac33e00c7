package wsr

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/services/config"
)

// defaultQuartersBack bounds the backward search through quarter folders.
const defaultQuartersBack = 8

var workbookExtensions = []string{".xlsx", ".xlsm"}

// Finder locates the newest weekly report workbook. Completed folders are
// laid out as <completed>/<year>/Q<quarter>.
type Finder struct {
	CompletedDir string
	TemplatesDir string
	TemplateName string
	FilePrefix   string
	QuartersBack int
}

func NewFinder(paths config.Paths, cfg config.WSR) *Finder {
	return &Finder{
		CompletedDir: paths.CompletedDir,
		TemplatesDir: paths.TemplatesDir,
		TemplateName: cfg.TemplateName,
		FilePrefix:   cfg.FilePrefix,
		QuartersBack: defaultQuartersBack,
	}
}

// FindLatest returns the newest workbook in the completed quarter folders,
// searching backward from now and falling back to the blank template.
func (f *Finder) FindLatest(now time.Time) (string, error) {
	year := now.Year()
	quarter := (int(now.Month())-1)/3 + 1

	for i := 0; i < f.QuartersBack; i++ {
		dir := filepath.Join(f.CompletedDir, strconv.Itoa(year), fmt.Sprintf("Q%d", quarter))
		if path := newestIn(dir); path != "" {
			return path, nil
		}
		quarter--
		if quarter < 1 {
			quarter = 4
			year--
		}
	}

	template := filepath.Join(f.TemplatesDir, f.TemplateName)
	if _, err := os.Stat(template); err == nil {
		return template, nil
	}
	return "", fmt.Errorf("%w: no weekly report under %s and no template %s",
		domain.ErrReportNotFound, f.CompletedDir, template)
}

// WeeklyOutputPath names the default save target for a week's update,
// e.g. completed/2026/Q1/Vertekal_WSR_2026-01-12_to_2026-01-16.xlsx.
func (f *Finder) WeeklyOutputPath(week domain.Week) string {
	dir := filepath.Join(f.CompletedDir, strconv.Itoa(week.Year()), fmt.Sprintf("Q%d", week.Quarter()))
	name := fmt.Sprintf("%s_%s_to_%s.xlsx",
		f.FilePrefix,
		week.Start.Format("2006-01-02"),
		week.End.Format("2006-01-02"))
	return filepath.Join(dir, name)
}

// newestIn picks the lexicographically last workbook in dir. Weekly file
// names embed ISO dates, so name order is date order.
func newestIn(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var newest string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		supported := false
		for _, e := range workbookExtensions {
			if ext == e {
				supported = true
				break
			}
		}
		if !supported {
			continue
		}
		if name > newest {
			newest = name
		}
	}
	if newest == "" {
		return ""
	}
	return filepath.Join(dir, newest)
}
