package msr

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vertekal/msrsync/pkg/models/domain"
)

// defaultMonthsBack bounds the backward search through completed folders.
const defaultMonthsBack = 24

var reportExtensions = []string{".xlsx", ".xlsm"}

// Finder locates report files under the completed tree. Completed folders
// are laid out as <completed>/<year>/<MM-Mon>, e.g. completed/2026/01-Jan.
type Finder struct {
	CompletedDir string
	TemplatesDir string
	MonthsBack   int
}

func NewFinder(completedDir, templatesDir string) *Finder {
	return &Finder{
		CompletedDir: completedDir,
		TemplatesDir: templatesDir,
		MonthsBack:   defaultMonthsBack,
	}
}

// FindReport returns the most recent file matching the definition's file
// patterns, searching month folders backward from the month before the
// target period and falling back to the templates directory.
func (f *Finder) FindReport(def Definition, target domain.Period) (string, error) {
	p := target.Prev()
	for i := 0; i < f.MonthsBack; i++ {
		dir := filepath.Join(f.CompletedDir, strconv.Itoa(p.Year), p.FolderName())
		if path := matchIn(dir, def.FilePatterns); path != "" {
			return path, nil
		}
		p = p.Prev()
	}

	if path := matchIn(f.TemplatesDir, def.FilePatterns); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s (searched %d months back under %s and the templates in %s)",
		domain.ErrReportNotFound, def.ID, f.MonthsBack, f.CompletedDir, f.TemplatesDir)
}

// OutputDir returns the completed folder for a period, e.g.
// completed/2026/01-Jan.
func (f *Finder) OutputDir(p domain.Period) string {
	return filepath.Join(f.CompletedDir, strconv.Itoa(p.Year), p.FolderName())
}

func matchIn(dir string, patterns []string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		// Excel lock files
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !hasReportExtension(name) {
			continue
		}
		upper := strings.ToUpper(name)
		for _, pattern := range patterns {
			if strings.Contains(upper, strings.ToUpper(pattern)) {
				return filepath.Join(dir, name)
			}
		}
	}
	return ""
}

func hasReportExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range reportExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
