// Package library scans a music library tree and selects the karaoke-ready
// subset: media files with synced lyrics next to them, plus album art,
// optionally filtered by the album year token in folder names.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Nomadcxx/karacopy/internal/plans"
)

var (
	// ErrSourceNotFound is returned when the source root doesn't exist
	ErrSourceNotFound = errors.New("source directory not found")

	// ErrNotDirectory is returned when the source root is not a directory
	ErrNotDirectory = errors.New("source path is not a directory")
)

// yearToken matches a bracketed album year like "Danseparc [1983]".
// The last token in the name wins.
var yearToken = regexp.MustCompile(`\[(\d{4})\]`)

// ExtractAlbumYear extracts the year from a folder name like "Album [1989]".
// Returns false if the name carries no bracketed year.
func ExtractAlbumYear(dirName string) (int, bool) {
	matches := yearToken.FindAllStringSubmatch(dirName, -1)
	if len(matches) == 0 {
		return 0, false
	}

	year := 0
	for _, c := range matches[len(matches)-1][1] {
		year = year*10 + int(c-'0')
	}
	return year, true
}

// YearFilter bounds album years inclusively. Zero means unbounded.
type YearFilter struct {
	Min int
	Max int
}

// Active reports whether any bound is set
func (f YearFilter) Active() bool {
	return f.Min != 0 || f.Max != 0
}

// Matches reports whether an album year passes the filter.
// Albums without a year token always pass: there is nothing to filter on.
func (f YearFilter) Matches(year int, found bool) bool {
	if !found {
		return true
	}
	if f.Min != 0 && year < f.Min {
		return false
	}
	if f.Max != 0 && year > f.Max {
		return false
	}
	return true
}

// Extensions lists recognized file extensions, without dots
type Extensions struct {
	Media  []string
	Lyrics []string
	Art    []string
}

// DefaultExtensions matches the common library layout: mp3/m4a tracks,
// LRC synced lyrics, jpg/png cover art.
func DefaultExtensions() Extensions {
	return Extensions{
		Media:  []string{"mp3", "m4a"},
		Lyrics: []string{"lrc"},
		Art:    []string{"jpg", "jpeg", "png"},
	}
}

// Scanner walks a source tree and builds a CopyPlan
type Scanner struct {
	media  map[string]bool
	lyrics map[string]bool
	art    map[string]bool
}

// NewScanner creates a Scanner recognizing the given extensions
func NewScanner(exts Extensions) *Scanner {
	return &Scanner{
		media:  extSet(exts.Media),
		lyrics: extSet(exts.Lyrics),
		art:    extSet(exts.Art),
	}
}

func extSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	return set
}

// albumYear is the governing year for a directory: its own bracketed token
// if present, otherwise the nearest ancestor's.
type albumYear struct {
	year  int
	found bool
}

// dirFiles collects the files of one directory in walk order
type dirFiles struct {
	path  string
	files []fileEntry
}

type fileEntry struct {
	name string
	size int64
}

// Scan walks sourceRoot and returns the plan of files to copy.
//
// Selection per directory that passes the year filter:
//   - media files are included only with a sibling lyrics file of the same
//     base name
//   - lyrics files are included only when their media file is included,
//     so no orphan lyrics end up in the export
//   - art files are included whenever the directory qualifies
//   - everything else is skipped
//
// The walk is lexical depth-first, so repeated scans of an unchanged tree
// produce identical plans.
func (s *Scanner) Scan(sourceRoot string, filter YearFilter) (*plans.CopyPlan, error) {
	sourceRoot = filepath.Clean(sourceRoot)

	info, err := os.Stat(sourceRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceRoot)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, sourceRoot)
	}

	// Year bookkeeping only matters when a bound is set
	active := filter.Active()
	years := map[string]albumYear{sourceRoot: {}}
	var dirs []*dirFiles
	byDir := map[string]*dirFiles{}

	err = filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}

		if d.IsDir() {
			if active && path != sourceRoot {
				inherited := years[filepath.Dir(path)]
				if year, ok := ExtractAlbumYear(d.Name()); ok {
					inherited = albumYear{year: year, found: true}
				}
				years[path] = inherited
			}

			df := &dirFiles{path: path}
			dirs = append(dirs, df)
			byDir[path] = df
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return fmt.Errorf("cannot stat %s: %w", path, err)
		}

		df := byDir[filepath.Dir(path)]
		df.files = append(df.files, fileEntry{name: d.Name(), size: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	plan := &plans.CopyPlan{
		CreatedAt:  time.Now(),
		SourceRoot: sourceRoot,
		MinYear:    filter.Min,
		MaxYear:    filter.Max,
	}

	for _, df := range dirs {
		if active {
			ay := years[df.path]
			if !filter.Matches(ay.year, ay.found) {
				continue
			}
		}
		s.selectFiles(plan, sourceRoot, df)
	}

	return plan, nil
}

// selectFiles applies the per-file rules within one qualifying directory
func (s *Scanner) selectFiles(plan *plans.CopyPlan, sourceRoot string, df *dirFiles) {
	hasLyrics := map[string]bool{}
	hasMedia := map[string]bool{}
	for _, f := range df.files {
		base, ext := splitExt(f.name)
		if s.lyrics[ext] {
			hasLyrics[base] = true
		}
		if s.media[ext] {
			hasMedia[base] = true
		}
	}

	for _, f := range df.files {
		base, ext := splitExt(f.name)

		include := false
		isMedia := false
		switch {
		case s.media[ext]:
			include = hasLyrics[base]
			isMedia = true
		case s.lyrics[ext]:
			include = hasMedia[base]
		case s.art[ext]:
			include = true
		}
		if !include {
			continue
		}

		srcPath := filepath.Join(df.path, f.name)
		relPath, err := filepath.Rel(sourceRoot, srcPath)
		if err != nil {
			// Join of two paths under sourceRoot cannot fail to relativize
			continue
		}

		plan.Entries = append(plan.Entries, plans.Entry{
			SourcePath: srcPath,
			RelPath:    relPath,
			Size:       f.size,
			IsMedia:    isMedia,
		})

		plan.Summary.TotalFiles++
		plan.Summary.TotalBytes += f.size
		if isMedia {
			plan.Summary.MediaFiles++
		}
	}
}

// splitExt splits "01 - Track.MP3" into ("01 - Track", "mp3")
func splitExt(name string) (base, ext string) {
	ext = filepath.Ext(name)
	base = strings.TrimSuffix(name, ext)
	return base, strings.ToLower(strings.TrimPrefix(ext, "."))
}
