/*
PURPOSE:
  Publishes a generated coverage-report tree: every HTML file is copied to
  the mirrored location under the target root with the coverage.css
  import directive replaced by the stylesheet text.

REQUIREMENTS:
  User-specified:
  - Load the stylesheet once, before traversal.
  - Mirror <source>/<rel>/<name>.html to <target>/<rel>/<name>.html.
  - Leave non-matching files out of the target tree.

  Implementation-discovered:
  - A target nested inside the source must not be re-read as input.
  - Directory creation happens on the symlink-resolved location.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli, Watch
  - Uses: internal/config, internal/model, internal/output

ERROR HANDLING:
  - The first error aborts the run (no per-file skipping, no cleanup).

IMPLEMENTATION RULES:
  - Sequential. One file is read, rewritten and written before the next.
  - Publisher is immutable after New.

USAGE:
  p, err := publish.New(cfg)
  sum, err := p.Run()

RELATED FILES:
  - internal/publish/inline.go
  - internal/publish/paths.go
*/

package publish

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/daryltucker/cc-publish/internal/config"
	"github.com/daryltucker/cc-publish/internal/model"
	"github.com/daryltucker/cc-publish/internal/output"
)

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger used for progress output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) {
		p.log = l
	}
}

// Publisher copies HTML files from the source tree into the target tree.
type Publisher struct {
	cfg *config.Config
	css string
	log *slog.Logger

	// absolute target root when it lies inside the source root, else ""
	nestedTarget string
}

// New loads the stylesheet and returns a Publisher for cfg.
func New(cfg *config.Config, opts ...Option) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cssPath := cfg.StylesheetPath()
	css, err := os.ReadFile(cssPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet %s: %w", cssPath, err)
	}

	p := withOptions(opts)
	p.cfg = cfg
	p.css = string(css)

	nested, err := nestedTarget(cfg.SourceDir, cfg.TargetDir)
	if err != nil {
		return nil, err
	}
	p.nestedTarget = nested

	return p, nil
}

func withOptions(opts []Option) *Publisher {
	p := &Publisher{log: output.Logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stylesheet returns the stylesheet text that will be inlined.
func (p *Publisher) Stylesheet() string {
	return p.css
}

// Plan lists what Run would publish without touching the target tree.
// Replacements and Bytes are left zero.
func (p *Publisher) Plan() ([]model.Record, error) {
	var recs []model.Record
	err := p.walk(func(src string) error {
		dest, err := DestPath(p.cfg.SourceDir, p.cfg.TargetDir, src)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(p.cfg.SourceDir, src)
		recs = append(recs, model.Record{Source: src, Destination: dest, RelPath: rel})
		return nil
	})
	return recs, err
}

// Run performs one full publish pass. A manifest that fails to close fails the run.
func (p *Publisher) Run() (sum *model.Summary, err error) {
	sum = &model.Summary{
		SourceDir: p.cfg.SourceDir,
		TargetDir: p.cfg.TargetDir,
		Started:   time.Now(),
	}

	var manifest output.RecordWriter
	if p.cfg.Manifest != "" {
		w, err := output.NewManifest(p.cfg.Manifest)
		if err != nil {
			return sum, fmt.Errorf("failed to open manifest %s: %w", p.cfg.Manifest, err)
		}
		defer func() {
			if cerr := w.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("failed to close manifest %s: %w", p.cfg.Manifest, cerr))
			}
		}()
		manifest = w
	}

	p.log.Info("Publishing coverage report", "source", p.cfg.SourceDir, "target", p.cfg.TargetDir)

	err = p.walk(func(src string) error {
		rec, err := p.PublishFile(src)
		if err != nil {
			return err
		}
		sum.Add(rec)
		p.log.Debug("Published file", "path", rec.RelPath, "replacements", rec.Replacements)

		if manifest != nil {
			if err := manifest.Write(rec); err != nil {
				return fmt.Errorf("failed to write manifest %s: %w", p.cfg.Manifest, err)
			}
		}
		return nil
	})
	sum.Duration = time.Since(sum.Started)
	if err != nil {
		return sum, err
	}

	p.log.Info("Publish complete",
		"files", sum.Files,
		"replacements", sum.Replacements,
		"duration", sum.Duration.Round(time.Millisecond),
	)
	return sum, nil
}

// PublishFile rewrites a single source file into the target tree.
func (p *Publisher) PublishFile(src string) (model.Record, error) {
	dest, err := DestPath(p.cfg.SourceDir, p.cfg.TargetDir, src)
	if err != nil {
		return model.Record{}, err
	}
	rel, _ := filepath.Rel(p.cfg.SourceDir, src)
	rec := model.Record{Source: src, Destination: dest, RelPath: rel}

	dir, err := resolveDir(filepath.Dir(dest))
	if err != nil {
		return rec, err
	}
	if err := EnsureDir(dir); err != nil {
		return rec, err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return rec, fmt.Errorf("failed to read %s: %w", src, err)
	}

	html, n := Inline(string(data), p.css)
	if err := os.WriteFile(dest, []byte(html), 0o644); err != nil {
		return rec, fmt.Errorf("failed to write %s: %w", dest, err)
	}

	rec.Replacements = n
	rec.Bytes = len(html)
	return rec, nil
}

// walk calls fn for every regular file under the source root whose base
// name matches the configured pattern. Symlinks to regular files count; a
// symlinked source root is followed.
func (p *Publisher) walk(fn func(path string) error) error {
	return filepath.WalkDir(walkRoot(p.cfg.SourceDir), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p.nestedTarget != "" {
				if abs, err := filepath.Abs(path); err == nil && abs == p.nestedTarget {
					p.log.Debug("Skipping target directory inside source", "path", path)
					return filepath.SkipDir
				}
			}
			return nil
		}
		// Pattern was validated in config, so Match cannot fail here.
		if ok, _ := filepath.Match(p.cfg.Pattern, d.Name()); !ok {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			fi, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			if !fi.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		return fn(path)
	})
}

// walkRoot makes WalkDir follow root when it is a symlink. Children are
// joined with filepath.Join, so their paths are unchanged.
func walkRoot(root string) string {
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return root
	}
	return root + string(filepath.Separator)
}

// nestedTarget returns the absolute target root when it sits strictly
// inside the source root.
func nestedTarget(source, target string) (string, error) {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("failed to resolve source %s: %w", source, err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve target %s: %w", target, err)
	}
	if _, err := DestPath(absSource, absSource, absTarget); err != nil {
		return "", nil
	}
	return absTarget, nil
}
