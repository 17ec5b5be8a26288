// Package ingest fills the content store from a media directory.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bgraf/randomimage/filesystem"
	"github.com/bgraf/randomimage/images"
	"github.com/bgraf/randomimage/logging"
	"github.com/bgraf/randomimage/store"
	"github.com/bgraf/randomimage/title"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrNotDirectory = errors.New("not a directory")

// Extensions of the files picked up by Run. Content is sniffed afterwards,
// so a misnamed file is still recorded with its real MIME type.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".svg", ".pdf"}

// SidecarExtension is appended to a file name to find its description.
const SidecarExtension = ".md"

// Target receives the records produced by Run.
type Target interface {
	PutImage(ctx context.Context, rec store.ImageRecord) error
}

type Options struct {
	// Number of files inspected concurrently. Defaults to the CPU count.
	Concurrency int
	Logger      *zap.Logger
}

type Result struct {
	Added   int
	Skipped int
}

// Run records every file below dir in target. Paths are stored relative to
// dir, which must therefore be the store's media directory.
func Run(ctx context.Context, target Target, dir string, opts Options) (Result, error) {
	logger := logging.OrNop(opts.Logger)

	if !filesystem.IsDirectory(dir) {
		return Result{}, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	files, err := filesystem.GatherFiles(dir, Extensions)
	if err != nil {
		return Result{}, err
	}
	sort.Strings(files)

	records := make([]*store.ImageRecord, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency(opts.Concurrency))

	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rec, err := describe(dir, rel)
			if err != nil {
				logger.Warn("skipping file", zap.String("path", rel), zap.Error(err))
				return nil
			}

			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var result Result
	seen := make(map[string]string)

	for i, rec := range records {
		if rec == nil {
			result.Skipped++
			continue
		}

		if prev, ok := seen[rec.Ref.DBKey]; ok {
			logger.Warn("duplicate file name",
				zap.String("path", files[i]), zap.String("kept", prev))
			result.Skipped++
			continue
		}
		seen[rec.Ref.DBKey] = files[i]

		if err := target.PutImage(ctx, *rec); err != nil {
			return result, err
		}

		logger.Debug("recorded file",
			zap.Stringer("title", rec.Ref),
			zap.String("mime", rec.MajorMIME+"/"+rec.MinorMIME))
		result.Added++
	}

	return result, nil
}

func concurrency(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// describe collects metadata and description text for one file.
func describe(dir, rel string) (*store.ImageRecord, error) {
	abs := filepath.Join(dir, filepath.FromSlash(rel))

	ref, ok := title.MakeSafe(title.NamespaceFile, path.Base(rel))
	if !ok {
		return nil, fmt.Errorf("invalid file name %q", path.Base(rel))
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}

	major, minor, err := images.DetectMIME(abs)
	if err != nil {
		return nil, err
	}

	rec := &store.ImageRecord{
		Ref:       ref,
		MajorMIME: major,
		MinorMIME: minor,
		Path:      rel,
		Size:      fi.Size(),
	}

	if major == "image" {
		// SVG and WebP have no registered decoder; their size stays unknown.
		rec.Width, rec.Height, _ = images.Dimensions(abs)
	}

	sidecar := abs + SidecarExtension
	if filesystem.Exists(sidecar) {
		source, err := os.ReadFile(sidecar)
		if err != nil {
			return nil, fmt.Errorf("read description: %w", err)
		}

		fm, text, err := readSidecar(source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(sidecar), err)
		}

		rec.Text = text
		rec.Redirect = fm.Redirect

		return rec, nil
	}

	desc, err := images.ReadDescription(abs)
	if err == nil {
		rec.Text = desc
	} else if !errors.Is(err, images.ErrNoExif) {
		return nil, err
	}

	return rec, nil
}
