// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert rewrites MINHA CDN access logs into the Agora log format.
//
// A run fetches the source log over HTTP, appends a three-line header and one
// Agora record per source line to the destination file, and removes the
// destination entirely if anything fails along the way.
package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/agora-convert/internal/httputil"
	"github.com/pdiddy/agora-convert/pkg/types"
)

const (
	// Version is the Agora format version written in the header.
	Version = "1.0"

	// dateLayout renders the header timestamp as dd/MM/yyyy HH:mm:ss.
	dateLayout = "02/01/2006 15:04:05"
)

// now supplies the header timestamp. Tests override it.
var now = time.Now

// Result describes a completed run.
type Result struct {
	// Path is the destination file that was written.
	Path string
	// Lines is the number of Agora records written, excluding the header.
	Lines int
}

// Header returns the three header lines of an Agora file generated at t,
// each terminated by "\n".
func Header(t time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#Version: %s\n", Version)
	fmt.Fprintf(&b, "#Date: %s\n", t.Format(dateLayout))
	fmt.Fprintf(&b, "#Fields: %s\n", strings.Join(types.AgoraFields, " "))
	return b.String()
}

// Convert writes the Agora header stamped with generated, then one Agora
// record for every line of src in order. It stops at the first read, format,
// or write error and returns the number of records written so far.
func Convert(src io.Reader, dst io.Writer, generated time.Time) (int, error) {
	if _, err := io.WriteString(dst, Header(generated)); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	sc := newLineScanner(src)
	n := 0
	for sc.Scan() {
		out, err := FormatLine(sc.Text())
		if err != nil {
			return n, fmt.Errorf("line %d: %w", n+1, err)
		}
		if _, err := io.WriteString(dst, out+"\n"); err != nil {
			return n, fmt.Errorf("writing line %d: %w", n+1, err)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("reading source: %w", err)
	}
	return n, nil
}

// Run downloads sourceURL and appends its Agora rendition to destPath.
//
// destPath must already be resolved (see package destpath). The file is
// opened in append mode, so repeated runs add another header and record
// block rather than replacing earlier output. On any failure the destination
// file is removed, including output from earlier runs, and the error is
// returned. Run returns only after the file and the response body are closed.
func Run(ctx context.Context, client *http.Client, cfg types.HTTPConfig, logger *zap.Logger, sourceURL, destPath string) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("source", sourceURL), zap.String("destination", destPath))
	logger.Info("conversion started")

	n, err := fetchAndAppend(ctx, client, cfg, sourceURL, destPath)
	if err != nil {
		removed := removeDestination(destPath, logger)
		logger.Error("conversion failed",
			zap.Error(err),
			zap.Int("lines_written", n),
			zap.Bool("destination_removed", removed))
		return Result{Path: destPath}, err
	}

	logger.Info("conversion completed", zap.Int("lines", n))
	return Result{Path: destPath, Lines: n}, nil
}

func fetchAndAppend(ctx context.Context, client *http.Client, cfg types.HTTPConfig, sourceURL, destPath string) (n int, err error) {
	body, err := httputil.OpenStream(ctx, client, sourceURL, cfg.UserAgent)
	if err != nil {
		return 0, fmt.Errorf("fetching %s: %w", sourceURL, err)
	}
	defer body.Close()

	f, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return 0, fmt.Errorf("opening destination: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing destination: %w", closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	n, err = Convert(body, w, now())
	if err != nil {
		return n, err
	}
	if err := w.Flush(); err != nil {
		return n, fmt.Errorf("flushing destination: %w", err)
	}
	return n, nil
}

// removeDestination deletes path and reports whether a file was removed.
func removeDestination(path string, logger *zap.Logger) bool {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true
	case errors.Is(err, os.ErrNotExist):
		return false
	default:
		logger.Warn("could not remove destination", zap.Error(err))
		return false
	}
}
