package linkpost

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrDestinationMissing indicates the target directory does not exist.
// Destination directories must pre-exist; they are never created here.
var ErrDestinationMissing = errors.New("linkpost destination directory does not exist")

// Materializer writes one front-matter-delimited document per post. A path,
// once written, is never rewritten: existence is treated as "already
// processed" and reported as ResultSkipped.
type Materializer struct{}

func NewMaterializer() *Materializer {
	return &Materializer{}
}

func (m *Materializer) Run(post Post, postDir, draftDir string) (Result, error) {
	targetDir := postDir
	if post.IsDraft {
		targetDir = draftDir
	}

	info, err := os.Stat(targetDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ResultSkipped, fmt.Errorf("%w: %s", ErrDestinationMissing, targetDir)
		}
		return ResultSkipped, fmt.Errorf("failed to check destination directory %s: %w", targetDir, err)
	}
	if !info.IsDir() {
		return ResultSkipped, fmt.Errorf("%w: %s is not a directory", ErrDestinationMissing, targetDir)
	}

	path := filepath.Join(targetDir, m.fileName(post))

	// O_EXCL makes concurrent writers of the same path resolve to exactly
	// one winner, the others see the file as already existing.
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ResultSkipped, nil
		}
		return ResultSkipped, fmt.Errorf("failed to create linkpost file %s: %w", path, err)
	}

	if _, err := file.Write(m.render(post)); err != nil {
		file.Close()
		return ResultSkipped, fmt.Errorf("failed to write linkpost file %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return ResultSkipped, fmt.Errorf("failed to close linkpost file %s: %w", path, err)
	}

	return ResultWritten, nil
}

// Path returns the deterministic output path for a post.
func (m *Materializer) Path(post Post, postDir, draftDir string) string {
	targetDir := postDir
	if post.IsDraft {
		targetDir = draftDir
	}

	return filepath.Join(targetDir, m.fileName(post))
}

func (m *Materializer) fileName(post Post) string {
	return fmt.Sprintf("%s-%s.markdown", post.Timestamp.Format("2006-01-02"), post.ID)
}

func (m *Materializer) render(post Post) []byte {
	var buf bytes.Buffer

	buf.WriteString("---\n")
	buf.WriteString("layout: post\n")
	buf.WriteString("type: 'reference'\n")
	buf.WriteString(fmt.Sprintf("title: %s\n", singleLine(post.Title)))
	buf.WriteString(fmt.Sprintf("date: %s\n", post.Timestamp.Format(time.RFC3339)))
	buf.WriteString(fmt.Sprintf("ref: %s\n", post.URL))
	buf.WriteString(fmt.Sprintf("excerpt: %s\n", singleLine(post.Excerpt)))
	buf.WriteString("---\n\n")
	buf.WriteString(post.Body)
	buf.WriteString("\n\n")
	buf.WriteString(fmt.Sprintf("[View Original](%s)\n", post.URL))

	return buf.Bytes()
}

// singleLine keeps multi-line values from breaking the front matter block.
func singleLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
