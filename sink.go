package invoice2pdf

import (
	"fmt"
	"path/filepath"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
)

// Save writes artifact to {destDir}/{invoiceNo}.pdf and returns that path.
// The write is atomic: an existing file is replaced whole or left untouched.
// destDir must exist. All failures wrap ErrWrite.
func Save(destDir string, artifact *Artifact) (string, error) {
	if artifact == nil || len(artifact.PDF) == 0 {
		return "", fmt.Errorf("%w: empty artifact", ErrWrite)
	}
	if destDir == "" {
		return "", fmt.Errorf("%w: empty destination directory", ErrWrite)
	}
	if err := fileutil.ValidateFileName(artifact.InvoiceNo); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	path := filepath.Join(destDir, artifact.FileName())
	if err := fileutil.WriteFileAtomic(path, artifact.PDF); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return path, nil
}
