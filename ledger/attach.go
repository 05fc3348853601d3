package ledger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/traderndumia/propfire/pkg/id"
)

// StoreAttachment copies a chart screenshot into dir and returns the
// stored path for recording on the entry. Filenames embed a ULID so
// repeated attachments for the same day never collide.
func StoreAttachment(dir string, date time.Time, src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open attachment: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create attachments dir: %w", err)
	}

	name := date.Format(dateLayout) + "_" + id.New() + filepath.Ext(src)
	dest := filepath.Join(dir, name)

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create attachment copy: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("copy attachment: %w", err)
	}
	return dest, nil
}
