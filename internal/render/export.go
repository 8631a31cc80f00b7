package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pickup-planner/internal/cluster"
)

// ExportText writes the plan as a plain-text file under dir and returns the
// full path. The filename embeds the timestamp and team/address counts so
// repeated runs never overwrite each other.
func ExportText(dir string, res *cluster.Result, runID string, capacity int, now time.Time) (string, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return "", eris.Errorf("render: output path %s exists and is not a directory", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "render: create output dir %s", dir)
	}

	filename := fmt.Sprintf("pickup-results-%s-%dteams-%daddrs.txt",
		now.Format("20060102-150405"), res.Teams, res.TotalAddresses)
	path := filepath.Join(dir, filename)

	var b strings.Builder
	b.WriteString("Pickup Assignment Results\n")
	fmt.Fprintf(&b, "Date: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run: %s\n", runID)
	fmt.Fprintf(&b, "Teams: %d\n", res.Teams)
	fmt.Fprintf(&b, "Addresses: %d\n", res.TotalAddresses)
	if capacity > 0 {
		fmt.Fprintf(&b, "Max per team: %d\n", capacity)
	}
	b.WriteString("\n")

	for _, g := range res.Groups {
		b.WriteString(g.Name + "\n")
		for _, a := range g.Addresses {
			fmt.Fprintf(&b, "    %s\n", a.Text)
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", eris.Wrapf(err, "render: write %s", path)
	}

	zap.L().Info("render: results exported", zap.String("path", path))
	return path, nil
}
