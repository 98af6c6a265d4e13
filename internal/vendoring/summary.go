package vendoring

import (
	"fmt"
	"time"
)

// Summary counts what a run did.
type Summary struct {
	RunID            string
	DryRun           bool
	Documents        int // documents processed
	DocumentsWritten int // documents whose content changed on disk
	Downloaded       int
	Failed           int
	Planned          int // dry run only
	Rewritten        int // reference occurrences replaced
	Bytes            int
	Duration         time.Duration
}

func (s *Summary) String() string {
	if s.DryRun {
		return fmt.Sprintf("Summary: %d files, %d to download, %d references to rewrite (dry run)",
			s.Documents, s.Planned, s.Rewritten)
	}
	return fmt.Sprintf("Summary: %d files (%d updated), %d downloaded, %d failed, %d references rewritten",
		s.Documents, s.DocumentsWritten, s.Downloaded, s.Failed, s.Rewritten)
}
