package crm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/agent"
	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/scenario"
)

// FileLog appends one line per conversation turn to a flat text file. The file
// is opened, written, and closed per turn; there is no read path.
type FileLog struct {
	path string
}

func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

// LogTurn writes the interaction record:
// <timestamp> - <display name> (<contact>) - <scenario>: Q: <utterance>, A: <reply>
func (l *FileLog) LogTurn(t agent.Turn) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create crm directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open crm file: %w", err)
	}
	defer f.Close()

	display := scenario.Lookup(t.Scenario).DisplayName
	line := fmt.Sprintf("%s - %s (%s) - %s: Q: %s, A: %s\n",
		t.When.Format("2006-01-02 15:04:05.000000"),
		display, t.Contact, t.Scenario, t.Utterance, t.Reply)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append crm line: %w", err)
	}
	return nil
}
