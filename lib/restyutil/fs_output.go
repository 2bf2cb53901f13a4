package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
)

// InstrumentOutput receives every finished exchange of a client.
type InstrumentOutput interface {
	Write(ex Exchange)
}

// FilesystemOutput keeps a transcript of each exchange in a directory, html
// bodies are also kept on their own so they can be reused as page fixtures.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput clears dir and recreates it.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) write(name string, contents []byte) {
	err := os.WriteFile(filepath.Join(o.directory, name), contents, 0600)
	if err != nil {
		slog.Warn("failed to write http dump", "file", name, "err", err)
	}
}

func (o FilesystemOutput) Write(ex Exchange) {
	name := ex.Name()
	o.write(name+".txt", []byte(ex.Render()))
	if ex.IsHtml() && len(ex.Body) > 0 {
		o.write(name+".html", ex.Body)
	}
}
