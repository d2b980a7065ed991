package history

import "fmt"

const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// NewLog opens the durable log for the named backend.
func NewLog(backend, path string) (Log, error) {
	switch backend {
	case "", BackendJSONL:
		return NewFileLog(path)
	case BackendSQLite:
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("unknown history backend %q (use %s or %s)", backend, BackendJSONL, BackendSQLite)
}
