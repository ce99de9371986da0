package repository

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithDir sets the directory holding the state files.
func WithDir(dir string) Option {
	return func(s *FileStore) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithPretty controls indented JSON output. On by default so state files
// stay hand-inspectable, matching the desktop tooling that edits them.
func WithPretty(pretty bool) Option {
	return func(s *FileStore) {
		s.pretty = pretty
	}
}
