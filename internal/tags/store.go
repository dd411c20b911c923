package tags

// Store abstracts payload persistence so scanning and rewriting can be
// exercised against fakes in tests.
type Store interface {
	Read(path string) (Payload, error)
	Write(path string, p Payload) error
}

// DiskStore reads and writes payloads on real media files.
type DiskStore struct{}

func (DiskStore) Read(path string) (Payload, error) { return Read(path) }

func (DiskStore) Write(path string, p Payload) error { return Write(path, p) }
