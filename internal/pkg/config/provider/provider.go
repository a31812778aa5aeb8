package provider

type Type byte

const (
	NilType Type = iota
	FileType
)

func (t Type) String() string {
	switch t {
	case FileType:
		return "file"
	}
	return "unknown"
}

// Data is a raw config tree as read by a provider.
type Data struct {
	Type   Type
	Config map[string]any
}

func (d Data) IsNil() bool {
	return d.Type == NilType || d.Config == nil
}

type Provider interface {
	// Provide reads the current data. Later changes are sent to dataCh
	// until the provider is closed.
	Provide(dataCh chan<- Data) (Data, error)
	Close() error
}
