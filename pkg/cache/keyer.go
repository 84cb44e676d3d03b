package cache

// Keyer derives cache keys. Implementations must be deterministic: equal
// inputs yield equal keys across processes.
type Keyer interface {
	// DrillKey addresses the tool summary of an input.
	DrillKey(inputHash string, opts DrillKeyOpts) string

	// ArtifactKey addresses one rendered format of an input.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DrillKeyOpts holds every option that changes the assembled program.
type DrillKeyOpts struct {
	IncludePlated bool   `json:"include_plated"`
	FlipY         bool   `json:"flip_y"`
	Generator     string `json:"generator"`
}

// ArtifactKeyOpts adds the output format to DrillKeyOpts.
type ArtifactKeyOpts struct {
	DrillKeyOpts
	Format string `json:"format"`
}

// DefaultKeyer hashes the input hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DrillKey returns "drill:" followed by a SHA-256 over inputHash and opts.
func (DefaultKeyer) DrillKey(inputHash string, opts DrillKeyOpts) string {
	return hashKey("drill", inputHash, opts)
}

// ArtifactKey returns "artifact:" followed by a SHA-256 over inputHash and opts.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

var _ Keyer = DefaultKeyer{}
