package cache

// KeymapKeyOpts are the inputs that change a built keymap.
type KeymapKeyOpts struct {
	ThumbShiftIn   int `json:"thumb_shift_in"`
	NumberOfThumbs int `json:"number_of_thumbs"`
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	ThumbShiftIn   int     `json:"thumb_shift_in"`
	NumberOfThumbs int     `json:"number_of_thumbs"`
	LeftAlign      bool    `json:"left_align"`
	SplitSpace     int     `json:"split_space"`
	AlignLayers    bool    `json:"align_layers"`
	Humanize       bool    `json:"humanize"`
	Scale          float64 `json:"scale"`
}

// Keyer derives cache keys. sourceHash is Hash of the keymap source.
type Keyer interface {
	KeymapKey(sourceHash string, opts KeymapKeyOpts) string
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// KeymapKey returns the key of a built keymap.
func (DefaultKeyer) KeymapKey(sourceHash string, opts KeymapKeyOpts) string {
	return hashKey("keymap", sourceHash, opts)
}

// ArtifactKey returns the key of one rendered output format.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, sourceHash, opts)
}
