package configuration

type SourceConfig struct {
	ID string `json:"id"`

	File    *FileSourceConfig    `json:"file,omitempty"`
	Profile *ProfileSourceConfig `json:"profile,omitempty"`
}

// FileSourceConfig samples the bus voltage from a text file containing
// a single float, e.g. an ADC bridge export.
type FileSourceConfig struct {
	Path string `json:"path"`
}

// ProfileSourceConfig plays a configured voltage profile back as if it
// were a live source. Mainly useful for dry runs of the daemon.
type ProfileSourceConfig struct {
	// id of the profile to play
	Profile string `json:"profile"`
	// whether playback wraps around at the end of the profile
	Loop bool `json:"loop"`
}
