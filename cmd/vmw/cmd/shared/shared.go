package shared

import (
	"encoding/json"
	"fmt"
	"io"

	"voicemail-whisper/internal/config"
)

// ConfigPath is set by the root command's --config flag.
var ConfigPath string

// LoadConfig loads .env, then the config file and environment.
func LoadConfig() (*config.Config, error) {
	if _, err := config.LoadEnv(); err != nil {
		return nil, err
	}
	return config.Load(ConfigPath)
}

// LoadQueryConfig is LoadConfig for commands that only read clips.
func LoadQueryConfig() (*config.Config, error) {
	if _, err := config.LoadEnv(); err != nil {
		return nil, err
	}
	return config.LoadForQuery(ConfigPath)
}

// PrintJSON writes v indented, followed by a newline.
func PrintJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
