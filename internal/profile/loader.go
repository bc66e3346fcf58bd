package profile

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Loader resolves named profiles from a viper-backed config file.
// Layout:
//
//	active: balanced
//	profiles:
//	  balanced:
//	    earnings: {enabled: true, min_prev_rev_yoy: 0.1, ...}
//	  aggressive:
//	    ...
type Loader struct {
	v      *viper.Viper
	logger *zap.Logger
}

// NewLoader reads the profile file at path. A missing or unreadable file
// is an error; a missing profile inside the file is not (Load falls back).
func NewLoader(path string, logger *zap.Logger) (*Loader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	return &Loader{v: v, logger: logger}, nil
}

// Load resolves a profile by name. An empty name resolves the file's
// "active" profile. When the resolved name does not exist the built-in
// balanced profile is returned together with a warning; absence is not
// an error so that a typo in an operator request degrades gracefully.
func (l *Loader) Load(name string) (Profile, []string, error) {
	var warnings []string

	if name == "" {
		name = l.v.GetString("active")
		if name == "" {
			name = DefaultName
		}
	}

	key := "profiles." + name
	if !l.v.IsSet(key) {
		warning := fmt.Sprintf("profile %q not found, falling back to %q", name, DefaultName)
		l.logger.Warn("profile not found",
			zap.String("requested", name),
			zap.String("fallback", DefaultName),
		)
		warnings = append(warnings, warning)

		// The file may carry its own balanced overrides; otherwise the
		// built-in defaults stand alone.
		if name != DefaultName && l.v.IsSet("profiles."+DefaultName) {
			key = "profiles." + DefaultName
			name = DefaultName
		} else {
			return Balanced(), warnings, nil
		}
	}

	// Unmarshal over the balanced defaults so partial profiles inherit
	// sensible thresholds instead of zero values.
	prof := Balanced()
	if err := l.v.UnmarshalKey(key, &prof); err != nil {
		return Profile{}, warnings, fmt.Errorf("unmarshaling profile %q: %w", name, err)
	}
	prof.Name = name

	if err := prof.Validate(); err != nil {
		return Profile{}, warnings, err
	}

	return prof, warnings, nil
}

// Names lists the profiles defined in the file.
func (l *Loader) Names() []string {
	sub := l.v.GetStringMap("profiles")
	names := make([]string, 0, len(sub))
	for name := range sub {
		names = append(names, name)
	}
	return names
}
