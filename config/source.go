package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Source supplies the current encoding policy.
type Source interface {
	Policy() (Policy, error)
}

// StaticSource always returns the same policy.
type StaticSource struct {
	policy Policy
}

var _ Source = StaticSource{}

// Static returns a Source that always yields p.
func Static(p Policy) StaticSource {
	return StaticSource{policy: p}
}

func (s StaticSource) Policy() (Policy, error) {
	return s.policy, nil
}

// ViperSource reads the policy from a viper instance on every call.
type ViperSource struct {
	v *viper.Viper
}

var _ Source = (*ViperSource)(nil)

// NewEnvViper returns a viper instance that resolves the policy keys from
// ENCSEL_-prefixed environment variables.
func NewEnvViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// NewViperSource creates a Source backed by v. A nil v uses NewEnvViper.
func NewViperSource(v *viper.Viper) *ViperSource {
	if v == nil {
		v = NewEnvViper()
	}

	return &ViperSource{v: v}
}

// Viper returns the underlying viper instance.
func (s *ViperSource) Viper() *viper.Viper {
	return s.v
}

func (s *ViperSource) Policy() (Policy, error) {
	return ParsePolicy(map[string]string{
		KeyIntEncoding:    s.v.GetString(KeyIntEncoding),
		KeyStringEncoding: s.v.GetString(KeyStringEncoding),
		KeyIntBitLength:   s.v.GetString(KeyIntBitLength),
		KeyIntBound:       s.v.GetString(KeyIntBound),
	})
}
