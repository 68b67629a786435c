package config

import (
	"context"

	"github.com/spf13/viper"
)

// Child creates a new Viper instance that inherits all settings from the parent context.
// The child is a point-in-time snapshot: later changes to either instance do not
// affect the other.
func Child(ctx context.Context) *viper.Viper {
	v := New()

	for key, value := range Viper(ctx).AllSettings() {
		v.Set(key, value)
	}

	return v
}
