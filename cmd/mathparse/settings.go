package main

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/mathparse"
	"github.com/zephyrtronium/mathparse/symbols"
)

// settings is the merged configuration from flags, environment, and file.
type settings struct {
	MaxDepth       int
	StrictDivision bool
	DelimitSymbols bool
	Constants      bool
	Precision      uint
	// Symbols maps names to numbers or formulas.
	Symbols map[string]interface{}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("max_depth", mathparse.DefaultMaxDepth)
	v.SetDefault("constants", true)
	v.SetDefault("precision", 64)
	v.SetEnvPrefix("mathparse")
	v.AutomaticEnv()
}

// readConfig reads the config file, if one is named.
func readConfig(v *viper.Viper, path string, log logrus.FieldLogger) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}
	log.WithField("path", v.ConfigFileUsed()).Debug("loaded config")
	return nil
}

func loadSettings(v *viper.Viper) settings {
	return settings{
		MaxDepth:       v.GetInt("max_depth"),
		StrictDivision: v.GetBool("strict_division"),
		DelimitSymbols: v.GetBool("delimit_symbols"),
		Constants:      v.GetBool("constants"),
		Precision:      v.GetUint("precision"),
		Symbols:        v.GetStringMap("symbols"),
	}
}

// options returns the parser options the settings describe.
func (s settings) options(log logrus.FieldLogger) []mathparse.Option {
	opts := []mathparse.Option{mathparse.MaxDepth(s.MaxDepth), mathparse.Logger(log)}
	if s.StrictDivision {
		opts = append(opts, mathparse.StrictDivision())
	}
	if s.DelimitSymbols {
		opts = append(opts, mathparse.DelimitSymbols())
	}
	return opts
}

// table builds the symbol table. Numeric symbols override constants. Formulas
// may use constants, numeric symbols, and other formulas in any order.
func (s settings) table(log logrus.FieldLogger) (symbols.Table, error) {
	tab := symbols.Table{}
	if s.Constants {
		for k, v := range symbols.Constants(s.Precision) {
			tab[k] = v
		}
	}
	formulas := make(map[string]string)
	for name, raw := range s.Symbols {
		if x, err := cast.ToFloat64E(raw); err == nil {
			if err := tab.Set(name, x); err != nil {
				return nil, err
			}
			continue
		}
		f, err := cast.ToStringE(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "symbol %s", name)
		}
		formulas[name] = f
	}

	opts := s.options(log)
	for len(formulas) > 0 {
		var (
			done    []string
			firsterr error
		)
		for _, name := range sortedKeys(formulas) {
			err := tab.Define(name, formulas[name], opts...)
			if err == nil {
				done = append(done, name)
				continue
			}
			var lerr *mathparse.LookupError
			if !errors.As(err, &lerr) || !symbols.ErrUndefined.Is(lerr.Err) {
				return nil, errors.Wrapf(err, "defining %s", name)
			}
			// Possibly a formula we haven't defined yet.
			if firsterr == nil {
				firsterr = errors.Wrapf(err, "defining %s", name)
			}
		}
		if len(done) == 0 {
			return nil, firsterr
		}
		for _, name := range done {
			log.WithFields(logrus.Fields{"symbol": name, "value": tab[name]}).Debug("defined symbol")
			delete(formulas, name)
		}
	}
	return tab, nil
}

func sortedKeys(m map[string]string) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
