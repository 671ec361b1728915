package param

import (
	"fmt"
	"strings"
)

// ChoiceOption is a single choice in a list parameter.
type ChoiceOption struct {
	Name    string
	Aliases []string
}

// Choice creates a stepped parameter whose plain values are the option
// indices.
func Choice(id, name string, options []ChoiceOption) *Builder {
	names := make([]string, len(options))
	for i, opt := range options {
		names[i] = opt.Name
	}

	formatter := func(value float32) string {
		index := int(value + 0.5)
		if index >= 0 && index < len(names) {
			return names[index]
		}
		return "Unknown"
	}

	parser := func(str string) (float32, error) {
		trimmed := strings.TrimSpace(str)
		for i, opt := range options {
			if strings.EqualFold(trimmed, opt.Name) {
				return float32(i), nil
			}
			for _, alias := range opt.Aliases {
				if strings.EqualFold(trimmed, alias) {
					return float32(i), nil
				}
			}
		}
		return 0, fmt.Errorf("unknown option: %s", str)
	}

	return New(id, name).
		Stepped(0, float32(len(options)-1), len(options)).
		Default(0).
		Formatter(formatter, parser)
}

// GainParameter creates a standard gain parameter in dB with linear
// smoothing.
func GainParameter(id, name string) *Builder {
	return New(id, name).
		Linear(-80, 12).
		Default(0).
		Unit("dB").
		Smoothing(LinearSmoothing, 10).
		Formatter(DecibelFormatter, DecibelParser)
}

// MixParameter creates a standard mix/blend parameter (0-100%).
func MixParameter(id, name string) *Builder {
	return New(id, name).
		Linear(0, 100).
		Default(100).
		Unit("%").
		Smoothing(LinearSmoothing, 10).
		Formatter(PercentFormatter, PercentParser)
}

// FrequencyParameter creates a frequency parameter with a skew that gives
// the low end more resolution, smoothed logarithmically.
func FrequencyParameter(id, name string, min, max, defaultHz float32) *Builder {
	return New(id, name).
		Skewed(min, max, SkewFactor(-2)).
		Default(defaultHz).
		Unit("Hz").
		Smoothing(LogarithmicSmoothing, 20).
		Formatter(FrequencyFormatter, FrequencyParser)
}

// TimeParameter creates a time parameter in milliseconds.
func TimeParameter(id, name string, minMs, maxMs, defaultMs float32) *Builder {
	return New(id, name).
		Skewed(minMs, maxMs, SkewFactor(-1)).
		Default(defaultMs).
		Unit("ms").
		Formatter(TimeFormatter, TimeParser)
}

// BypassParameter creates the plugin's bypass switch.
func BypassParameter(id, name string) *Builder {
	return New(id, name).
		Stepped(0, 1, 2).
		Default(0).
		Flags(CanAutomate | IsBypass).
		Formatter(func(v float32) string {
			if v >= 0.5 {
				return "On"
			}
			return "Off"
		}, func(s string) (float32, error) {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "on", "1", "true", "yes":
				return 1, nil
			case "off", "0", "false", "no":
				return 0, nil
			}
			return 0, fmt.Errorf("not a switch value: %s", s)
		})
}
