package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Common parameter formatters and parsers, all in plain units.

// FrequencyFormatter formats frequency values with Hz/kHz.
func FrequencyFormatter(hz float32) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.2f kHz", hz/1000)
	}
	return fmt.Sprintf("%.1f Hz", hz)
}

// FrequencyParser parses frequency strings.
func FrequencyParser(str string) (float32, error) {
	str = strings.TrimSpace(str)

	if strings.HasSuffix(str, "kHz") || strings.HasSuffix(str, "khz") {
		numStr := strings.TrimSuffix(strings.TrimSuffix(str, "kHz"), "khz")
		val, err := strconv.ParseFloat(strings.TrimSpace(numStr), 32)
		if err != nil {
			return 0, err
		}
		return float32(val) * 1000, nil
	}

	str = strings.TrimSuffix(strings.TrimSuffix(str, "Hz"), "hz")
	val, err := strconv.ParseFloat(strings.TrimSpace(str), 32)
	return float32(val), err
}

// DecibelFormatter formats dB values.
func DecibelFormatter(db float32) string {
	if db <= -80 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings.
func DecibelParser(str string) (float32, error) {
	if strings.Contains(str, "∞") || strings.Contains(strings.ToLower(str), "inf") {
		return -80, nil
	}
	str = strings.TrimSuffix(strings.TrimSpace(str), "dB")
	str = strings.TrimSuffix(strings.TrimSpace(str), "db")
	val, err := strconv.ParseFloat(strings.TrimSpace(str), 32)
	return float32(val), err
}

// PercentFormatter formats percentage values.
func PercentFormatter(value float32) string {
	return fmt.Sprintf("%.0f%%", value)
}

// PercentParser parses percentage strings.
func PercentParser(str string) (float32, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	val, err := strconv.ParseFloat(str, 32)
	return float32(val), err
}

// TimeFormatter formats time values with appropriate units.
func TimeFormatter(ms float32) string {
	if ms < 1 {
		return fmt.Sprintf("%.2f µs", ms*1000)
	} else if ms < 1000 {
		return fmt.Sprintf("%.1f ms", ms)
	}
	return fmt.Sprintf("%.2f s", ms/1000)
}

// TimeParser parses time strings into milliseconds.
func TimeParser(str string) (float32, error) {
	str = strings.TrimSpace(str)

	if strings.HasSuffix(str, "µs") || strings.HasSuffix(str, "us") {
		numStr := strings.TrimSuffix(strings.TrimSuffix(str, "µs"), "us")
		val, err := strconv.ParseFloat(strings.TrimSpace(numStr), 32)
		if err != nil {
			return 0, err
		}
		return float32(val) / 1000, nil
	}

	if strings.HasSuffix(str, "ms") {
		numStr := strings.TrimSuffix(str, "ms")
		val, err := strconv.ParseFloat(strings.TrimSpace(numStr), 32)
		return float32(val), err
	}

	if strings.HasSuffix(str, "s") {
		numStr := strings.TrimSuffix(str, "s")
		val, err := strconv.ParseFloat(strings.TrimSpace(numStr), 32)
		if err != nil {
			return 0, err
		}
		return float32(val) * 1000, nil
	}

	val, err := strconv.ParseFloat(str, 32)
	return float32(val), err
}
