package models

import "fmt"

// Severity: производный уровень важности записи, вычисляется по тегам.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWatch
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWatch:
		return "watch"
	default:
		return "info"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "critical":
		*s = SeverityCritical
	case "watch":
		*s = SeverityWatch
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity %q", string(b))
	}
	return nil
}
