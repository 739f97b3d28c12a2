package nacelle

import (
	"fmt"
	"strings"
)

// Mounting is where a nacelle is attached to the airframe.
type Mounting int

const (
	Wing Mounting = iota
	Fuselage
	HTail
	UndercarriageHousing
)

var mountingNames = [...]string{
	Wing:                 "wing",
	Fuselage:             "fuselage",
	HTail:                "htail",
	UndercarriageHousing: "undercarriage",
}

func (m Mounting) String() string {
	if m < 0 || int(m) >= len(mountingNames) {
		return fmt.Sprintf("mounting(%d)", int(m))
	}
	return mountingNames[m]
}

// ParseMounting parses the String form of a mounting, case insensitive.
func ParseMounting(s string) (Mounting, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range mountingNames {
		if s == name {
			return Mounting(m), nil
		}
	}
	return 0, fmt.Errorf("unknown mounting %q", s)
}
