package key

import (
	"fmt"
	"runtime"
	"strings"
)

// ModAlias is the platform-resolved modifier alias usable in chord specs.
const ModAlias = "$mod"

// Platform decides how the "$mod" alias resolves.
type Platform int

const (
	// PlatformAuto resolves to the platform of the running process.
	PlatformAuto Platform = iota
	// PlatformOther resolves "$mod" to Control.
	PlatformOther
	// PlatformApple resolves "$mod" to Meta (Command).
	PlatformApple
)

// DetectPlatform returns the platform of the running process.
func DetectPlatform() Platform {
	return platformForGOOS(runtime.GOOS)
}

func platformForGOOS(goos string) Platform {
	switch goos {
	case "darwin", "ios":
		return PlatformApple
	default:
		return PlatformOther
	}
}

// ParsePlatform parses a platform name. "auto" and "" yield PlatformAuto.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PlatformAuto, nil
	case "apple", "mac", "macos", "darwin", "ios":
		return PlatformApple, nil
	case "other", "linux", "windows", "pc":
		return PlatformOther, nil
	default:
		return PlatformOther, fmt.Errorf("unknown platform %q", s)
	}
}

// Resolve returns the concrete platform, detecting it for PlatformAuto.
func (p Platform) Resolve() Platform {
	if p == PlatformAuto {
		return DetectPlatform()
	}
	return p
}

// ModAliasTarget returns the modifier "$mod" resolves to.
func (p Platform) ModAliasTarget() Modifier {
	if p.Resolve() == PlatformApple {
		return ModMeta
	}
	return ModCtrl
}

// String returns the platform name.
func (p Platform) String() string {
	switch p {
	case PlatformAuto:
		return "auto"
	case PlatformApple:
		return "apple"
	case PlatformOther:
		return "other"
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}
