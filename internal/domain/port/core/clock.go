package core

import "time"

// Clock abstracts the current UTC instant so duration rounding is
// deterministic under test. Every timestamp the domain records comes
// through this port.
type Clock interface {
	Now() time.Time
}
