// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer is a released semantic version as major, minor, and patch.
// Within one major version, a newer minor version may only add items,
// so a reader of some minor version can load all older minor versions.
type SemVer [3]uint

// UnmarshalText parses text like 1.2.3 into sv. Missing trailing
// components (as in 1 or 1.2) are taken as zero. In case of errors,
// sv will be left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) error {
	p := strings.Split(string(text), ".")
	if len(p) > 3 {
		return fmt.Errorf("the %q has too many components", text)
	}
	var v SemVer
	for i, s := range p {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("the %q component is not numeric", s)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// Marshal serializes sv semantic version as its string representation.
// This is required for YAML serialization.
func (sv *SemVer) Marshal() string {
	return sv.String()
}

// MarshalText implements encoding.TextMarshaler interface.
func (sv *SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

// String returns sv as major.minor.patch string.
func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}
