// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which is written in config files like
// 10s or 1m30s.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler using the
// time.ParseDuration format. The d is updated only in absence of
// errors.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// Marshal returns d as a newly allocated string, dropping the zero
// trailing units (e.g., 2h instead of 2h0m0s). A nil d gives nil, so
// optional durations stay absent in the marshalled config.
//
// See pkg/adapter/config/cfg1.*Config.Marshal for an example usage.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	s := (*time.Duration)(d).String()
	s, _ = strings.CutSuffix(s, "m0s")
	if ss, ok := strings.CutSuffix(s, "h0"); ok {
		s = ss + "h"
	} else if ss, ok := strings.CutSuffix(s, "m0"); ok && s != "m0" {
		s = ss + "m"
	}
	return &s
}

// MarshalText implements encoding.TextMarshaler interface.
func (d *Duration) MarshalText() ([]byte, error) {
	if s := d.Marshal(); s != nil {
		return []byte(*s), nil
	}
	return nil, errors.New("nil duration")
}

// LogValue implements slog.LogValuer.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
