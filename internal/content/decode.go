// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errNotObject = errors.New("payload is not a JSON object")

// envelope returns the value under the first of keys present in an object
// payload, or the payload itself when none is present.
func envelope(payload []byte, keys ...string) json.RawMessage {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || payload[0] != '{' {
		return payload
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(payload, &top); err != nil {
		return payload
	}
	for _, k := range keys {
		if v, ok := top[k]; ok {
			return v
		}
	}
	return payload
}

// decodeList decodes a JSON array, possibly wrapped in an envelope keyed by
// one of keys. Entries that do not decode as T are skipped.
func decodeList[T any](payload []byte, keys ...string) ([]T, error) {
	raw := envelope(payload, keys...)

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding list: %w", err)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeObject decodes a JSON object, possibly wrapped in an envelope keyed
// by one of keys.
func decodeObject[T any](payload []byte, keys ...string) (T, error) {
	var v T
	raw := bytes.TrimSpace(envelope(payload, keys...))
	if len(raw) == 0 || raw[0] != '{' {
		return v, errNotObject
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decoding object: %w", err)
	}
	return v, nil
}
