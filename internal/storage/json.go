package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Well-known namespaces and keys.
const (
	GuestNamespace  = "guest"
	SystemNamespace = "_system"

	KeyAccounts  = "accounts"
	KeyRanking   = "ranking"
	KeySavedGame = "saved_game"
	KeyOptions   = "options"
	KeyCloudDoc  = "cloud_document"
)

const maxNamespaceLen = 32

// Namespace turns an account name into a storage namespace.
// Letters are lowercased, anything outside [a-z0-9_-] becomes '_', leading
// underscores are dropped so user data never lands in a reserved namespace.
// An empty result maps to the guest namespace.
func Namespace(account string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(account)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	ns := strings.TrimLeft(b.String(), "_")
	if len(ns) > maxNamespaceLen {
		ns = ns[:maxNamespaceLen]
	}
	if ns == "" {
		return GuestNamespace
	}
	return ns
}

// GetJSON decodes the value under (namespace, key) into v, which must be a
// non-nil pointer. found is false when the key is missing or the value does
// not decode, syntax errors and type mismatches alike; v is then left
// untouched so the caller keeps its defaults. Fields absent from a valid
// value keep the defaults a struct destination already holds.
func (s *Store) GetJSON(namespace, key string, v any) (found bool, err error) {
	dst := reflect.ValueOf(v)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return false, fmt.Errorf("storage: cannot decode %s/%s into %T", namespace, key, v)
	}

	data, found, err := s.Get(namespace, key)
	if err != nil || !found {
		return false, err
	}

	tmp := reflect.New(dst.Elem().Type())
	if dst.Elem().Kind() == reflect.Struct {
		tmp.Elem().Set(dst.Elem())
	}
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		s.logger.Debug("discarding malformed value", "namespace", namespace, "key", key, "err", err)
		return false, nil
	}
	dst.Elem().Set(tmp.Elem())
	return true, nil
}

// PutJSON encodes v and stores it under (namespace, key).
func (s *Store) PutJSON(namespace, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s/%s: %w", namespace, key, err)
	}
	return s.Put(namespace, key, data)
}
